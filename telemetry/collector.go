package telemetry

import "github.com/pthm-cable/ballpit/systems"

// Collector accumulates events within time windows and produces WindowStats.
// Windows are measured in simulated seconds since frame deltas vary in
// windowed mode.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	tick            int32
	simTime         float64
	windowStartTick int32
	windowStartTime float64

	// Event counters for current window
	spawned     int
	evicted     int
	stormFrames int
	pairsTested int
	resolved    int
	separating  int
	degenerate  int
	wallHits    int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordSpawn records a spawned ball.
func (c *Collector) RecordSpawn() {
	c.spawned++
}

// RecordEvictions records balls removed by the body cap.
func (c *Collector) RecordEvictions(n int) {
	c.evicted += n
}

// RecordStep folds one physics step into the current window.
func (c *Collector) RecordStep(s systems.StepStats, storm bool) {
	c.tick++
	c.simTime += s.DT
	if storm {
		c.stormFrames++
	}
	c.pairsTested += s.PairsTested
	c.resolved += s.Resolved
	c.separating += s.Separating
	c.degenerate += s.Degenerate
	c.wallHits += s.WallHits
}

// Tick returns the number of steps recorded so far.
func (c *Collector) Tick() int32 {
	return c.tick
}

// SimTime returns the simulated seconds recorded so far.
func (c *Collector) SimTime() float64 {
	return c.simTime
}

// ShouldFlush returns true if the current window has covered its duration.
func (c *Collector) ShouldFlush() bool {
	return c.simTime-c.windowStartTime >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
// speeds holds the current speed of every ball; kinetic is their total
// kinetic energy.
func (c *Collector) Flush(bodies int, speeds []float64, kinetic float64) WindowStats {
	ticks := c.tick - c.windowStartTick
	var pairsPerTick float64
	if ticks > 0 {
		pairsPerTick = float64(c.pairsTested) / float64(ticks)
	}

	speed := ComputeDistribution(speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   c.tick,
		SimTimeSec:      c.simTime,

		Bodies: bodies,

		Spawned:     c.spawned,
		Evicted:     c.evicted,
		StormFrames: c.stormFrames,

		PairsTested:  c.pairsTested,
		Resolved:     c.resolved,
		Separating:   c.separating,
		Degenerate:   c.degenerate,
		WallHits:     c.wallHits,
		PairsPerTick: pairsPerTick,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP10:  speed.P10,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,
		SpeedMax:  speed.Max,

		KineticTotal: kinetic,
	}

	// Reset for next window
	c.windowStartTick = c.tick
	c.windowStartTime = c.simTime
	c.spawned = 0
	c.evicted = 0
	c.stormFrames = 0
	c.pairsTested = 0
	c.resolved = 0
	c.separating = 0
	c.degenerate = 0
	c.wallHits = 0

	return stats
}
