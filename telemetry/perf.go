package telemetry

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase identifies a timed section of a step.
type Phase int

const (
	PhaseInput Phase = iota
	PhasePhysics
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{"input", "physics", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// stepSample is the cost of one step and the collision load it carried.
type stepSample struct {
	tick   time.Duration
	phases [numPhases]time.Duration
	bodies int
	pairs  int
}

// PerfCollector keeps a ring of recent step timings alongside the number of
// balls and candidate pairs each step processed, so cost can be read per
// tested pair when comparing collision modes.
type PerfCollector struct {
	now    func() time.Time
	ring   []stepSample
	next   int
	filled int

	cur        stepSample
	tickStart  time.Time
	phase      Phase
	phaseStart time.Time
	inPhase    bool

	// Frame timing (windowed mode)
	lastFrame time.Time
	frameTime time.Duration
}

// NewPerfCollector creates a collector averaging over the last windowSize steps.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:  time.Now,
		ring: make([]stepSample, windowSize),
	}
}

// StartTick begins timing a new step.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.cur = stepSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	t := p.now()
	p.closePhase(t)
	p.phase = phase
	p.phaseStart = t
	p.inPhase = true
}

func (p *PerfCollector) closePhase(t time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += t.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// EndTick finishes the step and records how many balls and candidate pairs
// it processed.
func (p *PerfCollector) EndTick(bodies, pairs int) {
	t := p.now()
	p.closePhase(t)
	p.cur.tick = t.Sub(p.tickStart)
	p.cur.bodies = bodies
	p.cur.pairs = pairs

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// RecordFrame marks a presented frame for FPS measurement.
func (p *PerfCollector) RecordFrame() {
	t := p.now()
	if !p.lastFrame.IsZero() {
		p.frameTime = t.Sub(p.lastFrame)
	}
	p.lastFrame = t
}

// PerfStats summarizes the steps currently in the window.
type PerfStats struct {
	Samples        int
	AvgTick        time.Duration
	P95Tick        time.Duration
	MaxTick        time.Duration
	TicksPerSecond float64

	// Share of total step time per phase, in percent
	PhasePct [numPhases]float64

	AvgBodies    float64
	AvgPairs     float64
	PairsPerBody float64
	NsPerPair    float64 // physics time per tested pair

	FPS float64
}

// Stats aggregates the window. An empty window yields zero values.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	s.Samples = p.filled
	if p.frameTime > 0 {
		s.FPS = float64(time.Second) / float64(p.frameTime)
	}
	if p.filled == 0 {
		return s
	}

	ticks := make([]float64, p.filled)
	var total time.Duration
	var phaseSum [numPhases]time.Duration
	var bodies, pairs int
	for i, smp := range p.ring[:p.filled] {
		ticks[i] = float64(smp.tick)
		total += smp.tick
		if smp.tick > s.MaxTick {
			s.MaxTick = smp.tick
		}
		for ph, d := range smp.phases {
			phaseSum[ph] += d
		}
		bodies += smp.bodies
		pairs += smp.pairs
	}

	n := float64(p.filled)
	s.AvgTick = total / time.Duration(p.filled)
	sort.Float64s(ticks)
	s.P95Tick = time.Duration(stat.Quantile(0.95, stat.Empirical, ticks, nil))

	if total > 0 {
		s.TicksPerSecond = n * float64(time.Second) / float64(total)
		for ph, d := range phaseSum {
			s.PhasePct[ph] = float64(d) / float64(total) * 100
		}
	}

	s.AvgBodies = float64(bodies) / n
	s.AvgPairs = float64(pairs) / n
	if bodies > 0 {
		s.PairsPerBody = float64(pairs) / float64(bodies)
	}
	if pairs > 0 {
		s.NsPerPair = float64(phaseSum[PhasePhysics]) / float64(pairs)
	}
	return s
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTick.Microseconds(),
		"p95_tick_us", s.P95Tick.Microseconds(),
		"max_tick_us", s.MaxTick.Microseconds(),
		"ticks_per_sec", math.Round(s.TicksPerSecond),
		"bodies", round1(s.AvgBodies),
		"pairs_per_body", round1(s.PairsPerBody),
		"ns_per_pair", round1(s.NsPerPair),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", math.Round(s.FPS))
	}

	for ph := Phase(0); ph < numPhases; ph++ {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", round1(pct))
		}
	}

	slog.Info("perf", attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	Samples      int     `csv:"samples"`
	Bodies       float64 `csv:"bodies"`
	Pairs        float64 `csv:"pairs"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	NsPerPair    float64 `csv:"ns_per_pair"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	PhysicsPct   float64 `csv:"physics_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		Samples:      s.Samples,
		Bodies:       s.AvgBodies,
		Pairs:        s.AvgPairs,
		AvgTickUS:    s.AvgTick.Microseconds(),
		P95TickUS:    s.P95Tick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		NsPerPair:    s.NsPerPair,
		FPS:          s.FPS,
		InputPct:     s.PhasePct[PhaseInput],
		PhysicsPct:   s.PhasePct[PhasePhysics],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
