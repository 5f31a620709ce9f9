package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ballpit/config"
	"github.com/pthm-cable/ballpit/systems"
	"github.com/pthm-cable/ballpit/telemetry"
)

// UpdateHeadless runs stepsPerUpdate fixed-dt steps driven by the scripted
// input in the headless config: balls rain in along the top quarter of the
// viewport and the storm pulses at the viewport center.
func (g *Game) UpdateHeadless() {
	cfg := config.Cfg()
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.perfCollector.StartTick()
		g.perfCollector.StartPhase(telemetry.PhaseInput)
		in := g.scriptedInput(cfg)
		g.step(in)
		g.perfCollector.EndTick(g.physics.Count(), g.lastStats.PairsTested)
	}
}

// scriptedInput spawns any balls due this step and builds the step input.
func (g *Game) scriptedInput(cfg *config.Config) systems.StepInput {
	dt := cfg.Headless.DT
	vp := g.viewport()

	if interval := cfg.Derived.SpawnInterval; interval > 0 {
		g.spawnAccum += dt
		for g.spawnAccum >= interval {
			g.spawnAccum -= interval
			g.spawn(g.randomSpawnPoint(vp, cfg.Ball.Radius))
		}
	}

	return systems.StepInput{
		DT:       dt,
		Storm:    stormActive(g.collector.SimTime(), cfg.Headless.StormPeriod, cfg.Headless.StormDuty),
		Pointer:  r2.Vec{X: vp.Width / 2, Y: vp.Height / 2},
		Viewport: vp,
	}
}

// randomSpawnPoint picks a point inside the top quarter of the viewport.
func (g *Game) randomSpawnPoint(vp systems.Bounds, r float64) (x, y float64) {
	x = r + g.rng.Float64()*math.Max(vp.Width-2*r, 0)
	y = r + g.rng.Float64()*math.Max(vp.Height/4-r, 0)
	return x, y
}

// stormActive reports whether the storm is on at simulated time t for a
// cycle of period seconds that is active for the leading duty fraction.
func stormActive(t, period, duty float64) bool {
	if period <= 0 || duty <= 0 {
		return false
	}
	return math.Mod(t, period) < duty*period
}
