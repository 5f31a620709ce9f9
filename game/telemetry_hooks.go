package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/ballpit/components"
	"github.com/pthm-cable/ballpit/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}

	speeds, kinetic := g.sampleSpeeds()
	bodies := g.physics.Count()

	stats := g.collector.Flush(bodies, speeds, kinetic)
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// sampleSpeeds collects every ball's speed and the total kinetic energy,
// treating density as mass.
func (g *Game) sampleSpeeds() (speeds []float64, kinetic float64) {
	speeds = make([]float64, 0, g.physics.Count())
	g.physics.Each(func(_ components.Position, vel components.Velocity, body components.Body) {
		v2 := vel.X*vel.X + vel.Y*vel.Y
		speeds = append(speeds, math.Sqrt(v2))
		kinetic += 0.5 * body.Density * v2
	})
	return speeds, kinetic
}

// Collector exposes the window collector, mainly for tests and benchmarks.
func (g *Game) Collector() *telemetry.Collector {
	return g.collector
}
