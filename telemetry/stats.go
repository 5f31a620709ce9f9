package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Bodies int `csv:"bodies"`

	// Events during window
	Spawned     int `csv:"spawned"`
	Evicted     int `csv:"evicted"`
	StormFrames int `csv:"storm_frames"`

	// Collision work during window
	PairsTested  int     `csv:"pairs_tested"`
	Resolved     int     `csv:"resolved"`
	Separating   int     `csv:"separating"`
	Degenerate   int     `csv:"degenerate"`
	WallHits     int     `csv:"wall_hits"`
	PairsPerTick float64 `csv:"pairs_per_tick"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Kinetic energy, using density as mass
	KineticTotal float64 `csv:"kinetic_total"`
}

// Distribution summarizes a sample of non-negative values.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputeDistribution calculates mean, population std, percentiles and max.
// Returns the zero Distribution for an empty slice.
func ComputeDistribution(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}
	if n == 1 {
		v := values[0]
		return Distribution{Mean: v, P10: v, P50: v, P90: v, Max: v}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.LinInterp, sorted, nil),
		P50:  stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P90:  stat.Quantile(0.90, stat.LinInterp, sorted, nil),
		Max:  floats.Max(sorted),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("spawned", s.Spawned),
		slog.Int("evicted", s.Evicted),
		slog.Int("storm_frames", s.StormFrames),
		slog.Int("pairs_tested", s.PairsTested),
		slog.Int("resolved", s.Resolved),
		slog.Int("separating", s.Separating),
		slog.Int("degenerate", s.Degenerate),
		slog.Int("wall_hits", s.WallHits),
		slog.Float64("pairs_per_tick", s.PairsPerTick),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p10", s.SpeedP10),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("kinetic_total", s.KineticTotal),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
