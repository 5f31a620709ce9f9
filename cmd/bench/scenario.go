package main

import (
	"math/rand"
	"sort"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ballpit/config"
	"github.com/pthm-cable/ballpit/systems"
)

// Scenario describes one benchmark run.
type Scenario struct {
	Mode   string // config.CollisionGrid or config.CollisionAllPairs
	Bodies int
	Steps  int
	Seed   int64
}

// Result is one row of bench.csv.
type Result struct {
	Mode         string  `csv:"mode"`
	Bodies       int     `csv:"bodies"`
	Steps        int     `csv:"steps"`
	StepMeanUS   float64 `csv:"step_mean_us"`
	StepP50US    float64 `csv:"step_p50_us"`
	StepP90US    float64 `csv:"step_p90_us"`
	PairsPerStep float64 `csv:"pairs_per_step"`
	Resolved     int     `csv:"resolved"`
	Speedup      float64 `csv:"speedup_vs_all_pairs"`
}

// Run fills a viewport with balls and times each physics step with the
// storm pulsing at the center.
func (s Scenario) Run(cfg *config.Config) Result {
	params := systems.ParamsFromConfig(cfg)
	params.UseGrid = s.Mode == config.CollisionGrid
	params.MaxBodies = 0

	phys := systems.NewPhysicsSystem(ecs.NewWorld(), params)
	vp := systems.Bounds{Width: float64(cfg.Screen.Width), Height: float64(cfg.Screen.Height)}
	rng := rand.New(rand.NewSource(s.Seed))

	r := params.Radius
	for i := 0; i < s.Bodies; i++ {
		x := r + rng.Float64()*(vp.Width-2*r)
		y := r + rng.Float64()*(vp.Height-2*r)
		phys.Spawn(x, y)
	}

	dt := cfg.Headless.DT
	center := r2.Vec{X: vp.Width / 2, Y: vp.Height / 2}
	durations := make([]float64, s.Steps)
	var pairs, resolved int

	for i := 0; i < s.Steps; i++ {
		in := systems.StepInput{
			DT:       dt,
			Storm:    i%120 < 20,
			Pointer:  center,
			Viewport: vp,
		}
		start := time.Now()
		st := phys.Step(in)
		durations[i] = float64(time.Since(start).Nanoseconds()) / 1e3
		pairs += st.PairsTested
		resolved += st.Resolved
	}

	res := Result{
		Mode:     s.Mode,
		Bodies:   s.Bodies,
		Steps:    s.Steps,
		Resolved: resolved,
	}
	if s.Steps > 0 {
		res.StepMeanUS = stat.Mean(durations, nil)
		res.PairsPerStep = float64(pairs) / float64(s.Steps)
		sort.Float64s(durations)
		res.StepP50US = stat.Quantile(0.5, stat.Empirical, durations, nil)
		res.StepP90US = stat.Quantile(0.9, stat.Empirical, durations, nil)
	}
	return res
}
