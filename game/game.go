// Package game runs the ball sandbox: input, stepping, telemetry and drawing.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ballpit/config"
	"github.com/pthm-cable/ballpit/systems"
	"github.com/pthm-cable/ballpit/telemetry"
	"github.com/pthm-cable/ballpit/ui"
)

// Game holds the sandbox state.
type Game struct {
	world   *ecs.World
	physics *systems.PhysicsSystem
	spawner *systems.Spawner
	rng     *rand.Rand

	screenWidth  float32
	screenHeight float32

	paused         bool
	headless       bool
	stepsPerUpdate int
	tick           int32

	// Last frame input and stats, for the HUD
	storm     bool
	pointer   r2.Vec
	lastStats systems.StepStats

	// Headless scripted input
	spawnAccum float64

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	// UI (nil in headless mode)
	theme    ui.Theme
	hud      *ui.HUD
	controls *ui.ControlsPanel
	circles  []systems.Circle
}

// NewGameWithOptions creates a new game with the given options.
// config.Init must have been called first.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	windowSec := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		windowSec = opts.StatsWindowSec
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	world := ecs.NewWorld()
	g := &Game{
		world:          world,
		physics:        systems.NewPhysicsSystem(world, systems.ParamsFromConfig(cfg)),
		spawner:        systems.NewSpawner(cfg.Ball.SpawnCooldown),
		rng:            rand.New(rand.NewSource(opts.Seed)),
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		collector:      telemetry.NewCollector(windowSec),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}
	g.outputManager = om

	if !opts.Headless {
		g.theme = ui.DefaultTheme()
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(220)
	}

	return g, nil
}

// step advances the physics by one frame and feeds telemetry.
func (g *Game) step(in systems.StepInput) {
	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	stats := g.physics.Step(in)
	g.lastStats = stats
	g.storm = in.Storm
	g.pointer = in.Pointer
	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordStep(stats, in.Storm)
	g.flushTelemetry()
}

// spawn creates a ball and records it along with any evictions it caused.
func (g *Game) spawn(x, y float64) {
	before := g.physics.Evicted()
	g.physics.Spawn(x, y)
	g.collector.RecordSpawn()
	if n := g.physics.Evicted() - before; n > 0 {
		g.collector.RecordEvictions(n)
		slog.Debug("bodies evicted", "count", n, "tick", g.tick)
	}
}

// clear removes every ball.
func (g *Game) clear() {
	n := g.physics.Count()
	g.physics.Clear()
	g.spawner.Reset()
	slog.Info("cleared balls", "count", n, "tick", g.tick)
}

// viewport returns the current playable bounds.
func (g *Game) viewport() systems.Bounds {
	return systems.Bounds{Width: float64(g.screenWidth), Height: float64(g.screenHeight)}
}

// Unload releases resources.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the number of steps taken so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// Physics returns the physics system.
func (g *Game) Physics() *systems.PhysicsSystem {
	return g.physics
}

// Paused reports whether stepping is paused.
func (g *Game) Paused() bool {
	return g.paused
}
