package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ballpit/systems"
	"github.com/pthm-cable/ballpit/telemetry"
)

// Update processes one frame of windowed input and steps the simulation.
func (g *Game) Update() {
	g.perfCollector.StartTick()
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	var pairs int
	if !g.paused {
		dt := float64(rl.GetFrameTime())
		mouse := rl.GetMousePosition()
		overPanel := g.controls.Contains(int32(g.screenWidth), mouse.X, mouse.Y)

		held := rl.IsMouseButtonDown(rl.MouseButtonLeft) && !overPanel
		if g.spawner.Update(held, dt) {
			g.spawn(float64(mouse.X), float64(mouse.Y))
		}

		g.step(systems.StepInput{
			DT:       dt,
			Storm:    rl.IsMouseButtonDown(rl.MouseButtonRight),
			Pointer:  r2.Vec{X: float64(mouse.X), Y: float64(mouse.Y)},
			Viewport: g.viewport(),
		})
		pairs = g.lastStats.PairsTested
	}

	g.perfCollector.EndTick(g.physics.Count(), pairs)
	g.perfCollector.RecordFrame()
}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
		g.handleResize()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.clear()
	}

	if rl.IsKeyPressed(rl.KeyG) {
		g.physics.SetUseGrid(!g.physics.UseGrid())
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.controls.Toggle()
	}
}

// handleResize picks up the live window size. Balls outside the new bounds
// are pushed back in by the next step's wall handling.
func (g *Game) handleResize() {
	g.setScreenSize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
}

// setScreenSize updates the playable area. A minimized window reports 0x0,
// which is ignored so the last real size stays in effect.
func (g *Game) setScreenSize(w, h float32) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	if w == g.screenWidth && h == g.screenHeight {
		return false
	}
	g.screenWidth = w
	g.screenHeight = h
	return true
}
