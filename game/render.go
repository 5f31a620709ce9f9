package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ballpit/config"
	"github.com/pthm-cable/ballpit/ui"
)

// Draw renders the balls, HUD and controls panel.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.circles = g.physics.Circles(g.circles[:0])
	for _, c := range g.circles {
		rl.DrawCircleV(rl.Vector2{X: float32(c.X), Y: float32(c.Y)}, float32(c.Radius), g.theme.BallColor)
	}

	if g.storm && !g.paused {
		g.hud.DrawStorm(float32(g.pointer.X), float32(g.pointer.Y))
	}

	g.hud.Draw(ui.HUDData{
		Title:       config.Cfg().Screen.Title,
		Bodies:      g.physics.Count(),
		Evicted:     g.physics.Evicted(),
		Tick:        g.tick,
		FPS:         rl.GetFPS(),
		Paused:      g.paused,
		GridMode:    g.physics.UseGrid(),
		PairsTested: g.lastStats.PairsTested,
		Resolved:    g.lastStats.Resolved,
	})
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)

	state := g.controls.Draw(int32(g.screenWidth), ui.ControlsState{
		GridMode: g.physics.UseGrid(),
		Gravity:  float32(g.physics.Gravity()),
	})
	g.physics.SetUseGrid(state.GridMode)
	if state.Gravity != float32(g.physics.Gravity()) {
		g.physics.SetGravity(float64(state.Gravity))
	}
	if state.Clear {
		g.clear()
	}

	rl.EndDrawing()
}
