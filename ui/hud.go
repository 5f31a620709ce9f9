package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Bodies      int
	Evicted     int
	Tick        int32
	FPS         int32
	Paused      bool
	GridMode    bool
	PairsTested int
	Resolved    int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	x, y := r.Theme.Padding, r.Theme.Padding

	y = r.DrawSectionHeader(x, y, data.Title)

	mode := "all pairs"
	if data.GridMode {
		mode = "grid"
	}

	y = r.DrawLabelValue(x, y, "Balls", fmt.Sprintf("%d", data.Bodies))
	if data.Evicted > 0 {
		y = r.DrawLabelValue(x, y, "Evicted", fmt.Sprintf("%d", data.Evicted))
	}
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "Collisions", mode)
	y = r.DrawLabelValue(x, y, "Pairs", fmt.Sprintf("%d (%d hits)", data.PairsTested, data.Resolved))

	if data.Paused {
		rl.DrawText("PAUSED", x, y, r.Theme.HeaderFontSize, r.Theme.WarnColor)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, h.renderer.Theme.Padding, screenHeight-25, h.renderer.Theme.FontSize, rl.Gray)
}

// DrawStorm marks the storm center while the storm is active.
func (h *HUD) DrawStorm(x, y float32) {
	rl.DrawCircleLines(int32(x), int32(y), 24, h.renderer.Theme.StormColor)
}
