package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState holds the values the controls panel edits.
type ControlsState struct {
	GridMode bool
	Gravity  float32
	Clear    bool // set for the frame the Clear button was pressed
}

// ControlsPanel renders the right-side raygui controls panel.
type ControlsPanel struct {
	renderer *Renderer
	width    int32
	height   int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		width:    width,
		height:   150,
		visible:  true,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// bounds returns the panel rectangle anchored to the top-right corner.
func (c *ControlsPanel) bounds(screenWidth int32) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(screenWidth - c.width - c.renderer.Theme.Padding),
		Y:      float32(c.renderer.Theme.Padding),
		Width:  float32(c.width),
		Height: float32(c.height),
	}
}

// Contains reports whether a screen point is over the visible panel, so
// clicks on the panel do not spawn balls underneath it.
func (c *ControlsPanel) Contains(screenWidth int32, x, y float32) bool {
	if !c.visible {
		return false
	}
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, c.bounds(screenWidth))
}

// Draw renders the panel and returns the possibly edited state.
func (c *ControlsPanel) Draw(screenWidth int32, state ControlsState) ControlsState {
	state.Clear = false
	if !c.visible {
		return state
	}

	r := c.renderer
	b := c.bounds(screenWidth)
	r.DrawPanel(int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height))

	pad := float32(r.Theme.Padding)
	x := b.X + pad
	y := r.DrawSectionHeader(int32(x), int32(b.Y+pad), "Controls")
	inner := b.Width - 2*pad

	state.GridMode = gui.CheckBox(
		rl.Rectangle{X: x, Y: float32(y), Width: 16, Height: 16},
		"Grid collisions", state.GridMode,
	)
	y += r.Theme.LineHeight + 8

	rl.DrawText(fmt.Sprintf("Gravity %.0f", state.Gravity), int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	state.Gravity = gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: float32(y), Width: inner - 60, Height: 16},
		"0", "1500",
		state.Gravity, 0, 1500,
	)
	y += r.Theme.LineHeight + 8

	state.Clear = gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: 100, Height: 24}, "Clear")

	return state
}
