// Package components defines ECS components for the sandbox.
package components

// Position represents a ball's center in viewport coordinates.
// Y grows downward, matching screen space.
type Position struct {
	X, Y float64
}

// Velocity represents a ball's velocity in units per second.
type Velocity struct {
	X, Y float64
}

// Body holds the fixed physical properties of a ball.
type Body struct {
	Radius  float64
	Density float64
}

// InvDensity returns 1/Density, used as inverse mass in impulse resolution.
func (b Body) InvDensity() float64 {
	return 1 / b.Density
}
