package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ballpit/components"
)

// Bounds represents the live viewport extent. The playable area is
// [0, Width] x [0, Height].
type Bounds struct {
	Width, Height float64
}

// Storm is the radial push centered on the pointer.
type Storm struct {
	Active  bool
	Pointer r2.Vec
	Force   float64 // acceleration magnitude, independent of distance
}

// Environment holds everything Integrate needs besides the ball itself.
type Environment struct {
	Gravity     float64
	WallDamping float64
	Bounds      Bounds
	Storm       Storm
}

// Bounce is a bitmask of walls hit during one Integrate call.
type Bounce uint8

const (
	BounceTop Bounce = 1 << iota
	BounceBottom
	BounceLeft
	BounceRight
)

// Count returns the number of walls hit.
func (b Bounce) Count() int {
	n := 0
	for w := BounceTop; w <= BounceRight; w <<= 1 {
		if b&w != 0 {
			n++
		}
	}
	return n
}

// Integrate advances one ball by dt seconds: gravity, movement, wall
// reflection and the storm push, in that order.
func Integrate(pos *components.Position, vel *components.Velocity, body components.Body, dt float64, env Environment) Bounce {
	vel.Y += env.Gravity * dt

	p := r2.Add(r2.Vec(*pos), r2.Scale(dt, r2.Vec(*vel)))
	r := body.Radius
	w, h := env.Bounds.Width, env.Bounds.Height

	// Each axis is handled on its own so corner hits bounce diagonally
	var hit Bounce
	if p.Y-r < 0 {
		p.Y = r
		vel.Y *= -env.WallDamping
		hit |= BounceTop
	}
	if p.Y+r > h {
		p.Y = h - r
		vel.Y *= -env.WallDamping
		hit |= BounceBottom
	}
	if p.X-r < 0 {
		p.X = r
		vel.X *= -env.WallDamping
		hit |= BounceLeft
	}
	if p.X+r > w {
		p.X = w - r
		vel.X *= -env.WallDamping
		hit |= BounceRight
	}

	if env.Storm.Active {
		dir := r2.Sub(p, env.Storm.Pointer)
		if dist := r2.Norm(dir); dist > 0 {
			push := r2.Scale(env.Storm.Force*dt/dist, dir)
			*vel = components.Velocity(r2.Add(r2.Vec(*vel), push))
		}
	}

	*pos = components.Position(p)
	return hit
}
