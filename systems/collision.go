package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ballpit/components"
)

// Contact describes what ResolveCollision did with a pair.
type Contact uint8

const (
	ContactNone       Contact = iota // not overlapping
	ContactSeparating                // overlapping but already moving apart
	ContactResolved                  // impulse applied
	ContactDegenerate                // coincident centers, skipped
)

// ResolveCollision applies a restitution impulse to two overlapping balls
// that are approaching each other. Only velocities change; overlapping
// balls are not pushed apart.
func ResolveCollision(
	p1 components.Position, v1 *components.Velocity, b1 components.Body,
	p2 components.Position, v2 *components.Velocity, b2 components.Body,
	restitution float64,
) Contact {
	delta := r2.Sub(r2.Vec(p1), r2.Vec(p2))
	dist := r2.Norm(delta)
	if dist >= b1.Radius+b2.Radius {
		return ContactNone
	}
	if dist == 0 {
		return ContactDegenerate
	}

	normal := r2.Scale(1/dist, delta)
	relVel := r2.Dot(r2.Sub(r2.Vec(*v1), r2.Vec(*v2)), normal)
	if relVel >= 0 {
		return ContactSeparating
	}

	inv1, inv2 := b1.InvDensity(), b2.InvDensity()
	impulse := (1 + restitution) * relVel / (inv1 + inv2)

	*v1 = components.Velocity(r2.Sub(r2.Vec(*v1), r2.Scale(impulse*inv1, normal)))
	*v2 = components.Velocity(r2.Add(r2.Vec(*v2), r2.Scale(impulse*inv2, normal)))
	return ContactResolved
}
