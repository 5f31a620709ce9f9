package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ballpit/components"
)

func defaultEnv() Environment {
	return Environment{
		Gravity:     560,
		WallDamping: 0.8,
		Bounds:      Bounds{Width: 800, Height: 600},
		Storm:       Storm{Force: 2000},
	}
}

// TestFallingBallBouncesOffFloor drops a ball from rest and checks the
// bounce frame inverts vertical velocity scaled by the wall damping.
func TestFallingBallBouncesOffFloor(t *testing.T) {
	env := defaultEnv()
	body := components.Body{Radius: 10, Density: 1}
	pos := components.Position{X: 400, Y: 100}
	vel := components.Velocity{}
	const dt = 1.0 / 60

	prevVY := vel.Y
	for frame := 0; frame < 600; frame++ {
		hit := Integrate(&pos, &vel, body, dt, env)

		if hit&BounceBottom == 0 {
			if vel.Y < prevVY {
				t.Fatalf("frame %d: vy decreased while airborne (%v -> %v)", frame, prevVY, vel.Y)
			}
			prevVY = vel.Y
			continue
		}

		want := -0.8 * (prevVY + env.Gravity*dt)
		if math.Abs(vel.Y-want) > tolerance {
			t.Errorf("bounce vy = %v, want %v", vel.Y, want)
		}
		if vel.Y >= 0 {
			t.Errorf("bounce vy = %v, want upward (negative)", vel.Y)
		}
		if pos.Y != env.Bounds.Height-body.Radius {
			t.Errorf("bounce y = %v, want %v", pos.Y, env.Bounds.Height-body.Radius)
		}
		return
	}
	t.Fatal("ball never reached the floor")
}

func TestWallsClampAndReflect(t *testing.T) {
	body := components.Body{Radius: 10, Density: 1}
	env := defaultEnv()
	env.Gravity = 0

	tests := []struct {
		name    string
		pos     components.Position
		vel     components.Velocity
		want    Bounce
		wantPos components.Position
		wantVel components.Velocity
	}{
		{
			name:    "left wall",
			pos:     components.Position{X: 12, Y: 300},
			vel:     components.Velocity{X: -300},
			want:    BounceLeft,
			wantPos: components.Position{X: 10, Y: 300},
			wantVel: components.Velocity{X: 240},
		},
		{
			name:    "right wall",
			pos:     components.Position{X: 785, Y: 300},
			vel:     components.Velocity{X: 600},
			want:    BounceRight,
			wantPos: components.Position{X: 790, Y: 300},
			wantVel: components.Velocity{X: -480},
		},
		{
			name:    "ceiling",
			pos:     components.Position{X: 400, Y: 11},
			vel:     components.Velocity{Y: -120},
			want:    BounceTop,
			wantPos: components.Position{X: 400, Y: 10},
			wantVel: components.Velocity{Y: 96},
		},
		{
			name:    "corner",
			pos:     components.Position{X: 788, Y: 588},
			vel:     components.Velocity{X: 300, Y: 300},
			want:    BounceBottom | BounceRight,
			wantPos: components.Position{X: 790, Y: 590},
			wantVel: components.Velocity{X: -240, Y: -240},
		},
		{
			name:    "free flight",
			pos:     components.Position{X: 400, Y: 300},
			vel:     components.Velocity{X: 60, Y: -60},
			want:    0,
			wantPos: components.Position{X: 401, Y: 299},
			wantVel: components.Velocity{X: 60, Y: -60},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, vel := tc.pos, tc.vel
			got := Integrate(&pos, &vel, body, 1.0/60, env)
			if got != tc.want {
				t.Errorf("bounce = %b, want %b", got, tc.want)
			}
			if !approx(pos.X, tc.wantPos.X) || !approx(pos.Y, tc.wantPos.Y) {
				t.Errorf("pos = %v, want %v", pos, tc.wantPos)
			}
			if !approx(vel.X, tc.wantVel.X) || !approx(vel.Y, tc.wantVel.Y) {
				t.Errorf("vel = %v, want %v", vel, tc.wantVel)
			}
		})
	}
}

func TestBounceCount(t *testing.T) {
	if n := (BounceTop | BounceLeft | BounceRight).Count(); n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
	if n := Bounce(0).Count(); n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
}

// TestStormForceIsConstant checks the storm push has the same magnitude at
// any distance and points away from the pointer.
func TestStormForceIsConstant(t *testing.T) {
	body := components.Body{Radius: 10, Density: 1}
	const dt = 0.01
	center := components.Position{X: 400, Y: 300}

	offsets := []r2.Vec{
		{X: 1, Y: 0},
		{X: -50, Y: 0},
		{X: 30, Y: 40},
		{X: -150, Y: -200},
	}

	for _, off := range offsets {
		env := defaultEnv()
		env.Gravity = 0
		env.Storm.Active = true
		env.Storm.Pointer = r2.Sub(r2.Vec(center), off)

		pos := center
		vel := components.Velocity{}
		Integrate(&pos, &vel, body, dt, env)

		dv := r2.Vec(vel)
		if got, want := r2.Norm(dv), env.Storm.Force*dt; math.Abs(got-want) > tolerance {
			t.Errorf("offset %v: |dv| = %v, want %v", off, got, want)
		}
		// Same direction as the pointer->ball offset
		if cos := r2.Dot(dv, off) / (r2.Norm(dv) * r2.Norm(off)); math.Abs(cos-1) > tolerance {
			t.Errorf("offset %v: dv %v not directed away from pointer", off, dv)
		}
	}
}

func TestStormAtPointerIsSkipped(t *testing.T) {
	body := components.Body{Radius: 10, Density: 1}
	env := defaultEnv()
	env.Gravity = 0
	env.Storm.Active = true
	env.Storm.Pointer = r2.Vec{X: 400, Y: 300}

	pos := components.Position{X: 400, Y: 300}
	vel := components.Velocity{}
	Integrate(&pos, &vel, body, 0.01, env)

	if vel != (components.Velocity{}) {
		t.Errorf("velocity = %v, want unchanged zero", vel)
	}
}

func TestStormInactiveHasNoEffect(t *testing.T) {
	body := components.Body{Radius: 10, Density: 1}
	env := defaultEnv()
	env.Gravity = 0
	env.Storm.Pointer = r2.Vec{X: 100, Y: 100}

	pos := components.Position{X: 400, Y: 300}
	vel := components.Velocity{}
	Integrate(&pos, &vel, body, 0.01, env)

	if vel != (components.Velocity{}) {
		t.Errorf("velocity = %v, want zero with storm inactive", vel)
	}
}
