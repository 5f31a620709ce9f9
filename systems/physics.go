package systems

import (
	"math"
	"slices"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/ballpit/components"
	"github.com/pthm-cable/ballpit/config"
)

// PhysicsParams holds the constants the physics system runs with.
type PhysicsParams struct {
	Gravity     float64
	Restitution float64
	StormForce  float64
	WallDamping float64
	CellSize    float64
	Radius      float64 // radius given to spawned balls
	Density     float64 // density given to spawned balls
	UseGrid     bool    // neighbor-cell candidates instead of all pairs
	MaxBodies   int     // 0 = unbounded
	MaxDT       float64 // 0 = uncapped
}

// ParamsFromConfig extracts physics parameters from the loaded config.
func ParamsFromConfig(cfg *config.Config) PhysicsParams {
	return PhysicsParams{
		Gravity:     cfg.Physics.Gravity,
		Restitution: cfg.Physics.Restitution,
		StormForce:  cfg.Physics.StormForce,
		WallDamping: cfg.Physics.WallDamping,
		CellSize:    cfg.Physics.CellSize,
		Radius:      cfg.Ball.Radius,
		Density:     cfg.Ball.Density,
		UseGrid:     cfg.Derived.UseGrid,
		MaxBodies:   cfg.Ball.MaxBodies,
		MaxDT:       cfg.Physics.MaxDT,
	}
}

// StepInput is the per-frame input supplied by the event loop.
type StepInput struct {
	DT       float64 // seconds since the last frame
	Storm    bool
	Pointer  r2.Vec
	Viewport Bounds
}

// StepStats summarizes what happened during one Step.
type StepStats struct {
	DT          float64 // dt actually used after clamping
	Bodies      int
	PairsTested int
	Resolved    int
	Separating  int
	Degenerate  int
	WallHits    int
}

// Circle is a read-only render snapshot of one ball.
type Circle struct {
	X, Y, Radius float64
}

// PhysicsSystem owns the ball collection and steps it once per frame.
// It is not safe for concurrent use.
type PhysicsSystem struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Body]
	params PhysicsParams

	order      []ecs.Entity // spawn order; iteration order for Step
	grid       *SpatialGrid // holds indices into order
	candidates []int
	maxRadius  float64
	evicted    int
}

// NewPhysicsSystem creates a new physics system storing balls in w.
func NewPhysicsSystem(w *ecs.World, params PhysicsParams) *PhysicsSystem {
	return &PhysicsSystem{
		world:      w,
		mapper:     ecs.NewMap3[components.Position, components.Velocity, components.Body](w),
		params:     params,
		order:      make([]ecs.Entity, 0, 256),
		grid:       NewSpatialGrid(params.CellSize),
		candidates: make([]int, 0, 32),
	}
}

// Spawn creates a ball at rest at (x, y). When a body cap is configured and
// reached, the oldest ball is removed first.
func (s *PhysicsSystem) Spawn(x, y float64) ecs.Entity {
	if s.params.MaxBodies > 0 {
		for len(s.order) >= s.params.MaxBodies {
			s.evictOldest()
		}
	}

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	body := components.Body{Radius: s.params.Radius, Density: s.params.Density}
	e := s.mapper.NewEntity(&pos, &vel, &body)

	s.order = append(s.order, e)
	if body.Radius > s.maxRadius {
		s.maxRadius = body.Radius
	}
	return e
}

// evictOldest removes the first ball in spawn order. Every later index
// shifts down by one, so the grid is emptied until the next Step refills it.
func (s *PhysicsSystem) evictOldest() {
	oldest := s.order[0]
	copy(s.order, s.order[1:])
	s.order = s.order[:len(s.order)-1]
	s.world.RemoveEntity(oldest)
	s.grid.Clear()
	s.evicted++
}

// Step advances every ball by in.DT. Balls are processed in spawn order in
// a single pass: each ball is integrated and then collided against the
// current state of every candidate, so later balls see earlier balls'
// updated state within the same frame.
//
// The grid is filled with every ball before the pass and each entry moves
// with its ball, so a grid query finds exactly the overlapping balls an
// all-pairs scan would. Candidates are visited in spawn order, which makes
// both modes apply the same impulses in the same order.
func (s *PhysicsSystem) Step(in StepInput) StepStats {
	dt := sanitizeDT(in.DT, s.params.MaxDT)
	env := Environment{
		Gravity:     s.params.Gravity,
		WallDamping: s.params.WallDamping,
		Bounds:      in.Viewport,
		Storm: Storm{
			Active:  in.Storm,
			Pointer: in.Pointer,
			Force:   s.params.StormForce,
		},
	}
	stats := StepStats{DT: dt, Bodies: len(s.order)}

	s.rebuildGrid()
	reach := s.grid.Reach(s.maxRadius)

	for i, e := range s.order {
		pos, vel, body := s.mapper.Get(e)
		ox, oy := pos.X, pos.Y
		stats.WallHits += Integrate(pos, vel, *body, dt, env).Count()
		s.grid.Move(i, ox, oy, pos.X, pos.Y)

		if s.params.UseGrid {
			s.candidates = s.grid.Neighbors(s.candidates[:0], pos.X, pos.Y, reach)
			slices.Sort(s.candidates)
			for _, j := range s.candidates {
				if j != i {
					s.collide(&stats, pos, vel, body, s.order[j])
				}
			}
		} else {
			for j, other := range s.order {
				if j != i {
					s.collide(&stats, pos, vel, body, other)
				}
			}
		}
	}

	return stats
}

// rebuildGrid indexes every ball at its current position.
func (s *PhysicsSystem) rebuildGrid() {
	s.grid.Clear()
	for i, e := range s.order {
		pos, _, _ := s.mapper.Get(e)
		s.grid.Insert(i, pos.X, pos.Y)
	}
}

func (s *PhysicsSystem) collide(stats *StepStats, pos *components.Position, vel *components.Velocity, body *components.Body, other ecs.Entity) {
	opos, ovel, obody := s.mapper.Get(other)
	stats.PairsTested++
	switch ResolveCollision(*pos, vel, *body, *opos, ovel, *obody, s.params.Restitution) {
	case ContactResolved:
		stats.Resolved++
	case ContactSeparating:
		stats.Separating++
	case ContactDegenerate:
		stats.Degenerate++
	}
}

// sanitizeDT clamps negative, NaN and infinite deltas to 0 and applies the
// optional cap.
func sanitizeDT(dt, maxDT float64) float64 {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return 0
	}
	if maxDT > 0 && dt > maxDT {
		return maxDT
	}
	return dt
}

// Circles appends a render snapshot of every ball to dst in spawn order.
func (s *PhysicsSystem) Circles(dst []Circle) []Circle {
	for _, e := range s.order {
		pos, _, body := s.mapper.Get(e)
		dst = append(dst, Circle{X: pos.X, Y: pos.Y, Radius: body.Radius})
	}
	return dst
}

// Each calls fn with a copy of every ball's state in spawn order.
func (s *PhysicsSystem) Each(fn func(pos components.Position, vel components.Velocity, body components.Body)) {
	for _, e := range s.order {
		pos, vel, body := s.mapper.Get(e)
		fn(*pos, *vel, *body)
	}
}

// Clear removes every ball.
func (s *PhysicsSystem) Clear() {
	for _, e := range s.order {
		s.world.RemoveEntity(e)
	}
	s.order = s.order[:0]
	s.grid.Clear()
	s.maxRadius = 0
}

// Count returns the number of live balls.
func (s *PhysicsSystem) Count() int {
	return len(s.order)
}

// Entities returns the balls in spawn order. The slice is owned by the
// system and must not be modified.
func (s *PhysicsSystem) Entities() []ecs.Entity {
	return s.order
}

// Evicted returns the total number of balls removed by the body cap.
func (s *PhysicsSystem) Evicted() int {
	return s.evicted
}

// Grid returns the spatial grid as left by the last Step. Its entries are
// indices into Entities. Spawn does not index new balls, and an eviction
// empties the grid until the next Step.
func (s *PhysicsSystem) Grid() *SpatialGrid {
	return s.grid
}

// UseGrid reports whether grid neighbor queries are used for collisions.
func (s *PhysicsSystem) UseGrid() bool {
	return s.params.UseGrid
}

// SetUseGrid switches between grid and all-pairs collision candidates.
func (s *PhysicsSystem) SetUseGrid(useGrid bool) {
	s.params.UseGrid = useGrid
}

// Gravity returns the current gravitational acceleration.
func (s *PhysicsSystem) Gravity() float64 {
	return s.params.Gravity
}

// SetGravity changes the gravitational acceleration for subsequent steps.
func (s *PhysicsSystem) SetGravity(g float64) {
	s.params.Gravity = g
}
