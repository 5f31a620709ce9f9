package systems

// Spawner rate-limits spawning while a trigger is held.
// The cooldown only counts down while the trigger is held, so releasing
// the button part-way through a cooldown leaves the remainder pending.
type Spawner struct {
	cooldown  float64
	remaining float64
}

// NewSpawner creates a spawner that allows one spawn per cooldown seconds.
// The first held frame spawns immediately.
func NewSpawner(cooldown float64) *Spawner {
	return &Spawner{cooldown: cooldown}
}

// Update advances the cooldown by dt and reports whether a ball should be
// spawned this frame.
func (s *Spawner) Update(held bool, dt float64) bool {
	if !held {
		return false
	}
	s.remaining -= dt
	if s.remaining > 0 {
		return false
	}
	s.remaining = s.cooldown
	return true
}

// Reset clears any pending cooldown.
func (s *Spawner) Reset() {
	s.remaining = 0
}
