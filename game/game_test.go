package game

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/ballpit/components"
	"github.com/pthm-cable/ballpit/config"
)

func newHeadlessGame(t *testing.T, opts Options) *Game {
	t.Helper()
	config.MustInit("")
	opts.Headless = true
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestStormActive(t *testing.T) {
	tests := []struct {
		t, period, duty float64
		want            bool
	}{
		{0, 5, 0.2, true},
		{0.99, 5, 0.2, true},
		{1.0, 5, 0.2, false},
		{4.9, 5, 0.2, false},
		{5.5, 5, 0.2, true},
		{1, 0, 0.2, false},
		{1, 5, 0, false},
	}
	for _, tt := range tests {
		if got := stormActive(tt.t, tt.period, tt.duty); got != tt.want {
			t.Errorf("stormActive(%v, %v, %v) = %v, want %v", tt.t, tt.period, tt.duty, got, tt.want)
		}
	}
}

func TestUpdateHeadless_SpawnsAndContains(t *testing.T) {
	g := newHeadlessGame(t, Options{Seed: 42, StepsPerUpdate: 60})
	cfg := config.Cfg()

	for i := 0; i < 5; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 300 {
		t.Errorf("tick = %d, want 300", g.Tick())
	}

	// 5 simulated seconds at 10 balls per second
	if n := g.Physics().Count(); n < 49 || n > 50 {
		t.Errorf("count = %d, want about 50", n)
	}

	w, h := float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	g.Physics().Each(func(pos components.Position, vel components.Velocity, body components.Body) {
		r := body.Radius
		if pos.X < r || pos.X > w-r || pos.Y < r || pos.Y > h-r {
			t.Errorf("ball at (%.2f, %.2f) outside viewport", pos.X, pos.Y)
		}
		if math.IsNaN(vel.X) || math.IsNaN(vel.Y) {
			t.Errorf("NaN velocity at (%.2f, %.2f)", pos.X, pos.Y)
		}
	})
}

func TestUpdateHeadless_Deterministic(t *testing.T) {
	run := func() []float64 {
		g := newHeadlessGame(t, Options{Seed: 7, StepsPerUpdate: 120})
		g.UpdateHeadless()
		var out []float64
		g.Physics().Each(func(pos components.Position, _ components.Velocity, _ components.Body) {
			out = append(out, pos.X, pos.Y)
		})
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverge at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestClear(t *testing.T) {
	g := newHeadlessGame(t, Options{Seed: 1, StepsPerUpdate: 30})
	g.UpdateHeadless()
	if g.Physics().Count() == 0 {
		t.Fatal("expected balls before clear")
	}
	g.clear()
	if g.Physics().Count() != 0 {
		t.Errorf("count after clear = %d, want 0", g.Physics().Count())
	}
}

func TestHeadless_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	g := newHeadlessGame(t, Options{Seed: 3, StepsPerUpdate: 60, StatsWindowSec: 1, OutputDir: dir})

	for i := 0; i < 3; i++ {
		g.UpdateHeadless()
	}

	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestSetScreenSizeIgnoresMinimizedWindow(t *testing.T) {
	g := newHeadlessGame(t, Options{Seed: 5, StepsPerUpdate: 30})

	tests := []struct {
		name    string
		w, h    float32
		changed bool
	}{
		{"minimized", 0, 0, false},
		{"zero height", 640, 0, false},
		{"negative width", -1, 480, false},
		{"same size", 800, 600, false},
		{"resized", 640, 480, true},
	}
	for _, tc := range tests {
		if got := g.setScreenSize(tc.w, tc.h); got != tc.changed {
			t.Errorf("%s: setScreenSize(%v, %v) = %v, want %v", tc.name, tc.w, tc.h, got, tc.changed)
		}
	}
	if g.screenWidth != 640 || g.screenHeight != 480 {
		t.Fatalf("screen = %vx%v, want 640x480", g.screenWidth, g.screenHeight)
	}

	g.setScreenSize(0, 0)
	g.UpdateHeadless()

	g.Physics().Each(func(pos components.Position, _ components.Velocity, body components.Body) {
		r := body.Radius
		if pos.X < r || pos.X > 640-r || pos.Y < r || pos.Y > 480-r {
			t.Errorf("ball at (%.2f, %.2f) outside 640x480", pos.X, pos.Y)
		}
	})
}
