// Package config provides configuration loading and access for the sandbox.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Collision modes accepted by physics.collision_mode.
const (
	CollisionGrid     = "grid"      // neighbor-cell candidates from the spatial grid
	CollisionAllPairs = "all_pairs" // every body against every other body
)

// Config holds all sandbox configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Ball      BallConfig      `yaml:"ball"`
	Headless  HeadlessConfig  `yaml:"headless"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`
	Restitution   float64 `yaml:"restitution"`
	StormForce    float64 `yaml:"storm_force"`
	WallDamping   float64 `yaml:"wall_damping"`
	CellSize      float64 `yaml:"cell_size"`
	CollisionMode string  `yaml:"collision_mode"`
	MaxDT         float64 `yaml:"max_dt"` // 0 = uncapped
}

// BallConfig holds ball creation parameters.
type BallConfig struct {
	Radius        float64 `yaml:"radius"`
	Density       float64 `yaml:"density"`
	SpawnCooldown float64 `yaml:"spawn_cooldown"`
	MaxBodies     int     `yaml:"max_bodies"` // 0 = unbounded
}

// HeadlessConfig holds the scripted input used when running without a window.
type HeadlessConfig struct {
	DT          float64 `yaml:"dt"`
	SpawnRate   float64 `yaml:"spawn_rate"`   // balls per second
	StormPeriod float64 `yaml:"storm_period"` // seconds per storm cycle
	StormDuty   float64 `yaml:"storm_duty"`   // active fraction of a cycle
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32     float32 // Screen.Width as float32
	ScreenH32     float32 // Screen.Height as float32
	SpawnInterval float64 // 1 / Headless.SpawnRate (0 = never)
	UseGrid       bool    // Physics.CollisionMode == CollisionGrid
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate rejects values the physics core cannot run with.
func (c *Config) Validate() error {
	if c.Physics.CellSize <= 0 {
		return fmt.Errorf("physics.cell_size must be positive, got %v", c.Physics.CellSize)
	}
	if c.Ball.Radius <= 0 {
		return fmt.Errorf("ball.radius must be positive, got %v", c.Ball.Radius)
	}
	if c.Ball.Density <= 0 {
		return fmt.Errorf("ball.density must be positive, got %v", c.Ball.Density)
	}
	if c.Ball.MaxBodies < 0 {
		return fmt.Errorf("ball.max_bodies must not be negative, got %d", c.Ball.MaxBodies)
	}
	if c.Physics.MaxDT < 0 {
		return fmt.Errorf("physics.max_dt must not be negative, got %v", c.Physics.MaxDT)
	}
	switch c.Physics.CollisionMode {
	case CollisionGrid, CollisionAllPairs:
	default:
		return fmt.Errorf("physics.collision_mode: unknown mode %q", c.Physics.CollisionMode)
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after changing fields programmatically.
func (c *Config) ComputeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.SpawnInterval = 0
	if c.Headless.SpawnRate > 0 {
		c.Derived.SpawnInterval = 1 / c.Headless.SpawnRate
	}

	c.Derived.UseGrid = c.Physics.CollisionMode == CollisionGrid
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
