// Package config provides configuration loading and access for the sandbox.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/portals/world"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all sandbox configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Player    PlayerConfig    `yaml:"player"`
	Portal    PortalConfig    `yaml:"portal"`
	Layers    LayersConfig    `yaml:"layers"`
	Level     LevelConfig     `yaml:"level"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"`
	Resizable bool `yaml:"resizable"`
}

// PlayerConfig holds first-person camera and movement settings.
type PlayerConfig struct {
	EyeHeight        float64 `yaml:"eye_height"`
	Fov              float64 `yaml:"fov"` // vertical, degrees
	MinFov           float64 `yaml:"min_fov"`
	MaxFov           float64 `yaml:"max_fov"`
	Near             float64 `yaml:"near"`
	Far              float64 `yaml:"far"`
	MoveSpeed        float64 `yaml:"move_speed"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // radians per pixel
	PitchLimit       float64 `yaml:"pitch_limit"`       // degrees
}

// PortalConfig holds placement parameters.
type PortalConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Cooldown     float64 `yaml:"cooldown"`      // seconds between shots
	MaxDistance  float64 `yaml:"max_distance"`  // raycast range
	SpawnOffset  float64 `yaml:"spawn_offset"`  // pulled back along the shot
	CarveMargin  float64 `yaml:"carve_margin"`  // cutout overshoot past both faces
	OpenDuration float64 `yaml:"open_duration"` // opening animation, 0 = instant
}

// LayersConfig names the layers portal shots interact with.
type LayersConfig struct {
	Block   []string `yaml:"block"`   // stop a shot
	Surface []string `yaml:"surface"` // accept a portal
}

// LevelConfig describes the test chamber.
type LevelConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Depth         float64 `yaml:"depth"`
	WallThickness float64 `yaml:"wall_thickness"`
	Pillars       int     `yaml:"pillars"`
	PillarSize    float64 `yaml:"pillar_size"`
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	Culling     bool    `yaml:"culling"`      // frustum-cull portal pairs
	TargetScale float64 `yaml:"target_scale"` // portal target size relative to the screen
	Crosshair   bool    `yaml:"crosshair"`
	ShowHUD     bool    `yaml:"show_hud"`
}

// TelemetryConfig holds output and stats settings.
type TelemetryConfig struct {
	StatsWindow    float64 `yaml:"stats_window"`    // seconds between perf windows
	PerfCSVEnabled bool    `yaml:"perf_csv_enabled"` // write perf.csv
	EventsEnabled  bool    `yaml:"events_enabled"`   // write events.csv
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32   float32
	ScreenH32   float32
	FovRad      float32
	PitchRad    float32
	BlockMask   world.LayerMask
	SurfaceMask world.LayerMask
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
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, fmt.Errorf("deriving config: %w", err)
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Player.Fov = min(max(c.Player.Fov, c.Player.MinFov), c.Player.MaxFov)
	c.Derived.FovRad = float32(c.Player.Fov * math.Pi / 180)
	c.Derived.PitchRad = float32(c.Player.PitchLimit * math.Pi / 180)

	block, err := world.MaskFromNames(c.Layers.Block)
	if err != nil {
		return fmt.Errorf("layers.block: %w", err)
	}
	surface, err := world.MaskFromNames(c.Layers.Surface)
	if err != nil {
		return fmt.Errorf("layers.surface: %w", err)
	}
	c.Derived.BlockMask = block
	c.Derived.SurfaceMask = surface
	return nil
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
