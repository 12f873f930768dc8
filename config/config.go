// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Grid      GridConfig      `yaml:"grid"`
	Growth    GrowthConfig    `yaml:"growth"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Path      PathConfig      `yaml:"path"`
	Bee       BeeConfig       `yaml:"bee"`
	Gameplay  GameplayConfig  `yaml:"gameplay"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions in world units.
// The renderer maps world units to pixels; all simulation distances
// (arrival radius, spawn separation) are expressed in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT              float64 `yaml:"dt"`
	SpatialCellSize float64 `yaml:"spatial_cell_size"`
}

// GridConfig holds hive grid layout parameters.
type GridConfig struct {
	Rows         int      `yaml:"rows"`
	Cols         int      `yaml:"cols"`
	CellSize     float64  `yaml:"cell_size"` // center-to-center spacing in world units
	OriginX      float64  `yaml:"origin_x"`
	OriginY      float64  `yaml:"origin_y"`
	Seeds        [][2]int `yaml:"seeds"` // initially revealed cells, [row, col]
	SlotCapacity int      `yaml:"slot_capacity"`
	MaxProbes    int      `yaml:"max_probes"` // random probe cap before scan fallback
}

// GrowthConfig holds hive growth scheduling parameters.
type GrowthConfig struct {
	InitialReveal int     `yaml:"initial_reveal"`
	InitialOpen   int     `yaml:"initial_open"`
	Interval      float64 `yaml:"interval"` // seconds between growth steps
	RevealBatch   int     `yaml:"reveal_batch"`
	OpenBatch     int     `yaml:"open_batch"`
}

// SpawnConfig holds bee spawning parameters.
type SpawnConfig struct {
	Margin        float64            `yaml:"margin"`         // extended viewport margin for placement
	MinSeparation float64            `yaml:"min_separation"` // world units to nearest active bee
	MaxProbes     int                `yaml:"max_probes"`
	Phases        []SpawnPhaseConfig `yaml:"phases"`
	Types         []BeeTypeConfig    `yaml:"types"`
}

// SpawnPhaseConfig defines one spawn pacing phase.
type SpawnPhaseConfig struct {
	MinDelay float64 `yaml:"min_delay"`
	MaxDelay float64 `yaml:"max_delay"`
	Count    int     `yaml:"count"` // spawns before advancing to the next phase
}

// BeeTypeConfig defines a spawnable bee type with its selection weight.
type BeeTypeConfig struct {
	Name   string  `yaml:"name"`
	Weight int     `yaml:"weight"`
	Speed  float64 `yaml:"speed"`  // world units per second
	Radius float64 `yaml:"radius"` // collision radius in world units
}

// PathConfig holds flight path parameters.
type PathConfig struct {
	SegmentLength  float64 `yaml:"segment_length"`  // resampled drag segment length
	WaypointRadius float64 `yaml:"waypoint_radius"` // advance past a waypoint within this distance
	ArrivalRadius  float64 `yaml:"arrival_radius"`  // destination arrival distance
	SnapRadius     float64 `yaml:"snap_radius"`     // max distance for slot snapping
	PickRadius     float64 `yaml:"pick_radius"`     // max distance for grabbing a bee
}

// BeeConfig holds bee state machine parameters.
type BeeConfig struct {
	StunDecay       float64 `yaml:"stun_decay"`       // exponential decay rate of stun intensity
	StunThreshold   float64 `yaml:"stun_threshold"`   // below this, stunned bees terminate
	LookaheadFrames float64 `yaml:"lookahead_frames"` // boundary reflection prediction horizon
}

// GameplayConfig holds match flow parameters.
type GameplayConfig struct {
	IntroDelay float64 `yaml:"intro_delay"` // seconds before the playable phase starts
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32        float32
	WorldW32    float32
	WorldH32    float32
	Scale       float32 // pixels per world unit
	TotalWeight int     // sum of bee type weights
	TypeIndex   map[string]uint8
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
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations that would produce undefined simulation
// behavior. Zero-weight selection and empty phase lists fail here rather
// than at spawn time.
func (c *Config) Validate() error {
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return fmt.Errorf("config: grid dimensions must be positive, got %dx%d", c.Grid.Rows, c.Grid.Cols)
	}
	if len(c.Grid.Seeds) == 0 {
		return fmt.Errorf("config: grid needs at least one seed cell")
	}
	for _, s := range c.Grid.Seeds {
		if s[0] < 0 || s[0] >= c.Grid.Rows || s[1] < 0 || s[1] >= c.Grid.Cols {
			return fmt.Errorf("config: seed cell [%d, %d] outside %dx%d grid", s[0], s[1], c.Grid.Rows, c.Grid.Cols)
		}
	}
	if c.Grid.SlotCapacity <= 0 {
		return fmt.Errorf("config: slot capacity must be positive, got %d", c.Grid.SlotCapacity)
	}
	if len(c.Spawn.Phases) == 0 {
		return fmt.Errorf("config: spawn needs at least one phase")
	}
	for i, p := range c.Spawn.Phases {
		if p.MinDelay < 0 || p.MaxDelay < p.MinDelay {
			return fmt.Errorf("config: spawn phase %d has invalid delay range [%v, %v]", i, p.MinDelay, p.MaxDelay)
		}
	}
	if len(c.Spawn.Types) == 0 {
		return fmt.Errorf("config: spawn needs at least one bee type")
	}
	total := 0
	for _, t := range c.Spawn.Types {
		if t.Weight < 0 {
			return fmt.Errorf("config: bee type %q has negative weight %d", t.Name, t.Weight)
		}
		total += t.Weight
	}
	if total == 0 {
		return fmt.Errorf("config: bee type weights sum to zero")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)
	if c.World.Width > 0 {
		c.Derived.Scale = float32(float64(c.Screen.Width) / c.World.Width)
	}

	c.Derived.TotalWeight = 0
	for _, t := range c.Spawn.Types {
		c.Derived.TotalWeight += t.Weight
	}

	c.Derived.TypeIndex = make(map[string]uint8, len(c.Spawn.Types))
	for i, t := range c.Spawn.Types {
		c.Derived.TypeIndex[t.Name] = uint8(i)
	}
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
