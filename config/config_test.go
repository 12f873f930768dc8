package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadDefaults verifies the embedded defaults parse, validate, and
// produce derived values.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Grid.Rows <= 0 || cfg.Grid.Cols <= 0 {
		t.Errorf("grid dimensions %dx%d", cfg.Grid.Rows, cfg.Grid.Cols)
	}
	if cfg.Derived.Scale <= 0 {
		t.Errorf("derived scale = %f", cfg.Derived.Scale)
	}
	if cfg.Derived.TotalWeight <= 0 {
		t.Errorf("derived total weight = %d", cfg.Derived.TotalWeight)
	}
	for i, bt := range cfg.Spawn.Types {
		if got, ok := cfg.Derived.TypeIndex[bt.Name]; !ok || got != uint8(i) {
			t.Errorf("type index for %q = %d (%v), want %d", bt.Name, got, ok, i)
		}
	}
}

// TestLoadOverride verifies a partial user file overrides only the fields
// it names.
func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	override := []byte("grid:\n  rows: 11\n  cols: 13\n  cell_size: 0.9\n  slot_capacity: 3\n  seeds: [[5, 6]]\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load override: %v", err)
	}
	if cfg.Grid.Rows != 11 || cfg.Grid.Cols != 13 {
		t.Errorf("grid = %dx%d, want 11x13", cfg.Grid.Rows, cfg.Grid.Cols)
	}
	// Defaults untouched by the override file survive.
	if cfg.Screen.Width == 0 || len(cfg.Spawn.Types) == 0 {
		t.Error("override dropped unrelated defaults")
	}
}

// TestValidateRejections verifies configurations that would produce
// undefined behavior never load.
func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rows", func(c *Config) { c.Grid.Rows = 0 }},
		{"no seeds", func(c *Config) { c.Grid.Seeds = nil }},
		{"seed out of range", func(c *Config) { c.Grid.Seeds = [][2]int{{99, 0}} }},
		{"zero capacity", func(c *Config) { c.Grid.SlotCapacity = 0 }},
		{"no phases", func(c *Config) { c.Spawn.Phases = nil }},
		{"inverted delays", func(c *Config) { c.Spawn.Phases[0].MinDelay = 5; c.Spawn.Phases[0].MaxDelay = 1 }},
		{"no types", func(c *Config) { c.Spawn.Types = nil }},
		{"negative weight", func(c *Config) { c.Spawn.Types[0].Weight = -1 }},
		{"zero total weight", func(c *Config) {
			for i := range c.Spawn.Types {
				c.Spawn.Types[i].Weight = 0
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

// TestWriteYAMLRoundTrip verifies the config snapshot written alongside
// telemetry output reloads to the same values.
func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Grid.Rows != cfg.Grid.Rows || reloaded.Spawn.Types[0].Name != cfg.Spawn.Types[0].Name {
		t.Error("round trip changed values")
	}
}
