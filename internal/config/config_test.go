package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Theta <= 0 {
		t.Error("theta should be positive")
	}
	if cfg.Scale <= 0 {
		t.Error("scale should be positive")
	}
}

func TestParamsCenteredOnOrigin(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.Params()

	if p.Origin.X != -cfg.Scale/2 || p.Origin.Y != -cfg.Scale/2 {
		t.Errorf("origin %v, want centered bounding square", p.Origin)
	}
	if p.Scale != cfg.Scale || p.G != cfg.G || p.Theta != cfg.Theta {
		t.Error("params do not mirror config constants")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative theta", func(c *Config) { c.Theta = -1 }},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }},
		{"zero scale", func(c *Config) { c.Scale = 0 }},
		{"zero time step", func(c *Config) { c.TimeStep = 0 }},
		{"negative stars", func(c *Config) { c.Stars = -1 }},
		{"zero sample interval", func(c *Config) { c.SampleEvery = 0 }},
		{"negative sample interval", func(c *Config) { c.SampleEvery = -5 }},
		{"unknown spawner", func(c *Config) { c.Spawner.Kind = "wormhole" }},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Theta = 1.25
	cfg.Stars = 123
	cfg.Spawner.Kind = "field"
	cfg.Spawner.Extent = 800

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *cfg {
		t.Fatalf("round trip changed config:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadRejectsZeroSampleInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("sample_every: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for a zero sample interval")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("galaxy")
	if cfg == nil {
		t.Fatal("expected galaxy preset")
	}
	if cfg.Spawner.Kind != "galaxy" {
		t.Errorf("galaxy preset spawns %q", cfg.Spawner.Kind)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("galaxy preset invalid: %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestAllPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}
