package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/gravity"
)

const (
	DefaultG        = 1e-4
	DefaultTheta    = 1.1
	DefaultEpsilon  = 0.05
	DefaultScale    = 1500.0
	DefaultTimeStep = 1.0
	DefaultStars    = 5000
	DefaultSteps    = 1000
)

// Config describes a full simulation run: the physics constants, the
// initial-condition spawner, and the run length. Values are fixed once
// the simulation is constructed.
type Config struct {
	G        float32 `yaml:"g"`
	Theta    float32 `yaml:"theta"`
	Epsilon  float32 `yaml:"epsilon"`
	Scale    float32 `yaml:"scale"`
	TimeStep float32 `yaml:"time_step"`

	Stars       int   `yaml:"stars"`
	Steps       int   `yaml:"steps"`
	Seed        int64 `yaml:"seed"`
	SampleEvery int   `yaml:"sample_every"`

	Spawner SpawnerConfig `yaml:"spawner"`
}

// SpawnerConfig selects and parameterizes the initial-condition
// generator.
type SpawnerConfig struct {
	Kind       string  `yaml:"kind"` // "field" or "galaxy"
	Extent     float32 `yaml:"extent"`
	Radius     float32 `yaml:"radius"`
	CenterMass float32 `yaml:"center_mass"`
	Alpha      float32 `yaml:"alpha"`
	MaxMass    float32 `yaml:"max_mass"`
}

func DefaultConfig() *Config {
	return &Config{
		G:           DefaultG,
		Theta:       DefaultTheta,
		Epsilon:     DefaultEpsilon,
		Scale:       DefaultScale,
		TimeStep:    DefaultTimeStep,
		Stars:       DefaultStars,
		Steps:       DefaultSteps,
		SampleEvery: 10,
		Spawner: SpawnerConfig{
			Kind:       "galaxy",
			Extent:     500,
			Radius:     500,
			CenterMass: 1e6,
			Alpha:      75,
			MaxMass:    500,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Theta < 0 {
		return fmt.Errorf("theta must be non-negative, got %f", c.Theta)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %f", c.Epsilon)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %f", c.Scale)
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("time_step must be positive, got %f", c.TimeStep)
	}
	if c.Stars < 0 {
		return fmt.Errorf("stars must be non-negative, got %d", c.Stars)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("sample_every must be positive, got %d", c.SampleEvery)
	}
	switch c.Spawner.Kind {
	case "field", "galaxy":
	default:
		return fmt.Errorf("unknown spawner: %q", c.Spawner.Kind)
	}
	return nil
}

// Params maps the configured constants onto the physics core. The
// bounding square is centered on the origin.
func (c *Config) Params() gravity.Params {
	return gravity.Params{
		G:        c.G,
		Theta:    c.Theta,
		Epsilon:  c.Epsilon,
		Origin:   gravity.Vec2{X: -c.Scale / 2, Y: -c.Scale / 2},
		Scale:    c.Scale,
		TimeStep: c.TimeStep,
	}
}
