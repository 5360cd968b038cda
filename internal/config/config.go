package config

import (
	"fmt"
	"os"

	"github.com/san-kum/fracsim/internal/fractal"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPalette = "classic"
	DefaultFormat  = "png"
	DefaultOutput  = "fractal.png"
	DefaultScale   = 0.0
	DefaultSize    = 3
)

// Config is the on-disk form of a render request.
type Config struct {
	Settings      Settings     `yaml:"settings"`
	MaxIterations int          `yaml:"max_iterations"`
	Palette       string       `yaml:"palette"`
	Seed          int64        `yaml:"seed"`
	Output        OutputConfig `yaml:"output"`
}

// OutputConfig selects the surface. A zero Scale fits one raster pixel to
// each rendered pixel.
type OutputConfig struct {
	Format string  `yaml:"format"`
	Path   string  `yaml:"path"`
	Scale  float64 `yaml:"scale"`
}

func DefaultConfig() *Config {
	return &Config{
		Settings:      DefaultSettings(),
		MaxIterations: fractal.MaxIterations,
		Palette:       DefaultPalette,
		Output: OutputConfig{
			Format: DefaultFormat,
			Path:   DefaultOutput,
			Scale:  DefaultScale,
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
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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
	if c.MaxIterations <= 0 {
		return fractal.ErrInvalidIterations
	}
	if c.Output.Scale < 0 {
		return fmt.Errorf("output scale must not be negative, got %g", c.Output.Scale)
	}
	return c.Settings.Validate()
}
