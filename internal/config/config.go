// Package config provides configuration loading for the treedex tools.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/treedex/treedex/internal/logging"
)

// Config holds the complete tool configuration.
type Config struct {
	Logging logging.Config `yaml:"logging"`
	Bench   BenchConfig    `yaml:"bench"`
	Check   CheckConfig    `yaml:"check"`
}

// BenchConfig holds benchmark run configuration.
type BenchConfig struct {
	Fanout    int      `yaml:"fanout"`
	Keys      int      `yaml:"keys"`
	Ops       int      `yaml:"ops"`
	Seed      int64    `yaml:"seed"`
	Mix       string   `yaml:"mix"`
	Indexes   []string `yaml:"indexes"`
	OutputDir string   `yaml:"outputDir"`
	Format    string   `yaml:"format"`
	Plot      bool     `yaml:"plot"`
}

// CheckConfig holds structural check configuration.
type CheckConfig struct {
	Fanout int   `yaml:"fanout"`
	Keys   int   `yaml:"keys"`
	Seed   int64 `yaml:"seed"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Logging: logging.Config{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Bench: BenchConfig{
			Fanout:    4,
			Keys:      10000,
			Ops:       50000,
			Seed:      42,
			Mix:       "balanced",
			Indexes:   []string{"btree", "bplustree", "pebble"},
			OutputDir: "bench-out",
			Format:    "text",
			Plot:      false,
		},
		Check: CheckConfig{
			Fanout: 3,
			Keys:   2000,
			Seed:   7,
		},
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
// Keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if errs := ValidateConfig(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("config: invalid %s: %w", path, errors.Join(errs...))
	}
	return cfg, nil
}
