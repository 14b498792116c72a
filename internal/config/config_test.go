// Package config provides configuration loading for the treedex tools.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "treedex.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if errs := ValidateConfig(DefaultConfig()); len(errs) != 0 {
		t.Fatalf("default config invalid: %v", errs)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
bench:
  fanout: 7
  mix: read-heavy
  indexes: [btree, pebble]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Bench.Fanout != 7 {
		t.Errorf("Bench.Fanout = %d, want 7", cfg.Bench.Fanout)
	}
	if cfg.Bench.Mix != "read-heavy" {
		t.Errorf("Bench.Mix = %q, want read-heavy", cfg.Bench.Mix)
	}
	if len(cfg.Bench.Indexes) != 2 {
		t.Errorf("Bench.Indexes = %v, want [btree pebble]", cfg.Bench.Indexes)
	}

	// Untouched keys keep their defaults.
	if cfg.Bench.Keys != 10000 {
		t.Errorf("Bench.Keys = %d, want default 10000", cfg.Bench.Keys)
	}
	if cfg.Check.Fanout != 3 {
		t.Errorf("Check.Fanout = %d, want default 3", cfg.Check.Fanout)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want default text", cfg.Logging.Format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "bench: [not: a: mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("Load of malformed YAML succeeded")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
bench:
  fanout: 2
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load accepted fanout 2")
	}
	if !strings.Contains(err.Error(), "bench.fanout") {
		t.Errorf("error %q does not name the offending field", err)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"fanout too small", func(c *Config) { c.Bench.Fanout = 2 }, "bench.fanout"},
		{"fanout too large", func(c *Config) { c.Bench.Fanout = 11 }, "bench.fanout"},
		{"keys zero", func(c *Config) { c.Bench.Keys = 0 }, "bench.keys"},
		{"ops negative", func(c *Config) { c.Bench.Ops = -1 }, "bench.ops"},
		{"unknown mix", func(c *Config) { c.Bench.Mix = "chaotic" }, "bench.mix"},
		{"unknown index", func(c *Config) { c.Bench.Indexes = []string{"skiplist"} }, "bench.indexes"},
		{"unknown report format", func(c *Config) { c.Bench.Format = "xml" }, "bench.format"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"unknown log format", func(c *Config) { c.Logging.Format = "csv" }, "logging.format"},
		{"check fanout", func(c *Config) { c.Check.Fanout = 0 }, "check.fanout"},
		{"check keys", func(c *Config) { c.Check.Keys = -5 }, "check.keys"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			errs := ValidateConfig(cfg)
			if len(errs) == 0 {
				t.Fatal("validation passed on an invalid config")
			}
			found := false
			for _, err := range errs {
				if strings.Contains(err.Error(), tt.field) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention %s", errs, tt.field)
			}
		})
	}
}

func TestValidationErrorString(t *testing.T) {
	err := ValidationError{Field: "bench.mix", Message: `unknown mix "x"`}
	if got := err.Error(); got != `bench.mix: unknown mix "x"` {
		t.Errorf("Error() = %q", got)
	}
}
