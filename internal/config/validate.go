// Package config provides configuration loading for the treedex tools.
package config

import (
	"fmt"

	"github.com/treedex/treedex/internal/btree"
	"github.com/treedex/treedex/internal/logging"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig validates the configuration and returns a list of
// validation errors. An empty slice indicates the configuration is valid.
func ValidateConfig(config *Config) []error {
	var errs []error
	errs = append(errs, validateLogging(&config.Logging)...)
	errs = append(errs, validateBench(&config.Bench)...)
	errs = append(errs, validateCheck(&config.Check)...)
	return errs
}

func validateLogging(cfg *logging.Config) []error {
	var errs []error
	switch cfg.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level %q", cfg.Level),
		})
	}
	switch cfg.Format {
	case "", "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q", cfg.Format),
		})
	}
	return errs
}

func validateBench(cfg *BenchConfig) []error {
	var errs []error
	if err := validateFanout(cfg.Fanout); err != nil {
		errs = append(errs, ValidationError{Field: "bench.fanout", Message: err.Error()})
	}
	if cfg.Keys <= 0 {
		errs = append(errs, ValidationError{Field: "bench.keys", Message: "must be positive"})
	}
	if cfg.Ops < 0 {
		errs = append(errs, ValidationError{Field: "bench.ops", Message: "must be non-negative"})
	}
	switch cfg.Mix {
	case "", "balanced", "read-heavy", "write-heavy":
	default:
		errs = append(errs, ValidationError{
			Field:   "bench.mix",
			Message: fmt.Sprintf("unknown mix %q", cfg.Mix),
		})
	}
	for _, name := range cfg.Indexes {
		switch name {
		case "btree", "bplustree", "pebble":
		default:
			errs = append(errs, ValidationError{
				Field:   "bench.indexes",
				Message: fmt.Sprintf("unknown index %q", name),
			})
		}
	}
	switch cfg.Format {
	case "", "text", "markdown", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "bench.format",
			Message: fmt.Sprintf("unknown report format %q", cfg.Format),
		})
	}
	return errs
}

func validateCheck(cfg *CheckConfig) []error {
	var errs []error
	if err := validateFanout(cfg.Fanout); err != nil {
		errs = append(errs, ValidationError{Field: "check.fanout", Message: err.Error()})
	}
	if cfg.Keys <= 0 {
		errs = append(errs, ValidationError{Field: "check.keys", Message: "must be positive"})
	}
	return errs
}

func validateFanout(fanout int) error {
	if fanout < btree.MinFanout || fanout > btree.MaxFanout {
		return fmt.Errorf("%d not in [%d, %d]", fanout, btree.MinFanout, btree.MaxFanout)
	}
	return nil
}
