// Package logging provides structured logging for treedex.
//
// # Overview
//
// The package is a thin facade over zap. It exposes a small Logger
// interface so the rest of the code never imports zap directly, with:
//
//   - Four levels (debug, info, warn, error)
//   - Console and JSON output formats
//   - Field-based contextual logging
//
// # Creating a Logger
//
// Create a logger with configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stderr",
//	})
//
// Or use defaults:
//
//	logger := logging.NewDefault() // Info level, console format, stdout
//
// For testing, use a no-op logger:
//
//	logger := logging.NewNop()
//
// # Structured Logging
//
// Add key-value pairs to log entries:
//
//	logger.Info("bench case finished",
//	    "index", "bplustree",
//	    "ops", 100000,
//	    "reads", 412733,
//	)
//
// # Contextual Fields
//
// Create loggers with persistent fields:
//
//	benchLogger := logger.WithFields("suite", "mixed", "fanout", 4)
//	benchLogger.Info("case started") // includes suite and fanout
//
// # Output Destinations
//
//	logging.Config{Output: "stdout"}          // Standard output
//	logging.Config{Output: "stderr"}          // Standard error
//	logging.Config{Output: "/tmp/treedex.log"} // File path
package logging
