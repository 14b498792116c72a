// Package config provides configuration loading for the treedex tools.
//
// # Overview
//
// Configuration is plain YAML with three sections: logging, bench, and
// check. Every field has a default, so a config file only needs the keys
// it wants to override.
//
// # Usage
//
// Load a file on top of the defaults:
//
//	cfg, err := config.Load("treedex.yaml")
//	if err != nil {
//	    return err
//	}
//
// Or start from the defaults directly:
//
//	cfg := config.DefaultConfig()
//
// # File format
//
//	logging:
//	  level: info
//	  format: text
//	  output: stderr
//
//	bench:
//	  fanout: 4
//	  keys: 10000
//	  ops: 50000
//	  seed: 42
//	  mix: balanced
//	  indexes: [btree, bplustree, pebble]
//	  outputDir: bench-out
//	  format: markdown
//	  plot: true
//
//	check:
//	  fanout: 3
//	  keys: 2000
//	  seed: 7
package config
