package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage information to the given writer.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `treedex - Instrumented B-Tree and B+-Tree index engine

Usage:
  treedex <command> [options]

Commands:
  shell       Interactive tree session with step tracing
  demo        Scripted walkthrough of both tree variants
  bench       Run the index benchmark suite
  check       Randomized soak against a model set
  config      Configuration management
  version     Show version information

Use "treedex <command> -h" for more information about a command.
`)
}

// printShellUsage prints the shell command usage.
func printShellUsage(w io.Writer) {
	fmt.Fprint(w, `Interactive tree session with step tracing

Usage:
  treedex shell [options]

Options:
  -variant string
        Tree variant: btree, bplustree (default "bplustree")
  -fanout int
        Tree fanout, between 3 and 10 (default 4)
  -h, -help
        Show this help message

The session reads commands from stdin; type "help" inside the shell
for the command list.
`)
}

// printDemoUsage prints the demo command usage.
func printDemoUsage(w io.Writer) {
	fmt.Fprint(w, `Scripted walkthrough of both tree variants

Usage:
  treedex demo [options]

Options:
  -h, -help
        Show this help message

Inserts a fixed key sequence into a fanout-3 B-Tree with the event log
printed after every step, then bulk-loads a fanout-4 B+-Tree and shows
range queries, deletes with rebalancing, and the leaf scan.
`)
}

// printBenchUsage prints the bench command usage.
func printBenchUsage(w io.Writer) {
	fmt.Fprint(w, `Run the index benchmark suite

Usage:
  treedex bench [options]

Options:
  -config string
        Path to configuration file
  -fanout int
        Tree fanout (overrides config)
  -keys int
        Keys loaded before the mixed phase (overrides config)
  -ops int
        Mixed-phase operations (overrides config)
  -seed int
        Workload seed (overrides config)
  -mix string
        Workload mix: balanced, read-heavy, write-heavy (overrides config)
  -indexes string
        Comma-separated indexes: btree, bplustree, pebble (overrides config)
  -out string
        Report output directory (overrides config, default "bench-out")
  -format string
        Report format: text, markdown, json (overrides config)
  -plot
        Also write PNG charts to the output directory
  -h, -help
        Show this help message

Environment Variables:
  TREEDEX_LOGGING_LEVEL    Override log level
  TREEDEX_LOGGING_FORMAT   Override log format
  TREEDEX_BENCH_OUTPUT_DIR Override report output directory
`)
}

// printCheckUsage prints the check command usage.
func printCheckUsage(w io.Writer) {
	fmt.Fprint(w, `Randomized soak against a model set

Usage:
  treedex check [options]

Options:
  -config string
        Path to configuration file
  -variant string
        Variant to soak: both, btree, bplustree (default "both")
  -fanout int
        Tree fanout (overrides config)
  -keys int
        Key pool size (overrides config)
  -seed int
        Soak seed (overrides config)
  -h, -help
        Show this help message

Mirrors random inserts and deletes against a model set, validating the
tree structure after every operation. Exits non-zero on the first
divergence.
`)
}

// printConfigUsage prints the config command usage.
func printConfigUsage(w io.Writer) {
	fmt.Fprint(w, `Configuration management

Usage:
  treedex config <subcommand> [options]

Subcommands:
  validate    Validate configuration file
  init        Generate default configuration
  show        Show effective configuration

Use "treedex config <subcommand> -h" for more information.
`)
}

// printVersionUsage prints the version command usage.
func printVersionUsage(w io.Writer) {
	fmt.Fprint(w, `Show version information

Usage:
  treedex version [options]

Options:
  -short
        Show only version number
  -h, -help
        Show this help message
`)
}
