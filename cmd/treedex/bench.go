package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treedex/treedex/benchmarks"
	"github.com/treedex/treedex/internal/config"
	"github.com/treedex/treedex/internal/logging"
	"github.com/treedex/treedex/internal/workload"
)

// benchCmd handles the bench command.
func benchCmd(args []string) int {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	configPath := fs.String("config", "", "Configuration file path")
	fanout := fs.Int("fanout", 0, "Tree fanout")
	keys := fs.Int("keys", 0, "Keys loaded before the mixed phase")
	ops := fs.Int("ops", 0, "Operations in the mixed phase")
	seed := fs.Int64("seed", 0, "Workload seed")
	mix := fs.String("mix", "", "Workload mix: balanced, read-heavy, write-heavy")
	indexes := fs.String("indexes", "", "Comma-separated indexes: btree, bplustree, pebble")
	out := fs.String("out", "", "Report output directory")
	format := fs.String("format", "", "Report format: text, markdown, json")
	plot := fs.Bool("plot", false, "Write PNG charts next to the report")
	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printBenchUsage(os.Stdout)
		return 0
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	// Flags set on the command line win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fanout":
			cfg.Bench.Fanout = *fanout
		case "keys":
			cfg.Bench.Keys = *keys
		case "ops":
			cfg.Bench.Ops = *ops
		case "seed":
			cfg.Bench.Seed = *seed
		case "mix":
			cfg.Bench.Mix = *mix
		case "indexes":
			cfg.Bench.Indexes = splitList(*indexes)
		case "out":
			cfg.Bench.OutputDir = *out
		case "format":
			cfg.Bench.Format = *format
		case "plot":
			cfg.Bench.Plot = *plot
		}
	})
	applyEnvOverrides(cfg)

	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Configuration errors:")
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "  - %v\n", err)
		}
		return 1
	}

	if cfg.Bench.Format == "" {
		cfg.Bench.Format = "text"
	}

	mixSpec, ok := workload.MixByName(cfg.Bench.Mix)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mix %q\n", cfg.Bench.Mix)
		return 1
	}

	log := logging.New(cfg.Logging)
	defer log.Sync()

	fmt.Printf("Running benchmark...\n")
	fmt.Printf("  Indexes: %s\n", strings.Join(cfg.Bench.Indexes, ", "))
	fmt.Printf("  Fanout:  %d\n", cfg.Bench.Fanout)
	fmt.Printf("  Keys:    %d\n", cfg.Bench.Keys)
	fmt.Printf("  Ops:     %d\n", cfg.Bench.Ops)
	fmt.Printf("  Mix:     %s\n", mixSpec.Name)

	workDir, err := os.MkdirTemp("", "treedex-bench")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating work directory: %v\n", err)
		return 1
	}
	defer os.RemoveAll(workDir)

	cases := make([]benchmarks.Case, 0, len(cfg.Bench.Indexes))
	for _, name := range cfg.Bench.Indexes {
		cases = append(cases, benchmarks.Case{
			Index:  name,
			Fanout: cfg.Bench.Fanout,
			Keys:   cfg.Bench.Keys,
			Ops:    cfg.Bench.Ops,
			Seed:   cfg.Bench.Seed,
			Mix:    mixSpec,
		})
	}

	runner := benchmarks.NewRunner(log, workDir)
	results, err := runner.RunAll(cases)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Benchmark failed: %v\n", err)
		return 1
	}

	report := benchmarks.NewReport()
	report.AddResults(results)

	if err := os.MkdirAll(cfg.Bench.OutputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		return 1
	}
	path := filepath.Join(cfg.Bench.OutputDir, reportFilename(cfg.Bench.Format))
	if err := report.SaveReport(path, cfg.Bench.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		return 1
	}

	fmt.Printf("\n%s\n", report.Summary())
	fmt.Printf("Report written to %s\n", path)

	if cfg.Bench.Plot {
		if err := benchmarks.WritePlots(cfg.Bench.OutputDir, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing plots: %v\n", err)
			return 1
		}
		fmt.Printf("Charts written to %s\n", cfg.Bench.OutputDir)
	}

	return 0
}

// reportFilename maps a report format to its output file name.
func reportFilename(format string) string {
	switch format {
	case "markdown", "md":
		return "report.md"
	case "json":
		return "report.json"
	default:
		return "report.txt"
	}
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
