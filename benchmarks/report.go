// Package benchmarks provides tools for running and reporting index benchmark results.
package benchmarks

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"
)

// Report represents a complete benchmark report.
type Report struct {
	Timestamp time.Time
	GoVersion string
	OS        string
	Arch      string
	Results   []CaseResult
}

// NewReport creates a new report stamped with the current time and the
// running toolchain's system information.
func NewReport() *Report {
	return &Report{
		Timestamp: time.Now(),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// AddResults adds case results to the report.
func (r *Report) AddResults(results []CaseResult) {
	r.Results = append(r.Results, results...)
}

// SetSystemInfo overrides the recorded system information.
func (r *Report) SetSystemInfo(goVersion, os, arch string) {
	r.GoVersion = goVersion
	r.OS = os
	r.Arch = arch
}

// byMix groups the results by workload mix. Mixes come back sorted and
// each group sorted by index name so renders are stable.
func (r *Report) byMix() ([]string, map[string][]CaseResult) {
	grouped := make(map[string][]CaseResult)
	for _, res := range r.Results {
		mix := res.Mix
		if mix == "" {
			mix = "unspecified"
		}
		grouped[mix] = append(grouped[mix], res)
	}

	mixes := make([]string, 0, len(grouped))
	for mix := range grouped {
		mixes = append(mixes, mix)
	}
	sort.Strings(mixes)

	for _, results := range grouped {
		sort.Slice(results, func(i, j int) bool {
			return results[i].Index < results[j].Index
		})
	}
	return mixes, grouped
}

// MixWinner names the index with the highest mixed-phase throughput for
// one workload mix.
type MixWinner struct {
	Mix       string
	Index     string
	OpsPerSec float64
}

// FastestByMix returns the fastest mixed-phase index per mix. Mixes
// whose results carry no timing are skipped.
func (r *Report) FastestByMix() []MixWinner {
	mixes, grouped := r.byMix()

	var winners []MixWinner
	for _, mix := range mixes {
		best := MixWinner{Mix: mix}
		for _, res := range grouped[mix] {
			if res.Ops == 0 || res.MixTime <= 0 {
				continue
			}
			rate := float64(res.Ops) / res.MixTime.Seconds()
			if rate > best.OpsPerSec {
				best.Index = res.Index
				best.OpsPerSec = rate
			}
		}
		if best.Index != "" {
			winners = append(winners, best)
		}
	}
	return winners
}

// GenerateTextReport generates a text report.
func (r *Report) GenerateTextReport(w io.Writer) error {
	fmt.Fprintf(w, "=== Treedex Index Benchmark Report ===\n\n")
	fmt.Fprintf(w, "Generated: %s\n", r.Timestamp.Format(time.RFC3339))
	if r.GoVersion != "" {
		fmt.Fprintf(w, "Go Version: %s\n", r.GoVersion)
	}
	if r.OS != "" && r.Arch != "" {
		fmt.Fprintf(w, "Platform: %s/%s\n", r.OS, r.Arch)
	}
	fmt.Fprintln(w)

	mixes, grouped := r.byMix()
	for _, mix := range mixes {
		fmt.Fprintf(w, "--- Mix: %s ---\n\n", mix)

		fmt.Fprintf(w, "%-12s %10s %10s %12s %12s %12s %12s %12s\n",
			"Index", "Keys", "Ops", "Load", "Mixed", "Scan", "Reads", "Writes")
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", 99))

		for _, res := range grouped[mix] {
			fmt.Fprintf(w, "%-12s %10d %10d %12s %12s %12s %12d %12d\n",
				res.Index,
				res.Keys,
				res.Ops,
				formatDuration(float64(res.LoadTime.Nanoseconds())),
				mixRate(res),
				scanCell(res),
				res.Reads,
				res.Writes)
		}
		fmt.Fprintln(w)
	}

	winners := r.FastestByMix()
	if len(winners) > 0 {
		fmt.Fprintln(w, "=== Fastest Mixed Phase ===")
		fmt.Fprintln(w)
		for _, winner := range winners {
			fmt.Fprintf(w, "%-28s %s (%s)\n",
				winner.Mix, winner.Index, formatOpsPerSec(winner.OpsPerSec))
		}
		fmt.Fprintln(w)
	}

	return nil
}

// GenerateMarkdownReport generates a Markdown report.
func (r *Report) GenerateMarkdownReport(w io.Writer) error {
	fmt.Fprintln(w, "# Treedex Index Benchmark Report")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Generated: %s\n\n", r.Timestamp.Format(time.RFC3339))

	if r.GoVersion != "" || r.OS != "" {
		fmt.Fprintln(w, "## System Information")
		fmt.Fprintln(w)
		if r.GoVersion != "" {
			fmt.Fprintf(w, "- Go Version: %s\n", r.GoVersion)
		}
		if r.OS != "" && r.Arch != "" {
			fmt.Fprintf(w, "- Platform: %s/%s\n", r.OS, r.Arch)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "## Results")
	fmt.Fprintln(w)

	mixes, grouped := r.byMix()
	for _, mix := range mixes {
		fmt.Fprintf(w, "### %s\n\n", mix)

		fmt.Fprintln(w, "| Index | Keys | Ops | Load | Mixed | Scan | Reads | Writes |")
		fmt.Fprintln(w, "|-------|------|-----|------|-------|------|-------|--------|")

		for _, res := range grouped[mix] {
			fmt.Fprintf(w, "| %s | %d | %d | %s | %s | %s | %d | %d |\n",
				res.Index,
				res.Keys,
				res.Ops,
				formatDuration(float64(res.LoadTime.Nanoseconds())),
				mixRate(res),
				scanCell(res),
				res.Reads,
				res.Writes)
		}
		fmt.Fprintln(w)
	}

	winners := r.FastestByMix()
	if len(winners) > 0 {
		fmt.Fprintln(w, "## Fastest Mixed Phase")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Mix | Index | Throughput |")
		fmt.Fprintln(w, "|-----|-------|------------|")
		for _, winner := range winners {
			fmt.Fprintf(w, "| %s | %s | %s |\n",
				winner.Mix, winner.Index, formatOpsPerSec(winner.OpsPerSec))
		}
		fmt.Fprintln(w)
	}

	return nil
}

// GenerateJSONReport generates a JSON report.
func (r *Report) GenerateJSONReport(w io.Writer) error {
	fmt.Fprintln(w, "{")
	fmt.Fprintf(w, "  \"timestamp\": \"%s\",\n", r.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(w, "  \"goVersion\": \"%s\",\n", r.GoVersion)
	fmt.Fprintf(w, "  \"os\": \"%s\",\n", r.OS)
	fmt.Fprintf(w, "  \"arch\": \"%s\",\n", r.Arch)
	fmt.Fprintln(w, "  \"results\": [")

	for i, res := range r.Results {
		comma := ","
		if i == len(r.Results)-1 {
			comma = ""
		}
		fmt.Fprintf(w, "    {\"index\": \"%s\", \"mix\": \"%s\", \"keys\": %d, \"ops\": %d, \"applied\": %d, \"loadNs\": %d, \"mixNs\": %d, \"scanNs\": %d, \"scanKeys\": %d, \"reads\": %d, \"writes\": %d}%s\n",
			res.Index,
			res.Mix,
			res.Keys,
			res.Ops,
			res.Applied,
			res.LoadTime.Nanoseconds(),
			res.MixTime.Nanoseconds(),
			res.ScanTime.Nanoseconds(),
			res.ScanKeys,
			res.Reads,
			res.Writes,
			comma)
	}

	fmt.Fprintln(w, "  ]")
	fmt.Fprintln(w, "}")

	return nil
}

// SaveReport saves the report to a file.
func (r *Report) SaveReport(filename string, format string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	switch format {
	case "text", "txt":
		return r.GenerateTextReport(f)
	case "markdown", "md":
		return r.GenerateMarkdownReport(f)
	case "json":
		return r.GenerateJSONReport(f)
	default:
		return fmt.Errorf("unknown report format: %s", format)
	}
}

// Summary returns a summary of the benchmark results.
func (r *Report) Summary() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total cases: %d\n", len(r.Results)))

	var totalOps int
	var totalMix time.Duration
	for _, res := range r.Results {
		totalOps += res.Ops
		totalMix += res.MixTime
	}
	if totalMix > 0 {
		rate := float64(totalOps) / totalMix.Seconds()
		sb.WriteString(fmt.Sprintf("Aggregate mixed throughput: %s\n", formatOpsPerSec(rate)))
	}

	for _, winner := range r.FastestByMix() {
		sb.WriteString(fmt.Sprintf("Fastest for %s: %s (%s)\n",
			winner.Mix, winner.Index, formatOpsPerSec(winner.OpsPerSec)))
	}

	return sb.String()
}

// Helper functions

func mixRate(res CaseResult) string {
	if res.Ops == 0 || res.MixTime <= 0 {
		return "-"
	}
	return formatOpsPerSec(float64(res.Ops) / res.MixTime.Seconds())
}

func scanCell(res CaseResult) string {
	if res.ScanKeys < 0 {
		return "-"
	}
	return formatDuration(float64(res.ScanTime.Nanoseconds()))
}

func formatDuration(ns float64) string {
	if ns < 1000 {
		return fmt.Sprintf("%.2f ns", ns)
	} else if ns < 1000000 {
		return fmt.Sprintf("%.2f us", ns/1000)
	} else if ns < 1000000000 {
		return fmt.Sprintf("%.2f ms", ns/1000000)
	}
	return fmt.Sprintf("%.2f s", ns/1000000000)
}

func formatOpsPerSec(ops float64) string {
	if ops >= 1000000 {
		return fmt.Sprintf("%.2fM/s", ops/1000000)
	} else if ops >= 1000 {
		return fmt.Sprintf("%.2fK/s", ops/1000)
	}
	return fmt.Sprintf("%.2f/s", ops)
}
