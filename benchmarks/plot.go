// Package benchmarks provides tools for running and reporting index benchmark results.
package benchmarks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// WritePlots renders the results as PNG charts under dir. It produces
// throughput.png for the mixed phase and, when at least one result
// carries logical I/O counters, io.png for reads and writes.
func WritePlots(dir string, results []CaseResult) error {
	if len(results) == 0 {
		return errors.New("benchmarks: no results to plot")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("benchmarks: plot dir: %w", err)
	}
	if err := plotThroughput(filepath.Join(dir, "throughput.png"), results); err != nil {
		return err
	}
	return plotLogicalIO(filepath.Join(dir, "io.png"), results)
}

// caseLabel keeps axis labels short: the index name plus the first word
// of the mix name.
func caseLabel(res CaseResult) string {
	mix := res.Mix
	if i := strings.IndexByte(mix, ' '); i > 0 {
		mix = mix[:i]
	}
	if mix == "" {
		return res.Index
	}
	return res.Index + "/" + mix
}

func plotThroughput(path string, results []CaseResult) error {
	p := plot.New()
	p.Title.Text = "Mixed Workload Throughput"
	p.Y.Label.Text = "operations per second"

	vals := make(plotter.Values, len(results))
	labels := make([]string, len(results))
	for i, res := range results {
		if res.MixTime > 0 {
			vals[i] = float64(res.Ops) / res.MixTime.Seconds()
		}
		labels[i] = caseLabel(res)
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(28))
	if err != nil {
		return fmt.Errorf("benchmarks: throughput chart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("benchmarks: save %s: %w", path, err)
	}
	return nil
}

func plotLogicalIO(path string, results []CaseResult) error {
	var rows []CaseResult
	for _, res := range results {
		if res.Reads > 0 || res.Writes > 0 {
			rows = append(rows, res)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	p := plot.New()
	p.Title.Text = "Logical Node I/O"
	p.Y.Label.Text = "node accesses"

	reads := make(plotter.Values, len(rows))
	writes := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, res := range rows {
		reads[i] = float64(res.Reads)
		writes[i] = float64(res.Writes)
		labels[i] = caseLabel(res)
	}

	width := vg.Points(14)

	readBars, err := plotter.NewBarChart(reads, width)
	if err != nil {
		return fmt.Errorf("benchmarks: io chart: %w", err)
	}
	readBars.Color = plotutil.Color(1)
	readBars.Offset = -width / 2

	writeBars, err := plotter.NewBarChart(writes, width)
	if err != nil {
		return fmt.Errorf("benchmarks: io chart: %w", err)
	}
	writeBars.Color = plotutil.Color(2)
	writeBars.Offset = width / 2

	p.Add(readBars, writeBars)
	p.Legend.Add("reads", readBars)
	p.Legend.Add("writes", writeBars)
	p.Legend.Top = true
	p.NominalX(labels...)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("benchmarks: save %s: %w", path, err)
	}
	return nil
}
