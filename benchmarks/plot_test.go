// Package benchmarks provides tools for running and reporting index benchmark results.
package benchmarks

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWritePlots(t *testing.T) {
	dir := t.TempDir()

	if err := WritePlots(dir, sampleResults()); err != nil {
		t.Fatalf("WritePlots failed: %v", err)
	}

	for _, name := range []string{"throughput.png", "io.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("Expected %s: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestWritePlotsNoResults(t *testing.T) {
	if err := WritePlots(t.TempDir(), nil); err == nil {
		t.Error("Expected error for empty results")
	}
}

func TestWritePlotsSkipsIOChartWithoutCounters(t *testing.T) {
	dir := t.TempDir()

	results := []CaseResult{
		{Index: "pebble", Mix: "balanced (50/25/25)", Ops: 1000, MixTime: 5 * time.Millisecond},
	}
	if err := WritePlots(dir, results); err != nil {
		t.Fatalf("WritePlots failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "throughput.png")); err != nil {
		t.Fatalf("Expected throughput.png: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "io.png")); !os.IsNotExist(err) {
		t.Errorf("Expected no io.png without I/O counters, got err %v", err)
	}
}

func TestCaseLabel(t *testing.T) {
	cases := []struct {
		res  CaseResult
		want string
	}{
		{CaseResult{Index: "btree", Mix: "balanced (50/25/25)"}, "btree/balanced"},
		{CaseResult{Index: "pebble", Mix: "read-heavy (90/5/5)"}, "pebble/read-heavy"},
		{CaseResult{Index: "btree"}, "btree"},
	}
	for _, tc := range cases {
		if got := caseLabel(tc.res); got != tc.want {
			t.Errorf("caseLabel(%+v) = %q, want %q", tc.res, got, tc.want)
		}
	}
}
