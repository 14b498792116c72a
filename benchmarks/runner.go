// Package benchmarks provides tools for running and reporting index benchmark results.
package benchmarks

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/treedex/treedex/internal/logging"
	"github.com/treedex/treedex/internal/metrics"
	"github.com/treedex/treedex/internal/workload"
)

// scanWindows is how many range scans the scan phase issues per case.
const scanWindows = 10

// Case describes one benchmark configuration: which index to drive, how
// it is shaped, and how much work to push through it.
type Case struct {
	Index  string // btree, bplustree or pebble
	Fanout int
	Keys   int
	Ops    int
	Seed   int64
	Mix    workload.Mix
}

// CaseResult holds the measurements of a single finished case. Applied
// counts the mixed-phase mutations that took effect; probes never
// count. ScanKeys is negative when the index has no ordered access.
// Reads and Writes stay zero for indexes that do not count logical
// node I/O.
type CaseResult struct {
	Index    string
	Mix      string
	Keys     int
	Ops      int
	Applied  int
	LoadTime time.Duration
	MixTime  time.Duration
	ScanTime time.Duration
	ScanKeys int
	Reads    uint64
	Writes   uint64
}

// Runner executes benchmark cases and collects their results.
type Runner struct {
	log     logging.Logger
	workDir string
}

// NewRunner returns a Runner placing on-disk index files under workDir.
func NewRunner(log logging.Logger, workDir string) *Runner {
	return &Runner{log: log, workDir: workDir}
}

func (r *Runner) openIndex(c Case) (Index, error) {
	switch c.Index {
	case "btree":
		return NewBTreeIndex(c.Fanout)
	case "bplustree":
		return NewBPlusTreeIndex(c.Fanout)
	case "pebble":
		dir := filepath.Join(r.workDir, fmt.Sprintf("pebble-%d", time.Now().UnixNano()))
		return NewPebbleIndex(dir)
	default:
		return nil, fmt.Errorf("benchmarks: unknown index %q", c.Index)
	}
}

// Run loads a fresh index with c.Keys unique keys, pushes c.Ops mixed
// operations through it, then issues a handful of range scans where the
// index supports them.
func (r *Runner) Run(c Case) (CaseResult, error) {
	idx, err := r.openIndex(c)
	if err != nil {
		return CaseResult{}, err
	}
	defer idx.Close()

	res := CaseResult{
		Index:    idx.Name(),
		Mix:      c.Mix.Name,
		Keys:     c.Keys,
		Ops:      c.Ops,
		ScanKeys: -1,
	}

	var before metrics.Snapshot
	if ins, ok := idx.(Instrumented); ok {
		before = ins.IOSnapshot()
	}

	keys := workload.UniqueInts(c.Keys, c.Seed)
	r.log.Info("loading index", "index", res.Index, "keys", c.Keys, "fanout", c.Fanout)

	start := time.Now()
	for _, k := range keys {
		idx.Insert(int64(k))
	}
	res.LoadTime = time.Since(start)

	// Draw from the same space UniqueInts fills a tenth of, so hits
	// and misses both occur.
	limit := 10 * c.Keys
	rng := rand.New(rand.NewSource(c.Seed))

	start = time.Now()
	for i := 0; i < c.Ops; i++ {
		k := int64(rng.Intn(limit))
		switch choice := rng.Intn(100); {
		case choice < c.Mix.SearchPercent:
			idx.Search(k)
		case choice < c.Mix.SearchPercent+c.Mix.InsertPercent:
			if idx.Insert(k) {
				res.Applied++
			}
		default:
			if idx.Delete(k) {
				res.Applied++
			}
		}
	}
	res.MixTime = time.Since(start)

	if sc, ok := idx.(RangeScanner); ok {
		res.ScanKeys = 0
		width := int64(limit / scanWindows)
		if width < 1 {
			width = 1
		}
		start = time.Now()
		for i := 0; i < scanWindows; i++ {
			lo := int64(rng.Intn(limit))
			res.ScanKeys += sc.Scan(lo, lo+width)
		}
		res.ScanTime = time.Since(start)
	}

	if ins, ok := idx.(Instrumented); ok {
		delta := ins.IOSnapshot().Sub(before)
		res.Reads = delta.Reads
		res.Writes = delta.Writes
	}

	r.log.Info("case finished",
		"index", res.Index,
		"mix", res.Mix,
		"load", res.LoadTime,
		"mixed", res.MixTime,
		"applied", res.Applied,
		"reads", res.Reads,
		"writes", res.Writes,
	)
	return res, nil
}

// RunAll executes every case in order, giving up on the first failure.
func (r *Runner) RunAll(cases []Case) ([]CaseResult, error) {
	results := make([]CaseResult, 0, len(cases))
	for _, c := range cases {
		res, err := r.Run(c)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
