// Package workload generates deterministic key sets and drives batches of
// tree operations, reporting wall-clock time and the logical I/O consumed.
// Both tree variants satisfy the Tree interface, so the same workload can
// be replayed against either and the costs compared.
package workload

import (
	"cmp"
	"math/rand"
	"time"

	"github.com/treedex/treedex/internal/metrics"
)

// Tree is the operation surface a workload drives. Both *btree.Tree[K]
// and *bplustree.Tree[K] satisfy it.
type Tree[K cmp.Ordered] interface {
	Insert(key K) bool
	Delete(key K) bool
	Contains(key K) bool
	Len() int
	Metrics() *metrics.Collector
}

// Result summarizes one driven batch.
type Result struct {
	Elapsed time.Duration
	Reads   uint64
	Writes  uint64
	Applied int
}

// Mix describes an operation distribution in percent. Searches and inserts
// take their shares; deletes take the remainder.
type Mix struct {
	Name          string
	SearchPercent int
	InsertPercent int
}

// Stock mixes, named after the access pattern they model.
var (
	ReadHeavy  = Mix{Name: "read-heavy (90/5/5)", SearchPercent: 90, InsertPercent: 5}
	WriteHeavy = Mix{Name: "write-heavy (10/60/30)", SearchPercent: 10, InsertPercent: 60}
	Balanced   = Mix{Name: "balanced (50/25/25)", SearchPercent: 50, InsertPercent: 25}
)

// MixByName maps the configuration names to the stock mixes. The empty
// name means Balanced.
func MixByName(name string) (Mix, bool) {
	switch name {
	case "read-heavy":
		return ReadHeavy, true
	case "write-heavy":
		return WriteHeavy, true
	case "", "balanced":
		return Balanced, true
	}
	return Mix{}, false
}

// UniqueInts returns n distinct ints drawn from [0, 10n) in shuffled
// order. The same seed always yields the same slice.
func UniqueInts(n int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	return rng.Perm(10 * n)[:n]
}

// RandomStrings returns n distinct lowercase strings of the given length.
// The same seed always yields the same slice.
func RandomStrings(n, length int, seed int64) []string {
	rng := rand.New(rand.NewSource(seed))
	seen := make(map[string]bool, n)
	out := make([]string, 0, n)
	buf := make([]byte, length)
	for len(out) < n {
		for i := range buf {
			buf[i] = byte('a' + rng.Intn(26))
		}
		s := string(buf)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Choose returns a uniformly random element of items.
func Choose[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// BatchInsert inserts every key in order and reports elapsed time, the
// logical I/O delta, and how many inserts actually took.
func BatchInsert[K cmp.Ordered](tree Tree[K], keys []K) Result {
	before := tree.Metrics().Snapshot()
	start := time.Now()
	applied := 0
	for _, k := range keys {
		if tree.Insert(k) {
			applied++
		}
	}
	return result(tree, before, start, applied)
}

// BatchDelete deletes every key in order and reports elapsed time, the
// logical I/O delta, and how many deletes actually took.
func BatchDelete[K cmp.Ordered](tree Tree[K], keys []K) Result {
	before := tree.Metrics().Snapshot()
	start := time.Now()
	applied := 0
	for _, k := range keys {
		if tree.Delete(k) {
			applied++
		}
	}
	return result(tree, before, start, applied)
}

// RunMix drives ops random operations drawn from the mix, with keys picked
// uniformly from the given pool. Applied counts the mutations that took
// effect; membership probes never count. The same seed replays the same
// operation sequence.
func RunMix[K cmp.Ordered](tree Tree[K], keys []K, mix Mix, ops int, seed int64) Result {
	rng := rand.New(rand.NewSource(seed))
	before := tree.Metrics().Snapshot()
	start := time.Now()
	applied := 0
	for i := 0; i < ops; i++ {
		choice := rng.Intn(100)
		key := Choose(rng, keys)
		switch {
		case choice < mix.SearchPercent:
			tree.Contains(key)
		case choice < mix.SearchPercent+mix.InsertPercent:
			if tree.Insert(key) {
				applied++
			}
		default:
			if tree.Delete(key) {
				applied++
			}
		}
	}
	return result(tree, before, start, applied)
}

func result[K cmp.Ordered](tree Tree[K], before metrics.Snapshot, start time.Time, applied int) Result {
	delta := tree.Metrics().Snapshot().Sub(before)
	return Result{
		Elapsed: time.Since(start),
		Reads:   delta.Reads,
		Writes:  delta.Writes,
		Applied: applied,
	}
}
