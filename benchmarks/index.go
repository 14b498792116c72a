// Package benchmarks provides tools for running and reporting index benchmark results.
package benchmarks

import (
	"fmt"

	"github.com/treedex/treedex/internal/bplustree"
	"github.com/treedex/treedex/internal/btree"
	"github.com/treedex/treedex/internal/metrics"
)

// Index is the minimal surface a benchmark case drives. Keys are int64
// so the in-memory trees and the on-disk baseline see the same workload.
type Index interface {
	Name() string
	Insert(key int64) bool
	Search(key int64) bool
	Delete(key int64) bool
	Close() error
}

// RangeScanner is implemented by indexes with ordered key access. Scan
// visits every key in [lo, hi] and returns how many it saw.
type RangeScanner interface {
	Scan(lo, hi int64) int
}

// Instrumented is implemented by indexes that count logical node I/O.
type Instrumented interface {
	IOSnapshot() metrics.Snapshot
}

type btreeIndex struct {
	tree *btree.Tree[int64]
}

// NewBTreeIndex returns an Index backed by an in-memory B-Tree of the
// given fanout. Tracing is disabled so long runs do not accumulate
// event slices.
func NewBTreeIndex(fanout int) (Index, error) {
	t, err := btree.New[int64](fanout)
	if err != nil {
		return nil, fmt.Errorf("benchmarks: btree index: %w", err)
	}
	t.Recorder().Disable()
	return &btreeIndex{tree: t}, nil
}

func (b *btreeIndex) Name() string          { return "btree" }
func (b *btreeIndex) Insert(key int64) bool { return b.tree.Insert(key) }
func (b *btreeIndex) Search(key int64) bool { return b.tree.Contains(key) }
func (b *btreeIndex) Delete(key int64) bool { return b.tree.Delete(key) }
func (b *btreeIndex) Close() error          { return nil }

func (b *btreeIndex) IOSnapshot() metrics.Snapshot { return b.tree.Metrics().Snapshot() }

type bplusIndex struct {
	tree *bplustree.Tree[int64]
}

// NewBPlusTreeIndex returns an Index backed by an in-memory B+-Tree of
// the given fanout, with tracing disabled like NewBTreeIndex.
func NewBPlusTreeIndex(fanout int) (Index, error) {
	t, err := bplustree.New[int64](fanout)
	if err != nil {
		return nil, fmt.Errorf("benchmarks: bplustree index: %w", err)
	}
	t.Recorder().Disable()
	return &bplusIndex{tree: t}, nil
}

func (b *bplusIndex) Name() string          { return "bplustree" }
func (b *bplusIndex) Insert(key int64) bool { return b.tree.Insert(key) }
func (b *bplusIndex) Search(key int64) bool { return b.tree.Contains(key) }
func (b *bplusIndex) Delete(key int64) bool { return b.tree.Delete(key) }
func (b *bplusIndex) Close() error          { return nil }

// Scan walks the leaf chain without materializing the result slice.
func (b *bplusIndex) Scan(lo, hi int64) int {
	it := b.tree.AscendRange(lo, hi)
	n := 0
	for it.Next() {
		n++
	}
	return n
}

func (b *bplusIndex) IOSnapshot() metrics.Snapshot { return b.tree.Metrics().Snapshot() }
