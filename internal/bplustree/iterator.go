// Package bplustree implements an instrumented, in-memory B+ Tree index.
package bplustree

import (
	"cmp"

	"github.com/treedex/treedex/internal/metrics"
)

// Iterator walks the leaf chain in ascending key order. Obtain one from
// Ascend or AscendRange, then alternate Next and Key:
//
//	it := tree.AscendRange(20, 50)
//	for it.Next() {
//		use(it.Key())
//	}
//
// An iterator is a snapshot-free cursor over live nodes; mutating the tree
// mid-walk invalidates it.
type Iterator[K cmp.Ordered] struct {
	col     *metrics.Collector
	node    *Node[K]
	idx     int
	hi      K
	bounded bool
	key     K
}

// Next advances to the next key and reports whether one exists. Stepping
// into a new leaf counts one read.
func (it *Iterator[K]) Next() bool {
	for it.node != nil {
		if it.idx >= len(it.node.Keys) {
			it.node = it.node.Next
			it.idx = 0
			if it.node != nil {
				it.col.CountRead()
			}
			continue
		}
		k := it.node.Keys[it.idx]
		if it.bounded && k > it.hi {
			it.node = nil
			return false
		}
		it.idx++
		it.key = k
		return true
	}
	return false
}

// Key returns the key Next advanced to. Valid only after Next returned
// true.
func (it *Iterator[K]) Key() K {
	return it.key
}

// Ascend returns an iterator over every key in ascending order, starting
// at the head of the leaf chain.
func (t *Tree[K]) Ascend() *Iterator[K] {
	t.col.CountRead()
	return &Iterator[K]{col: t.col, node: t.firstLeaf}
}

// AscendRange returns an iterator over the keys in [lo, hi], both bounds
// inclusive. It descends once to the leaf where lo would live and walks
// the chain from there, so leaves left of the range are never touched.
func (t *Tree[K]) AscendRange(lo, hi K) *Iterator[K] {
	leaf := t.findLeaf(lo)
	it := &Iterator[K]{col: t.col, node: leaf, hi: hi, bounded: true}
	for it.idx < len(leaf.Keys) && leaf.Keys[it.idx] < lo {
		it.idx++
	}
	return it
}

// RangeQuery collects the keys in [lo, hi] in ascending order. An empty or
// inverted range yields an empty result. The walk is untraced; the descent
// and every leaf visited count reads.
func (t *Tree[K]) RangeQuery(lo, hi K) []K {
	out := []K{}
	it := t.AscendRange(lo, hi)
	for it.Next() {
		out = append(out, it.Key())
	}
	return out
}

// SequentialScan returns every key in ascending order by walking the whole
// leaf chain. The walk is untraced; each leaf counts one read.
func (t *Tree[K]) SequentialScan() []K {
	out := make([]K, 0, t.size)
	it := t.Ascend()
	for it.Next() {
		out = append(out, it.Key())
	}
	return out
}
