// Package bplustree implements an instrumented, in-memory B+ Tree index.
package bplustree

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/treedex/treedex/internal/metrics"
	"github.com/treedex/treedex/internal/trace"
)

// Fanout bounds accepted by New.
const (
	MinFanout = 3
	MaxFanout = 10
)

var (
	// ErrFanoutOutOfRange is returned by New when the requested fanout is
	// outside [MinFanout, MaxFanout].
	ErrFanoutOutOfRange = errors.New("bplustree: fanout out of range")
)

// Tree is an in-memory B+ Tree holding unique keys of type K. Every key
// lives in a leaf; internal nodes carry copied separators. The zero value
// is not usable, construct trees with New or NewWithInstruments.
type Tree[K cmp.Ordered] struct {
	fanout  int
	maxKeys int
	minKeys int

	root      *Node[K]
	firstLeaf *Node[K]
	size      int
	nextID    trace.NodeID

	rec *trace.Recorder[K]
	col *metrics.Collector
}

// New returns an empty tree with the given fanout and fresh instruments.
func New[K cmp.Ordered](fanout int) (*Tree[K], error) {
	return NewWithInstruments[K](fanout, trace.NewRecorder[K](), metrics.NewCollector())
}

// NewWithInstruments returns an empty tree wired to the caller's recorder
// and collector so several trees can share one instrument set. Nil
// instruments are replaced with fresh ones.
func NewWithInstruments[K cmp.Ordered](fanout int, rec *trace.Recorder[K], col *metrics.Collector) (*Tree[K], error) {
	if fanout < MinFanout || fanout > MaxFanout {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrFanoutOutOfRange, fanout, MinFanout, MaxFanout)
	}
	if rec == nil {
		rec = trace.NewRecorder[K]()
	}
	if col == nil {
		col = metrics.NewCollector()
	}
	t := &Tree[K]{
		fanout:  fanout,
		maxKeys: fanout - 1,
		minKeys: (fanout+1)/2 - 1,
		rec:     rec,
		col:     col,
	}
	t.root = t.newNode(true)
	t.firstLeaf = t.root
	return t, nil
}

func (t *Tree[K]) newNode(leaf bool) *Node[K] {
	n := &Node[K]{ID: t.nextID, Leaf: leaf}
	t.nextID++
	return n
}

// wrote ticks one logical write per mutated node.
func (t *Tree[K]) wrote(nodes ...*Node[K]) {
	for range nodes {
		t.col.CountWrite()
	}
}

// Fanout returns the order n the tree was built with.
func (t *Tree[K]) Fanout() int { return t.fanout }

// MaxKeys returns the per-node key capacity, fanout-1.
func (t *Tree[K]) MaxKeys() int { return t.maxKeys }

// MinKeys returns the occupancy floor for non-root nodes, ceil(fanout/2)-1.
func (t *Tree[K]) MinKeys() int { return t.minKeys }

// Len returns the number of keys stored in the tree.
func (t *Tree[K]) Len() int { return t.size }

// Root returns the current root node.
func (t *Tree[K]) Root() *Node[K] { return t.root }

// FirstLeaf returns the leftmost leaf, the head of the leaf chain.
func (t *Tree[K]) FirstLeaf() *Node[K] { return t.firstLeaf }

// Recorder returns the trace recorder the tree emits into.
func (t *Tree[K]) Recorder() *trace.Recorder[K] { return t.rec }

// Metrics returns the collector the tree ticks reads and writes on.
func (t *Tree[K]) Metrics() *metrics.Collector { return t.col }

// Height returns the number of levels, counting the root as 1. An empty
// tree is a lone leaf of height 1.
func (t *Tree[K]) Height() int {
	h := 1
	for n := t.root; !n.Leaf; n = n.Children[0] {
		h++
	}
	return h
}

// refreshFirstLeaf re-resolves the head of the leaf chain by walking the
// leftmost spine. Called after the root changes identity.
func (t *Tree[K]) refreshFirstLeaf() {
	n := t.root
	for !n.Leaf {
		n = n.Children[0]
	}
	t.firstLeaf = n
}

// Levels returns the key sets of every node, grouped by depth from the
// root down. Key slices are copies. Untracked by metrics.
func (t *Tree[K]) Levels() [][][]K {
	var levels [][][]K
	current := []*Node[K]{t.root}
	for len(current) > 0 {
		level := make([][]K, 0, len(current))
		var next []*Node[K]
		for _, n := range current {
			level = append(level, slices.Clone(n.Keys))
			next = append(next, n.Children...)
		}
		levels = append(levels, level)
		current = next
	}
	return levels
}

// AllNodes returns every node in breadth-first order. Untracked by metrics.
func (t *Tree[K]) AllNodes() []*Node[K] {
	nodes := []*Node[K]{t.root}
	for i := 0; i < len(nodes); i++ {
		nodes = append(nodes, nodes[i].Children...)
	}
	return nodes
}
