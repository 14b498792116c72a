// Package btree implements an instrumented, in-memory B-Tree index.
package btree

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/treedex/treedex/internal/metrics"
	"github.com/treedex/treedex/internal/trace"
)

// Fanout bounds. The fanout is the maximum number of children of a node.
const (
	MinFanout = 3
	MaxFanout = 10
)

var (
	ErrFanoutOutOfRange = errors.New("btree: fanout out of range")
)

// Tree is an in-memory B-Tree over keys of type K. Create one with New or
// NewWithInstruments.
type Tree[K cmp.Ordered] struct {
	fanout  int
	maxKeys int
	minKeys int

	root   *Node[K]
	size   int
	nextID trace.NodeID

	rec *trace.Recorder[K]
	col *metrics.Collector
}

// New creates an empty tree with the given fanout and fresh instruments.
func New[K cmp.Ordered](fanout int) (*Tree[K], error) {
	return NewWithInstruments[K](fanout, trace.NewRecorder[K](), metrics.NewCollector())
}

// NewWithInstruments creates an empty tree that reports into the given
// recorder and collector. Nil instruments are replaced with fresh ones.
// The fanout must lie in [MinFanout, MaxFanout].
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
	return t, nil
}

// newNode allocates a node with the next per-tree id. The root of a fresh
// tree gets id 0.
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

// Fanout returns the configured fanout.
func (t *Tree[K]) Fanout() int { return t.fanout }

// MaxKeys returns the per-node key capacity (fanout-1).
func (t *Tree[K]) MaxKeys() int { return t.maxKeys }

// MinKeys returns the non-root occupancy floor (ceil(fanout/2)-1).
func (t *Tree[K]) MinKeys() int { return t.minKeys }

// Len returns the number of keys currently stored.
func (t *Tree[K]) Len() int { return t.size }

// Root returns the root node for structural consumers.
func (t *Tree[K]) Root() *Node[K] { return t.root }

// Recorder returns the trace recorder the tree emits into.
func (t *Tree[K]) Recorder() *trace.Recorder[K] { return t.rec }

// Metrics returns the collector the tree ticks.
func (t *Tree[K]) Metrics() *metrics.Collector { return t.col }

// Height returns the number of levels. An empty tree has height 1.
func (t *Tree[K]) Height() int {
	h := 1
	for n := t.root; !n.Leaf; n = n.Children[0] {
		h++
	}
	return h
}

// Levels returns every node's keys grouped by depth, breadth-first within
// each level. Intended for renderers; no instrumentation ticks.
func (t *Tree[K]) Levels() [][][]K {
	var out [][][]K
	level := []*Node[K]{t.root}
	for len(level) > 0 {
		keys := make([][]K, 0, len(level))
		var next []*Node[K]
		for _, n := range level {
			keys = append(keys, slices.Clone(n.Keys))
			next = append(next, n.Children...)
		}
		out = append(out, keys)
		level = next
	}
	return out
}

// AllNodes returns every node in breadth-first order, root first.
func (t *Tree[K]) AllNodes() []*Node[K] {
	nodes := []*Node[K]{t.root}
	for i := 0; i < len(nodes); i++ {
		nodes = append(nodes, nodes[i].Children...)
	}
	return nodes
}
