// Package btree implements an instrumented, in-memory B-Tree index.
package btree

import (
	"cmp"

	"github.com/treedex/treedex/internal/trace"
)

// Node is a single B-Tree node. Keys are strictly ascending; an internal
// node has exactly len(Keys)+1 children. Fields are exported for read-only
// structural consumers such as the validator; mutating them outside this
// package breaks the tree.
type Node[K cmp.Ordered] struct {
	ID       trace.NodeID
	Keys     []K
	Children []*Node[K]
	Leaf     bool
}

// KeyCount returns the number of keys in the node.
func (n *Node[K]) KeyCount() int {
	return len(n.Keys)
}
