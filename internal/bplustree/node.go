// Package bplustree implements an instrumented, in-memory B+ Tree index.
package bplustree

import (
	"cmp"

	"github.com/treedex/treedex/internal/trace"
)

// Node is a single B+ Tree node. Internal nodes carry separators and
// len(Keys)+1 children; leaves carry the actual key set and a Next link to
// the right neighbor at leaf level. The last leaf's Next is nil.
type Node[K cmp.Ordered] struct {
	ID       trace.NodeID
	Keys     []K
	Children []*Node[K]
	Next     *Node[K]
	Leaf     bool
}

// KeyCount returns the number of keys currently stored in the node.
func (n *Node[K]) KeyCount() int {
	return len(n.Keys)
}

// childIndex returns the index of the child subtree to descend into for
// key. Equal keys go right: the subtree after a separator holds keys
// greater than or equal to it.
func (n *Node[K]) childIndex(key K) int {
	i := 0
	for i < len(n.Keys) && key >= n.Keys[i] {
		i++
	}
	return i
}
