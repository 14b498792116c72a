// Package bplustree implements an instrumented, in-memory B+ Tree index.
package bplustree

import (
	"slices"

	"github.com/treedex/treedex/internal/trace"
)

// SearchResult describes the outcome of a Search. NodeID and Index locate
// the key inside the leaf that holds it; on a miss Index is -1 and NodeID
// is the leaf where the key would live. Path lists every node visited from
// the root down, always ending at a leaf.
type SearchResult struct {
	Found  bool
	NodeID trace.NodeID
	Index  int
	Path   []trace.NodeID
}

// Search looks up key and reports where it lives. Every search descends
// all the way to a leaf, even when a separator along the way equals the
// key. The walk is traced and each node touched counts one read.
func (t *Tree[K]) Search(key K) SearchResult {
	return t.search(t.root, key, nil)
}

func (t *Tree[K]) search(n *Node[K], key K, path []trace.NodeID) SearchResult {
	path = append(path, n.ID)
	t.col.CountRead()
	t.rec.Emit(trace.EventVisitNode, n.ID, trace.VisitNodeDetail[K]{Keys: slices.Clone(n.Keys)})

	if n.Leaf {
		for i, k := range n.Keys {
			t.rec.Emit(trace.EventCompareKey, n.ID, trace.CompareKeyDetail[K]{
				KeyIndex:  i,
				NodeKey:   k,
				SearchKey: key,
			})
			if key == k {
				t.rec.Emit(trace.EventSearchFound, n.ID, trace.SearchFoundDetail[K]{Key: key, KeyIndex: i})
				return SearchResult{Found: true, NodeID: n.ID, Index: i, Path: path}
			}
			if key < k {
				break
			}
		}
		t.rec.Emit(trace.EventSearchNotFound, n.ID, trace.SearchNotFoundDetail[K]{Key: key})
		return SearchResult{Found: false, NodeID: n.ID, Index: -1, Path: path}
	}

	i := t.position(n, key)
	t.rec.Emit(trace.EventDescend, n.ID, trace.DescendDetail{ChildIndex: i})
	return t.search(n.Children[i], key, path)
}

// position scans n's separators left to right, emitting one comparison per
// examined slot, and returns the child index to descend into. A key equal
// to a separator belongs to the right subtree, so equality keeps scanning.
func (t *Tree[K]) position(n *Node[K], key K) int {
	i := 0
	for i < len(n.Keys) {
		t.rec.Emit(trace.EventCompareKey, n.ID, trace.CompareKeyDetail[K]{
			KeyIndex:  i,
			NodeKey:   n.Keys[i],
			SearchKey: key,
		})
		if key < n.Keys[i] {
			break
		}
		i++
	}
	return i
}

// Contains reports whether key is present without emitting trace events.
// The probe still counts reads.
func (t *Tree[K]) Contains(key K) bool {
	defer t.rec.Silence()()
	return t.search(t.root, key, nil).Found
}

// findLeaf descends to the leaf that holds, or would hold, key. The walk
// is untraced but counts one read per node.
func (t *Tree[K]) findLeaf(key K) *Node[K] {
	n := t.root
	t.col.CountRead()
	for !n.Leaf {
		n = n.Children[n.childIndex(key)]
		t.col.CountRead()
	}
	return n
}
