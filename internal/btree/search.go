// Package btree implements an instrumented, in-memory B-Tree index.
package btree

import (
	"slices"

	"github.com/treedex/treedex/internal/trace"
)

// SearchResult describes where a search ended. NodeID and Path always refer
// to real nodes: on a miss they identify the leaf where the key would live.
// Index is the key's slot within that node, or -1 on a miss.
type SearchResult struct {
	Found  bool
	NodeID trace.NodeID
	Index  int
	Path   []trace.NodeID
}

// Search locates key, tracing every visit, comparison, and descent. In this
// variant the search may terminate at any depth, since internal nodes carry
// real keys.
func (t *Tree[K]) Search(key K) SearchResult {
	return t.search(t.root, key, nil)
}

// Contains reports whether key is present without leaving a trace. Metrics
// still tick: the probe does real work.
func (t *Tree[K]) Contains(key K) bool {
	defer t.rec.Silence()()
	return t.search(t.root, key, nil).Found
}

func (t *Tree[K]) search(n *Node[K], key K, path []trace.NodeID) SearchResult {
	path = append(path, n.ID)
	t.col.CountRead()
	t.rec.Emit(trace.EventVisitNode, n.ID, trace.VisitNodeDetail[K]{Keys: slices.Clone(n.Keys)})

	i := 0
	for i < len(n.Keys) {
		t.rec.Emit(trace.EventCompareKey, n.ID, trace.CompareKeyDetail[K]{
			KeyIndex:  i,
			NodeKey:   n.Keys[i],
			SearchKey: key,
		})
		if key == n.Keys[i] {
			t.rec.Emit(trace.EventSearchFound, n.ID, trace.SearchFoundDetail[K]{Key: key, KeyIndex: i})
			return SearchResult{Found: true, NodeID: n.ID, Index: i, Path: path}
		}
		if key < n.Keys[i] {
			break
		}
		i++
	}

	if n.Leaf {
		t.rec.Emit(trace.EventSearchNotFound, n.ID, trace.SearchNotFoundDetail[K]{Key: key})
		return SearchResult{Found: false, NodeID: n.ID, Index: -1, Path: path}
	}

	t.rec.Emit(trace.EventDescend, n.ID, trace.DescendDetail{ChildIndex: i})
	return t.search(n.Children[i], key, path)
}
