// Package bplustree implements an instrumented, in-memory B+ Tree index.
package bplustree

import (
	"slices"

	"github.com/treedex/treedex/internal/trace"
)

// Insert adds key to the tree. Duplicates are rejected: the probe that
// detects one is silent, leaves no trace events, and does not advance the
// operation counter. A successful insert starts a fresh trace operation,
// descends to a leaf, places the key, and splits overfull nodes on the way
// back up. Leaf splits copy the right half's first key up as the new
// separator and splice the leaf chain; internal splits move their median
// up as in a plain B-Tree.
func (t *Tree[K]) Insert(key K) bool {
	if t.Contains(key) {
		return false
	}
	t.rec.Clear()

	t.insert(t.root, key)
	if len(t.root.Keys) > t.maxKeys {
		oldRoot := t.root
		root := t.newNode(false)
		root.Children = []*Node[K]{oldRoot}
		t.root = root
		t.splitChild(root, 0)
		t.refreshFirstLeaf()
		t.rec.Emit(trace.EventNewRoot, root.ID, trace.NewRootDetail[K]{
			OldRootID:   oldRoot.ID,
			PromotedKey: root.Keys[0],
		})
	}
	t.size++
	return true
}

func (t *Tree[K]) insert(n *Node[K], key K) {
	t.col.CountRead()
	t.rec.Emit(trace.EventVisitNode, n.ID, trace.VisitNodeDetail[K]{Keys: slices.Clone(n.Keys)})

	i := t.position(n, key)
	if n.Leaf {
		n.Keys = slices.Insert(n.Keys, i, key)
		t.wrote(n)
		t.rec.Emit(trace.EventInsertInLeaf, n.ID, trace.InsertInLeafDetail[K]{
			Key:  key,
			Keys: slices.Clone(n.Keys),
		})
		return
	}

	t.rec.Emit(trace.EventDescend, n.ID, trace.DescendDetail{ChildIndex: i})
	t.insert(n.Children[i], key)
	if len(n.Children[i].Keys) > t.maxKeys {
		t.splitChild(n, i)
	}
}

// splitChild splits parent's i-th child around its midpoint. For a leaf the
// boundary key is copied up and stays in the right half, and the leaf chain
// is relinked through the new right node. For an internal node the median
// moves up and appears in neither half.
func (t *Tree[K]) splitChild(parent *Node[K], i int) {
	child := parent.Children[i]
	mid := len(child.Keys) / 2
	right := t.newNode(child.Leaf)

	var sep K
	if child.Leaf {
		right.Keys = append(right.Keys, child.Keys[mid:]...)
		child.Keys = child.Keys[:mid]
		sep = right.Keys[0]
		right.Next = child.Next
		child.Next = right
	} else {
		sep = child.Keys[mid]
		right.Keys = append(right.Keys, child.Keys[mid+1:]...)
		right.Children = append(right.Children, child.Children[mid+1:]...)
		child.Keys = child.Keys[:mid]
		child.Children = child.Children[:mid+1]
	}

	parent.Keys = slices.Insert(parent.Keys, i, sep)
	parent.Children = slices.Insert(parent.Children, i+1, right)
	t.wrote(child, right, parent)

	t.rec.Emit(trace.EventSplitNode, child.ID, trace.SplitNodeDetail[K]{
		PromotedKey: sep,
		LeftID:      child.ID,
		RightID:     right.ID,
		LeftKeys:    slices.Clone(child.Keys),
		RightKeys:   slices.Clone(right.Keys),
	})
}
