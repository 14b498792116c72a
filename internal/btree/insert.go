// Package btree implements an instrumented, in-memory B-Tree index.
package btree

import (
	"slices"

	"github.com/treedex/treedex/internal/trace"
)

// Insert adds key to the tree and reports whether it was added. A duplicate
// is rejected with no mutation and no visible trace. A successful insert
// clears the recorder (starting a fresh operation group) and then emits the
// full descent and any splits.
func (t *Tree[K]) Insert(key K) bool {
	if t.Contains(key) {
		return false
	}
	t.rec.Clear()

	t.insert(t.root, key)

	if len(t.root.Keys) > t.maxKeys {
		old := t.root
		root := t.newNode(false)
		root.Children = []*Node[K]{old}
		t.root = root
		t.splitChild(root, 0)
		t.rec.Emit(trace.EventNewRoot, root.ID, trace.NewRootDetail[K]{
			OldRootID:   old.ID,
			PromotedKey: root.Keys[0],
		})
	}

	t.size++
	return true
}

// insert descends to the proper leaf, places the key, and splits any child
// that exceeds capacity on the way back up. A node may transiently hold
// maxKeys+1 keys between placement and the split in its parent's frame.
func (t *Tree[K]) insert(n *Node[K], key K) {
	t.col.CountRead()
	t.rec.Emit(trace.EventVisitNode, n.ID, trace.VisitNodeDetail[K]{Keys: slices.Clone(n.Keys)})

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

// splitChild splits parent.Children[i] around its median, which moves up
// into the parent. The left half keeps keys [:mid], the right half takes
// [mid+1:], and children partition at mid+1.
func (t *Tree[K]) splitChild(parent *Node[K], i int) {
	child := parent.Children[i]
	mid := len(child.Keys) / 2
	median := child.Keys[mid]

	right := t.newNode(child.Leaf)
	right.Keys = append(right.Keys, child.Keys[mid+1:]...)
	child.Keys = child.Keys[:mid]
	if !child.Leaf {
		right.Children = append(right.Children, child.Children[mid+1:]...)
		child.Children = child.Children[:mid+1]
	}

	parent.Keys = slices.Insert(parent.Keys, i, median)
	parent.Children = slices.Insert(parent.Children, i+1, right)
	t.wrote(child, right, parent)

	t.rec.Emit(trace.EventSplitNode, child.ID, trace.SplitNodeDetail[K]{
		PromotedKey: median,
		LeftID:      child.ID,
		RightID:     right.ID,
		LeftKeys:    slices.Clone(child.Keys),
		RightKeys:   slices.Clone(right.Keys),
	})
}
