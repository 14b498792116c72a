// Package bplustree implements an instrumented, in-memory B+ Tree index.
package bplustree

import (
	"slices"

	"github.com/treedex/treedex/internal/trace"
)

// Delete removes key from the tree. A missing key is rejected by a silent
// probe that leaves no trace events and does not advance the operation
// counter. A successful delete starts a fresh trace operation and always
// removes from a leaf; internal separators equal to the key stay behind as
// legal stale routing entries. Underflowing nodes borrow from a sibling or
// merge with one on the way back up, and a root left with no keys hands
// the tree to its lone child.
func (t *Tree[K]) Delete(key K) bool {
	if !t.Contains(key) {
		return false
	}
	t.rec.Clear()
	t.rec.Emit(trace.EventDeleteRequest, t.root.ID, trace.DeleteRequestDetail[K]{Key: key})

	t.delete(t.root, key)
	if len(t.root.Keys) == 0 && !t.root.Leaf {
		oldRoot := t.root
		t.root = oldRoot.Children[0]
		t.refreshFirstLeaf()
		t.wrote(t.root)
		t.rec.Emit(trace.EventShrinkRoot, t.root.ID, trace.ShrinkRootDetail{
			OldRootID: oldRoot.ID,
			NewRootID: t.root.ID,
		})
	}
	t.size--
	return true
}

func (t *Tree[K]) delete(n *Node[K], key K) {
	t.col.CountRead()
	if n.Leaf {
		i := 0
		for i < len(n.Keys) && key > n.Keys[i] {
			i++
		}
		t.rec.Emit(trace.EventDeleteFound, n.ID, trace.DeleteFoundDetail[K]{Key: key, KeyIndex: i})
		n.Keys = slices.Delete(n.Keys, i, i+1)
		t.wrote(n)
		t.rec.Emit(trace.EventDeleteInLeaf, n.ID, trace.DeleteInLeafDetail[K]{
			Key:  key,
			Keys: slices.Clone(n.Keys),
		})
		return
	}

	i := n.childIndex(key)
	t.delete(n.Children[i], key)
	t.fixUnderflow(n, i)
}

// fixUnderflow restores the occupancy floor of parent's i-th child after a
// removal below it. Borrowing is preferred over merging, and the left
// sibling over the right in both cases.
func (t *Tree[K]) fixUnderflow(parent *Node[K], i int) {
	child := parent.Children[i]
	if len(child.Keys) >= t.minKeys {
		return
	}
	t.rec.Emit(trace.EventUnderflow, child.ID, trace.UnderflowDetail{
		KeyCount: len(child.Keys),
		MinKeys:  t.minKeys,
	})

	switch {
	case i > 0 && len(parent.Children[i-1].Keys) > t.minKeys:
		t.borrowFromLeft(parent, i)
	case i < len(parent.Children)-1 && len(parent.Children[i+1].Keys) > t.minKeys:
		t.borrowFromRight(parent, i)
	case i > 0:
		t.mergeWithLeft(parent, i)
	default:
		t.mergeWithRight(parent, i)
	}
}

// borrowFromLeft shifts the left sibling's last key into parent's i-th
// child. Between leaves the key moves directly and the separator is
// rewritten to the receiver's new first key; between internal nodes the
// key rotates through the separator slot and the sibling's last child
// pointer moves along.
func (t *Tree[K]) borrowFromLeft(parent *Node[K], i int) {
	child := parent.Children[i]
	left := parent.Children[i-1]

	if child.Leaf {
		moved := left.Keys[len(left.Keys)-1]
		left.Keys = left.Keys[:len(left.Keys)-1]
		child.Keys = slices.Insert(child.Keys, 0, moved)
		parent.Keys[i-1] = child.Keys[0]
	} else {
		child.Keys = slices.Insert(child.Keys, 0, parent.Keys[i-1])
		parent.Keys[i-1] = left.Keys[len(left.Keys)-1]
		left.Keys = left.Keys[:len(left.Keys)-1]
		child.Children = slices.Insert(child.Children, 0, left.Children[len(left.Children)-1])
		left.Children = left.Children[:len(left.Children)-1]
	}
	t.wrote(left, child, parent)

	t.rec.Emit(trace.EventRedistribute, child.ID, trace.RedistributeDetail{
		FromID:         left.ID,
		ToID:           child.ID,
		ParentID:       parent.ID,
		ParentKeyIndex: i - 1,
	})
}

// borrowFromRight shifts the right sibling's first key into parent's i-th
// child, mirroring borrowFromLeft.
func (t *Tree[K]) borrowFromRight(parent *Node[K], i int) {
	child := parent.Children[i]
	right := parent.Children[i+1]

	if child.Leaf {
		moved := right.Keys[0]
		right.Keys = slices.Delete(right.Keys, 0, 1)
		child.Keys = append(child.Keys, moved)
		parent.Keys[i] = right.Keys[0]
	} else {
		child.Keys = append(child.Keys, parent.Keys[i])
		parent.Keys[i] = right.Keys[0]
		right.Keys = slices.Delete(right.Keys, 0, 1)
		child.Children = append(child.Children, right.Children[0])
		right.Children = slices.Delete(right.Children, 0, 1)
	}
	t.wrote(right, child, parent)

	t.rec.Emit(trace.EventRedistribute, child.ID, trace.RedistributeDetail{
		FromID:         right.ID,
		ToID:           child.ID,
		ParentID:       parent.ID,
		ParentKeyIndex: i,
	})
}

// mergeWithLeft folds parent's i-th child into its left sibling. Merging
// leaves discards the separator and relinks the chain; merging internal
// nodes pulls the separator down between the two key sets.
func (t *Tree[K]) mergeWithLeft(parent *Node[K], i int) {
	left := parent.Children[i-1]
	child := parent.Children[i]
	sep := parent.Keys[i-1]

	if child.Leaf {
		left.Keys = append(left.Keys, child.Keys...)
		left.Next = child.Next
	} else {
		left.Keys = append(left.Keys, sep)
		left.Keys = append(left.Keys, child.Keys...)
		left.Children = append(left.Children, child.Children...)
	}
	parent.Keys = slices.Delete(parent.Keys, i-1, i)
	parent.Children = slices.Delete(parent.Children, i, i+1)
	t.wrote(left, parent)

	t.rec.Emit(trace.EventMerge, left.ID, trace.MergeDetail[K]{
		LeftID:       left.ID,
		RightID:      child.ID,
		ParentID:     parent.ID,
		SeparatorKey: sep,
		MergedKeys:   slices.Clone(left.Keys),
	})
}

// mergeWithRight folds the right sibling into parent's i-th child. Used
// only for the leftmost child, which has no left sibling.
func (t *Tree[K]) mergeWithRight(parent *Node[K], i int) {
	child := parent.Children[i]
	right := parent.Children[i+1]
	sep := parent.Keys[i]

	if child.Leaf {
		child.Keys = append(child.Keys, right.Keys...)
		child.Next = right.Next
	} else {
		child.Keys = append(child.Keys, sep)
		child.Keys = append(child.Keys, right.Keys...)
		child.Children = append(child.Children, right.Children...)
	}
	parent.Keys = slices.Delete(parent.Keys, i, i+1)
	parent.Children = slices.Delete(parent.Children, i+1, i+2)
	t.wrote(child, parent)

	t.rec.Emit(trace.EventMerge, child.ID, trace.MergeDetail[K]{
		LeftID:       child.ID,
		RightID:      right.ID,
		ParentID:     parent.ID,
		SeparatorKey: sep,
		MergedKeys:   slices.Clone(child.Keys),
	})
}
