// Package btree implements an instrumented, in-memory B-Tree index.
package btree

import (
	"slices"

	"github.com/treedex/treedex/internal/trace"
)

// Delete removes key from the tree and reports whether it was present. A
// missing key is rejected with no mutation and no visible trace. A
// successful delete clears the recorder, announces the request, and then
// emits the removal and every repair step.
func (t *Tree[K]) Delete(key K) bool {
	if !t.Contains(key) {
		return false
	}
	t.rec.Clear()
	t.rec.Emit(trace.EventDeleteRequest, t.root.ID, trace.DeleteRequestDetail[K]{Key: key})

	t.delete(t.root, key)

	if len(t.root.Keys) == 0 && !t.root.Leaf {
		old := t.root
		t.root = old.Children[0]
		t.wrote(t.root)
		t.rec.Emit(trace.EventShrinkRoot, t.root.ID, trace.ShrinkRootDetail{
			OldRootID: old.ID,
			NewRootID: t.root.ID,
		})
	}

	t.size--
	return true
}

// delete removes key from the subtree rooted at n. The pre-check guarantees
// the key exists below n. Underflow introduced by the removal is repaired
// in each parent frame after its recursive call returns, so every node is
// back within occupancy bounds by the time the unwind passes it.
func (t *Tree[K]) delete(n *Node[K], key K) {
	t.col.CountRead()

	i := 0
	for i < len(n.Keys) && key > n.Keys[i] {
		i++
	}

	if i < len(n.Keys) && n.Keys[i] == key {
		t.rec.Emit(trace.EventDeleteFound, n.ID, trace.DeleteFoundDetail[K]{Key: key, KeyIndex: i})
		if n.Leaf {
			n.Keys = slices.Delete(n.Keys, i, i+1)
			t.wrote(n)
			t.rec.Emit(trace.EventDeleteInLeaf, n.ID, trace.DeleteInLeafDetail[K]{
				Key:  key,
				Keys: slices.Clone(n.Keys),
			})
			return
		}
		t.deleteFromInternal(n, key, i)
		return
	}

	t.delete(n.Children[i], key)
	t.fixUnderflow(n, i)
}

// deleteFromInternal handles a key sitting in an internal node: the key is
// overwritten with an in-order neighbour and that neighbour is then deleted
// from the child it came from. The predecessor (right-most key of the left
// child's subtree) is preferred; when the left child cannot spare a key the
// successor from the right child is used instead.
func (t *Tree[K]) deleteFromInternal(n *Node[K], key K, i int) {
	left, right := n.Children[i], n.Children[i+1]

	if len(left.Keys) > t.minKeys {
		rep := t.subtreeMax(left)
		n.Keys[i] = rep
		t.wrote(n)
		t.rec.Emit(trace.EventReplaceWithPredecessor, n.ID, trace.ReplaceWithPredecessorDetail[K]{
			Key:         key,
			Replacement: rep,
			KeyIndex:    i,
		})
		t.delete(left, rep)
		t.fixUnderflow(n, i)
		return
	}

	rep := t.subtreeMin(right)
	n.Keys[i] = rep
	t.wrote(n)
	t.rec.Emit(trace.EventReplaceWithPredecessor, n.ID, trace.ReplaceWithPredecessorDetail[K]{
		Key:           key,
		Replacement:   rep,
		KeyIndex:      i,
		FromSuccessor: true,
	})
	t.delete(right, rep)
	t.fixUnderflow(n, i+1)
}

// subtreeMax returns the right-most key under n.
func (t *Tree[K]) subtreeMax(n *Node[K]) K {
	t.col.CountRead()
	for !n.Leaf {
		n = n.Children[len(n.Children)-1]
		t.col.CountRead()
	}
	return n.Keys[len(n.Keys)-1]
}

// subtreeMin returns the left-most key under n.
func (t *Tree[K]) subtreeMin(n *Node[K]) K {
	t.col.CountRead()
	for !n.Leaf {
		n = n.Children[0]
		t.col.CountRead()
	}
	return n.Keys[0]
}

// fixUnderflow repairs parent.Children[i] if the preceding removal left it
// below the occupancy floor: borrow from the left sibling, else from the
// right, else merge (preferring the left sibling as survivor).
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

// borrowFromLeft rotates the left sibling's last key through the parent
// separator into the child. For internal nodes the sibling's last child
// pointer moves along.
func (t *Tree[K]) borrowFromLeft(parent *Node[K], i int) {
	child, left := parent.Children[i], parent.Children[i-1]

	child.Keys = slices.Insert(child.Keys, 0, parent.Keys[i-1])
	parent.Keys[i-1] = left.Keys[len(left.Keys)-1]
	left.Keys = left.Keys[:len(left.Keys)-1]

	if !child.Leaf {
		moved := left.Children[len(left.Children)-1]
		left.Children = left.Children[:len(left.Children)-1]
		child.Children = slices.Insert(child.Children, 0, moved)
	}
	t.wrote(left, child, parent)

	t.rec.Emit(trace.EventRedistribute, child.ID, trace.RedistributeDetail{
		FromID:         left.ID,
		ToID:           child.ID,
		ParentID:       parent.ID,
		ParentKeyIndex: i - 1,
	})
}

// borrowFromRight rotates the right sibling's first key through the parent
// separator into the child.
func (t *Tree[K]) borrowFromRight(parent *Node[K], i int) {
	child, right := parent.Children[i], parent.Children[i+1]

	child.Keys = append(child.Keys, parent.Keys[i])
	parent.Keys[i] = right.Keys[0]
	right.Keys = slices.Delete(right.Keys, 0, 1)

	if !child.Leaf {
		moved := right.Children[0]
		right.Children = slices.Delete(right.Children, 0, 1)
		child.Children = append(child.Children, moved)
	}
	t.wrote(right, child, parent)

	t.rec.Emit(trace.EventRedistribute, child.ID, trace.RedistributeDetail{
		FromID:         right.ID,
		ToID:           child.ID,
		ParentID:       parent.ID,
		ParentKeyIndex: i,
	})
}

// mergeWithLeft folds the child into its left sibling, pulling the parent
// separator down between the two key sets.
func (t *Tree[K]) mergeWithLeft(parent *Node[K], i int) {
	left, child := parent.Children[i-1], parent.Children[i]
	sep := parent.Keys[i-1]

	left.Keys = append(left.Keys, sep)
	left.Keys = append(left.Keys, child.Keys...)
	left.Children = append(left.Children, child.Children...)

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

// mergeWithRight folds the right sibling into the child. Only reached when
// the child has no left sibling.
func (t *Tree[K]) mergeWithRight(parent *Node[K], i int) {
	child, right := parent.Children[i], parent.Children[i+1]
	sep := parent.Keys[i]

	child.Keys = append(child.Keys, sep)
	child.Keys = append(child.Keys, right.Keys...)
	child.Children = append(child.Children, right.Children...)

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
