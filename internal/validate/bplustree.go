// Package validate checks tree structures against their shape invariants.
package validate

import (
	"cmp"
	"fmt"

	"github.com/treedex/treedex/internal/bplustree"
)

// BPlusTree validates every shape invariant of a B+ Tree: capacity and
// occupancy bounds, key ordering, child arity, half-open containment of
// each subtree between its separators, uniform leaf depth, and a leaf
// chain that visits exactly the tree's leaves in left-to-right order.
// Returns nil on a healthy tree.
func BPlusTree[K cmp.Ordered](t *bplustree.Tree[K]) error {
	c := &bplusChecker[K]{tree: t, leafDepth: -1}
	if err := c.node(t.Root(), 0, nil, nil); err != nil {
		return err
	}
	if err := c.chain(); err != nil {
		return err
	}
	total := 0
	for _, leaf := range c.leaves {
		total += len(leaf.Keys)
	}
	if total != t.Len() {
		return fmt.Errorf("%w: leaves hold %d keys but Len reports %d", ErrStructuralViolation, total, t.Len())
	}
	return nil
}

type bplusChecker[K cmp.Ordered] struct {
	tree      *bplustree.Tree[K]
	leafDepth int
	leaves    []*bplustree.Node[K]
}

// node walks the subtree rooted at n. Containment is half-open: keys below
// a separator pair lie in [lo, hi), so a key equal to the left separator is
// legal while one reaching the right separator is not. Stale separators
// left behind by leaf deletes satisfy the same bounds.
func (c *bplusChecker[K]) node(n *bplustree.Node[K], depth int, lo, hi *K) error {
	if n == nil {
		return fmt.Errorf("%w: nil node at depth %d", ErrStructuralViolation, depth)
	}
	if len(n.Keys) > c.tree.MaxKeys() {
		return fmt.Errorf("%w: node %d holds %d keys, capacity %d", ErrStructuralViolation, n.ID, len(n.Keys), c.tree.MaxKeys())
	}
	if n == c.tree.Root() {
		if !n.Leaf && len(n.Keys) == 0 {
			return fmt.Errorf("%w: internal root %d holds no keys", ErrStructuralViolation, n.ID)
		}
	} else if len(n.Keys) < c.tree.MinKeys() {
		return fmt.Errorf("%w: node %d holds %d keys, minimum %d", ErrStructuralViolation, n.ID, len(n.Keys), c.tree.MinKeys())
	}
	for i := 1; i < len(n.Keys); i++ {
		if n.Keys[i-1] >= n.Keys[i] {
			return fmt.Errorf("%w: node %d keys not strictly ascending: %v", ErrStructuralViolation, n.ID, n.Keys)
		}
	}
	for _, k := range n.Keys {
		if lo != nil && k < *lo {
			return fmt.Errorf("%w: node %d key %v below separator %v", ErrStructuralViolation, n.ID, k, *lo)
		}
		if hi != nil && k >= *hi {
			return fmt.Errorf("%w: node %d key %v not below separator %v", ErrStructuralViolation, n.ID, k, *hi)
		}
	}

	if n.Leaf {
		if len(n.Children) != 0 {
			return fmt.Errorf("%w: leaf %d has %d children", ErrStructuralViolation, n.ID, len(n.Children))
		}
		if c.leafDepth == -1 {
			c.leafDepth = depth
		} else if depth != c.leafDepth {
			return fmt.Errorf("%w: leaf %d at depth %d, expected %d", ErrStructuralViolation, n.ID, depth, c.leafDepth)
		}
		c.leaves = append(c.leaves, n)
		return nil
	}

	if n.Next != nil {
		return fmt.Errorf("%w: internal node %d carries a leaf chain link", ErrStructuralViolation, n.ID)
	}
	if len(n.Children) != len(n.Keys)+1 {
		return fmt.Errorf("%w: node %d has %d keys but %d children", ErrStructuralViolation, n.ID, len(n.Keys), len(n.Children))
	}
	for i, child := range n.Children {
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.Keys[i-1]
		}
		if i < len(n.Keys) {
			chi = &n.Keys[i]
		}
		if err := c.node(child, depth+1, clo, chi); err != nil {
			return err
		}
	}
	return nil
}

// chain verifies that following Next from FirstLeaf visits exactly the
// leaves the tree walk found, in the same order, ending in nil, and that
// keys ascend strictly across leaf boundaries.
func (c *bplusChecker[K]) chain() error {
	cur := c.tree.FirstLeaf()
	for i, leaf := range c.leaves {
		if cur == nil {
			return fmt.Errorf("%w: leaf chain ends after %d of %d leaves", ErrStructuralViolation, i, len(c.leaves))
		}
		if cur != leaf {
			return fmt.Errorf("%w: leaf chain visits node %d where the tree has %d", ErrStructuralViolation, cur.ID, leaf.ID)
		}
		cur = cur.Next
	}
	if cur != nil {
		return fmt.Errorf("%w: leaf chain continues past the last leaf into node %d", ErrStructuralViolation, cur.ID)
	}

	for i := 1; i < len(c.leaves); i++ {
		prev, next := c.leaves[i-1], c.leaves[i]
		if len(prev.Keys) == 0 || len(next.Keys) == 0 {
			continue
		}
		if prev.Keys[len(prev.Keys)-1] >= next.Keys[0] {
			return fmt.Errorf("%w: leaf %d last key %v not below leaf %d first key %v",
				ErrStructuralViolation, prev.ID, prev.Keys[len(prev.Keys)-1], next.ID, next.Keys[0])
		}
	}
	return nil
}
