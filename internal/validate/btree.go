// Package validate checks tree structures against their shape invariants.
package validate

import (
	"cmp"
	"fmt"

	"github.com/treedex/treedex/internal/btree"
)

// BTree validates every shape invariant of a B-Tree: capacity and
// occupancy bounds, strict key ordering within and across nodes, child
// arity, strict containment of each subtree between its separators, and
// uniform leaf depth. Returns nil on a healthy tree.
func BTree[K cmp.Ordered](t *btree.Tree[K]) error {
	c := &btreeChecker[K]{tree: t, leafDepth: -1}
	if err := c.node(t.Root(), 0, nil, nil); err != nil {
		return err
	}
	if c.total != t.Len() {
		return fmt.Errorf("%w: tree holds %d keys but Len reports %d", ErrStructuralViolation, c.total, t.Len())
	}
	return nil
}

type btreeChecker[K cmp.Ordered] struct {
	tree      *btree.Tree[K]
	leafDepth int
	total     int
}

// node walks the subtree rooted at n. Separator bounds are exclusive on
// both sides: every key below a B-Tree separator pair must lie strictly
// between them, which also rules out duplicates anywhere in the tree.
func (c *btreeChecker[K]) node(n *btree.Node[K], depth int, lo, hi *K) error {
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
		if lo != nil && k <= *lo {
			return fmt.Errorf("%w: node %d key %v not above separator %v", ErrStructuralViolation, n.ID, k, *lo)
		}
		if hi != nil && k >= *hi {
			return fmt.Errorf("%w: node %d key %v not below separator %v", ErrStructuralViolation, n.ID, k, *hi)
		}
	}
	c.total += len(n.Keys)

	if n.Leaf {
		if len(n.Children) != 0 {
			return fmt.Errorf("%w: leaf %d has %d children", ErrStructuralViolation, n.ID, len(n.Children))
		}
		if c.leafDepth == -1 {
			c.leafDepth = depth
		} else if depth != c.leafDepth {
			return fmt.Errorf("%w: leaf %d at depth %d, expected %d", ErrStructuralViolation, n.ID, depth, c.leafDepth)
		}
		return nil
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
