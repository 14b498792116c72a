// Package btree implements an instrumented, in-memory B-Tree index.
//
// # Overview
//
// The tree stores unique keys of any ordered type with a configurable
// fanout n between 3 and 10: every node holds at most n-1 keys, and every
// non-root node holds at least ceil(n/2)-1. Keys live in every node, so a
// search can terminate at any depth on an exact match.
//
// All rebalancing is bottom-up. Inserts descend to a leaf and split
// overflowing nodes on the way back out, the median key moving to the
// parent. Deletes substitute an in-order neighbour for keys found in
// internal nodes, then repair any underflow on the unwind by borrowing from
// a sibling or merging with one. The root is exempt from the minimum and
// collapses into its only child when it runs out of keys.
//
// # Instrumentation
//
// Every operation narrates itself through a trace.Recorder (node visits,
// comparisons, splits, merges, ...) and ticks a metrics.Collector once per
// node touched and once per node mutated. The pre-check probes inside
// Insert and Delete run silenced, so a rejected duplicate or a missing key
// leaves no trace at all.
//
// # Usage
//
//	tree, err := btree.New[int](3)
//	if err != nil {
//		return err
//	}
//	tree.Insert(42)
//	res := tree.Search(42)       // res.Found, res.NodeID, res.Path
//	tree.Delete(42)
//	fmt.Println(tree.Levels())   // keys grouped by depth
//
// Trees are not safe for concurrent use.
package btree
