// Package bplustree implements an instrumented, in-memory B+ Tree index.
//
// # Overview
//
// The tree stores unique keys of any ordered type with a configurable
// fanout n between 3 and 10. Unlike a plain B-Tree, every key lives in a
// leaf: internal nodes hold copied separators that only guide descent, and
// a search terminates at leaf level no matter what it passes on the way
// down. Leaves are chained left to right through Next pointers, which makes
// range queries and full scans a single descent followed by a linear walk.
//
// Separators follow the usual B+ convention: the subtree right of a
// separator holds keys greater than or equal to it. Deleting a key does not
// rewrite separators that merely equal it; a stale separator still routes
// correctly and is structurally legal.
//
// Rebalancing is bottom-up for both inserts and deletes. Leaf splits copy
// the right half's first key up as the new separator and splice the chain;
// internal splits move their median up. Leaf underflow borrows from a
// sibling (rewriting the parent separator to the new boundary) or merges
// with one (dropping the separator and relinking the chain).
//
// # Usage
//
//	tree, err := bplustree.New[int](4)
//	if err != nil {
//		return err
//	}
//	for k := 10; k <= 100; k += 10 {
//		tree.Insert(k)
//	}
//	tree.RangeQuery(20, 50)   // [20 30 40 50]
//	tree.SequentialScan()     // all keys in order
//
// Instrumentation works exactly as in package btree: operations narrate
// themselves through a trace.Recorder and tick a metrics.Collector per node
// touched. Trees are not safe for concurrent use.
package bplustree
