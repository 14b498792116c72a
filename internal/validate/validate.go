// Package validate checks tree structures against their shape invariants.
//
// # Overview
//
// The checks cover node capacity and occupancy, per-node and tree-wide key
// ordering, child arity, key containment within separator bounds, uniform
// leaf depth, and, for B+ Trees, the integrity of the leaf chain. They read
// the tree through its public surface only and tick no metrics, so a check
// can run mid-workload without distorting measured costs.
//
// All failures wrap ErrStructuralViolation:
//
//	if err := validate.BPlusTree(tree); err != nil {
//		log.Fatal(err)
//	}
//
// A healthy tree built exclusively through Insert and Delete never fails
// validation; a failure means tree internals were corrupted from outside
// or there is a rebalancing bug.
package validate

import "errors"

// ErrStructuralViolation is wrapped by every validation failure.
var ErrStructuralViolation = errors.New("validate: structural violation")
