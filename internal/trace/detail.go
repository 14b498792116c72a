// Package trace records the observable steps of tree operations.
package trace

import "cmp"

// Detail is the payload of an Event. The concrete type is determined by the
// event type; consumers recover it with a type switch. The set of
// implementations is closed.
type Detail interface {
	eventDetail()
}

// VisitNodeDetail accompanies visit_node: the keys held by the visited node
// at the time of the visit.
type VisitNodeDetail[K cmp.Ordered] struct {
	Keys []K `json:"keys"`
}

// CompareKeyDetail accompanies compare_key: one slot examined during an
// in-node scan.
type CompareKeyDetail[K cmp.Ordered] struct {
	KeyIndex  int `json:"key_index"`
	NodeKey   K   `json:"node_key"`
	SearchKey K   `json:"search_key"`
}

// DescendDetail accompanies descend: the child slot entered next.
type DescendDetail struct {
	ChildIndex int `json:"child_index"`
}

// InsertInLeafDetail accompanies insert_in_leaf: the inserted key and the
// leaf's keys after placement.
type InsertInLeafDetail[K cmp.Ordered] struct {
	Key  K   `json:"key"`
	Keys []K `json:"keys"`
}

// SplitNodeDetail accompanies split_node. PromotedKey is the separator
// handed to the parent; for B+ leaf splits it is a copy that also remains
// the right node's first key.
type SplitNodeDetail[K cmp.Ordered] struct {
	PromotedKey K      `json:"promoted_key"`
	LeftID      NodeID `json:"left_id"`
	RightID     NodeID `json:"right_id"`
	LeftKeys    []K    `json:"left_keys"`
	RightKeys   []K    `json:"right_keys"`
}

// NewRootDetail accompanies new_root after a root split.
type NewRootDetail[K cmp.Ordered] struct {
	OldRootID   NodeID `json:"old_root_id"`
	PromotedKey K      `json:"promoted_key"`
}

// SearchFoundDetail accompanies search_found.
type SearchFoundDetail[K cmp.Ordered] struct {
	Key      K   `json:"key"`
	KeyIndex int `json:"key_index"`
}

// SearchNotFoundDetail accompanies search_not_found.
type SearchNotFoundDetail[K cmp.Ordered] struct {
	Key K `json:"key"`
}

// DeleteRequestDetail accompanies delete_request.
type DeleteRequestDetail[K cmp.Ordered] struct {
	Key K `json:"key"`
}

// DeleteFoundDetail accompanies delete_found: where the key to remove was
// located.
type DeleteFoundDetail[K cmp.Ordered] struct {
	Key      K   `json:"key"`
	KeyIndex int `json:"key_index"`
}

// DeleteInLeafDetail accompanies delete_in_leaf: the removed key and the
// leaf's keys after removal.
type DeleteInLeafDetail[K cmp.Ordered] struct {
	Key  K   `json:"key"`
	Keys []K `json:"keys"`
}

// ReplaceWithPredecessorDetail accompanies replace_with_predecessor when a
// key found in an internal node is substituted before the real removal.
// FromSuccessor is set when the replacement came from the right subtree
// because the left one could not spare a key.
type ReplaceWithPredecessorDetail[K cmp.Ordered] struct {
	Key           K    `json:"key"`
	Replacement   K    `json:"replacement"`
	KeyIndex      int  `json:"key_index"`
	FromSuccessor bool `json:"from_successor"`
}

// UnderflowDetail accompanies underflow: the occupancy that triggered the
// repair.
type UnderflowDetail struct {
	KeyCount int `json:"key_count"`
	MinKeys  int `json:"min_keys"`
}

// RedistributeDetail accompanies redistribute: one key rotated from a
// sibling through the parent separator at ParentKeyIndex.
type RedistributeDetail struct {
	FromID         NodeID `json:"from_id"`
	ToID           NodeID `json:"to_id"`
	ParentID       NodeID `json:"parent_id"`
	ParentKeyIndex int    `json:"parent_key_index"`
}

// MergeDetail accompanies merge. LeftID survives, RightID is absorbed.
// SeparatorKey is pulled down between the merged key sets for internal
// merges and discarded for B+ leaf merges; MergedKeys is the survivor's key
// set afterwards.
type MergeDetail[K cmp.Ordered] struct {
	LeftID       NodeID `json:"left_id"`
	RightID      NodeID `json:"right_id"`
	ParentID     NodeID `json:"parent_id"`
	SeparatorKey K      `json:"separator_key"`
	MergedKeys   []K    `json:"merged_keys"`
}

// ShrinkRootDetail accompanies shrink_root when an empty root hands the
// tree to its only child.
type ShrinkRootDetail struct {
	OldRootID NodeID `json:"old_root_id"`
	NewRootID NodeID `json:"new_root_id"`
}

func (VisitNodeDetail[K]) eventDetail()              {}
func (CompareKeyDetail[K]) eventDetail()             {}
func (DescendDetail) eventDetail()                   {}
func (InsertInLeafDetail[K]) eventDetail()           {}
func (SplitNodeDetail[K]) eventDetail()              {}
func (NewRootDetail[K]) eventDetail()                {}
func (SearchFoundDetail[K]) eventDetail()            {}
func (SearchNotFoundDetail[K]) eventDetail()         {}
func (DeleteRequestDetail[K]) eventDetail()          {}
func (DeleteFoundDetail[K]) eventDetail()            {}
func (DeleteInLeafDetail[K]) eventDetail()           {}
func (ReplaceWithPredecessorDetail[K]) eventDetail() {}
func (UnderflowDetail) eventDetail()                 {}
func (RedistributeDetail) eventDetail()              {}
func (MergeDetail[K]) eventDetail()                  {}
func (ShrinkRootDetail) eventDetail()                {}
