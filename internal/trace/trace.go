// Package trace records the observable steps of tree operations.
package trace

import "cmp"

// NodeID identifies a node within a single tree. IDs are assigned by the
// tree from a per-tree counter starting at zero and are stable for the
// lifetime of the node.
type NodeID int64

// InvalidNode marks events that do not refer to a node.
const InvalidNode NodeID = -1

// Valid reports whether the ID refers to an actual node.
func (id NodeID) Valid() bool {
	return id != InvalidNode
}

// EventType names one kind of recorded step.
type EventType string

const (
	EventVisitNode              EventType = "visit_node"
	EventCompareKey             EventType = "compare_key"
	EventDescend                EventType = "descend"
	EventInsertInLeaf           EventType = "insert_in_leaf"
	EventSplitNode              EventType = "split_node"
	EventNewRoot                EventType = "new_root"
	EventSearchFound            EventType = "search_found"
	EventSearchNotFound         EventType = "search_not_found"
	EventDeleteRequest          EventType = "delete_request"
	EventDeleteFound            EventType = "delete_found"
	EventDeleteInLeaf           EventType = "delete_in_leaf"
	EventReplaceWithPredecessor EventType = "replace_with_predecessor"
	EventUnderflow              EventType = "underflow"
	EventRedistribute           EventType = "redistribute"
	EventMerge                  EventType = "merge"
	EventShrinkRoot             EventType = "shrink_root"
)

// Event is one recorded step of a tree operation.
type Event[K cmp.Ordered] struct {
	Type   EventType `json:"type"`
	NodeID NodeID    `json:"node_id"`
	Op     uint64    `json:"op"`
	Detail Detail    `json:"detail,omitempty"`
}

// Recorder accumulates events in emission order. The zero value is not
// usable; call NewRecorder.
type Recorder[K cmp.Ordered] struct {
	events  []Event[K]
	enabled bool
	op      uint64
}

// NewRecorder returns an enabled recorder with an empty log.
func NewRecorder[K cmp.Ordered]() *Recorder[K] {
	return &Recorder[K]{enabled: true}
}

// Emit appends an event tagged with the current operation counter.
// While the recorder is disabled Emit records nothing at all.
func (r *Recorder[K]) Emit(typ EventType, node NodeID, detail Detail) {
	if !r.enabled {
		return
	}
	r.events = append(r.events, Event[K]{
		Type:   typ,
		NodeID: node,
		Op:     r.op,
		Detail: detail,
	})
}

// Events returns a copy of the recorded log.
func (r *Recorder[K]) Events() []Event[K] {
	out := make([]Event[K], len(r.events))
	copy(out, r.events)
	return out
}

// Len reports the number of recorded events.
func (r *Recorder[K]) Len() int {
	return len(r.events)
}

// Clear empties the log and advances the operation counter. The enabled
// state is unchanged.
func (r *Recorder[K]) Clear() {
	r.events = r.events[:0]
	r.op++
}

// Op returns the current operation counter.
func (r *Recorder[K]) Op() uint64 {
	return r.op
}

// Enable turns recording on.
func (r *Recorder[K]) Enable() {
	r.enabled = true
}

// Disable turns recording off. Emitted events are dropped until Enable.
func (r *Recorder[K]) Disable() {
	r.enabled = false
}

// Enabled reports whether events are currently recorded.
func (r *Recorder[K]) Enabled() bool {
	return r.enabled
}

// Silence disables the recorder and returns a restore function that puts
// back the previous state. Used for probes that must not leave a trace:
//
//	defer rec.Silence()()
func (r *Recorder[K]) Silence() func() {
	prev := r.enabled
	r.enabled = false
	return func() { r.enabled = prev }
}
