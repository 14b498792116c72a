// Package trace records the observable steps of tree operations.
//
// # Overview
//
// Both tree variants emit a flat stream of typed events while they work:
// node visits, key comparisons, descents, splits, merges, redistributions,
// and root changes. The stream is the ground truth for replaying an
// operation step by step, so emission order is exactly execution order.
//
// Events are tagged with an operation counter. Clearing the recorder empties
// the log and advances the counter, which lets a consumer that keeps its own
// copy of past events group them by logical operation.
//
// # Event payloads
//
// Every event type that carries data has a dedicated detail struct
// (SplitNodeDetail, MergeDetail, ...). Consumers recover the payload with a
// type switch:
//
//	for _, ev := range rec.Events() {
//		switch d := ev.Detail.(type) {
//		case trace.SplitNodeDetail[int]:
//			fmt.Println("promoted", d.PromotedKey)
//		case trace.MergeDetail[int]:
//			fmt.Println("merged into", d.LeftID)
//		}
//	}
//
// # Usage
//
//	rec := trace.NewRecorder[int]()
//	tree, _ := btree.NewWithInstruments[int](4, rec, metrics.NewCollector())
//	tree.Insert(42)
//	for _, ev := range rec.Events() {
//		fmt.Println(ev.Type, ev.NodeID)
//	}
//
// A disabled recorder drops events without recording anything. Recorders are
// not safe for concurrent use; the engines they serve are single-threaded by
// contract.
package trace
