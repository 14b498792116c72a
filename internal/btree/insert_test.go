package btree

import (
	"testing"

	"github.com/treedex/treedex/internal/trace"
)

// ============================================================
// Structure
// ============================================================

func TestInsertStagedGrowth(t *testing.T) {
	tree := mustNewTree(t, 3)

	stages := []struct {
		key  int
		want string
	}{
		{10, "[10]"},
		{20, "[10 20]"},
		{5, "[10] | [5],[20]"},
		{6, "[10] | [5 6],[20]"},
		{12, "[10] | [5 6],[12 20]"},
		{30, "[10 20] | [5 6],[12],[30]"},
		{7, "[10] | [6],[20] | [5],[7],[12],[30]"},
		{17, "[10] | [6],[20] | [5],[7],[12 17],[30]"},
	}
	for _, st := range stages {
		if !tree.Insert(st.key) {
			t.Fatalf("Insert(%d) was rejected", st.key)
		}
		if got := formatLevels(tree.Levels()); got != st.want {
			t.Fatalf("after inserting %d:\n got: %s\nwant: %s", st.key, got, st.want)
		}
	}
	if tree.Len() != len(stages) {
		t.Errorf("Len = %d, want %d", tree.Len(), len(stages))
	}
}

func TestInsertAscendingAndDescending(t *testing.T) {
	t.Run("ascending", func(t *testing.T) {
		tree := mustNewTree(t, 4)
		for k := 1; k <= 50; k++ {
			if !tree.Insert(k) {
				t.Fatalf("Insert(%d) was rejected", k)
			}
		}
		if tree.Len() != 50 {
			t.Fatalf("Len = %d, want 50", tree.Len())
		}
		for k := 1; k <= 50; k++ {
			if !tree.Contains(k) {
				t.Errorf("missing key %d", k)
			}
		}
	})

	t.Run("descending", func(t *testing.T) {
		tree := mustNewTree(t, 4)
		for k := 50; k >= 1; k-- {
			if !tree.Insert(k) {
				t.Fatalf("Insert(%d) was rejected", k)
			}
		}
		for k := 1; k <= 50; k++ {
			if !tree.Contains(k) {
				t.Errorf("missing key %d", k)
			}
		}
	})
}

// ============================================================
// Duplicates
// ============================================================

func TestInsertDuplicateIsRejectedSilently(t *testing.T) {
	tree := mustNewTree(t, 3)
	insertAll(t, tree, 10, 20, 5)

	rec := tree.Recorder()
	rec.Clear()
	opBefore := rec.Op()
	structureBefore := formatLevels(tree.Levels())

	if tree.Insert(10) {
		t.Fatal("duplicate insert reported success")
	}

	if rec.Len() != 0 {
		t.Errorf("duplicate insert left %d events", rec.Len())
	}
	if rec.Op() != opBefore {
		t.Errorf("duplicate insert advanced the op counter: %d -> %d", opBefore, rec.Op())
	}
	if got := formatLevels(tree.Levels()); got != structureBefore {
		t.Errorf("duplicate insert mutated the tree:\n got: %s\nwas: %s", got, structureBefore)
	}
	if tree.Len() != 3 {
		t.Errorf("Len = %d, want 3", tree.Len())
	}
}

// ============================================================
// Trace
// ============================================================

func TestInsertEventSequenceSimple(t *testing.T) {
	tree := mustNewTree(t, 3)

	tree.Insert(10)
	got := eventTypes(tree.Recorder().Events())
	want := []trace.EventType{trace.EventVisitNode, trace.EventInsertInLeaf}
	if len(got) != len(want) {
		t.Fatalf("event count = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestInsertClearsPreviousOperation(t *testing.T) {
	tree := mustNewTree(t, 3)

	tree.Insert(10)
	firstOp := tree.Recorder().Events()[0].Op

	tree.Insert(20)
	events := tree.Recorder().Events()
	for _, ev := range events {
		if ev.Op <= firstOp {
			t.Fatalf("event %s carries op %d, expected a fresh group after %d", ev.Type, ev.Op, firstOp)
		}
	}
	if hasEvent(events, trace.EventSearchNotFound) {
		t.Error("probe events leaked into the insert trace")
	}
}

func TestInsertSplitEvents(t *testing.T) {
	tree := mustNewTree(t, 3)
	insertAll(t, tree, 10, 20)

	// Third key overflows the root leaf and grows the tree.
	tree.Insert(5)
	events := tree.Recorder().Events()

	if !hasEvent(events, trace.EventSplitNode) {
		t.Fatal("expected a split_node event")
	}
	if !hasEvent(events, trace.EventNewRoot) {
		t.Fatal("expected a new_root event")
	}

	var split trace.SplitNodeDetail[int]
	var newRoot trace.NewRootDetail[int]
	for _, ev := range events {
		switch d := ev.Detail.(type) {
		case trace.SplitNodeDetail[int]:
			split = d
		case trace.NewRootDetail[int]:
			newRoot = d
		}
	}
	if split.PromotedKey != 10 {
		t.Errorf("promoted key = %d, want 10", split.PromotedKey)
	}
	if len(split.LeftKeys) != 1 || split.LeftKeys[0] != 5 {
		t.Errorf("left keys = %v, want [5]", split.LeftKeys)
	}
	if len(split.RightKeys) != 1 || split.RightKeys[0] != 20 {
		t.Errorf("right keys = %v, want [20]", split.RightKeys)
	}
	if newRoot.PromotedKey != 10 {
		t.Errorf("new root promoted key = %d, want 10", newRoot.PromotedKey)
	}
	if newRoot.OldRootID != split.LeftID {
		t.Errorf("old root id %d should be the split's left node %d", newRoot.OldRootID, split.LeftID)
	}

	wantLevels(t, tree, "[10] | [5],[20]")
}

func TestInsertRecursiveSplitPropagation(t *testing.T) {
	tree := mustNewTree(t, 3)
	insertAll(t, tree, 10, 20, 5, 6, 12, 30)
	wantLevels(t, tree, "[10 20] | [5 6],[12],[30]")

	// 7 overflows the left leaf, the promotion overflows the root, and a
	// new root appears: two splits in one operation.
	tree.Insert(7)
	events := tree.Recorder().Events()

	var splits int
	for _, ev := range events {
		if ev.Type == trace.EventSplitNode {
			splits++
		}
	}
	if splits != 2 {
		t.Errorf("expected 2 splits, got %d", splits)
	}
	if !hasEvent(events, trace.EventNewRoot) {
		t.Error("expected a new_root event")
	}
	wantLevels(t, tree, "[10] | [6],[20] | [5],[7],[12],[30]")
}

// ============================================================
// Metrics
// ============================================================

func TestInsertTicksMetrics(t *testing.T) {
	tree := mustNewTree(t, 3)

	// First key: the silent probe reads the root, the descent reads it
	// again, and the leaf placement is one write.
	tree.Insert(10)
	col := tree.Metrics()
	if col.Reads() != 2 {
		t.Errorf("reads = %d, want 2", col.Reads())
	}
	if col.Writes() != 1 {
		t.Errorf("writes = %d, want 1", col.Writes())
	}

	// A rejected duplicate only pays for its probe.
	before := col.Snapshot()
	tree.Insert(10)
	delta := col.Snapshot().Sub(before)
	if delta.Reads != 1 {
		t.Errorf("duplicate probe reads = %d, want 1", delta.Reads)
	}
	if delta.Writes != 0 {
		t.Errorf("duplicate insert wrote %d nodes", delta.Writes)
	}
}

func TestInsertSplitTicksWrites(t *testing.T) {
	tree := mustNewTree(t, 3)
	insertAll(t, tree, 10, 20)

	before := tree.Metrics().Snapshot()
	tree.Insert(5)
	delta := tree.Metrics().Snapshot().Sub(before)

	// Leaf placement plus the split's three participants (left, right,
	// new root).
	if delta.Writes != 4 {
		t.Errorf("writes = %d, want 4", delta.Writes)
	}
}
