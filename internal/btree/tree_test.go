package btree

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/treedex/treedex/internal/trace"
)

// ============================================================
// Test helpers
// ============================================================

// mustNewTree creates a tree or fails the test.
func mustNewTree(t *testing.T, fanout int) *Tree[int] {
	t.Helper()
	tree, err := New[int](fanout)
	if err != nil {
		t.Fatalf("New(%d) failed: %v", fanout, err)
	}
	return tree
}

// insertAll inserts keys one by one, failing on a rejected key.
func insertAll(t *testing.T, tree *Tree[int], keys ...int) {
	t.Helper()
	for _, k := range keys {
		if !tree.Insert(k) {
			t.Fatalf("Insert(%d) was rejected", k)
		}
	}
}

// formatLevels renders Levels() as one line per tree, levels separated by
// " | ", nodes by ",", keys by spaces: "[10] | [5 6],[20]".
func formatLevels(levels [][][]int) string {
	var sb strings.Builder
	for li, level := range levels {
		if li > 0 {
			sb.WriteString(" | ")
		}
		for ni, keys := range level {
			if ni > 0 {
				sb.WriteString(",")
			}
			sb.WriteString("[")
			for ki, k := range keys {
				if ki > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(strconv.Itoa(k))
			}
			sb.WriteString("]")
		}
	}
	return sb.String()
}

// wantLevels compares the tree structure against its rendered form.
func wantLevels(t *testing.T, tree *Tree[int], want string) {
	t.Helper()
	if got := formatLevels(tree.Levels()); got != want {
		t.Fatalf("unexpected structure:\n got: %s\nwant: %s", got, want)
	}
}

// eventTypes projects the recorded events onto their types.
func eventTypes(events []trace.Event[int]) []trace.EventType {
	out := make([]trace.EventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

// hasEvent reports whether an event of the given type was recorded.
func hasEvent(events []trace.Event[int], typ trace.EventType) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

// ============================================================
// Construction
// ============================================================

func TestNewFanoutBounds(t *testing.T) {
	for _, fanout := range []int{3, 4, 7, 10} {
		if _, err := New[int](fanout); err != nil {
			t.Errorf("New(%d) failed: %v", fanout, err)
		}
	}
	for _, fanout := range []int{-1, 0, 1, 2, 11, 100} {
		_, err := New[int](fanout)
		if err == nil {
			t.Errorf("New(%d) should have failed", fanout)
			continue
		}
		if !errors.Is(err, ErrFanoutOutOfRange) {
			t.Errorf("New(%d): expected ErrFanoutOutOfRange, got %v", fanout, err)
		}
	}
}

func TestNewOccupancyBounds(t *testing.T) {
	tests := []struct {
		fanout  int
		maxKeys int
		minKeys int
	}{
		{3, 2, 1},
		{4, 3, 1},
		{5, 4, 2},
		{6, 5, 2},
		{7, 6, 3},
		{10, 9, 4},
	}
	for _, tt := range tests {
		tree := mustNewTree(t, tt.fanout)
		if tree.MaxKeys() != tt.maxKeys {
			t.Errorf("fanout %d: MaxKeys = %d, want %d", tt.fanout, tree.MaxKeys(), tt.maxKeys)
		}
		if tree.MinKeys() != tt.minKeys {
			t.Errorf("fanout %d: MinKeys = %d, want %d", tt.fanout, tree.MinKeys(), tt.minKeys)
		}
	}
}

func TestNewWithInstruments(t *testing.T) {
	rec := trace.NewRecorder[int]()
	tree, err := NewWithInstruments[int](3, rec, nil)
	if err != nil {
		t.Fatalf("NewWithInstruments failed: %v", err)
	}
	if tree.Recorder() != rec {
		t.Error("tree does not use the provided recorder")
	}
	if tree.Metrics() == nil {
		t.Error("nil collector was not replaced")
	}

	tree.Insert(1)
	if rec.Len() == 0 {
		t.Error("provided recorder captured no events")
	}
}

func TestEmptyTree(t *testing.T) {
	tree := mustNewTree(t, 3)

	if tree.Len() != 0 {
		t.Errorf("Len = %d, want 0", tree.Len())
	}
	if tree.Height() != 1 {
		t.Errorf("Height = %d, want 1", tree.Height())
	}
	root := tree.Root()
	if root == nil || !root.Leaf || root.KeyCount() != 0 {
		t.Errorf("unexpected empty root: %+v", root)
	}
	if root.ID != 0 {
		t.Errorf("root id = %d, want 0", root.ID)
	}
	if got := len(tree.AllNodes()); got != 1 {
		t.Errorf("AllNodes length = %d, want 1", got)
	}
}

// ============================================================
// Introspection
// ============================================================

func TestLevelsAndAllNodes(t *testing.T) {
	tree := mustNewTree(t, 3)
	insertAll(t, tree, 10, 20, 5, 6, 12, 30, 7, 17)

	wantLevels(t, tree, "[10] | [6],[20] | [5],[7],[12 17],[30]")

	if tree.Height() != 3 {
		t.Errorf("Height = %d, want 3", tree.Height())
	}
	if tree.Len() != 8 {
		t.Errorf("Len = %d, want 8", tree.Len())
	}

	nodes := tree.AllNodes()
	if len(nodes) != 7 {
		t.Fatalf("AllNodes length = %d, want 7", len(nodes))
	}
	if nodes[0] != tree.Root() {
		t.Error("AllNodes does not start at the root")
	}

	// Breadth-first order: ids must match the Levels traversal.
	seen := map[trace.NodeID]bool{}
	for _, n := range nodes {
		if seen[n.ID] {
			t.Fatalf("node %d listed twice", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestLevelsCopiesKeys(t *testing.T) {
	tree := mustNewTree(t, 3)
	insertAll(t, tree, 1, 2)

	levels := tree.Levels()
	levels[0][0][0] = 99

	if tree.Root().Keys[0] == 99 {
		t.Error("mutating Levels output changed the tree")
	}
}

func TestStringKeys(t *testing.T) {
	tree, err := New[string](4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	words := []string{"delta", "alpha", "echo", "bravo", "charlie", "foxtrot", "golf"}
	for _, w := range words {
		if !tree.Insert(w) {
			t.Fatalf("Insert(%q) was rejected", w)
		}
	}

	if !tree.Contains("charlie") {
		t.Error("expected to find charlie")
	}
	if tree.Contains("hotel") {
		t.Error("hotel should be absent")
	}

	levels := tree.Levels()
	if len(levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(levels))
	}
	if levels[0][0][0] != "delta" {
		t.Errorf("root key = %q, want %q", levels[0][0][0], "delta")
	}
}
