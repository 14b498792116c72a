// Package bplustree implements an instrumented, in-memory B+ Tree index.
package bplustree

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/treedex/treedex/internal/metrics"
	"github.com/treedex/treedex/internal/trace"
)

// ============================================================
// Helpers
// ============================================================

func mustNewTree(t *testing.T, fanout int) *Tree[int] {
	t.Helper()
	tree, err := New[int](fanout)
	if err != nil {
		t.Fatalf("New(%d): %v", fanout, err)
	}
	return tree
}

func insertAll(t *testing.T, tree *Tree[int], keys ...int) {
	t.Helper()
	for _, k := range keys {
		if !tree.Insert(k) {
			t.Fatalf("Insert(%d) = false, want true", k)
		}
	}
}

// formatLevels renders a Levels result as one line per depth, levels
// joined by " | ", nodes by ",". A two-level tree prints as
// "[10] | [5],[10 20]".
func formatLevels(levels [][][]int) string {
	var parts []string
	for _, level := range levels {
		var nodes []string
		for _, keys := range level {
			strs := make([]string, len(keys))
			for i, k := range keys {
				strs[i] = strconv.Itoa(k)
			}
			nodes = append(nodes, "["+strings.Join(strs, " ")+"]")
		}
		parts = append(parts, strings.Join(nodes, ","))
	}
	return strings.Join(parts, " | ")
}

func wantLevels(t *testing.T, tree *Tree[int], want string) {
	t.Helper()
	if got := formatLevels(tree.Levels()); got != want {
		t.Fatalf("tree shape mismatch\n got: %s\nwant: %s", got, want)
	}
}

func eventTypes(events []trace.Event[int]) []trace.EventType {
	types := make([]trace.EventType, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func hasEvent(events []trace.Event[int], typ trace.EventType) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

// chainKeys walks the leaf chain directly, bypassing the iterator.
func chainKeys(tree *Tree[int]) []int {
	keys := []int{}
	for leaf := tree.FirstLeaf(); leaf != nil; leaf = leaf.Next {
		keys = append(keys, leaf.Keys...)
	}
	return keys
}

func wantKeys(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("key sequence length = %d, want %d (got %v, want %v)", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("key sequence[%d] = %d, want %d (got %v, want %v)", i, got[i], want[i], got, want)
		}
	}
}

// ============================================================
// Construction
// ============================================================

func TestNewFanoutBounds(t *testing.T) {
	for _, fanout := range []int{3, 4, 7, 10} {
		if _, err := New[int](fanout); err != nil {
			t.Errorf("New(%d): unexpected error %v", fanout, err)
		}
	}
	for _, fanout := range []int{-1, 0, 1, 2, 11, 100} {
		_, err := New[int](fanout)
		if !errors.Is(err, ErrFanoutOutOfRange) {
			t.Errorf("New(%d): error = %v, want ErrFanoutOutOfRange", fanout, err)
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
	col := metrics.NewCollector()
	tree, err := NewWithInstruments(4, rec, col)
	if err != nil {
		t.Fatalf("NewWithInstruments: %v", err)
	}
	if tree.Recorder() != rec {
		t.Error("Recorder() does not return the recorder passed in")
	}
	if tree.Metrics() != col {
		t.Error("Metrics() does not return the collector passed in")
	}

	tree, err = NewWithInstruments[int](4, nil, nil)
	if err != nil {
		t.Fatalf("NewWithInstruments(nil, nil): %v", err)
	}
	if tree.Recorder() == nil || tree.Metrics() == nil {
		t.Error("nil instruments were not replaced")
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
	if !tree.Root().Leaf {
		t.Error("empty tree root is not a leaf")
	}
	if tree.FirstLeaf() != tree.Root() {
		t.Error("FirstLeaf of empty tree is not the root")
	}
	if got := len(tree.AllNodes()); got != 1 {
		t.Errorf("AllNodes returned %d nodes, want 1", got)
	}
	if scan := tree.SequentialScan(); len(scan) != 0 {
		t.Errorf("SequentialScan = %v, want empty", scan)
	}
}

func TestLevelsCopiesKeys(t *testing.T) {
	tree := mustNewTree(t, 3)
	insertAll(t, tree, 10, 20)

	levels := tree.Levels()
	levels[0][0][0] = 999
	if tree.Root().Keys[0] != 10 {
		t.Error("mutating Levels result changed the tree")
	}
}

func TestStringKeys(t *testing.T) {
	tree, err := New[string](4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, w := range []string{"delta", "alpha", "echo", "bravo", "charlie", "foxtrot", "golf"} {
		if !tree.Insert(w) {
			t.Fatalf("Insert(%q) = false", w)
		}
	}
	want := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf"}
	got := tree.SequentialScan()
	if len(got) != len(want) {
		t.Fatalf("SequentialScan = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SequentialScan = %v, want %v", got, want)
		}
	}
	for _, w := range want {
		if !tree.Search(w).Found {
			t.Errorf("Search(%q) not found after insert", w)
		}
	}
	if got := tree.RangeQuery("bravo", "echo"); len(got) != 4 || got[0] != "bravo" || got[3] != "echo" {
		t.Errorf("RangeQuery(bravo, echo) = %v", got)
	}
}
