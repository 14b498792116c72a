// Package workload generates deterministic key sets and drives batches of
// tree operations.
package workload

import (
	"math/rand"
	"testing"

	"github.com/treedex/treedex/internal/bplustree"
	"github.com/treedex/treedex/internal/btree"
)

// Both tree variants must satisfy the workload surface.
var (
	_ Tree[int]    = (*btree.Tree[int])(nil)
	_ Tree[int]    = (*bplustree.Tree[int])(nil)
	_ Tree[string] = (*btree.Tree[string])(nil)
	_ Tree[string] = (*bplustree.Tree[string])(nil)
)

func TestUniqueInts(t *testing.T) {
	keys := UniqueInts(500, 42)
	if len(keys) != 500 {
		t.Fatalf("len = %d, want 500", len(keys))
	}
	seen := make(map[int]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			t.Fatalf("duplicate key %d", k)
		}
		seen[k] = true
		if k < 0 || k >= 5000 {
			t.Fatalf("key %d outside [0, 5000)", k)
		}
	}

	again := UniqueInts(500, 42)
	for i := range keys {
		if keys[i] != again[i] {
			t.Fatal("same seed produced a different sequence")
		}
	}

	other := UniqueInts(500, 43)
	same := true
	for i := range keys {
		if keys[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced an identical sequence")
	}
}

func TestRandomStrings(t *testing.T) {
	words := RandomStrings(200, 8, 7)
	if len(words) != 200 {
		t.Fatalf("len = %d, want 200", len(words))
	}
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if len(w) != 8 {
			t.Fatalf("word %q has length %d, want 8", w, len(w))
		}
		if seen[w] {
			t.Fatalf("duplicate word %q", w)
		}
		seen[w] = true
	}

	again := RandomStrings(200, 8, 7)
	for i := range words {
		if words[i] != again[i] {
			t.Fatal("same seed produced different words")
		}
	}
}

func TestChoose(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	items := []int{3, 5, 7}
	for i := 0; i < 50; i++ {
		got := Choose(rng, items)
		if got != 3 && got != 5 && got != 7 {
			t.Fatalf("Choose returned %d, not a member", got)
		}
	}
}

func TestBatchInsert(t *testing.T) {
	tree, err := btree.New[int](4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	keys := UniqueInts(100, 1)

	res := BatchInsert[int](tree, keys)
	if res.Applied != 100 {
		t.Errorf("Applied = %d, want 100", res.Applied)
	}
	if tree.Len() != 100 {
		t.Errorf("Len = %d, want 100", tree.Len())
	}
	if res.Reads == 0 || res.Writes == 0 {
		t.Errorf("result = %+v, want nonzero reads and writes", res)
	}

	// Replaying the same batch applies nothing and writes nothing.
	res = BatchInsert[int](tree, keys)
	if res.Applied != 0 {
		t.Errorf("replay Applied = %d, want 0", res.Applied)
	}
	if res.Writes != 0 {
		t.Errorf("replay Writes = %d, want 0", res.Writes)
	}
	if res.Reads == 0 {
		t.Error("replay counted no reads despite probing")
	}
}

func TestBatchDelete(t *testing.T) {
	tree, err := bplustree.New[int](4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	keys := UniqueInts(100, 1)
	BatchInsert[int](tree, keys)

	res := BatchDelete[int](tree, keys[:50])
	if res.Applied != 50 {
		t.Errorf("Applied = %d, want 50", res.Applied)
	}
	if tree.Len() != 50 {
		t.Errorf("Len = %d, want 50", tree.Len())
	}

	res = BatchDelete[int](tree, keys[:50])
	if res.Applied != 0 {
		t.Errorf("replay Applied = %d, want 0", res.Applied)
	}
	if res.Writes != 0 {
		t.Errorf("replay Writes = %d, want 0", res.Writes)
	}
}

func TestRunMix(t *testing.T) {
	keys := UniqueInts(200, 3)

	run := func() Result {
		tree, err := btree.New[int](5)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		BatchInsert[int](tree, keys[:100])
		return RunMix[int](tree, keys, Balanced, 500, 99)
	}

	first := run()
	if first.Reads == 0 {
		t.Error("mixed run counted no reads")
	}

	second := run()
	if first.Applied != second.Applied || first.Reads != second.Reads || first.Writes != second.Writes {
		t.Errorf("same seed diverged: %+v vs %+v", first, second)
	}
}

func TestMixByName(t *testing.T) {
	cases := []struct {
		name string
		want Mix
		ok   bool
	}{
		{"read-heavy", ReadHeavy, true},
		{"write-heavy", WriteHeavy, true},
		{"balanced", Balanced, true},
		{"", Balanced, true},
		{"oltp", Mix{}, false},
	}
	for _, tc := range cases {
		got, ok := MixByName(tc.name)
		if ok != tc.ok {
			t.Errorf("MixByName(%q) ok = %v, want %v", tc.name, ok, tc.ok)
			continue
		}
		if got != tc.want {
			t.Errorf("MixByName(%q) = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestMixPercentagesCoverAllOperations(t *testing.T) {
	for _, mix := range []Mix{ReadHeavy, WriteHeavy, Balanced} {
		if mix.SearchPercent+mix.InsertPercent > 100 {
			t.Errorf("%s: shares exceed 100", mix.Name)
		}
		if mix.Name == "" {
			t.Error("mix with empty name")
		}
	}
}
