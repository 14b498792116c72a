package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	if code := runDemo(&out); code != 0 {
		t.Fatalf("runDemo exit code = %d, want 0", code)
	}
	text := out.String()

	for _, want := range []string{
		"==== B-Tree, fanout 3 ====",
		"==== B+ Tree, fanout 4 ====",
		"insert 10:",
		"split_node",
		"new_root",
		"search 12:",
		"delete 6:",
		"replace_with_predecessor",
		"merge",
		"shrink_root",
		"range 20..50: [20 30 40 50]",
		"redistribute",
		"sequential scan: [10 20 30 40 50 60 70]",
		"validation: structure ok",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("demo output missing %q", want)
		}
	}
}

// The eight-key insert sequence must land in the classic three-level
// shape before any deletes run.
func TestRunDemoBTreeShape(t *testing.T) {
	var out bytes.Buffer
	if code := runDemo(&out); code != 0 {
		t.Fatalf("runDemo exit code = %d, want 0", code)
	}
	text := out.String()

	shape := "level 0: [10]\nlevel 1: [6] [20]\nlevel 2: [5] [7] [12 17] [30]\n"
	if !strings.Contains(text, shape) {
		t.Errorf("demo output missing the expected structure dump:\n%s", shape)
	}
}
