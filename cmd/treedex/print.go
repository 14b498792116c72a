package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/treedex/treedex/internal/trace"
)

// formatEvent renders one recorded step as a single line.
func formatEvent(ev trace.Event[int]) string {
	node := "-"
	if ev.NodeID.Valid() {
		node = fmt.Sprintf("n%d", ev.NodeID)
	}

	var detail string
	switch d := ev.Detail.(type) {
	case trace.VisitNodeDetail[int]:
		detail = fmt.Sprintf("keys %v", d.Keys)
	case trace.CompareKeyDetail[int]:
		detail = fmt.Sprintf("slot %d: %d vs %d", d.KeyIndex, d.SearchKey, d.NodeKey)
	case trace.DescendDetail:
		detail = fmt.Sprintf("child %d", d.ChildIndex)
	case trace.InsertInLeafDetail[int]:
		detail = fmt.Sprintf("key %d, leaf now %v", d.Key, d.Keys)
	case trace.SplitNodeDetail[int]:
		detail = fmt.Sprintf("promote %d, left n%d %v, right n%d %v",
			d.PromotedKey, d.LeftID, d.LeftKeys, d.RightID, d.RightKeys)
	case trace.NewRootDetail[int]:
		detail = fmt.Sprintf("promote %d over n%d", d.PromotedKey, d.OldRootID)
	case trace.SearchFoundDetail[int]:
		detail = fmt.Sprintf("key %d at slot %d", d.Key, d.KeyIndex)
	case trace.SearchNotFoundDetail[int]:
		detail = fmt.Sprintf("key %d", d.Key)
	case trace.DeleteRequestDetail[int]:
		detail = fmt.Sprintf("key %d", d.Key)
	case trace.DeleteFoundDetail[int]:
		detail = fmt.Sprintf("key %d at slot %d", d.Key, d.KeyIndex)
	case trace.DeleteInLeafDetail[int]:
		detail = fmt.Sprintf("key %d, leaf now %v", d.Key, d.Keys)
	case trace.ReplaceWithPredecessorDetail[int]:
		source := "predecessor"
		if d.FromSuccessor {
			source = "successor"
		}
		detail = fmt.Sprintf("key %d at slot %d replaced by %s %d",
			d.Key, d.KeyIndex, source, d.Replacement)
	case trace.UnderflowDetail:
		detail = fmt.Sprintf("%d keys, minimum %d", d.KeyCount, d.MinKeys)
	case trace.RedistributeDetail:
		detail = fmt.Sprintf("n%d gives to n%d through n%d slot %d",
			d.FromID, d.ToID, d.ParentID, d.ParentKeyIndex)
	case trace.MergeDetail[int]:
		detail = fmt.Sprintf("n%d absorbs n%d under n%d, separator %d, now %v",
			d.LeftID, d.RightID, d.ParentID, d.SeparatorKey, d.MergedKeys)
	case trace.ShrinkRootDetail:
		detail = fmt.Sprintf("n%d hands root to n%d", d.OldRootID, d.NewRootID)
	}

	if detail == "" {
		return fmt.Sprintf("%-24s %-5s", ev.Type, node)
	}
	return fmt.Sprintf("%-24s %-5s %s", ev.Type, node, detail)
}

// printEvents writes the event list indented one level.
func printEvents(w io.Writer, events []trace.Event[int]) {
	for _, ev := range events {
		fmt.Fprintf(w, "  %s\n", formatEvent(ev))
	}
}

// formatLevels renders a level-order dump, one tree level per line.
func formatLevels(levels [][][]int) string {
	var sb strings.Builder
	for depth, level := range levels {
		fmt.Fprintf(&sb, "level %d:", depth)
		for _, keys := range level {
			fmt.Fprintf(&sb, " %v", keys)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// formatPath renders a root-to-node descent.
func formatPath(path []trace.NodeID) string {
	if len(path) == 0 {
		return "-"
	}
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = fmt.Sprintf("n%d", id)
	}
	return strings.Join(parts, " > ")
}
