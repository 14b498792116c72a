package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/treedex/treedex/internal/bplustree"
	"github.com/treedex/treedex/internal/btree"
	"github.com/treedex/treedex/internal/metrics"
	"github.com/treedex/treedex/internal/trace"
	"github.com/treedex/treedex/internal/validate"
)

// session abstracts the two tree variants behind the commands the shell
// accepts. Methods that only one variant supports report ok=false on
// the other.
type session interface {
	Variant() string
	Fanout() int
	Insert(key int) bool
	Delete(key int) bool
	Search(key int) string
	Range(lo, hi int) (string, bool)
	Scan() (string, bool)
	Levels() string
	Nodes() string
	Len() int
	Height() int
	Recorder() *trace.Recorder[int]
	Metrics() *metrics.Collector
	Validate() error
}

// newSession builds a fresh session for the variant.
func newSession(variant string, fanout int) (session, error) {
	switch variant {
	case "btree":
		t, err := btree.New[int](fanout)
		if err != nil {
			return nil, err
		}
		return &btreeSession{tree: t}, nil
	case "bplustree", "bplus":
		t, err := bplustree.New[int](fanout)
		if err != nil {
			return nil, err
		}
		return &bplusSession{tree: t}, nil
	default:
		return nil, fmt.Errorf("unknown variant %q", variant)
	}
}

// shellCmd handles the shell command.
func shellCmd(args []string) int {
	fs := flag.NewFlagSet("shell", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	variant := fs.String("variant", "bplustree", "Tree variant: btree, bplustree")
	fanout := fs.Int("fanout", 4, "Tree fanout")
	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printShellUsage(os.Stdout)
		return 0
	}

	s, err := newSession(*variant, *fanout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	rebuild := func() (session, error) { return newSession(*variant, *fanout) }
	return runShell(s, rebuild, os.Stdin, os.Stdout)
}

// runShell reads commands from in until EOF or quit.
func runShell(s session, rebuild func() (session, error), in io.Reader, out io.Writer) int {
	fmt.Fprintf(out, "treedex shell: %s, fanout %d. Type help for commands.\n", s.Variant(), s.Fanout())

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return 0
		}

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return 0

		case "help":
			printShellHelp(out)

		case "insert", "delete", "search":
			if len(args) == 0 {
				fmt.Fprintf(out, "usage: %s KEY...\n", cmd)
				continue
			}
			for _, arg := range args {
				key, err := strconv.Atoi(arg)
				if err != nil {
					fmt.Fprintf(out, "not an integer: %q\n", arg)
					continue
				}
				runKeyCommand(s, cmd, key, out)
			}

		case "range":
			lo, hi, ok := twoKeys(args, out)
			if !ok {
				continue
			}
			if result, supported := s.Range(lo, hi); supported {
				fmt.Fprintln(out, result)
			} else {
				fmt.Fprintf(out, "the %s variant has no ordered access\n", s.Variant())
			}

		case "scan":
			if result, supported := s.Scan(); supported {
				fmt.Fprintln(out, result)
			} else {
				fmt.Fprintf(out, "the %s variant has no ordered access\n", s.Variant())
			}

		case "levels":
			fmt.Fprintf(out, "size %d, height %d\n", s.Len(), s.Height())
			fmt.Fprint(out, s.Levels())

		case "nodes":
			fmt.Fprint(out, s.Nodes())

		case "trace":
			events := s.Recorder().Events()
			if len(events) == 0 {
				fmt.Fprintf(out, "no events for op %d\n", s.Recorder().Op())
				continue
			}
			fmt.Fprintf(out, "op %d:\n", s.Recorder().Op())
			printEvents(out, events)

		case "metrics":
			snap := s.Metrics().Snapshot()
			fmt.Fprintf(out, "reads %d, writes %d, total %d\n", snap.Reads, snap.Writes, snap.Total())

		case "validate":
			if err := s.Validate(); err != nil {
				fmt.Fprintf(out, "INVALID: %v\n", err)
			} else {
				fmt.Fprintln(out, "structure ok")
			}

		case "clear":
			s.Recorder().Clear()
			fmt.Fprintf(out, "trace cleared, next op %d\n", s.Recorder().Op())

		case "reset":
			fresh, err := rebuild()
			if err != nil {
				fmt.Fprintf(out, "reset failed: %v\n", err)
				continue
			}
			s = fresh
			fmt.Fprintf(out, "fresh %s, fanout %d\n", s.Variant(), s.Fanout())

		default:
			fmt.Fprintf(out, "unknown command %q; try help\n", cmd)
		}
	}
}

// runKeyCommand executes one insert, delete, or search and prints its
// event log. Searches start a fresh operation so the log holds only
// their own steps.
func runKeyCommand(s session, cmd string, key int, out io.Writer) {
	switch cmd {
	case "insert":
		if !s.Insert(key) {
			fmt.Fprintf(out, "duplicate %d ignored\n", key)
			return
		}
		fmt.Fprintf(out, "inserted %d\n", key)
	case "delete":
		if !s.Delete(key) {
			fmt.Fprintf(out, "missing %d ignored\n", key)
			return
		}
		fmt.Fprintf(out, "deleted %d\n", key)
	case "search":
		s.Recorder().Clear()
		fmt.Fprintln(out, s.Search(key))
	}
	printEvents(out, s.Recorder().Events())
}

func twoKeys(args []string, out io.Writer) (int, int, bool) {
	if len(args) != 2 {
		fmt.Fprintln(out, "usage: range LO HI")
		return 0, 0, false
	}
	lo, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(out, "not an integer: %q\n", args[0])
		return 0, 0, false
	}
	hi, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(out, "not an integer: %q\n", args[1])
		return 0, 0, false
	}
	return lo, hi, true
}

func printShellHelp(w io.Writer) {
	fmt.Fprint(w, `Commands:
  insert KEY...   Insert keys, printing the event log per key
  delete KEY...   Delete keys, printing the event log per key
  search KEY...   Locate keys, printing the traced descent
  range LO HI     Keys in [LO, HI] in order (bplustree only)
  scan            All keys in order (bplustree only)
  levels          Level-order structure dump
  nodes           Per-node dump with IDs
  trace           Re-print the current operation's event log
  metrics         Logical read/write counters
  validate        Check structural invariants
  clear           Drop the recorded events
  reset           Start over with an empty tree
  help            This list
  quit            Leave the shell
`)
}

// ==== Variant adapters ====

type btreeSession struct {
	tree *btree.Tree[int]
}

func (s *btreeSession) Variant() string { return "btree" }
func (s *btreeSession) Fanout() int     { return s.tree.Fanout() }

func (s *btreeSession) Insert(key int) bool { return s.tree.Insert(key) }
func (s *btreeSession) Delete(key int) bool { return s.tree.Delete(key) }

func (s *btreeSession) Search(key int) string {
	res := s.tree.Search(key)
	if !res.Found {
		return fmt.Sprintf("not found, descent %s", formatPath(res.Path))
	}
	return fmt.Sprintf("found in n%d at slot %d, descent %s", res.NodeID, res.Index, formatPath(res.Path))
}

func (s *btreeSession) Range(lo, hi int) (string, bool) { return "", false }
func (s *btreeSession) Scan() (string, bool)            { return "", false }

func (s *btreeSession) Levels() string { return formatLevels(s.tree.Levels()) }

func (s *btreeSession) Nodes() string {
	var sb strings.Builder
	for _, n := range s.tree.AllNodes() {
		kind := "internal"
		if n.Leaf {
			kind = "leaf"
		}
		fmt.Fprintf(&sb, "n%-4d %-8s keys %v", n.ID, kind, n.Keys)
		if len(n.Children) > 0 {
			ids := make([]string, len(n.Children))
			for i, c := range n.Children {
				ids[i] = fmt.Sprintf("n%d", c.ID)
			}
			fmt.Fprintf(&sb, " children [%s]", strings.Join(ids, " "))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (s *btreeSession) Len() int                       { return s.tree.Len() }
func (s *btreeSession) Height() int                    { return s.tree.Height() }
func (s *btreeSession) Recorder() *trace.Recorder[int] { return s.tree.Recorder() }
func (s *btreeSession) Metrics() *metrics.Collector    { return s.tree.Metrics() }
func (s *btreeSession) Validate() error                { return validate.BTree(s.tree) }

type bplusSession struct {
	tree *bplustree.Tree[int]
}

func (s *bplusSession) Variant() string { return "bplustree" }
func (s *bplusSession) Fanout() int     { return s.tree.Fanout() }

func (s *bplusSession) Insert(key int) bool { return s.tree.Insert(key) }
func (s *bplusSession) Delete(key int) bool { return s.tree.Delete(key) }

func (s *bplusSession) Search(key int) string {
	res := s.tree.Search(key)
	if !res.Found {
		return fmt.Sprintf("not found, descent %s", formatPath(res.Path))
	}
	return fmt.Sprintf("found in leaf n%d at slot %d, descent %s", res.NodeID, res.Index, formatPath(res.Path))
}

func (s *bplusSession) Range(lo, hi int) (string, bool) {
	return fmt.Sprintf("%v", s.tree.RangeQuery(lo, hi)), true
}

func (s *bplusSession) Scan() (string, bool) {
	return fmt.Sprintf("%v", s.tree.SequentialScan()), true
}

func (s *bplusSession) Levels() string { return formatLevels(s.tree.Levels()) }

func (s *bplusSession) Nodes() string {
	var sb strings.Builder
	for _, n := range s.tree.AllNodes() {
		kind := "internal"
		if n.Leaf {
			kind = "leaf"
		}
		fmt.Fprintf(&sb, "n%-4d %-8s keys %v", n.ID, kind, n.Keys)
		if len(n.Children) > 0 {
			ids := make([]string, len(n.Children))
			for i, c := range n.Children {
				ids[i] = fmt.Sprintf("n%d", c.ID)
			}
			fmt.Fprintf(&sb, " children [%s]", strings.Join(ids, " "))
		}
		if n.Leaf {
			if n.Next != nil {
				fmt.Fprintf(&sb, " next n%d", n.Next.ID)
			} else {
				sb.WriteString(" next -")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (s *bplusSession) Len() int                       { return s.tree.Len() }
func (s *bplusSession) Height() int                    { return s.tree.Height() }
func (s *bplusSession) Recorder() *trace.Recorder[int] { return s.tree.Recorder() }
func (s *bplusSession) Metrics() *metrics.Collector    { return s.tree.Metrics() }
func (s *bplusSession) Validate() error                { return validate.BPlusTree(s.tree) }
