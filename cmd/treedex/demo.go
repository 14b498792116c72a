package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// demoCmd handles the demo command.
func demoCmd(args []string) int {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printDemoUsage(os.Stdout)
		return 0
	}

	return runDemo(os.Stdout)
}

// runDemo walks both tree variants through a scripted session, printing
// the event log after every traced operation.
func runDemo(w io.Writer) int {
	if err := demoBTree(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := demoBPlusTree(w); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func demoBTree(w io.Writer) error {
	fmt.Fprintln(w, "==== B-Tree, fanout 3 ====")
	s, err := newSession("btree", 3)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	for _, key := range []int{10, 20, 5, 6, 12, 30, 7, 17} {
		fmt.Fprintf(w, "insert %d:\n", key)
		s.Insert(key)
		printEvents(w, s.Recorder().Events())
	}

	fmt.Fprintf(w, "\nstructure after %d inserts:\n", s.Len())
	fmt.Fprint(w, s.Levels())

	fmt.Fprintln(w, "\nsearch 12:")
	s.Recorder().Clear()
	fmt.Fprintf(w, "  %s\n", s.Search(12))
	printEvents(w, s.Recorder().Events())

	// Deleting 6 pulls its successor out of a minimal leaf and forces
	// two merges plus a root shrink.
	fmt.Fprintln(w, "\ndelete 6:")
	s.Delete(6)
	printEvents(w, s.Recorder().Events())

	fmt.Fprintln(w, "\nstructure after delete:")
	fmt.Fprint(w, s.Levels())

	if err := s.Validate(); err != nil {
		return err
	}
	fmt.Fprintln(w, "\nvalidation: structure ok")
	return nil
}

func demoBPlusTree(w io.Writer) error {
	fmt.Fprintln(w, "\n==== B+ Tree, fanout 4 ====")
	s, err := newSession("bplustree", 4)
	if err != nil {
		return err
	}

	for key := 10; key <= 100; key += 10 {
		s.Insert(key)
	}
	fmt.Fprintf(w, "\nstructure after %d inserts:\n", s.Len())
	fmt.Fprint(w, s.Levels())

	if result, ok := s.Range(20, 50); ok {
		fmt.Fprintf(w, "\nrange 20..50: %s\n", result)
	}

	fmt.Fprintln(w, "\nsearch 60:")
	s.Recorder().Clear()
	fmt.Fprintf(w, "  %s\n", s.Search(60))
	printEvents(w, s.Recorder().Events())

	// 90 leaves a stale separator behind, 100 underflows its leaf into a
	// borrow, and 80 cascades a leaf merge into an internal borrow.
	for _, key := range []int{90, 100, 80} {
		fmt.Fprintf(w, "\ndelete %d:\n", key)
		s.Delete(key)
		printEvents(w, s.Recorder().Events())
	}

	fmt.Fprintln(w, "\nstructure after deletes:")
	fmt.Fprint(w, s.Levels())

	if result, ok := s.Scan(); ok {
		fmt.Fprintf(w, "\nsequential scan: %s\n", result)
	}

	if err := s.Validate(); err != nil {
		return err
	}
	fmt.Fprintln(w, "\nvalidation: structure ok")
	return nil
}
