package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"slices"

	"github.com/treedex/treedex/internal/bplustree"
	"github.com/treedex/treedex/internal/btree"
	"github.com/treedex/treedex/internal/config"
	"github.com/treedex/treedex/internal/validate"
	"github.com/treedex/treedex/internal/workload"
)

// soakOpsPerKey scales the mutation count off the key pool size.
const soakOpsPerKey = 4

// soakTree is the surface the soak check drives. Scan reports ok=false
// on variants without ordered access.
type soakTree interface {
	Insert(key int) bool
	Delete(key int) bool
	Contains(key int) bool
	Len() int
	Validate() error
	Scan() ([]int, bool)
}

type btreeSoak struct {
	tree *btree.Tree[int]
}

func (s btreeSoak) Insert(key int) bool   { return s.tree.Insert(key) }
func (s btreeSoak) Delete(key int) bool   { return s.tree.Delete(key) }
func (s btreeSoak) Contains(key int) bool { return s.tree.Contains(key) }
func (s btreeSoak) Len() int              { return s.tree.Len() }
func (s btreeSoak) Validate() error       { return validate.BTree(s.tree) }
func (s btreeSoak) Scan() ([]int, bool)   { return nil, false }

type bplusSoak struct {
	tree *bplustree.Tree[int]
}

func (s bplusSoak) Insert(key int) bool   { return s.tree.Insert(key) }
func (s bplusSoak) Delete(key int) bool   { return s.tree.Delete(key) }
func (s bplusSoak) Contains(key int) bool { return s.tree.Contains(key) }
func (s bplusSoak) Len() int              { return s.tree.Len() }
func (s bplusSoak) Validate() error       { return validate.BPlusTree(s.tree) }
func (s bplusSoak) Scan() ([]int, bool)   { return s.tree.SequentialScan(), true }

func newSoak(variant string, fanout int) (soakTree, error) {
	switch variant {
	case "btree":
		t, err := btree.New[int](fanout)
		if err != nil {
			return nil, err
		}
		t.Recorder().Disable()
		return btreeSoak{tree: t}, nil
	case "bplustree":
		t, err := bplustree.New[int](fanout)
		if err != nil {
			return nil, err
		}
		t.Recorder().Disable()
		return bplusSoak{tree: t}, nil
	default:
		return nil, fmt.Errorf("unknown variant %q", variant)
	}
}

// checkCmd handles the check command.
func checkCmd(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	configPath := fs.String("config", "", "Configuration file path")
	variant := fs.String("variant", "both", "Tree variant: both, btree, bplustree")
	fanout := fs.Int("fanout", 0, "Tree fanout")
	keys := fs.Int("keys", 0, "Key pool size")
	seed := fs.Int64("seed", 0, "Workload seed")
	help := fs.Bool("h", false, "Show help message")
	helpLong := fs.Bool("help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printCheckUsage(os.Stdout)
		return 0
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fanout":
			cfg.Check.Fanout = *fanout
		case "keys":
			cfg.Check.Keys = *keys
		case "seed":
			cfg.Check.Seed = *seed
		}
	})
	applyEnvOverrides(cfg)

	if errs := config.ValidateConfig(cfg); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Configuration errors:")
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "  - %v\n", err)
		}
		return 1
	}

	var variants []string
	switch *variant {
	case "both":
		variants = []string{"btree", "bplustree"}
	case "btree", "bplustree":
		variants = []string{*variant}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", *variant)
		return 1
	}

	ops := soakOpsPerKey * cfg.Check.Keys
	fmt.Printf("Soak check: fanout %d, %d keys, %d ops, seed %d\n",
		cfg.Check.Fanout, cfg.Check.Keys, ops, cfg.Check.Seed)

	for _, v := range variants {
		t, err := newSoak(v, cfg.Check.Fanout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if err := runSoak(t, cfg.Check.Keys, ops, cfg.Check.Seed); err != nil {
			fmt.Fprintf(os.Stderr, "%s FAILED: %v\n", v, err)
			return 1
		}
		fmt.Printf("  %-10s ok, final size %d\n", v, t.Len())
	}

	fmt.Println("Check passed.")
	return 0
}

// runSoak drives random inserts and deletes against t while mirroring
// them in a map, and revalidates the structure after every mutation.
// Any disagreement between tree and map is a defect in the tree.
func runSoak(t soakTree, keys, ops int, seed int64) error {
	pool := workload.UniqueInts(keys, seed)
	model := make(map[int]bool, keys)
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < ops; i++ {
		key := workload.Choose(rng, pool)
		if rng.Intn(2) == 0 {
			applied := t.Insert(key)
			if applied == model[key] {
				return fmt.Errorf("op %d: insert %d returned %v with key present=%v",
					i, key, applied, model[key])
			}
			model[key] = true
		} else {
			applied := t.Delete(key)
			if applied != model[key] {
				return fmt.Errorf("op %d: delete %d returned %v with key present=%v",
					i, key, applied, model[key])
			}
			delete(model, key)
		}

		if err := t.Validate(); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
		if t.Len() != len(model) {
			return fmt.Errorf("op %d: size %d, want %d", i, t.Len(), len(model))
		}
	}

	for _, key := range pool {
		if t.Contains(key) != model[key] {
			return fmt.Errorf("contains %d: got %v, want %v", key, t.Contains(key), model[key])
		}
	}

	if got, ok := t.Scan(); ok {
		want := make([]int, 0, len(model))
		for key := range model {
			want = append(want, key)
		}
		slices.Sort(want)
		if !slices.Equal(got, want) {
			return fmt.Errorf("sequential scan returned %d keys, want %d in order", len(got), len(want))
		}
	}
	return nil
}
