// Package benchmarks provides tools for running and reporting index benchmark results.
package benchmarks

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// pebbleIndex wraps Pebble, CockroachDB's LSM storage engine, as the
// on-disk baseline the in-memory trees are compared against.
type pebbleIndex struct {
	db *pebble.DB
}

// NewPebbleIndex opens (or creates) a Pebble database under dir.
func NewPebbleIndex(dir string) (Index, error) {
	opts := &pebble.Options{
		MemTableSize:                16 << 20,
		MemTableStopWritesThreshold: 4,
		L0CompactionThreshold:       4,
		L0StopWritesThreshold:       12,
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("benchmarks: pebble open: %w", err)
	}
	return &pebbleIndex{db: db}, nil
}

func (p *pebbleIndex) Name() string { return "pebble" }

// Insert is an upsert. Reporting a duplicate would cost a read first,
// so it always counts as applied.
func (p *pebbleIndex) Insert(key int64) bool {
	return p.db.Set(encodeKey(key), []byte{1}, pebble.NoSync) == nil
}

func (p *pebbleIndex) Search(key int64) bool {
	_, closer, err := p.db.Get(encodeKey(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return false
	}
	if err != nil {
		return false
	}
	closer.Close()
	return true
}

// Delete writes a tombstone whether or not the key exists, so like
// Insert it always counts as applied.
func (p *pebbleIndex) Delete(key int64) bool {
	return p.db.Delete(encodeKey(key), pebble.NoSync) == nil
}

func (p *pebbleIndex) Scan(lo, hi int64) int {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: encodeKey(lo),
		UpperBound: encodeKeyExclusive(hi),
	})
	if err != nil {
		return 0
	}
	defer iter.Close()

	n := 0
	for iter.First(); iter.Valid(); iter.Next() {
		n++
	}
	return n
}

func (p *pebbleIndex) Close() error { return p.db.Close() }

// encodeKey encodes an int64 as a big-endian 8-byte slice with the sign
// bit flipped, so byte order matches key order across the full range.
func encodeKey(k int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(k)^(1<<63))
	return b
}

// encodeKeyExclusive converts an inclusive upper bound into the
// exclusive form Pebble's IterOptions.UpperBound expects. Appending a
// zero byte sorts immediately after the bound itself and cannot
// overflow at the top of the key space.
func encodeKeyExclusive(k int64) []byte {
	return append(encodeKey(k), 0)
}
