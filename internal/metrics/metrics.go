// Package metrics counts the logical I/O of tree operations.
//
// # Overview
//
// The engines tick one read per node they touch and one write per node they
// mutate. Because the trees are entirely in memory, the counters measure
// algorithmic cost (how many nodes an operation visits) rather than
// physical I/O, which makes variants comparable independent of hardware.
//
// A collector also carries a simple wall-clock timer for batch measurements.
// Collectors are not safe for concurrent use.
package metrics

import "time"

// Snapshot is a point-in-time copy of the counters, useful for computing
// before/after deltas around an operation.
type Snapshot struct {
	Reads  uint64 `json:"reads"`
	Writes uint64 `json:"writes"`
}

// Sub returns the delta between s and an earlier snapshot.
func (s Snapshot) Sub(earlier Snapshot) Snapshot {
	return Snapshot{
		Reads:  s.Reads - earlier.Reads,
		Writes: s.Writes - earlier.Writes,
	}
}

// Total returns reads plus writes.
func (s Snapshot) Total() uint64 {
	return s.Reads + s.Writes
}

// Collector accumulates logical read/write counts and holds the timer.
// The zero value is ready to use; NewCollector exists for symmetry with
// the other instrument constructors.
type Collector struct {
	reads   uint64
	writes  uint64
	start   time.Time
	running bool
	elapsed time.Duration
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// CountRead records one logical node read.
func (c *Collector) CountRead() {
	c.reads++
}

// CountWrite records one logical node write.
func (c *Collector) CountWrite() {
	c.writes++
}

// Reads returns the accumulated read count.
func (c *Collector) Reads() uint64 {
	return c.reads
}

// Writes returns the accumulated write count.
func (c *Collector) Writes() uint64 {
	return c.writes
}

// Total returns reads plus writes.
func (c *Collector) Total() uint64 {
	return c.reads + c.writes
}

// Snapshot returns a copy of the current counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{Reads: c.reads, Writes: c.writes}
}

// ResetCounters zeroes the counters and leaves the timer alone.
func (c *Collector) ResetCounters() {
	c.reads = 0
	c.writes = 0
}

// Reset zeroes the counters and the timer state.
func (c *Collector) Reset() {
	c.ResetCounters()
	c.start = time.Time{}
	c.running = false
	c.elapsed = 0
}

// StartTimer begins a measurement. A second call restarts it.
func (c *Collector) StartTimer() {
	c.start = time.Now()
	c.running = true
}

// StopTimer ends the measurement, records it, and returns the elapsed time.
// Stopping a timer that was never started returns zero.
func (c *Collector) StopTimer() time.Duration {
	if !c.running {
		return 0
	}
	c.elapsed = time.Since(c.start)
	c.running = false
	return c.elapsed
}

// Elapsed returns the most recently stopped measurement.
func (c *Collector) Elapsed() time.Duration {
	return c.elapsed
}
