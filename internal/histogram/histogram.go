// Package histogram implements the shared stopping-time frequency table.
//
// A single Histogram is shared by all workers of a run. Updates come in two
// disciplines: Record serializes each increment behind a mutex, while
// RecordUnsynced performs the increment with no coordination at all. The
// unsynchronized path exists to demonstrate lost-update races and is racy on
// purpose; it must only be selected when that is the desired behavior.
package histogram

import "sync"

const (
	// MaxStoppingTime is the highest stopping time the histogram tracks.
	// It matches the evaluator's step cap, so every evaluator result has a
	// bucket and nothing in range is ever dropped.
	MaxStoppingTime = 1000

	// NumBuckets is the number of buckets, covering 0..MaxStoppingTime inclusive.
	NumBuckets = MaxStoppingTime + 1
)

// Histogram is a fixed-size frequency table indexed by stopping time.
// Bucket i counts the inputs whose stopping time is exactly i.
type Histogram struct {
	mu      sync.Mutex
	buckets [NumBuckets]uint64
}

// New returns an empty histogram.
func New() *Histogram {
	return &Histogram{}
}

// Record increments the bucket for stoppingTime, serializing the increment
// behind the histogram mutex. Values outside [0, MaxStoppingTime] are dropped
// silently, matching the evaluator's cap.
//
// With Record as the only mutation path, the sum of all buckets equals the
// number of recorded observations at any quiescent point.
func (h *Histogram) Record(stoppingTime int) {
	if stoppingTime < 0 || stoppingTime > MaxStoppingTime {
		return
	}
	h.mu.Lock()
	h.buckets[stoppingTime]++
	h.mu.Unlock()
}

// RecordUnsynced increments the bucket for stoppingTime with no coordination.
//
// The read-modify-write is intentionally unguarded: concurrent callers race on
// the same bucket and increments may be lost, so the bucket sum can end up
// below the number of observations. This is the observable outcome the
// unsynchronized mode is designed to produce, not a defect to fix.
func (h *Histogram) RecordUnsynced(stoppingTime int) {
	if stoppingTime < 0 || stoppingTime > MaxStoppingTime {
		return
	}
	h.buckets[stoppingTime]++
}

// Count returns the current value of the given bucket, or 0 for an index
// outside the tracked range.
func (h *Histogram) Count(bucket int) uint64 {
	if bucket < 0 || bucket > MaxStoppingTime {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buckets[bucket]
}

// Sum returns the total number of observations across all buckets.
func (h *Histogram) Sum() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	var total uint64
	for _, c := range h.buckets {
		total += c
	}
	return total
}

// Snapshot returns a copy of all bucket counts, indexed by stopping time.
func (h *Histogram) Snapshot() [NumBuckets]uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buckets
}

// NonZeroBuckets returns how many buckets hold at least one observation.
func (h *Histogram) NonZeroBuckets() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, c := range h.buckets {
		if c > 0 {
			n++
		}
	}
	return n
}

// MaxObserved returns the highest stopping time with a non-zero count, or -1
// when the histogram is empty.
func (h *Histogram) MaxObserved() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := MaxStoppingTime; i >= 0; i-- {
		if h.buckets[i] > 0 {
			return i
		}
	}
	return -1
}
