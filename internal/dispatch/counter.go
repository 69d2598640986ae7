// Package dispatch provides the shared work counter that divides the input
// range among workers.
//
// The counter is the single point of work distribution: every worker claims
// its next input from the same counter, so the claim path must never serialize
// behind a lock. A lock-free fetch-and-add keeps the hot path contention-free
// while still guaranteeing that no value is handed out twice.
package dispatch

import "sync/atomic"

// Counter hands out strictly increasing units of work, starting at 1.
// Claims are unique and gap-free across any number of concurrent callers.
//
// The counter itself is unbounded and never blocks; callers compare each
// claimed value against their own upper bound to detect exhaustion.
type Counter struct {
	next atomic.Uint64
}

// NewCounter returns a counter whose first claim is 1.
func NewCounter() *Counter {
	c := &Counter{}
	c.next.Store(1)
	return c
}

// Claim atomically returns the next unclaimed value and advances the counter.
// The fetch-and-advance is a single indivisible step, so two concurrent
// claims can never observe the same value.
func (c *Counter) Claim() uint64 {
	return c.next.Add(1) - 1
}
