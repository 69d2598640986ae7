// Package orchestration coordinates a single run: it owns the shared work
// counter and histogram, launches the worker pool, waits for every worker to
// drain the range, and measures the wall-clock duration of the parallel phase.
//
// Workers are symmetric. Each one loops claim → evaluate → record until its
// claim exceeds the configured upper bound. There is no cancellation path: a
// run always proceeds to exhaustion of the work range.
package orchestration
