//go:generate mockgen -source=interfaces.go -destination=mocks/mock_orchestration.go -package=mocks

package orchestration

import (
	"io"
	"sync"
)

// ProgressUpdate reports how far the run has advanced through the input range.
type ProgressUpdate struct {
	// Claimed is the highest value known to have been claimed so far.
	Claimed uint64
	// Total is the upper bound N of the run.
	Total uint64
}

// Fraction returns the completed fraction of the range, clamped to [0, 1].
func (u ProgressUpdate) Fraction() float64 {
	if u.Total == 0 {
		return 0
	}
	f := float64(u.Claimed) / float64(u.Total)
	if f > 1 {
		f = 1
	}
	return f
}

// ProgressReporter defines the interface for displaying run progress.
// This decouples the coordinator from the presentation layer: the CLI spinner,
// the TUI dashboard, and the quiet no-op path all implement it.
type ProgressReporter interface {
	// DisplayProgress consumes progress updates until the channel is closed.
	// It is called in its own goroutine and must call wg.Done on return.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - updates: Channel receiving progress updates from the coordinator.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, updates <-chan ProgressUpdate, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, out io.Writer) {
	f(wg, updates, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the update channel without displaying anything. Used for the
// quiet default path and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan ProgressUpdate, _ io.Writer) {
	defer wg.Done()
	for range updates {
		// Drain channel silently
	}
}
