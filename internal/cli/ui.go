package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/mtcollatz/internal/orchestration"
)

// ProgressRefreshRate defines the refresh frequency of the progress spinner.
// 200ms keeps the display responsive without touching the terminal on every
// update.
const ProgressRefreshRate = 200 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This decouples the progress reporter from a specific spinner implementation,
// facilitating easier testing. It defines the essential controls for a
// spinner: starting, stopping, and updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

// newSpinner is a constructor variable so tests can substitute a fake.
var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// CLIProgressReporter displays run progress as a spinner with a live
// percentage of the claimed range. It implements
// orchestration.ProgressReporter.
type CLIProgressReporter struct{}

// DisplayProgress consumes updates until the channel closes, keeping the
// spinner suffix current with the fraction of the range claimed so far.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, out io.Writer) {
	defer wg.Done()

	sp := newSpinner(spinner.WithWriter(out))
	sp.Start()
	defer sp.Stop()

	for u := range updates {
		sp.UpdateSuffix(fmt.Sprintf(" computing stopping times %5.1f%% (%d/%d)",
			u.Fraction()*100, u.Claimed, u.Total))
	}
}
