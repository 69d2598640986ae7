// Package tui implements the optional live dashboard shown while a run
// progresses. The dashboard renders on stderr so stdout stays a clean CSV.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/mtcollatz/internal/errors"
	"github.com/agbru/mtcollatz/internal/format"
	"github.com/agbru/mtcollatz/internal/histogram"
	"github.com/agbru/mtcollatz/internal/orchestration"
)

// topBucketCount is how many of the most frequent stopping times the
// completed dashboard lists.
const topBucketCount = 5

// tickInterval drives the elapsed-time refresh.
const tickInterval = 250 * time.Millisecond

type (
	// progressMsg carries a forwarded coordinator progress update.
	progressMsg orchestration.ProgressUpdate

	// progressClosedMsg signals that the coordinator stopped publishing.
	progressClosedMsg struct{}

	// doneMsg carries the final run result.
	doneMsg orchestration.Result

	// tickMsg refreshes the elapsed display.
	tickMsg time.Time
)

// bucketCount pairs a stopping time with its frequency for the top-N table.
type bucketCount struct {
	steps int
	count uint64
}

// Model is the root bubbletea model for the run dashboard.
type Model struct {
	bar     progress.Model
	keymap  KeyMap
	styles  Styles
	version string

	n       uint64
	workers int
	noLock  bool

	claimed uint64
	start   time.Time
	elapsed time.Duration
	done    bool
	result  orchestration.Result
	top     []bucketCount

	updates <-chan orchestration.ProgressUpdate
	run     *runHandle
}

// runHandle publishes the coordinator's result to any number of readers.
// The channel close is the ready signal, so a reader that misses the bubbletea
// message can still fetch the result afterwards.
type runHandle struct {
	ready  chan struct{}
	result orchestration.Result
}

// wait blocks until the run has finished and returns its result.
func (r *runHandle) wait() orchestration.Result {
	<-r.ready
	return r.result
}

// NewModel creates a dashboard model wired to the given update channel and
// run handle.
func NewModel(n uint64, workers int, noLock bool, version string, updates <-chan orchestration.ProgressUpdate, run *runHandle) Model {
	return Model{
		bar:      progress.New(progress.WithDefaultGradient()),
		keymap:   DefaultKeyMap(),
		styles:   NewStyles(),
		version:  version,
		n:        n,
		workers:  workers,
		noLock:   noLock,
		start:   time.Now(),
		updates: updates,
		run:     run,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitForProgress(m.updates),
		waitForResult(m.run),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The run itself has no cancellation path; quitting is only honored
		// once the range is drained and the result is in hand.
		if key.Matches(msg, m.keymap.Quit) && m.done {
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		width := msg.Width - 12
		if width < 16 {
			width = 16
		}
		m.bar.Width = width
		return m, nil

	case progressMsg:
		if orchestration.ProgressUpdate(msg).Claimed > m.claimed {
			m.claimed = orchestration.ProgressUpdate(msg).Claimed
		}
		return m, waitForProgress(m.updates)

	case progressClosedMsg:
		return m, nil

	case doneMsg:
		m.done = true
		m.result = orchestration.Result(msg)
		m.claimed = m.n
		m.elapsed = m.result.Elapsed
		m.top = topBuckets(m.result.Histogram, topBucketCount)
		return m, nil

	case tickMsg:
		if !m.done {
			m.elapsed = time.Since(m.start)
			return m, tickCmd()
		}
		return m, nil
	}

	return m, nil
}

// View renders the dashboard panel.
func (m Model) View() string {
	s := m.styles
	var b strings.Builder

	title := fmt.Sprintf("mt-collatz %s", m.version)
	b.WriteString(s.Title.Render(title))
	b.WriteString("\n\n")

	fraction := 0.0
	if m.n > 0 {
		fraction = float64(m.claimed) / float64(m.n)
	}
	b.WriteString(m.bar.ViewAs(fraction))
	b.WriteString("\n\n")

	b.WriteString(s.Label.Render("range"))
	b.WriteString(s.Value.Render(fmt.Sprintf("[1, %d]", m.n)))
	b.WriteString("\n")
	b.WriteString(s.Label.Render("workers"))
	b.WriteString(s.Value.Render(fmt.Sprintf("%d", m.workers)))
	b.WriteString("\n")
	b.WriteString(s.Label.Render("mode"))
	if m.noLock {
		b.WriteString(s.Warn.Render("unsynchronized (racy by design)"))
	} else {
		b.WriteString(s.Good.Render("synchronized"))
	}
	b.WriteString("\n")
	b.WriteString(s.Label.Render("elapsed"))
	b.WriteString(s.Value.Render(format.FormatExecutionDuration(m.elapsed)))
	b.WriteString("\n")

	if m.done {
		b.WriteString(s.Label.Render("throughput"))
		b.WriteString(s.Value.Render(format.FormatThroughput(m.result.Processed, m.result.Elapsed)))
		b.WriteString("\n\n")
		b.WriteString(s.Title.Render("most frequent stopping times"))
		b.WriteString("\n")
		for _, bc := range m.top {
			b.WriteString(s.Value.Render(fmt.Sprintf("  %4d steps  %d", bc.steps, bc.count)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(s.Dim.Render("press q to print the histogram and exit"))
	} else {
		b.WriteString(s.Label.Render("claimed"))
		b.WriteString(s.Value.Render(fmt.Sprintf("%d / %d", m.claimed, m.n)))
	}

	return s.Panel.Render(b.String()) + "\n"
}

// tickCmd schedules the next elapsed-time refresh.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForProgress returns a command that delivers the next progress update.
func waitForProgress(updates <-chan orchestration.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return progressClosedMsg{}
		}
		return progressMsg(u)
	}
}

// waitForResult returns a command that delivers the final result.
func waitForResult(run *runHandle) tea.Cmd {
	return func() tea.Msg {
		return doneMsg(run.wait())
	}
}

// topBuckets returns the count highest-frequency buckets, most frequent
// first. Ties break toward the smaller stopping time.
func topBuckets(h *histogram.Histogram, count int) []bucketCount {
	snapshot := h.Snapshot()
	all := make([]bucketCount, 0, len(snapshot))
	for steps, c := range snapshot {
		if c > 0 {
			all = append(all, bucketCount{steps: steps, count: c})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].steps < all[j].steps
	})
	if len(all) > count {
		all = all[:count]
	}
	return all
}

// Run drives a coordinator under the dashboard and blocks until the run has
// finished and the user dismissed the view. The returned result is always the
// coordinator's final result, even if the display failed.
func Run(ctx context.Context, coord *orchestration.Coordinator, version string) (orchestration.Result, int) {
	updates := make(chan orchestration.ProgressUpdate, 16)
	run := &runHandle{ready: make(chan struct{})}

	// Forward coordinator progress into the dashboard's channel; drop rather
	// than block when the UI lags.
	reporter := orchestration.ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan orchestration.ProgressUpdate, _ io.Writer) {
		defer wg.Done()
		for u := range ch {
			select {
			case updates <- u:
			default:
			}
		}
		close(updates)
	})

	go func() {
		run.result = coord.Run(ctx, reporter, io.Discard)
		close(run.ready)
	}()

	model := NewModel(coord.N, coord.Workers, coord.NoLock, version, updates, run)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))

	final, err := program.Run()
	if m, ok := final.(Model); ok && m.done {
		return m.result, exitCode(err)
	}
	// Display ended before the run did; the range still drains to completion.
	return run.wait(), exitCode(err)
}

// exitCode maps a display error to a process exit code.
func exitCode(err error) int {
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
