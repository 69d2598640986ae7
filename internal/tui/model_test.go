package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/mtcollatz/internal/histogram"
	"github.com/agbru/mtcollatz/internal/orchestration"
)

func testModel(n uint64, workers int, noLock bool) Model {
	updates := make(chan orchestration.ProgressUpdate)
	return NewModel(n, workers, noLock, "test", updates, &runHandle{ready: make(chan struct{})})
}

// TestUpdate_ProgressAdvancesClaimed verifies progress messages move the
// claimed counter forward and never backwards.
func TestUpdate_ProgressAdvancesClaimed(t *testing.T) {
	m := testModel(100, 2, false)

	next, _ := m.Update(progressMsg(orchestration.ProgressUpdate{Claimed: 40, Total: 100}))
	m = next.(Model)
	if m.claimed != 40 {
		t.Errorf("claimed = %d, want 40", m.claimed)
	}

	next, _ = m.Update(progressMsg(orchestration.ProgressUpdate{Claimed: 25, Total: 100}))
	m = next.(Model)
	if m.claimed != 40 {
		t.Errorf("claimed regressed to %d, want 40", m.claimed)
	}
}

// TestUpdate_DoneCapturesResult verifies the done message switches the model
// into its completed state.
func TestUpdate_DoneCapturesResult(t *testing.T) {
	m := testModel(10, 1, false)

	h := histogram.New()
	for _, st := range []int{0, 1, 1, 7} {
		h.Record(st)
	}
	res := orchestration.Result{Histogram: h, Elapsed: 2 * time.Second, Processed: 10}

	next, _ := m.Update(doneMsg(res))
	m = next.(Model)

	if !m.done {
		t.Fatal("done = false after doneMsg")
	}
	if m.claimed != 10 {
		t.Errorf("claimed = %d, want 10 (snapped to N)", m.claimed)
	}
	if m.result.Processed != 10 {
		t.Errorf("result.Processed = %d, want 10", m.result.Processed)
	}
	if len(m.top) == 0 || m.top[0].steps != 1 || m.top[0].count != 2 {
		t.Errorf("top bucket = %+v, want steps=1 count=2", m.top)
	}
}

// TestUpdate_QuitOnlyWhenDone verifies the quit key is ignored while the run
// is still draining the range.
func TestUpdate_QuitOnlyWhenDone(t *testing.T) {
	m := testModel(10, 1, false)
	quit := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}

	_, cmd := m.Update(quit)
	if cmd != nil {
		t.Error("quit honored before the run finished")
	}

	next, _ := m.Update(doneMsg(orchestration.Result{Histogram: histogram.New()}))
	m = next.(Model)
	_, cmd = m.Update(quit)
	if cmd == nil {
		t.Fatal("quit ignored after the run finished")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("quit command produced %v, want tea.Quit", msg)
	}
}

// TestTopBuckets verifies ordering and tie-breaking.
func TestTopBuckets(t *testing.T) {
	h := histogram.New()
	for i := 0; i < 5; i++ {
		h.Record(10)
	}
	for i := 0; i < 5; i++ {
		h.Record(3)
	}
	for i := 0; i < 2; i++ {
		h.Record(500)
	}
	h.Record(7)

	top := topBuckets(h, 3)
	want := []bucketCount{{steps: 3, count: 5}, {steps: 10, count: 5}, {steps: 500, count: 2}}
	if len(top) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(top), len(want))
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("top[%d] = %+v, want %+v", i, top[i], want[i])
		}
	}
}

// TestView_RunningAndDone verifies the key content of both render states.
func TestView_RunningAndDone(t *testing.T) {
	m := testModel(100, 4, true)
	next, _ := m.Update(progressMsg(orchestration.ProgressUpdate{Claimed: 50, Total: 100}))
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"[1, 100]", "unsynchronized", "50 / 100"} {
		if !strings.Contains(view, want) {
			t.Errorf("running view missing %q", want)
		}
	}

	h := histogram.New()
	h.Record(7)
	next, _ = m.Update(doneMsg(orchestration.Result{Histogram: h, Elapsed: time.Second, Processed: 100}))
	m = next.(Model)

	view = m.View()
	for _, want := range []string{"throughput", "most frequent stopping times", "press q"} {
		if !strings.Contains(view, want) {
			t.Errorf("done view missing %q", want)
		}
	}
}
