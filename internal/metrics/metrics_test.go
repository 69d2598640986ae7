package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestNewRunMetrics_Isolated verifies repeated construction does not panic on
// duplicate registration: each run owns a fresh registry.
func TestNewRunMetrics_Isolated(t *testing.T) {
	m1 := NewRunMetrics()
	m2 := NewRunMetrics()

	m1.NumbersProcessed.Add(10)
	if got := testutil.ToFloat64(m2.NumbersProcessed); got != 0 {
		t.Errorf("second registry counter = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m1.NumbersProcessed); got != 10 {
		t.Errorf("first registry counter = %v, want 10", got)
	}
}

// TestObserveRun verifies the duration gauge.
func TestObserveRun(t *testing.T) {
	m := NewRunMetrics()
	m.ObserveRun(1500 * time.Millisecond)
	if got := testutil.ToFloat64(m.RunDuration); got != 1.5 {
		t.Errorf("run duration gauge = %v, want 1.5", got)
	}
}

// TestHandler_Exposition verifies the endpoint serves the run instruments in
// the exposition format.
func TestHandler_Exposition(t *testing.T) {
	m := NewRunMetrics()
	m.NumbersProcessed.Add(42)
	m.ActiveWorkers.Set(4)
	m.StoppingTimes.Observe(119)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"mtcollatz_numbers_processed_total 42",
		"mtcollatz_active_workers 4",
		"mtcollatz_stopping_time_steps_count 1",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

// TestCaptureMemory verifies the snapshot carries live runtime data.
func TestCaptureMemory(t *testing.T) {
	snap := CaptureMemory()
	if snap.Sys == 0 {
		t.Error("Sys = 0, want non-zero")
	}
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc = 0, want non-zero")
	}
}
