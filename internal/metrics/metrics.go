// Package metrics exposes run instrumentation as Prometheus metrics and
// runtime memory snapshots.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RunMetrics holds the Prometheus instruments for a single run. Each run gets
// its own registry so repeated runs in one process (tests in particular) never
// trip duplicate-registration panics.
type RunMetrics struct {
	registry *prometheus.Registry

	// NumbersProcessed counts inputs whose stopping time has been recorded.
	NumbersProcessed prometheus.Counter
	// StoppingTimes observes the distribution of computed stopping times.
	StoppingTimes prometheus.Histogram
	// ActiveWorkers tracks the number of workers currently in their claim loop.
	ActiveWorkers prometheus.Gauge
	// RunDuration reports the wall-clock duration of the parallel phase.
	RunDuration prometheus.Gauge
}

// NewRunMetrics creates and registers the run instruments on a fresh registry,
// alongside the standard Go and process collectors.
func NewRunMetrics() *RunMetrics {
	reg := prometheus.NewRegistry()
	m := &RunMetrics{
		registry: reg,
		NumbersProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mtcollatz_numbers_processed_total",
			Help: "Inputs whose Collatz stopping time has been computed and recorded.",
		}),
		StoppingTimes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mtcollatz_stopping_time_steps",
			Help:    "Distribution of computed Collatz stopping times.",
			Buckets: prometheus.LinearBuckets(0, 100, 11),
		}),
		ActiveWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mtcollatz_active_workers",
			Help: "Workers currently claiming and processing inputs.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mtcollatz_run_duration_seconds",
			Help: "Wall-clock duration of the parallel phase.",
		}),
	}
	reg.MustRegister(
		m.NumbersProcessed,
		m.StoppingTimes,
		m.ActiveWorkers,
		m.RunDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler returns an HTTP handler serving the run's registry in the
// Prometheus exposition format.
func (m *RunMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRun records the final duration of the parallel phase.
func (m *RunMetrics) ObserveRun(elapsed time.Duration) {
	m.RunDuration.Set(elapsed.Seconds())
}
