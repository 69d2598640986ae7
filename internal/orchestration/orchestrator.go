package orchestration

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/mtcollatz/internal/collatz"
	"github.com/agbru/mtcollatz/internal/dispatch"
	"github.com/agbru/mtcollatz/internal/histogram"
	"github.com/agbru/mtcollatz/internal/logging"
	"github.com/agbru/mtcollatz/internal/metrics"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of progress sends
// being skipped when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// progressStrides is the approximate number of progress updates emitted over
// a full run. Workers only attempt a send every N/progressStrides claims so
// the hot loop stays free of channel traffic.
const progressStrides = 200

// Result holds the outcome of a complete run.
type Result struct {
	// Histogram is the final stopping-time frequency table.
	Histogram *histogram.Histogram
	// Elapsed is the wall-clock duration of the parallel phase, measured
	// around the entire pool lifetime.
	Elapsed time.Duration
	// Processed is the number of inputs the workers recorded.
	Processed uint64
}

// Coordinator owns the shared state of one run: the work counter and the
// histogram live here rather than in process globals, and every worker
// receives them by reference.
type Coordinator struct {
	// N is the inclusive upper bound of the input range [1, N].
	N uint64
	// Workers is the number of concurrent workers to launch.
	Workers int
	// NoLock selects the unsynchronized histogram update path.
	NoLock bool
	// Metrics receives run instrumentation when non-nil.
	Metrics *metrics.RunMetrics
	// Logger receives structured run logging. Defaults to a no-op logger.
	Logger logging.Logger
}

// Run executes the full parallel phase and blocks until every worker has
// observed an out-of-range claim. The returned histogram is exclusively the
// caller's to read once Run returns.
//
// The context is used for tracing only: the work loop itself has no
// cancellation point, a run always drains the range.
func (c *Coordinator) Run(ctx context.Context, reporter ProgressReporter, progressOut io.Writer) Result {
	log := c.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	tracer := otel.Tracer("mtcollatz/orchestration")
	ctx, span := tracer.Start(ctx, "mtcollatz.run", trace.WithAttributes(
		attribute.Int64("mtcollatz.n", int64(c.N)),
		attribute.Int("mtcollatz.workers", c.Workers),
		attribute.Bool("mtcollatz.nolock", c.NoLock),
	))
	defer span.End()
	_ = ctx

	counter := dispatch.NewCounter()
	hist := histogram.New()

	// The update discipline is fixed before any worker starts. NoLock binds
	// the intentionally racy path; there is no locking left behind it.
	record := hist.Record
	if c.NoLock {
		record = hist.RecordUnsynced
	}

	stride := c.N / progressStrides
	if stride == 0 {
		stride = 1
	}

	updates := make(chan ProgressUpdate, c.Workers*ProgressBufferMultiplier)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, updates, progressOut)

	log.Debug("starting worker pool",
		logging.Uint64("n", c.N),
		logging.Int("workers", c.Workers),
		logging.Bool("nolock", c.NoLock))

	var processed atomic.Uint64
	var g errgroup.Group

	start := time.Now()
	for i := 0; i < c.Workers; i++ {
		g.Go(func() error {
			c.runWorker(counter, record, stride, updates, &processed)
			return nil
		})
	}
	// Worker bodies never return errors; Wait is purely the join point that
	// guarantees the histogram is quiescent before anyone reads it.
	_ = g.Wait()
	elapsed := time.Since(start)

	// Final update so consumers always see 100% before the channel closes.
	// Reporters consume until close, so this send cannot stall.
	updates <- ProgressUpdate{Claimed: c.N, Total: c.N}
	close(updates)
	displayWg.Wait()

	total := processed.Load()
	if c.Metrics != nil {
		c.Metrics.ObserveRun(elapsed)
	}
	span.SetAttributes(attribute.Int64("mtcollatz.processed", int64(total)))
	log.Debug("worker pool drained",
		logging.Uint64("processed", total),
		logging.Float64("elapsed_seconds", elapsed.Seconds()))

	return Result{Histogram: hist, Elapsed: elapsed, Processed: total}
}

// runWorker is the loop every worker executes: claim a value, stop once the
// claim exceeds N, otherwise evaluate the stopping time and record it.
func (c *Coordinator) runWorker(counter *dispatch.Counter, record func(int), stride uint64, updates chan<- ProgressUpdate, processed *atomic.Uint64) {
	if c.Metrics != nil {
		c.Metrics.ActiveWorkers.Inc()
		defer c.Metrics.ActiveWorkers.Dec()
	}

	var done uint64
	for {
		num := counter.Claim()
		if num > c.N {
			break
		}

		st := collatz.StoppingTime(num)
		record(st)
		done++

		if c.Metrics != nil {
			c.Metrics.StoppingTimes.Observe(float64(st))
		}

		if num%stride == 0 {
			// Best effort: progress display must never slow the claim loop.
			select {
			case updates <- ProgressUpdate{Claimed: num, Total: c.N}:
			default:
			}
		}
	}

	processed.Add(done)
	if c.Metrics != nil {
		c.Metrics.NumbersProcessed.Add(float64(done))
	}
}
