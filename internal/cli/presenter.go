package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/mtcollatz/internal/config"
	"github.com/agbru/mtcollatz/internal/format"
	"github.com/agbru/mtcollatz/internal/metrics"
	"github.com/agbru/mtcollatz/internal/orchestration"
	"github.com/agbru/mtcollatz/internal/sysmon"
	"github.com/agbru/mtcollatz/internal/ui"
)

// DisplayExecutionConfig prints the run parameters before the parallel phase
// starts. Verbose mode only; the quiet default path prints nothing here.
func DisplayExecutionConfig(cfg config.AppConfig, out io.Writer) {
	theme := ui.GetCurrentTheme()
	mode := "synchronized"
	modeColor := theme.Success
	if cfg.NoLock {
		mode = "unsynchronized (racy by design)"
		modeColor = theme.Warning
	}
	fmt.Fprintf(out, "%smt-collatz%s range=[1,%d] workers=%d mode=%s%s%s\n",
		theme.Bold, theme.Reset, cfg.N, cfg.Workers, modeColor, mode, theme.Reset)
}

// RunSummary aggregates everything the verbose footer reports about a
// finished run.
type RunSummary struct {
	N          uint64
	Workers    int
	NoLock     bool
	Elapsed    time.Duration
	Processed  uint64
	Sum        uint64
	Buckets    int
	MaxSteps   int
	UserCPU    time.Duration
	SystemCPU  time.Duration
	CPUOk      bool
	System     sysmon.Stats
	Memory     metrics.MemorySnapshot
}

// BuildRunSummary collects post-run statistics from the result and the
// system monitors.
func BuildRunSummary(cfg config.AppConfig, res orchestration.Result) RunSummary {
	s := RunSummary{
		N:         cfg.N,
		Workers:   cfg.Workers,
		NoLock:    cfg.NoLock,
		Elapsed:   res.Elapsed,
		Processed: res.Processed,
		Sum:       res.Histogram.Sum(),
		Buckets:   res.Histogram.NonZeroBuckets(),
		MaxSteps:  res.Histogram.MaxObserved(),
		System:    sysmon.Sample(),
		Memory:    metrics.CaptureMemory(),
	}
	s.UserCPU, s.SystemCPU, s.CPUOk = sysmon.CPUTimes()
	return s
}

// DisplayRunSummary writes the verbose post-run report. The histogram sum
// line is the headline: under the synchronized mode it must equal N, and a
// shortfall in unsynchronized mode is the observable lost-update race.
func DisplayRunSummary(s RunSummary, out io.Writer) {
	theme := ui.GetCurrentTheme()

	fmt.Fprintf(out, "%selapsed%s      %s (%s)\n",
		theme.Secondary, theme.Reset,
		format.FormatExecutionDuration(s.Elapsed),
		format.FormatThroughput(s.Processed, s.Elapsed))

	sumColor := theme.Success
	note := ""
	if s.Sum != s.N {
		sumColor = theme.Warning
		note = fmt.Sprintf("  (%d updates lost)", s.N-s.Sum)
	}
	fmt.Fprintf(out, "%shistogram%s    sum=%s%d%s of %d%s, %d non-empty buckets, max stopping time %d\n",
		theme.Secondary, theme.Reset, sumColor, s.Sum, theme.Reset, s.N, note, s.Buckets, s.MaxSteps)

	if s.CPUOk {
		fmt.Fprintf(out, "%scpu time%s     user=%s system=%s (wall %s)\n",
			theme.Secondary, theme.Reset,
			format.FormatExecutionDuration(s.UserCPU),
			format.FormatExecutionDuration(s.SystemCPU),
			format.FormatExecutionDuration(s.Elapsed))
	}
	fmt.Fprintf(out, "%ssystem%s       cpu=%.1f%% mem=%.1f%%\n",
		theme.Secondary, theme.Reset, s.System.CPUPercent, s.System.MemPercent)
	fmt.Fprintf(out, "%sruntime%s      heap=%s gc=%d objects=%d\n",
		theme.Secondary, theme.Reset, formatBytes(s.Memory.HeapAlloc), s.Memory.NumGC, s.Memory.HeapObjects)
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
