package app

import (
	"context"
	"io"
	"time"

	"github.com/agbru/mtcollatz/internal/cli"
	apperrors "github.com/agbru/mtcollatz/internal/errors"
	"github.com/agbru/mtcollatz/internal/logging"
	"github.com/agbru/mtcollatz/internal/metrics"
	"github.com/agbru/mtcollatz/internal/orchestration"
	"github.com/agbru/mtcollatz/internal/server"
	"github.com/agbru/mtcollatz/internal/tui"
)

// metricsShutdownTimeout bounds how long we wait for the metrics endpoint to
// drain after the run.
const metricsShutdownTimeout = 2 * time.Second

// runCompute executes the full run: optional metrics endpoint, the parallel
// phase (plain or under the TUI), and the output contract.
func (a *Application) runCompute(ctx context.Context, out io.Writer) int {
	cfg := a.Config

	var runMetrics *metrics.RunMetrics
	if cfg.MetricsAddr != "" {
		runMetrics = metrics.NewRunMetrics()
		srv := server.New(cfg.MetricsAddr, runMetrics, a.Logger)
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !apperrors.IsContextError(err) {
				a.Logger.Error("metrics endpoint shutdown failed", err)
			}
		}()
	}

	coordinator := &orchestration.Coordinator{
		N:       cfg.N,
		Workers: cfg.Workers,
		NoLock:  cfg.NoLock,
		Metrics: runMetrics,
		Logger:  a.Logger,
	}

	var result orchestration.Result
	exitCode := apperrors.ExitSuccess
	if cfg.TUI {
		result, exitCode = tui.Run(ctx, coordinator, Version)
	} else {
		if cfg.Verbose {
			cli.DisplayExecutionConfig(cfg, a.ErrWriter)
		}
		reporter, progressOut := a.progressReporter()
		result = coordinator.Run(ctx, reporter, progressOut)
	}

	return a.presentResult(result, out, exitCode)
}

// presentResult emits the output contract (histogram CSV on stdout, timing
// line on stderr) plus the optional file copy and verbose summary.
func (a *Application) presentResult(result orchestration.Result, out io.Writer, exitCode int) int {
	cfg := a.Config

	if err := cli.WriteHistogramCSV(out, result.Histogram); err != nil {
		a.Logger.Error("writing histogram failed", err)
		return apperrors.ExitErrorGeneric
	}
	cli.DisplayTiming(a.ErrWriter, cfg.N, cfg.Workers, result.Elapsed)

	if cfg.Output != "" {
		meta := cli.RunMeta{N: cfg.N, Workers: cfg.Workers, NoLock: cfg.NoLock, Elapsed: result.Elapsed}
		if err := cli.WriteHistogramToFile(cfg.Output, result.Histogram, meta); err != nil {
			a.Logger.Error("writing histogram file failed", err, logging.String("path", cfg.Output))
			return apperrors.ExitErrorGeneric
		}
		a.Logger.Info("histogram written", logging.String("path", cfg.Output))
	}

	if cfg.Verbose {
		cli.DisplayRunSummary(cli.BuildRunSummary(cfg, result), a.ErrWriter)
	}

	return exitCode
}
