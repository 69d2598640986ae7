// Package app wires configuration, orchestration, and presentation into the
// runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/agbru/mtcollatz/internal/cli"
	"github.com/agbru/mtcollatz/internal/config"
	apperrors "github.com/agbru/mtcollatz/internal/errors"
	"github.com/agbru/mtcollatz/internal/logging"
	"github.com/agbru/mtcollatz/internal/orchestration"
	"github.com/agbru/mtcollatz/internal/ui"
)

// Application represents the mt-collatz application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets a custom logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// On a parse error the usage message has already been written to errWriter.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "mt-collatz"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	if app.Logger == nil {
		if cfg.Verbose {
			app.Logger = logging.NewLogger(errWriter, "mtcollatz")
		} else {
			app.Logger = logging.NewNopLogger()
		}
	}
	return app, nil
}

// Run executes the application and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)
	return a.runCompute(ctx, out)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// IsUsageError checks if the error is a usage/configuration error.
func IsUsageError(err error) bool {
	return apperrors.IsConfigError(err)
}

// progressReporter selects the progress display for a non-TUI run.
func (a *Application) progressReporter() (orchestration.ProgressReporter, io.Writer) {
	if a.Config.Verbose {
		return cli.CLIProgressReporter{}, a.ErrWriter
	}
	return orchestration.NullProgressReporter{}, io.Discard
}
