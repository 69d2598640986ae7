// Package config defines the application configuration and command-line
// parsing for the Collatz histogram tool.
//
// The primary surface is positional: "<N> <T> [-nolock]". N is the inclusive
// upper bound of the range to process and T is the number of concurrent
// workers. Optional flags may appear before the positional arguments in the
// usual Go flag style; "-nolock" is additionally accepted after them, matching
// the historical invocation of the tool.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/agbru/mtcollatz/internal/errors"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "MTCOLLATZ_"

// AppConfig holds the complete run configuration. It is fixed before workers
// start and never mutated afterwards.
type AppConfig struct {
	// N is the inclusive upper bound of the input range [1, N].
	N uint64
	// Workers is the number of concurrent workers (T).
	Workers int
	// NoLock selects the unsynchronized histogram mode. When true, histogram
	// updates race on purpose and the bucket sum may fall short of N.
	NoLock bool
	// Verbose enables structured run logging and the post-run summary on stderr.
	Verbose bool
	// TUI enables the live terminal dashboard.
	TUI bool
	// NoColor disables colored terminal output.
	NoColor bool
	// Output is an optional file path receiving a copy of the histogram CSV.
	Output string
	// MetricsAddr is an optional listen address for the Prometheus endpoint
	// served during the run (empty disables the endpoint).
	MetricsAddr string
}

// Usage writes the one-line usage synopsis followed by the optional flags.
func Usage(fs *flag.FlagSet, programName string, w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <N> <T> [-nolock]\n", programName)
	fmt.Fprintf(w, "  N: inclusive upper bound of the range to process (N >= 1)\n")
	fmt.Fprintf(w, "  T: number of concurrent workers (T >= 1)\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
}

// ParseConfig parses command-line arguments into an AppConfig.
//
// Parsing follows the priority CLI flags > environment variables > defaults.
// On error, a usage message has already been written to errWriter and the
// returned error is a ConfigError (or flag.ErrHelp for --help).
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	var cfg AppConfig

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() { Usage(fs, programName, errWriter) }

	fs.BoolVar(&cfg.NoLock, "nolock", false, "disable histogram synchronization (demonstrates lost-update races)")
	fs.BoolVar(&cfg.Verbose, "v", false, "enable verbose run logging on stderr")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable verbose run logging on stderr (alias of -v)")
	fs.BoolVar(&cfg.TUI, "tui", false, "show a live dashboard while the run progresses")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.StringVar(&cfg.Output, "o", "", "write a copy of the histogram CSV to this file")
	fs.StringVar(&cfg.Output, "output", "", "write a copy of the histogram CSV to this file (alias of -o)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return cfg, err
		}
		return cfg, apperrors.ConfigError{Message: err.Error()}
	}

	// Env overrides apply before the trailing-argument scan so an explicit
	// trailing "-nolock" always wins over the environment.
	applyEnvOverrides(&cfg, fs)

	positionals, err := splitPositionals(fs.Args(), &cfg)
	if err != nil {
		fs.Usage()
		return cfg, err
	}
	if len(positionals) < 2 {
		fs.Usage()
		return cfg, apperrors.NewConfigError("expected 2 positional arguments <N> <T>, got %d", len(positionals))
	}

	if cfg.N, err = parseN(positionals[0]); err != nil {
		fs.Usage()
		return cfg, err
	}
	if cfg.Workers, err = parseWorkers(positionals[1]); err != nil {
		fs.Usage()
		return cfg, err
	}

	return cfg, nil
}

// splitPositionals separates positional arguments from the trailing "-nolock"
// form. Any other flag-like token after the positionals is an error; the flag
// package has already consumed flags that appeared before them.
func splitPositionals(args []string, cfg *AppConfig) ([]string, error) {
	var positionals []string
	for _, arg := range args {
		switch {
		case arg == "-nolock" || arg == "--nolock":
			cfg.NoLock = true
		case strings.HasPrefix(arg, "-") && arg != "-":
			return nil, apperrors.NewConfigError("unknown argument %q after positional arguments", arg)
		default:
			positionals = append(positionals, arg)
		}
	}
	if len(positionals) > 2 {
		return nil, apperrors.NewConfigError("too many positional arguments: %v", positionals)
	}
	return positionals, nil
}

// parseN parses and validates the range upper bound.
func parseN(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, apperrors.NewConfigError("invalid N %q: must be a positive integer", s)
	}
	if n < 1 {
		return 0, apperrors.ConfigError{Message: apperrors.ValidationError{Field: "N", Message: "must be >= 1"}.Error()}
	}
	return n, nil
}

// parseWorkers parses and validates the worker count.
func parseWorkers(s string) (int, error) {
	t, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.NewConfigError("invalid T %q: must be a positive integer", s)
	}
	if t < 1 {
		return 0, apperrors.ConfigError{Message: apperrors.ValidationError{Field: "T", Message: "must be >= 1"}.Error()}
	}
	return t, nil
}
