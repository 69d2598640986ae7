package config

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"

	apperrors "github.com/agbru/mtcollatz/internal/errors"
)

// TestParseConfig_Valid verifies accepted invocations.
func TestParseConfig_Valid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want AppConfig
	}{
		{
			name: "bare range and workers",
			args: []string{"10", "2"},
			want: AppConfig{N: 10, Workers: 2},
		},
		{
			name: "trailing nolock",
			args: []string{"10", "2", "-nolock"},
			want: AppConfig{N: 10, Workers: 2, NoLock: true},
		},
		{
			name: "trailing nolock double dash",
			args: []string{"10", "2", "--nolock"},
			want: AppConfig{N: 10, Workers: 2, NoLock: true},
		},
		{
			name: "leading nolock",
			args: []string{"-nolock", "10", "2"},
			want: AppConfig{N: 10, Workers: 2, NoLock: true},
		},
		{
			name: "verbose short flag",
			args: []string{"-v", "1000", "8"},
			want: AppConfig{N: 1000, Workers: 8, Verbose: true},
		},
		{
			name: "verbose long flag",
			args: []string{"-verbose", "1000", "8"},
			want: AppConfig{N: 1000, Workers: 8, Verbose: true},
		},
		{
			name: "output file",
			args: []string{"-o", "hist.csv", "10", "2"},
			want: AppConfig{N: 10, Workers: 2, Output: "hist.csv"},
		},
		{
			name: "metrics address",
			args: []string{"-metrics-addr", "localhost:9100", "10", "2"},
			want: AppConfig{N: 10, Workers: 2, MetricsAddr: "localhost:9100"},
		},
		{
			name: "large N",
			args: []string{"18446744073709551615", "1"},
			want: AppConfig{N: 18446744073709551615, Workers: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			got, err := ParseConfig("mt-collatz", tt.args, &errBuf)
			if err != nil {
				t.Fatalf("ParseConfig(%v) error = %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("ParseConfig(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

// TestParseConfig_Errors verifies rejected invocations produce a ConfigError
// and print the usage synopsis.
func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", []string{}},
		{"only one positional", []string{"10"}},
		{"too many positionals", []string{"10", "2", "3"}},
		{"non-numeric N", []string{"abc", "2"}},
		{"negative N", []string{"-5", "2"}},
		{"zero N", []string{"0", "2"}},
		{"non-numeric T", []string{"10", "xyz"}},
		{"zero T", []string{"10", "0"}},
		{"negative T", []string{"10", "-3"}},
		{"unknown trailing flag", []string{"10", "2", "-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := ParseConfig("mt-collatz", tt.args, &errBuf)
			if err == nil {
				t.Fatalf("ParseConfig(%v) succeeded, want error", tt.args)
			}
			if !apperrors.IsConfigError(err) {
				t.Errorf("ParseConfig(%v) error = %T, want ConfigError", tt.args, err)
			}
			if !strings.Contains(errBuf.String(), "Usage: mt-collatz <N> <T> [-nolock]") {
				t.Errorf("usage synopsis not written, got:\n%s", errBuf.String())
			}
		})
	}
}

// TestParseConfig_Help verifies --help passes flag.ErrHelp through.
func TestParseConfig_Help(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := ParseConfig("mt-collatz", []string{"--help"}, &errBuf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("ParseConfig(--help) error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(errBuf.String(), "Usage:") {
		t.Errorf("usage not written on --help, got:\n%s", errBuf.String())
	}
}

// TestParseConfig_EnvOverrides verifies environment variables fill in values
// the command line did not set.
func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MTCOLLATZ_NOLOCK", "true")
	t.Setenv("MTCOLLATZ_VERBOSE", "1")
	t.Setenv("MTCOLLATZ_OUTPUT", "/tmp/env-hist.csv")

	var errBuf bytes.Buffer
	got, err := ParseConfig("mt-collatz", []string{"10", "2"}, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig error = %v", err)
	}
	if !got.NoLock {
		t.Error("NoLock = false, want true from MTCOLLATZ_NOLOCK")
	}
	if !got.Verbose {
		t.Error("Verbose = false, want true from MTCOLLATZ_VERBOSE")
	}
	if got.Output != "/tmp/env-hist.csv" {
		t.Errorf("Output = %q, want /tmp/env-hist.csv from MTCOLLATZ_OUTPUT", got.Output)
	}
}

// TestParseConfig_FlagBeatsEnv verifies the priority CLI flags > environment.
func TestParseConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv("MTCOLLATZ_OUTPUT", "/tmp/from-env.csv")

	var errBuf bytes.Buffer
	got, err := ParseConfig("mt-collatz", []string{"-o", "/tmp/from-flag.csv", "10", "2"}, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig error = %v", err)
	}
	if got.Output != "/tmp/from-flag.csv" {
		t.Errorf("Output = %q, want the flag value", got.Output)
	}
}

// TestParseConfig_EnvFalseDoesNotDisableTrailingNolock verifies an explicit
// trailing -nolock wins even when the environment says otherwise.
func TestParseConfig_EnvFalseDoesNotDisableTrailingNolock(t *testing.T) {
	t.Setenv("MTCOLLATZ_NOLOCK", "false")

	var errBuf bytes.Buffer
	got, err := ParseConfig("mt-collatz", []string{"10", "2", "-nolock"}, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig error = %v", err)
	}
	if !got.NoLock {
		t.Error("NoLock = false, want true: trailing -nolock must beat the environment")
	}
}

// TestParseBoolEnv verifies accepted spellings.
func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		val        string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"garbage", true, true},
		{"garbage", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.defaultVal); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.defaultVal, got, tt.want)
		}
	}
}
