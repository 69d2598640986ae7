// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayTiming], [DisplayProgress] (via CLIProgressReporter).
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatTimingLine].
//
//   - Write* functions write data to streams or files.
//     They handle buffering, file creation, and error handling.
//     Examples: [WriteHistogramCSV], [WriteHistogramToFile].

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/agbru/mtcollatz/internal/errors"
	"github.com/agbru/mtcollatz/internal/histogram"
)

// WriteHistogramCSV writes the histogram as 1001 lines of
// "<bucket_index>,<count>" for bucket indices 0..1000 in ascending order.
// This is the tool's primary output contract on stdout.
func WriteHistogramCSV(w io.Writer, h *histogram.Histogram) error {
	bw := bufio.NewWriter(w)
	snapshot := h.Snapshot()
	for i, count := range snapshot {
		if _, err := fmt.Fprintf(bw, "%d,%d\n", i, count); err != nil {
			return apperrors.WrapError(err, "writing histogram bucket %d", i)
		}
	}
	return bw.Flush()
}

// FormatTimingLine renders the run parameters and elapsed wall-clock time as
// "<N>,<T>,<seconds>.<nanoseconds>". Nanoseconds are normalized into
// [0, 1e9) and printed unpadded, matching the tool's historical output.
func FormatTimingLine(n uint64, workers int, elapsed time.Duration) string {
	seconds := int64(elapsed / time.Second)
	nanoseconds := int64(elapsed % time.Second)
	return fmt.Sprintf("%d,%d,%d.%d", n, workers, seconds, nanoseconds)
}

// DisplayTiming writes the timing line to w. By contract this goes to the
// error stream so that stdout stays a clean CSV.
func DisplayTiming(w io.Writer, n uint64, workers int, elapsed time.Duration) {
	fmt.Fprintln(w, FormatTimingLine(n, workers, elapsed))
}

// RunMeta describes a completed run for the output-file header.
type RunMeta struct {
	// N is the inclusive upper bound of the processed range.
	N uint64
	// Workers is the worker count used.
	Workers int
	// NoLock records whether the histogram was updated unsynchronized.
	NoLock bool
	// Elapsed is the wall-clock duration of the parallel phase.
	Elapsed time.Duration
}

// Mode returns the human-readable synchronization mode.
func (m RunMeta) Mode() string {
	if m.NoLock {
		return "unsynchronized"
	}
	return "synchronized"
}

// WriteHistogramToFile writes a copy of the histogram CSV to path, preceded
// by a commented header describing the run.
//
// Parameters:
//   - path: Destination file path; parent directories are created as needed.
//   - h: The histogram to write.
//   - meta: Run parameters for the header.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteHistogramToFile(path string, h *histogram.Histogram, meta RunMeta) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.WrapError(err, "failed to create directory")
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.WrapError(err, "failed to create output file")
	}
	defer file.Close()

	fmt.Fprintf(file, "# Collatz stopping-time histogram\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# N: %d\n", meta.N)
	fmt.Fprintf(file, "# Workers: %d\n", meta.Workers)
	fmt.Fprintf(file, "# Mode: %s\n", meta.Mode())
	fmt.Fprintf(file, "# Duration: %s\n", meta.Elapsed)
	fmt.Fprintf(file, "\n")

	return WriteHistogramCSV(file, h)
}
