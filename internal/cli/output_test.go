package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/mtcollatz/internal/histogram"
)

// TestWriteHistogramCSV_AllBuckets verifies every bucket is printed once, in
// order, in "<bucket>,<count>" form.
func TestWriteHistogramCSV_AllBuckets(t *testing.T) {
	h := histogram.New()
	h.Record(0)
	h.Record(7)
	h.Record(7)
	h.Record(histogram.MaxStoppingTime)

	var buf bytes.Buffer
	if err := WriteHistogramCSV(&buf, h); err != nil {
		t.Fatalf("WriteHistogramCSV error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != histogram.NumBuckets {
		t.Fatalf("got %d lines, want %d", len(lines), histogram.NumBuckets)
	}
	for i, line := range lines {
		want := fmt.Sprintf("%d,0", i)
		switch i {
		case 0:
			want = "0,1"
		case 7:
			want = "7,2"
		case histogram.MaxStoppingTime:
			want = fmt.Sprintf("%d,1", histogram.MaxStoppingTime)
		}
		if line != want {
			t.Errorf("line %d = %q, want %q", i, line, want)
		}
	}
}

// TestFormatTimingLine verifies the "<N>,<T>,<seconds>.<nanoseconds>" format,
// nanoseconds unpadded.
func TestFormatTimingLine(t *testing.T) {
	tests := []struct {
		name    string
		n       uint64
		workers int
		elapsed time.Duration
		want    string
	}{
		{"seconds and nanos", 10, 2, 1*time.Second + 500000000*time.Nanosecond, "10,2,1.500000000"},
		{"sub-second", 10, 2, 5 * time.Nanosecond, "10,2,0.5"},
		{"whole seconds", 1000, 8, 2 * time.Second, "1000,8,2.0"},
		{"zero duration", 1, 1, 0, "1,1,0.0"},
		{"small fraction unpadded", 100, 4, 42 * time.Nanosecond, "100,4,0.42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimingLine(tt.n, tt.workers, tt.elapsed); got != tt.want {
				t.Errorf("FormatTimingLine(%d, %d, %v) = %q, want %q",
					tt.n, tt.workers, tt.elapsed, got, tt.want)
			}
		})
	}
}

// TestDisplayTiming verifies the timing line ends with a newline.
func TestDisplayTiming(t *testing.T) {
	var buf bytes.Buffer
	DisplayTiming(&buf, 10, 2, time.Second)
	if got := buf.String(); got != "10,2,1.0\n" {
		t.Errorf("DisplayTiming wrote %q, want %q", got, "10,2,1.0\n")
	}
}

// TestRunMeta_Mode verifies the mode label.
func TestRunMeta_Mode(t *testing.T) {
	if got := (RunMeta{}).Mode(); got != "synchronized" {
		t.Errorf("Mode() = %q, want synchronized", got)
	}
	if got := (RunMeta{NoLock: true}).Mode(); got != "unsynchronized" {
		t.Errorf("Mode() = %q, want unsynchronized", got)
	}
}

// TestWriteHistogramToFile verifies the header and the full CSV body land in
// the file, creating parent directories as needed.
func TestWriteHistogramToFile(t *testing.T) {
	h := histogram.New()
	h.Record(3)

	path := filepath.Join(t.TempDir(), "out", "hist.csv")
	meta := RunMeta{N: 10, Workers: 2, Elapsed: time.Second}
	if err := WriteHistogramToFile(path, h, meta); err != nil {
		t.Fatalf("WriteHistogramToFile error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	content := string(data)

	for _, want := range []string{"# N: 10", "# Workers: 2", "# Mode: synchronized", "3,1\n"} {
		if !strings.Contains(content, want) {
			t.Errorf("output file missing %q:\n%s", want, content)
		}
	}
	if got := strings.Count(content, "\n"); got < histogram.NumBuckets {
		t.Errorf("output file has %d lines, want at least %d", got, histogram.NumBuckets)
	}
}
