package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations under a millisecond, milliseconds for
// durations under a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatThroughput renders a processing rate as numbers per second with a
// unit suffix, e.g. "1.25M/s". A zero duration yields "n/a".
func FormatThroughput(count uint64, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	rate := float64(count) / d.Seconds()
	switch {
	case rate >= 1e6:
		return fmt.Sprintf("%.2fM/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.2fk/s", rate/1e3)
	default:
		return fmt.Sprintf("%.0f/s", rate)
	}
}
