//go:build unix

package sysmon

import (
	"time"

	"golang.org/x/sys/unix"
)

// CPUTimes returns the user and system CPU time consumed by the process so
// far. Comparing these against wall-clock time shows how much real
// parallelism a worker count achieved. ok is false when the reading fails.
func CPUTimes() (user, system time.Duration, ok bool) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, 0, false
	}
	return time.Duration(ru.Utime.Nano()), time.Duration(ru.Stime.Nano()), true
}
