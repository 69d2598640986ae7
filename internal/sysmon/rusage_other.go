//go:build !unix

package sysmon

import "time"

// CPUTimes is unavailable on this platform.
func CPUTimes() (user, system time.Duration, ok bool) {
	return 0, 0, false
}
