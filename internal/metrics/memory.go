package metrics

import "runtime"

// MemorySnapshot holds a point-in-time reading of the Go runtime's memory
// statistics, taken after the parallel phase for the verbose summary.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by the application
	Sys         uint64 // total bytes obtained from the OS
	NumGC       uint32 // completed GC cycles
	HeapObjects uint64 // allocated heap objects
}

// CaptureMemory reads current runtime memory statistics.
func CaptureMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
}
