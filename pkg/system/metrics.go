package system

import (
	"fmt"
	"runtime"
)

// ProcessMetrics is the runtime snapshot reported by the health endpoint
type ProcessMetrics struct {
	GoroutineCount int            `json:"goroutine_count"`
	NumCPU         int            `json:"num_cpu"`
	GoVersion      string         `json:"go_version"`
	AppMemory      AppMemoryStats `json:"memory_app"`
}

type AppMemoryStats struct {
	CurrentAlloc string `json:"current_alloc"`
	TotalAlloc   string `json:"total_alloc"`
	SystemMem    string `json:"system_mem"`
	HeapInuse    string `json:"heap_inuse"`
	StackInuse   string `json:"stack_inuse"`
	GCCycles     uint32 `json:"gc_cycles"`
}

// GetProcessMetrics collects goroutine and memory statistics from the Go runtime
func GetProcessMetrics() ProcessMetrics {
	return ProcessMetrics{
		GoroutineCount: runtime.NumGoroutine(),
		NumCPU:         runtime.NumCPU(),
		GoVersion:      runtime.Version(),
		AppMemory:      getAppMemoryStats(),
	}
}

func getAppMemoryStats() AppMemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return AppMemoryStats{
		CurrentAlloc: FormatBytes(m.Alloc),
		TotalAlloc:   FormatBytes(m.TotalAlloc),
		SystemMem:    FormatBytes(m.Sys),
		HeapInuse:    FormatBytes(m.HeapInuse),
		StackInuse:   FormatBytes(m.StackInuse),
		GCCycles:     m.NumGC,
	}
}

// FormatBytes converts bytes to human-readable format (B, KB, MB, GB)
func FormatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fGB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1fKB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
