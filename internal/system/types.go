package system

import "time"

// MetricSample is a point-in-time reading of the device's core resource
// usage. All percentages are in [0,100]. A sample is immutable once captured;
// nothing here is retained between calls.
type MetricSample struct {
	Timestamp     time.Time `json:"timestamp"`
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	DiskPercent   float64   `json:"disk_percent"`
}

// StreamResult carries one tick of a sampling stream. Exactly one of
// Sample/Err is set.
type StreamResult struct {
	Sample *MetricSample
	Err    error
}

// HostInfo contains system identification information
type HostInfo struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelArch      string `json:"kernel_arch"`
	Uptime          uint64 `json:"uptime"`
	UptimeHuman     string `json:"uptime_human"`
}
