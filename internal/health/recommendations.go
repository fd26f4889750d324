package health

import (
	"fmt"

	"github.com/devicepulse/agent/internal/system"
)

// Recommendation is one actionable piece of guidance derived from a sample.
type Recommendation struct {
	Priority int    `json:"priority"`
	Resource string `json:"resource"`
	Title    string `json:"title"`
	Evidence string `json:"evidence"`
}

// Recommend produces deterministic guidance for each resource at or above
// the stress threshold. The output is stable for identical input; richer
// prose generation is the job of an external assembler consuming the Report.
func Recommend(sample *system.MetricSample, t Thresholds) []Recommendation {
	var recs []Recommendation
	priority := 1

	add := func(resource, title string, value float64) {
		recs = append(recs, Recommendation{
			Priority: priority,
			Resource: resource,
			Title:    title,
			Evidence: fmt.Sprintf("%s=%.1f%%", resource, value),
		})
		priority++
	}

	if sample.CPUPercent >= t.CriticalAt {
		add("cpu", "CPU saturated: identify and throttle runaway processes", sample.CPUPercent)
	} else if sample.CPUPercent >= t.StressAt {
		add("cpu", "CPU under sustained load: review top consumers", sample.CPUPercent)
	}

	if sample.MemoryPercent >= t.CriticalAt {
		add("memory", "Memory nearly exhausted: close applications or add RAM", sample.MemoryPercent)
	} else if sample.MemoryPercent >= t.StressAt {
		add("memory", "Memory pressure building: check for leaks in long-running processes", sample.MemoryPercent)
	}

	if sample.DiskPercent >= t.CriticalAt {
		add("disk", "Disk almost full: free space now to avoid write failures", sample.DiskPercent)
	} else if sample.DiskPercent >= t.StressAt {
		add("disk", "Disk filling up: clean caches, logs and unused packages", sample.DiskPercent)
	}

	return recs
}
