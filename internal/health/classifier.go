package health

import (
	"errors"
	"fmt"
	"math"

	"github.com/devicepulse/agent/internal/system"
)

// ErrInvalidMetric means a sample carried a percentage outside [0,100].
var ErrInvalidMetric = errors.New("metric value outside [0,100]")

// Verdict is the tri-state health classification of one sample.
type Verdict string

const (
	VerdictHealthy     Verdict = "healthy"
	VerdictUnderStress Verdict = "under_stress"
	VerdictCritical    Verdict = "critical"
)

// Thresholds define the verdict boundaries. A sample is healthy when its
// worst metric is below StressAt, critical at or above CriticalAt, and
// under stress in between.
type Thresholds struct {
	StressAt   float64 `json:"stress_at"`
	CriticalAt float64 `json:"critical_at"`
}

// DefaultThresholds returns the stock 70/90 policy.
func DefaultThresholds() Thresholds {
	return Thresholds{StressAt: 70, CriticalAt: 90}
}

// Classifier maps metric samples to health verdicts. It is stateless; the
// same sample always yields the same verdict.
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier creates a classifier. Zero or inverted thresholds fall back
// to the defaults.
func NewClassifier(t Thresholds) *Classifier {
	if t.StressAt <= 0 || t.CriticalAt <= 0 || t.StressAt >= t.CriticalAt {
		t = DefaultThresholds()
	}
	return &Classifier{thresholds: t}
}

// Thresholds returns the active threshold policy.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify returns the verdict for a sample. The single worst metric dominates:
// one saturated resource always drives the result, never an average.
func (c *Classifier) Classify(sample *system.MetricSample) (Verdict, error) {
	if sample == nil {
		return "", fmt.Errorf("nil sample: %w", ErrInvalidMetric)
	}

	worst := 0.0
	for _, m := range []struct {
		name  string
		value float64
	}{
		{"cpu_percent", sample.CPUPercent},
		{"memory_percent", sample.MemoryPercent},
		{"disk_percent", sample.DiskPercent},
	} {
		if math.IsNaN(m.value) || m.value < 0 || m.value > 100 {
			return "", fmt.Errorf("%s=%v: %w", m.name, m.value, ErrInvalidMetric)
		}
		if m.value > worst {
			worst = m.value
		}
	}

	switch {
	case worst >= c.thresholds.CriticalAt:
		return VerdictCritical, nil
	case worst >= c.thresholds.StressAt:
		return VerdictUnderStress, nil
	default:
		return VerdictHealthy, nil
	}
}
