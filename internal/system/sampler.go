package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

var (
	// ErrMetricUnavailable means an OS counter could not be read at all
	// (permission, missing platform API). Fatal to the single call only.
	ErrMetricUnavailable = errors.New("metric unavailable")

	// ErrSampleTimeout means a counter read did not complete within the
	// sampler's bounded deadline.
	ErrSampleTimeout = errors.New("sample timed out")
)

const (
	defaultSampleTimeout = 3 * time.Second
	defaultCPUInterval   = 500 * time.Millisecond
	defaultDiskPath      = "/"
)

// Sampler reads CPU, memory and disk usage at a point in time. Calls are
// independent; it is safe to invoke Sample repeatedly at a caller-chosen
// interval.
type Sampler struct {
	timeout     time.Duration
	cpuInterval time.Duration
	diskPath    string
}

// NewSampler creates a sampler with the given per-call deadline. A
// non-positive timeout falls back to the default.
func NewSampler(timeout time.Duration) *Sampler {
	if timeout <= 0 {
		timeout = defaultSampleTimeout
	}
	return &Sampler{
		timeout:     timeout,
		cpuInterval: defaultCPUInterval,
		diskPath:    defaultDiskPath,
	}
}

// Sample captures one MetricSample. It never blocks longer than the
// sampler's timeout: a stalled counter read surfaces as ErrSampleTimeout
// rather than hanging the caller.
func (s *Sampler) Sample(ctx context.Context) (*MetricSample, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cpuPercents, err := cpu.PercentWithContext(ctx, s.cpuInterval, false)
	if err != nil {
		return nil, s.readErr(ctx, "cpu percent", err)
	}
	if len(cpuPercents) == 0 {
		return nil, fmt.Errorf("cpu percent: empty result: %w", ErrMetricUnavailable)
	}

	vmem, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, s.readErr(ctx, "virtual memory", err)
	}

	usage, err := disk.UsageWithContext(ctx, s.diskPath)
	if err != nil {
		return nil, s.readErr(ctx, "disk usage", err)
	}

	return &MetricSample{
		Timestamp:     time.Now().UTC(),
		CPUPercent:    cpuPercents[0],
		MemoryPercent: vmem.UsedPercent,
		DiskPercent:   usage.UsedPercent,
	}, nil
}

// Stream samples on the given interval until ctx is done, sending each
// result on the returned channel. A failed tick is delivered as an error
// result; the stream itself keeps going.
func (s *Sampler) Stream(ctx context.Context, interval time.Duration) <-chan StreamResult {
	out := make(chan StreamResult)

	go func() {
		defer close(out)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sample, err := s.Sample(ctx)
				select {
				case out <- StreamResult{Sample: sample, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// readErr maps a failed counter read to the sampler error taxonomy: a
// deadline hit is a timeout, everything else means the source is
// unavailable.
func (s *Sampler) readErr(ctx context.Context, what string, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%s: %v: %w", what, err, ErrSampleTimeout)
	}
	return fmt.Errorf("%s: %v: %w", what, err, ErrMetricUnavailable)
}
