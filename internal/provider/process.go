package provider

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

type systemProcessProvider struct{}

// NewProcessProvider returns the gopsutil-backed process provider.
func NewProcessProvider() ProcessProvider { return systemProcessProvider{} }

// Sample takes two CPU-time measurements the given interval apart and
// returns per-process usage over that window. The wait between the two
// measurements is the engine's only deliberate blocking delay; it
// aborts early on ctx cancellation.
func (systemProcessProvider) Sample(ctx context.Context, interval time.Duration) ([]ProcessSample, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	// First measurement primes each process's CPU-time baseline.
	primed := make([]*process.Process, 0, len(procs))
	for _, p := range procs {
		if _, err := p.PercentWithContext(ctx, 0); err == nil {
			primed = append(primed, p)
		}
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(interval):
	}

	var samples []ProcessSample
	for _, p := range primed {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Exited or protected since the first pass.
			continue
		}
		cpu, err := p.PercentWithContext(ctx, 0)
		if err != nil {
			continue
		}
		mem, err := p.MemoryInfoWithContext(ctx)
		if err != nil {
			continue
		}

		sample := ProcessSample{
			PID:         p.Pid,
			Name:        name,
			CPUPercent:  cpu,
			MemoryBytes: mem.RSS,
		}
		if io, err := p.IOCountersWithContext(ctx); err == nil {
			sample.ReadBytes = io.ReadBytes
			sample.WriteBytes = io.WriteBytes
		} else {
			sample.IOUnknown = true
		}
		samples = append(samples, sample)
	}
	return samples, nil
}
