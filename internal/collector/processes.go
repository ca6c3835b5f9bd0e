package collector

import (
	"context"
	"sort"

	"github.com/okulov/windiag/internal/classify"
	"github.com/okulov/windiag/internal/models"
	"github.com/okulov/windiag/internal/provider"
)

// Processes samples per-process CPU, memory, and IO over a fixed
// observation window and keeps the heaviest consumers.
type Processes struct {
	prov provider.ProcessProvider
}

// NewProcesses creates the process collector.
func NewProcesses(prov provider.ProcessProvider) *Processes {
	return &Processes{prov: prov}
}

// Category implements Collector.
func (p *Processes) Category() models.Category { return models.CategoryProcess }

// Collect implements Collector. The provider blocks for the sampling
// interval between its two CPU measurements; other collectors keep
// running during that window.
func (p *Processes) Collect(ctx context.Context, cfg Config) models.CollectorResult {
	samples, err := p.prov.Sample(ctx, cfg.sampleInterval())
	if err != nil {
		return failure(models.CategoryProcess, err)
	}

	// Rank by combined resource weight before truncating.
	sort.SliceStable(samples, func(i, j int) bool {
		return sampleWeight(samples[i]) > sampleWeight(samples[j])
	})
	if top := cfg.topProcesses(); len(samples) > top {
		samples = samples[:top]
	}

	findings := make([]models.Finding, 0, len(samples))
	for _, s := range samples {
		findings = append(findings, classify.Process(s.Name, classify.ProcessMetrics{
			PID:         s.PID,
			CPUPercent:  s.CPUPercent,
			MemoryBytes: s.MemoryBytes,
			ReadBytes:   s.ReadBytes,
			WriteBytes:  s.WriteBytes,
			IOUnknown:   s.IOUnknown,
		}))
	}

	return models.CollectorResult{Category: models.CategoryProcess, Findings: findings}
}

// sampleWeight combines CPU percentage and memory (in hundreds of MB)
// into a single ranking value.
func sampleWeight(s provider.ProcessSample) float64 {
	const bytesPerMB = 1024 * 1024
	return s.CPUPercent + float64(s.MemoryBytes)/bytesPerMB/100
}
