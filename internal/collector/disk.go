package collector

import (
	"context"
	"sort"

	"github.com/okulov/windiag/internal/classify"
	"github.com/okulov/windiag/internal/models"
	"github.com/okulov/windiag/internal/provider"
)

// Disk inspects fixed-drive free space, failure prediction, and the
// temporary-file footprint.
type Disk struct {
	prov provider.DiskProvider
}

// NewDisk creates the disk collector.
func NewDisk(prov provider.DiskProvider) *Disk {
	return &Disk{prov: prov}
}

// Category implements Collector.
func (d *Disk) Category() models.Category { return models.CategoryDisk }

// Collect implements Collector. Failure prediction commonly needs
// elevation; when the query fails, drives carry an Unknown prediction
// metric instead of a silent OK.
func (d *Disk) Collect(ctx context.Context, _ Config) models.CollectorResult {
	partitions, err := d.prov.Partitions(ctx)
	if err != nil {
		return failure(models.CategoryDisk, err)
	}

	smart := classify.SmartUnknown
	if prediction, err := d.prov.FailurePrediction(ctx); err == nil {
		smart = classify.SmartOK
		for _, predicted := range prediction {
			if predicted {
				smart = classify.SmartFailurePredicted
				break
			}
		}
	}

	findings := make([]models.Finding, 0, len(partitions)+1)
	for _, p := range partitions {
		findings = append(findings, classify.Disk(p.Device, classify.DiskMetrics{
			Filesystem:  p.Filesystem,
			TotalBytes:  p.TotalBytes,
			FreeBytes:   p.FreeBytes,
			FreePercent: p.FreePercent,
			Smart:       smart,
		}))
	}

	if bytes, files, err := d.prov.TempUsage(ctx); err == nil {
		findings = append(findings, classify.TempUsage(bytes, files))
	} else if ctx.Err() != nil {
		return failure(models.CategoryDisk, ctx.Err())
	} else {
		findings = append(findings, classify.TempUnavailable())
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity > findings[j].Severity
	})

	return models.CollectorResult{Category: models.CategoryDisk, Findings: findings}
}
