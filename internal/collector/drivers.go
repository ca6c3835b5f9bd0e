package collector

import (
	"context"
	"sort"
	"strings"

	"github.com/okulov/windiag/internal/classify"
	"github.com/okulov/windiag/internal/models"
	"github.com/okulov/windiag/internal/provider"
)

// Drivers enumerates Plug-and-Play devices and reports the ones with
// active error codes or unsigned drivers. Healthy, signed devices are
// omitted; a full device inventory is noise, not findings.
type Drivers struct {
	prov provider.DeviceProvider
}

// NewDrivers creates the driver collector.
func NewDrivers(prov provider.DeviceProvider) *Drivers {
	return &Drivers{prov: prov}
}

// Category implements Collector.
func (d *Drivers) Category() models.Category { return models.CategoryDriver }

// Collect implements Collector.
func (d *Drivers) Collect(ctx context.Context, _ Config) models.CollectorResult {
	devices, err := d.prov.Devices(ctx)
	if err != nil {
		return failure(models.CategoryDriver, err)
	}

	sigs, sigErr := d.prov.Signatures(ctx)
	if sigErr != nil && ctx.Err() != nil {
		return failure(models.CategoryDriver, ctx.Err())
	}

	var findings []models.Finding
	flagged := make(map[string]bool)

	for _, dev := range devices {
		if dev.ErrorCode == 0 && deviceStatusOK(dev.Status) {
			continue
		}
		signed := true
		findings = append(findings, classify.Driver(dev.Name, classify.DriverMetrics{
			DeviceID:  dev.DeviceID,
			ErrorCode: dev.ErrorCode,
			Signed:    &signed,
		}))
		flagged[strings.ToLower(dev.Name)] = true
	}

	if sigErr != nil {
		findings = append(findings, classify.SignaturesUnavailable())
	} else {
		signedNo := false
		for _, sig := range sigs {
			if sig.Signed || flagged[strings.ToLower(sig.DeviceName)] {
				continue
			}
			findings = append(findings, classify.Driver(sig.DeviceName, classify.DriverMetrics{
				Version: sig.Version,
				Signed:  &signedNo,
			}))
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity > findings[j].Severity
	})

	return models.CollectorResult{Category: models.CategoryDriver, Findings: findings}
}

// deviceStatusOK treats an empty WMI status like OK; only explicit
// degraded/error states count as a status problem.
func deviceStatusOK(status string) bool {
	return status == "" || strings.EqualFold(status, "ok")
}
