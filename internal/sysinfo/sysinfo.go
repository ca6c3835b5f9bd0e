// Package sysinfo reads machine-level facts for report headers and the
// elevation status that collectors use to degrade gracefully.
package sysinfo

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/okulov/windiag/internal/models"
)

// Host gathers hostname, platform, and current CPU/memory load. Partial
// reads are fine; a field that cannot be read stays zero rather than
// failing the whole header.
func Host(ctx context.Context) (*models.HostInfo, error) {
	info := &models.HostInfo{}

	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("read host info: %w", err)
	}
	info.Hostname = hi.Hostname
	info.Platform = hi.Platform
	if hi.PlatformVersion != "" {
		info.Platform = hi.Platform + " " + hi.PlatformVersion
	}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		info.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemoryTotal = vm.Total
		info.MemoryUsed = vm.Used
		info.MemoryPercent = vm.UsedPercent
	}

	return info, nil
}
