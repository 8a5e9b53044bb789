package health

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostStats is a point-in-time reading of host resources.
type HostStats struct {
	CPUPercent      float64
	MemoryTotal     uint64
	MemoryAvailable uint64
	MemoryPercent   float64
	DiskTotal       uint64
	DiskFree        uint64
	DiskPercent     float64
}

// ReadHostStats samples cpu, memory and root disk usage. CPU is measured since
// the previous call, so it never blocks.
func ReadHostStats(ctx context.Context) (HostStats, error) {
	var stats HostStats

	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return stats, fmt.Errorf("failed to read cpu usage: %w", err)
	}
	if len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to read memory usage: %w", err)
	}
	stats.MemoryTotal = vm.Total
	stats.MemoryAvailable = vm.Available
	stats.MemoryPercent = vm.UsedPercent

	du, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		return stats, fmt.Errorf("failed to read disk usage: %w", err)
	}
	stats.DiskTotal = du.Total
	stats.DiskFree = du.Free
	stats.DiskPercent = du.UsedPercent

	return stats, nil
}
