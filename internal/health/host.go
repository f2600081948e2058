package health

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostStats is a snapshot of the machine the server runs on.
type HostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    string  `json:"memory_used"`
	MemoryTotal   string  `json:"memory_total"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskUsed      string  `json:"disk_used"`
	DiskTotal     string  `json:"disk_total"`
}

// CollectHost samples CPU over a short interval. Probes that fail leave their
// fields zero.
func CollectHost(ctx context.Context) HostStats {
	var s HostStats

	if p, err := cpu.PercentWithContext(ctx, 200*time.Millisecond, false); err == nil && len(p) > 0 {
		s.CPUPercent = p[0]
	}
	if m, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		s.MemoryPercent = m.UsedPercent
		s.MemoryUsed = FormatBytes(m.Used)
		s.MemoryTotal = FormatBytes(m.Total)
	}
	if d, err := disk.UsageWithContext(ctx, "/"); err == nil {
		s.DiskPercent = d.UsedPercent
		s.DiskUsed = FormatBytes(d.Used)
		s.DiskTotal = FormatBytes(d.Total)
	}
	return s
}

func FormatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}
