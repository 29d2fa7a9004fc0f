// Package sysinfo samples host metrics for the status bar and the sysinfo
// command.
package sysinfo

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Snapshot is a point-in-time view of the host.
type Snapshot struct {
	Hostname string
	OS       string
	Platform string
	Kernel   string
	Arch     string
	CPUModel string
	Cores    int
	CPU      float64
	MemUsed  uint64
	MemTotal uint64
	MemPct   float64
	Load     [3]float64
	Uptime   time.Duration
}

// Sampler reads metrics. Tests swap it for a fixed source.
type Sampler interface {
	Snapshot(ctx context.Context) (Snapshot, error)
	CPUPercent(ctx context.Context) (float64, error)
	MemPercent(ctx context.Context) (float64, error)
}

// Host samples the machine folio runs on.
type Host struct{}

// Snapshot collects everything gopsutil can report. Individual probes that
// fail leave their fields zero; only a failing memory probe is an error.
func (Host) Snapshot(ctx context.Context) (Snapshot, error) {
	s := Snapshot{
		OS:    runtime.GOOS,
		Arch:  runtime.GOARCH,
		Cores: runtime.NumCPU(),
	}

	if info, err := host.InfoWithContext(ctx); err == nil {
		s.Hostname = info.Hostname
		s.OS = info.OS
		s.Platform = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
		s.Kernel = info.KernelVersion
		if info.KernelArch != "" {
			s.Arch = info.KernelArch
		}
		s.Uptime = time.Duration(info.Uptime) * time.Second
	}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		s.CPUModel = infos[0].ModelName
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		s.Cores = n
	}
	if pct, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pct) > 0 {
		s.CPU = pct[0]
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		s.Load = [3]float64{avg.Load1, avg.Load5, avg.Load15}
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return s, fmt.Errorf("memory: %w", err)
	}
	s.MemUsed = vm.Used
	s.MemTotal = vm.Total
	s.MemPct = vm.UsedPercent
	return s, nil
}

// CPUPercent returns overall CPU usage since the previous call.
func (Host) CPUPercent(ctx context.Context) (float64, error) {
	pct, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(pct) == 0 {
		return 0, nil
	}
	return pct[0], nil
}

// MemPercent returns the share of RAM in use.
func (Host) MemPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

// Lines formats a snapshot for a text window.
func (s Snapshot) Lines() []string {
	rows := [][2]string{
		{"Host", orUnknown(s.Hostname)},
		{"OS", orUnknown(strings.TrimSpace(s.OS + " " + s.Platform))},
		{"Kernel", orUnknown(s.Kernel)},
		{"Arch", orUnknown(s.Arch)},
		{"CPU", orUnknown(s.CPUModel)},
		{"Cores", fmt.Sprintf("%d", s.Cores)},
		{"Usage", fmt.Sprintf("%.1f%%", s.CPU)},
		{"Memory", fmt.Sprintf("%s / %s (%.1f%%)", FormatBytes(s.MemUsed), FormatBytes(s.MemTotal), s.MemPct)},
		{"Load", fmt.Sprintf("%.2f %.2f %.2f", s.Load[0], s.Load[1], s.Load[2])},
		{"Uptime", FormatUptime(s.Uptime)},
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-8s %s", r[0]+":", r[1]))
	}
	return lines
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// FormatBytes renders a byte count with a binary unit, e.g. "1.5 GiB".
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// FormatUptime renders d as "3d 4h 5m".
func FormatUptime(d time.Duration) string {
	d = d.Truncate(time.Minute)
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	mins := int(d / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// Graph renders samples as a fixed-width bar graph, padded on the left.
// Only the newest width samples are drawn.
func Graph(samples []float64, width int) string {
	if len(samples) > width {
		samples = samples[len(samples)-width:]
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(samples)))
	for _, usage := range samples {
		b.WriteRune(bar(usage))
	}
	return b.String()
}

var bars = []rune("▁▂▃▄▅▆▇█")

func bar(usage float64) rune {
	// 100/8 = 12.5
	h := int(usage / 12.5)
	return bars[max(0, min(h, len(bars)-1))]
}
