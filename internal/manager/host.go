package manager

import (
	"context"
	"errors"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

const cpuSampleWindow = time.Second

// HostProbe reads host resource counters.
type HostProbe interface {
	CPUPercent(ctx context.Context) (float64, error)
	Memory(ctx context.Context) (used uint64, percent float64, err error)
	Disk(ctx context.Context, path string) (used uint64, percent float64, err error)
	ProcessCount(ctx context.Context) (int, error)
	ListeningPorts(ctx context.Context) (map[int]bool, error)
}

type gopsutilProbe struct {
	window time.Duration
}

// NewHostProbe returns the gopsutil-backed probe for the current host.
func NewHostProbe() HostProbe {
	return &gopsutilProbe{window: cpuSampleWindow}
}

// CPUPercent blocks for the sample window and returns overall utilisation.
func (p *gopsutilProbe) CPUPercent(ctx context.Context) (float64, error) {
	values, err := cpu.PercentWithContext(ctx, p.window, false)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, errors.New("cpu percent unavailable")
	}
	return values[0], nil
}

func (p *gopsutilProbe) Memory(ctx context.Context) (uint64, float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	return vm.Used, vm.UsedPercent, nil
}

func (p *gopsutilProbe) Disk(ctx context.Context, path string) (uint64, float64, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, 0, err
	}
	return usage.Used, usage.UsedPercent, nil
}

func (p *gopsutilProbe) ProcessCount(ctx context.Context) (int, error) {
	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return len(pids), nil
}

// ListeningPorts returns the local TCP ports with a socket in LISTEN state.
func (p *gopsutilProbe) ListeningPorts(ctx context.Context) (map[int]bool, error) {
	conns, err := net.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return nil, err
	}
	ports := make(map[int]bool)
	for _, c := range conns {
		if c.Status == "LISTEN" {
			ports[int(c.Laddr.Port)] = true
		}
	}
	return ports, nil
}
