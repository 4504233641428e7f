package manager

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"jarvisgw/internal/models"
)

const (
	telemetryInterval = 5 * time.Second
	bytesPerGiB       = 1 << 30
)

// SampleMetrics reads the host counters and records the result in the metrics
// history. A CPU read failure is returned; the other counters degrade to zero.
func (m *Manager) SampleMetrics(ctx context.Context) (models.MetricsSnapshot, error) {
	cpuLoad, err := m.host.CPUPercent(ctx)
	if err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("sample cpu: %w", err)
	}

	memUsed, memPercent, err := m.host.Memory(ctx)
	if err != nil {
		m.logf("Metrics: memory read failed: %v", err)
	}
	diskUsed, diskPercent, err := m.host.Disk(ctx, m.Paths.MetricsDiskPath())
	if err != nil {
		m.logf("Metrics: disk read failed: %v", err)
	}
	procs, err := m.host.ProcessCount(ctx)
	if err != nil {
		m.logf("Metrics: process count failed: %v", err)
	}

	snapshot := models.MetricsSnapshot{
		CPULoad:           cpuLoad,
		MemoryUsedGB:      round1(float64(memUsed) / bytesPerGiB),
		MemoryPercent:     memPercent,
		DiskUsedGB:        round1(float64(diskUsed) / bytesPerGiB),
		DiskPercent:       diskPercent,
		OptimizationLevel: optimizationLevel(cpuLoad, memPercent),
		ActiveProcesses:   procs,
	}
	m.metrics.Append(models.MetricsSample{
		Timestamp:    nowISO(),
		CPU:          snapshot.CPULoad,
		Memory:       snapshot.MemoryPercent,
		Optimization: snapshot.OptimizationLevel,
	})
	return snapshot, nil
}

// MetricsHistory returns the recorded samples, oldest first.
func (m *Manager) MetricsHistory() []models.MetricsSample {
	return m.metrics.Snapshot()
}

// optimizationLevel is 100 minus the mean of CPU and memory load. It is not
// clamped, so it can go negative on an overloaded host.
func optimizationLevel(cpuLoad, memPercent float64) float64 {
	return round1(100 - (cpuLoad+memPercent)/2)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// MetricsSummary renders the one-line status pushed with each sample.
func MetricsSummary(s models.MetricsSnapshot) string {
	return fmt.Sprintf("CPU: %s%% | RAM: %s%% | Optimization: %s%%",
		formatPercent(s.CPULoad), formatPercent(s.MemoryPercent), formatPercent(s.OptimizationLevel))
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// StartTelemetryMonitor launches the background loop that samples metrics
// every monitor interval and broadcasts them. Calling it twice is a no-op.
func (m *Manager) StartTelemetryMonitor() {
	if m == nil {
		return
	}
	m.telemetryMu.Lock()
	if m.telemetryStop != nil {
		m.telemetryMu.Unlock()
		return
	}
	stop := make(chan struct{})
	m.telemetryStop = stop
	m.telemetryMu.Unlock()

	interval := telemetryInterval
	if m.Config != nil && m.Config.MonitorInterval > 0 {
		interval = m.Config.MonitorInterval
	}

	m.telemetryWG.Add(1)
	go func() {
		defer m.telemetryWG.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			<-stop
			cancel()
		}()
		for {
			select {
			case <-ticker.C:
				m.monitorTick(ctx)
			case <-stop:
				return
			}
		}
	}()
}

// StopTelemetryMonitor stops the loop and waits for the current tick to finish.
func (m *Manager) StopTelemetryMonitor() {
	if m == nil {
		return
	}
	m.telemetryMu.Lock()
	stop := m.telemetryStop
	m.telemetryStop = nil
	m.telemetryMu.Unlock()
	if stop != nil {
		close(stop)
	}
	m.telemetryWG.Wait()
}

// monitorTick runs one sample-and-broadcast iteration. Failures and panics are
// logged and the loop carries on.
func (m *Manager) monitorTick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.logf("Metrics monitor recovered from panic: %v", r)
		}
	}()
	snapshot, err := m.SampleMetrics(ctx)
	if err != nil {
		if ctx.Err() == nil {
			m.logf("Metrics monitor: %v", err)
		}
		return
	}
	msg := models.NewBroadcastMessage("metrics", models.SourceSystem, models.LevelInfo, MetricsSummary(snapshot)).WithMetrics(snapshot)
	m.Broadcast(msg)
}
