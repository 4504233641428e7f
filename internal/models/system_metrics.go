package models

// MetricsSnapshot captures host-level resource usage sampled for dashboard display.
type MetricsSnapshot struct {
	CPULoad           float64 `json:"cpu_load"`
	MemoryUsedGB      float64 `json:"memory_used_gb"`
	MemoryPercent     float64 `json:"memory_percent"`
	DiskUsedGB        float64 `json:"disk_used_gb"`
	DiskPercent       float64 `json:"disk_percent"`
	OptimizationLevel float64 `json:"optimization_level"`
	ActiveProcesses   int     `json:"active_processes"`
}

// MetricsSample is one point of the in-memory metrics history used for charts.
type MetricsSample struct {
	Timestamp    string  `json:"timestamp"`
	CPU          float64 `json:"cpu"`
	Memory       float64 `json:"memory"`
	Optimization float64 `json:"optimization"`
}

// ServiceStatus reports whether a sibling service is listening on its port.
type ServiceStatus struct {
	Port   int    `json:"port"`
	Status string `json:"status"`
}

const (
	ServiceRunning = "running"
	ServiceOffline = "offline"
	ServiceError   = "error"
	ServiceUnknown = "unknown"
)
