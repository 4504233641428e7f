package manager

import (
	"context"

	"jarvisgw/internal/models"
)

// Probed sibling services and their fixed ports.
const (
	ServiceWorkflowStudio  = "workflow_studio"
	ServiceUltimateHub     = "ultimate_hub"
	ServiceAICommandCenter = "ai_command_center"
	ServiceBackend         = "backend"
)

var probedServices = []struct {
	name string
	port int
}{
	{ServiceWorkflowStudio, 8560},
	{ServiceUltimateHub, 8550},
	{ServiceAICommandCenter, 3000},
}

// ServiceStatuses reports whether each sibling service is listening. The
// socket table is read once per call; if it cannot be read every probed
// service reports "error". The gateway itself is always "running".
func (m *Manager) ServiceStatuses(ctx context.Context) map[string]models.ServiceStatus {
	out := make(map[string]models.ServiceStatus, len(probedServices)+1)
	ports, err := m.host.ListeningPorts(ctx)
	if err != nil {
		m.logf("Service probe failed: %v", err)
	}
	for _, svc := range probedServices {
		status := models.ServiceOffline
		switch {
		case err != nil:
			status = models.ServiceError
		case ports[svc.port]:
			status = models.ServiceRunning
		}
		out[svc.name] = models.ServiceStatus{Port: svc.port, Status: status}
	}
	out[ServiceBackend] = models.ServiceStatus{Port: m.Config.Port, Status: models.ServiceRunning}
	return out
}
