package handlers

import (
	"net/http"
	"time"

	"jarvisgw/internal/models"
	"jarvisgw/internal/version"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func (h *GatewayHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   version.String(),
		"backend":   version.Backend,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// SystemStatus gathers metrics, service states and the anti-gravity settings
// concurrently. Only a metrics failure fails the request.
func (h *GatewayHandlers) SystemStatus(c *gin.Context) {
	var (
		metrics     models.MetricsSnapshot
		services    map[string]models.ServiceStatus
		antigravity models.AntigravityConfig
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		metrics, err = h.manager.SampleMetrics(ctx)
		return err
	})
	g.Go(func() error {
		services = h.manager.ServiceStatuses(ctx)
		return nil
	})
	g.Go(func() error {
		antigravity = h.manager.Antigravity()
		return nil
	})
	if err := g.Wait(); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"metrics":     metrics,
		"services":    services,
		"antigravity": antigravity,
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}

func (h *GatewayHandlers) AntigravityStatus(c *gin.Context) {
	metrics, err := h.manager.SampleMetrics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	cfg := h.manager.Antigravity()
	c.JSON(http.StatusOK, gin.H{
		"cpu_load":            metrics.CPULoad,
		"memory_used":         metrics.MemoryUsedGB,
		"optimization_level":  metrics.OptimizationLevel,
		"active_processes":    metrics.ActiveProcesses,
		"antigravity_enabled": cfg.Enabled,
		"weightless_mode":     cfg.WeightlessMode,
		"performance_boost":   cfg.PerformanceBoost,
	})
}

func (h *GatewayHandlers) MetricsHistory(c *gin.Context) {
	history := h.manager.MetricsHistory()
	c.JSON(http.StatusOK, gin.H{"history": history, "count": len(history)})
}
