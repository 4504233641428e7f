package handlers

import (
	"errors"
	"net/http"

	"jarvisgw/internal/integrations/completion"
	"jarvisgw/internal/manager"
	"jarvisgw/internal/middleware"

	"github.com/gin-gonic/gin"
)

// GatewayHandlers serves the REST API on top of a Manager. provider may be nil,
// in which case content generation runs in demo mode.
type GatewayHandlers struct {
	manager  *manager.Manager
	provider completion.Provider
}

func NewGatewayHandlers(mgr *manager.Manager, provider completion.Provider) *GatewayHandlers {
	return &GatewayHandlers{manager: mgr, provider: provider}
}

// RegisterRoutes mounts every API route on r.
func (h *GatewayHandlers) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")

	api.GET("/health", h.Health)
	api.GET("/system/status", h.SystemStatus)
	api.GET("/antigravity/status", h.AntigravityStatus)
	api.GET("/metrics/history", h.MetricsHistory)

	api.GET("/workflows/list", h.ListWorkflows)
	api.GET("/workflows/active", h.ActiveWorkflows)
	api.POST("/workflows/execute", h.ExecuteWorkflow)
	api.GET("/workflows/:id", h.GetWorkflow)
	api.GET("/skills/list", h.ListSkills)
	api.GET("/models/list", h.ListModels)
	api.POST("/models/switch", h.SwitchModel)
	api.GET("/dashboards/list", h.ListDashboards)

	api.POST("/video/generate", h.GenerateVideo)
	api.POST("/comic/create", h.CreateComic)
	api.GET("/costs/current", h.CurrentCosts)
	api.POST("/costs/track", h.TrackCost)
	api.GET("/videos/recent", h.RecentVideos)
	api.POST("/videos/track", h.TrackVideo)

	api.POST("/content/generate", h.GenerateContent)
	api.POST("/content/save", h.SaveDraft)
	api.GET("/content/drafts", h.ListDrafts)
	api.POST("/tools/mythic", h.Mythic)
	api.POST("/tools/condense", h.Condense)
	api.POST("/podcast/convert", h.ConvertPodcast)
	api.POST("/video/essay", h.VideoEssay)
}

// writeError maps an error to its HTTP status and JSON body.
func writeError(c *gin.Context, err error) {
	var verr *middleware.ValidationError
	switch {
	case errors.As(err, &verr):
		body := gin.H{"error": verr.Message}
		if verr.Details != "" {
			body["details"] = verr.Details
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, manager.ErrWorkflowNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Workflow not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
