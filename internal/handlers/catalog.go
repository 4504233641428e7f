package handlers

import (
	"net/http"

	"jarvisgw/internal/middleware"
	"jarvisgw/internal/models"

	"github.com/gin-gonic/gin"
)

type executeWorkflowRequest struct {
	WorkflowID string `json:"workflow_id" validate:"required,notblank,max=200"`
}

type switchModelRequest struct {
	Model string `json:"model" validate:"required,notblank,max=200"`
}

func (h *GatewayHandlers) ListWorkflows(c *gin.Context) {
	workflows := h.manager.Workflows()
	c.JSON(http.StatusOK, gin.H{"workflows": workflows, "count": len(workflows)})
}

// ActiveWorkflows is always empty: workflows are announced, never run here.
func (h *GatewayHandlers) ActiveWorkflows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"workflows": []models.WorkflowSummary{}, "count": 0})
}

func (h *GatewayHandlers) GetWorkflow(c *gin.Context) {
	doc, err := h.manager.Workflow(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *GatewayHandlers) ExecuteWorkflow(c *gin.Context) {
	var req executeWorkflowRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	id := middleware.SanitizeString(req.WorkflowID)
	h.manager.Broadcast(models.NewBroadcastMessage("workflow_"+id, models.SourceJarvis, models.LevelInfo, "Starting workflow: "+id))
	c.JSON(http.StatusOK, gin.H{
		"status":      "started",
		"workflow_id": id,
		"message":     "Workflow execution started",
	})
}

func (h *GatewayHandlers) ListSkills(c *gin.Context) {
	skills := h.manager.Skills()
	c.JSON(http.StatusOK, gin.H{"skills": skills, "count": len(skills)})
}

func (h *GatewayHandlers) ListModels(c *gin.Context) {
	list := h.manager.AIModels()
	c.JSON(http.StatusOK, gin.H{"models": list, "count": len(list), "active": h.manager.ActiveModel()})
}

func (h *GatewayHandlers) SwitchModel(c *gin.Context) {
	var req switchModelRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	id := middleware.SanitizeString(req.Model)
	h.manager.SwitchModel(id)
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"model":   id,
		"message": "Switched to " + id,
	})
}

func (h *GatewayHandlers) ListDashboards(c *gin.Context) {
	dashboards := h.manager.Dashboards(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"dashboards": dashboards, "count": len(dashboards)})
}
