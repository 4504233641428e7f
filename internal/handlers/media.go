package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"jarvisgw/internal/manager"
	"jarvisgw/internal/middleware"
	"jarvisgw/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type trackCostRequest struct {
	Category string       `json:"category" validate:"max=64"`
	Amount   *json.Number `json:"amount"`
}

type trackVideoRequest struct {
	Title    string `json:"title" validate:"max=200"`
	Style    string `json:"style" validate:"max=100"`
	Duration *int   `json:"duration" validate:"omitempty,min=0,max=86400"`
}

// GenerateVideo and CreateComic only announce the job; nothing is rendered.
func (h *GatewayHandlers) GenerateVideo(c *gin.Context) {
	h.queueJob(c, "video", "video_gen", models.SourceMultimedia, "Video generation")
}

func (h *GatewayHandlers) CreateComic(c *gin.Context) {
	h.queueJob(c, "comic", "comic", models.SourceCreative, "Comic creation")
}

func (h *GatewayHandlers) queueJob(c *gin.Context, prefix, kind, source, label string) {
	jobID := prefix + "_" + uuid.NewString()
	h.manager.Broadcast(models.NewBroadcastMessage(kind, source, models.LevelInfo, label+" request received"))
	c.JSON(http.StatusOK, gin.H{
		"status":  "queued",
		"job_id":  jobID,
		"message": label + " queued",
	})
}

func (h *GatewayHandlers) CurrentCosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.Ledger().Snapshot())
}

// TrackCost books an amount against a category. Unknown categories are
// accepted but not applied, which the response reports in "applied".
func (h *GatewayHandlers) TrackCost(c *gin.Context) {
	var req trackCostRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = manager.CostAIAPIs
	}
	amount := decimal.Zero
	if req.Amount != nil {
		parsed, err := decimal.NewFromString(req.Amount.String())
		if err != nil {
			writeError(c, &middleware.ValidationError{Message: "amount must be a number", Details: err.Error()})
			return
		}
		if parsed.IsNegative() {
			writeError(c, &middleware.ValidationError{Message: "amount must not be negative"})
			return
		}
		amount = parsed
	}
	ledger := h.manager.Ledger()
	applied := ledger.Track(category, amount)
	c.JSON(http.StatusOK, gin.H{
		"status":     "tracked",
		"category":   category,
		"amount":     amount.InexactFloat64(),
		"applied":    applied,
		"total_cost": ledger.Total(),
	})
}

func (h *GatewayHandlers) RecentVideos(c *gin.Context) {
	videos, count := h.manager.RecentVideos()
	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": count})
}

func (h *GatewayHandlers) TrackVideo(c *gin.Context) {
	var req trackVideoRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	duration := manager.DefaultVideoDuration
	if req.Duration != nil {
		duration = *req.Duration
	}
	entry, cost := h.manager.TrackVideo(middleware.SanitizeString(req.Title), middleware.SanitizeString(req.Style), duration)
	c.JSON(http.StatusOK, gin.H{
		"status":         "generated",
		"video":          entry,
		"cost_breakdown": cost,
	})
}
