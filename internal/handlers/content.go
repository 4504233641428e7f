package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"jarvisgw/internal/integrations/completion"
	"jarvisgw/internal/manager"
	"jarvisgw/internal/middleware"
	"jarvisgw/internal/models"

	"github.com/gin-gonic/gin"
)

type generateContentRequest struct {
	Prompt  string `json:"prompt" validate:"required,notblank,max=10000"`
	Persona string `json:"persona" validate:"omitempty,persona"`
	// Tone is accepted as an alias of persona.
	Tone string `json:"tone" validate:"omitempty,persona"`
}

type saveDraftRequest struct {
	Content string `json:"content" validate:"required,notblank,max=100000"`
	Persona string `json:"persona" validate:"omitempty,persona"`
}

type textRequest struct {
	Text string `json:"text" validate:"required,notblank,max=100000"`
}

type condenseRequest struct {
	Text  string  `json:"text" validate:"required,notblank,max=100000"`
	Ratio float64 `json:"ratio" validate:"omitempty,gt=0,lte=1"`
}

type podcastRequest struct {
	Text  string `json:"text" validate:"required,notblank,max=100000"`
	Hosts string `json:"hosts" validate:"max=200"`
}

type essayRequest struct {
	Text  string `json:"text" validate:"required,notblank,max=100000"`
	Title string `json:"title" validate:"max=200"`
}

var personaPrompts = map[string]string{
	"Storyteller": "You are a warm, vivid storyteller. Write with narrative momentum, concrete scenes and a clear arc.",
	"Poet":        "You are a poet. Answer in lyrical verse with striking imagery and deliberate rhythm.",
	"Journalist":  "You are a journalist. Write clear, factual prose that leads with the most important information.",
	"Philosopher": "You are a philosopher. Explore the question carefully, weigh perspectives and draw out the underlying ideas.",
	"Comedian":    "You are a comedian. Be playful and witty while still addressing the request.",
	"Mentor":      "You are a patient mentor. Offer practical, encouraging guidance with actionable next steps.",
}

// GenerateContent writes content in a persona's voice. Without a configured
// provider it answers with a demo placeholder instead of failing.
func (h *GatewayHandlers) GenerateContent(c *gin.Context) {
	var req generateContentRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	persona := req.Persona
	if persona == "" {
		persona = req.Tone
	}
	if persona == "" {
		persona = models.DefaultPersona
	}
	prompt := middleware.SanitizeString(req.Prompt)

	if h.provider == nil {
		text := fmt.Sprintf("[Demo mode] %s would respond to: %q. Configure ANTHROPIC_API_KEY to enable live generation.", persona, prompt)
		c.JSON(http.StatusOK, gin.H{
			"status":            "demo",
			"demo":              true,
			"persona":           persona,
			"content":           text,
			"generated_content": text,
		})
		return
	}

	res, err := h.provider.Complete(c.Request.Context(), completion.Request{
		System:    personaPrompts[persona],
		Prompt:    prompt,
		MaxTokens: h.manager.Config.Completion.MaxTokens,
	})
	if err != nil {
		h.manager.Broadcast(models.NewBroadcastMessage("content_error", models.SourceContent, models.LevelError, "Content generation failed"))
		writeError(c, err)
		return
	}

	rates := h.manager.Config.Completion
	cost := h.manager.Ledger().TrackTokens(res.InputTokens, res.OutputTokens, rates.InputPerMTok, rates.OutputPerMTok)
	words := len(strings.Fields(res.Text))
	h.manager.Broadcast(models.NewBroadcastMessage("content", models.SourceContent, models.LevelSuccess,
		fmt.Sprintf("Generated %d words as %s", words, persona)))

	c.JSON(http.StatusOK, gin.H{
		"status":            "success",
		"persona":           persona,
		"model":             res.Model,
		"content":           res.Text,
		"generated_content": res.Text,
		"word_count":        words,
		"usage": gin.H{
			"input_tokens":  res.InputTokens,
			"output_tokens": res.OutputTokens,
		},
		"cost": cost,
	})
}

func (h *GatewayHandlers) SaveDraft(c *gin.Context) {
	var req saveDraftRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	draft := h.manager.SaveDraft(req.Content, req.Persona)
	c.JSON(http.StatusOK, gin.H{"status": "saved", "draft": draft})
}

func (h *GatewayHandlers) ListDrafts(c *gin.Context) {
	drafts := h.manager.Drafts()
	c.JSON(http.StatusOK, gin.H{"drafts": drafts, "count": len(drafts)})
}

func (h *GatewayHandlers) Mythic(c *gin.Context) {
	var req textRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	outline := manager.MythicOutline(req.Text)
	c.JSON(http.StatusOK, gin.H{"status": "success", "outline": outline, "stages": len(outline)})
}

func (h *GatewayHandlers) Condense(c *gin.Context) {
	var req condenseRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	condensed := manager.Condense(req.Text, req.Ratio)
	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"condensed":       condensed,
		"original_words":  len(strings.Fields(req.Text)),
		"condensed_words": len(strings.Fields(condensed)),
	})
}

func (h *GatewayHandlers) ConvertPodcast(c *gin.Context) {
	var req podcastRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	script := manager.PodcastScript(req.Text, req.Hosts)
	c.JSON(http.StatusOK, gin.H{"status": "success", "script": script, "line_count": len(script)})
}

func (h *GatewayHandlers) VideoEssay(c *gin.Context) {
	var req essayRequest
	if err := middleware.BindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	title := middleware.SanitizeString(req.Title)
	if title == "" {
		title = "Untitled Essay"
	}
	sections, seconds := manager.VideoEssay(req.Text)
	c.JSON(http.StatusOK, gin.H{
		"status":             "success",
		"title":              title,
		"sections":           sections,
		"estimated_seconds":  seconds,
		"estimated_duration": manager.FormatDuration(seconds),
	})
}
