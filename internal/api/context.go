package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tastemap/backend/internal/service"
	"github.com/tastemap/backend/internal/types"
)

// ContextHandler serves the user taste-context endpoints.
type ContextHandler struct {
	contexts  service.IContextService
	tastes    service.ITasteService
	summaries service.ISummaryService
}

func NewContextHandler(contexts service.IContextService, tastes service.ITasteService, summaries service.ISummaryService) *ContextHandler {
	return &ContextHandler{
		contexts:  contexts,
		tastes:    tastes,
		summaries: summaries,
	}
}

func (h *ContextHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/context/users")
	{
		users.POST("/:user_id", h.UpsertPreferences)
		users.GET("/:user_id/summary", h.GetSummary)
		users.POST("/:user_id/interactions", h.RecordInteraction)
		users.POST("/:user_id/feedback", h.AnalyzeFeedback)
	}
}

// UpsertPreferences creates or updates a user's explicit preferences.
func (h *ContextHandler) UpsertPreferences(c *gin.Context) {
	var req types.UpsertPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uc, err := h.contexts.UpsertPreferences(c.Request.Context(), c.Param("user_id"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Preferences saved",
		"context": uc,
	})
}

// GetSummary returns the human-readable context summary for a user.
func (h *ContextHandler) GetSummary(c *gin.Context) {
	summary, err := h.summaries.Summarize(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		if errors.Is(err, service.ErrContextNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User context not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// RecordInteraction records a like/dislike and updates inferred tastes.
func (h *ContextHandler) RecordInteraction(c *gin.Context) {
	var req types.InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	interaction, err := h.tastes.ApplyInteraction(c.Request.Context(), c.Param("user_id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrContextNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User context not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record interaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Interaction recorded",
		"interaction": interaction,
	})
}

// AnalyzeFeedback classifies free-text feedback and folds the derived
// interaction into the user's taste profile.
func (h *ContextHandler) AnalyzeFeedback(c *gin.Context) {
	var req types.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.tastes.ApplyFeedback(c.Request.Context(), c.Param("user_id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrContextNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User context not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze feedback"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
