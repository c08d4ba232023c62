package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tastemap/backend/internal/service"
)

// RecommendationHandler serves the recommendation endpoints.
type RecommendationHandler struct {
	recommendations service.IRecommendationService
}

func NewRecommendationHandler(recommendations service.IRecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/recommendations/users")
	{
		users.GET("/:user_id", h.GetRecommendations)
		users.GET("/:user_id/enhanced", h.GetEnhancedRecommendations)
	}
}

// GetRecommendations returns filtered and ranked recommendations.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	resp, err := h.recommendations.Recommend(c.Request.Context(), c.Param("user_id"), excludedIDs(c))
	if err != nil {
		if errors.Is(err, service.ErrContextNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User context not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recommendations"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetEnhancedRecommendations returns recommendations with AI-generated
// dish descriptions and attributes.
func (h *RecommendationHandler) GetEnhancedRecommendations(c *gin.Context) {
	resp, err := h.recommendations.RecommendEnhanced(c.Request.Context(), c.Param("user_id"), excludedIDs(c))
	if err != nil {
		if errors.Is(err, service.ErrContextNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User context not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recommendations"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// excludedIDs parses the comma-separated excluded query parameter.
func excludedIDs(c *gin.Context) []string {
	raw := c.Query("excluded")
	if raw == "" {
		return nil
	}

	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}
