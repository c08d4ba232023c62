package service

import (
	"context"

	"github.com/tastemap/backend/internal/models"
	"github.com/tastemap/backend/internal/types"
)

// ICatalogService defines read access to the restaurant/dish catalog.
type ICatalogService interface {
	FindRestaurants(ctx context.Context, cuisines []string, budget string, limit int) ([]models.Restaurant, error)
	FindDishes(ctx context.Context, restaurantIDs []uint, excludeIDs []string, limit int) ([]models.Dish, error)
	RestaurantCuisine(ctx context.Context, id int) (string, error)
	DishDetail(ctx context.Context, id int) (*DishDetail, error)
}

// IContextService defines the taste store operations.
type IContextService interface {
	Get(ctx context.Context, userID string) (*models.UserContext, error)
	UpsertPreferences(ctx context.Context, userID string, req *types.UpsertPreferencesRequest) (*models.UserContext, error)
	AppendInteraction(ctx context.Context, interaction *models.Interaction) error
	SetTaste(ctx context.Context, userID, key string, value float64) error
}

// IClassifier is the classification adapter. Calls never fail: every
// provider error resolves to a deterministic local fallback.
type IClassifier interface {
	GenerateDescription(ctx context.Context, dish, cuisine string, dietary []string) string
	ClassifySentiment(ctx context.Context, text string) types.SentimentResult
	ClassifyAttributes(ctx context.Context, name, description string) []string
}

// ITasteService defines the taste update engine operations.
type ITasteService interface {
	ApplyInteraction(ctx context.Context, userID string, req *types.InteractionRequest) (*models.Interaction, error)
	ApplyFeedback(ctx context.Context, userID string, req *types.FeedbackRequest) (*types.FeedbackResponse, error)
}

// ISummaryService builds the human-readable context summary.
type ISummaryService interface {
	Summarize(ctx context.Context, userID string) (*types.ContextSummary, error)
}

// IRecommendationService defines the recommendation pipeline operations.
type IRecommendationService interface {
	Recommend(ctx context.Context, userID string, excludedIDs []string) (*types.RecommendationResponse, error)
	RecommendEnhanced(ctx context.Context, userID string, excludedIDs []string) (*types.EnhancedRecommendationResponse, error)
}
