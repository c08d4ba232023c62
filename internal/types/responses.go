package types

import "github.com/tastemap/backend/internal/models"

// SentimentResult is the outcome of classifying one piece of feedback text.
type SentimentResult struct {
	Sentiment  string   `json:"sentiment"` // POSITIVE, NEGATIVE or NEUTRAL
	Confidence float64  `json:"confidence"`
	Details    []string `json:"details"`
}

// EnhancedDish is a catalog dish with AI-generated fields attached.
// Enrichment only adds fields; it never filters or reorders.
type EnhancedDish struct {
	models.Dish
	AIDescription string   `json:"ai_description,omitempty"`
	AIAttributes  []string `json:"ai_attributes"`
}

// RecommendationResponse is the output of the recommendation pipeline.
type RecommendationResponse struct {
	Restaurants []models.Restaurant `json:"restaurants"`
	Dishes      []models.Dish       `json:"dishes"`
	Message     string              `json:"message"`
	Factors     map[string]float64  `json:"recommendation_factors"`
	UserContext *models.UserContext `json:"user_context,omitempty"`
}

// EnhancedRecommendationResponse adds the AI-enriched dish list.
type EnhancedRecommendationResponse struct {
	RecommendationResponse
	EnhancedDishes []EnhancedDish `json:"enhanced_dishes"`
	AIPowered      bool           `json:"ai_powered"`
}

// FeedbackResponse reports the sentiment analysis and the interaction
// derived from it.
type FeedbackResponse struct {
	Message            string             `json:"message"`
	SentimentAnalysis  SentimentResult    `json:"sentiment_analysis"`
	DerivedInteraction models.Interaction `json:"derived_interaction"`
	ContextUpdated     bool               `json:"context_updated"`
}

// ExplicitPreferences is the explicit slice of a context summary.
type ExplicitPreferences struct {
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CuisinePreferences  []string `json:"cuisine_preferences"`
	SpiceLevel          string   `json:"spice_level"`
	Budget              string   `json:"budget"`
}

// ContextSummary is a human-readable projection of a user context.
type ContextSummary struct {
	UserID              string               `json:"user_id"`
	ExplicitPreferences ExplicitPreferences  `json:"explicit_preferences"`
	InferredPreferences map[string]float64   `json:"inferred_preferences"`
	RecentInteractions  []models.Interaction `json:"recent_interactions"`
	ContextAge          string               `json:"context_age"`
	PreferenceInsights  []string             `json:"preference_insights"`
}
