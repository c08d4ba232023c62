package types

import "time"

// UpsertPreferencesRequest is the request body for creating or replacing a
// user's explicit preferences. Submitting the same payload twice yields
// the same stored preferences.
type UpsertPreferencesRequest struct {
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CuisinePreferences  []string `json:"cuisine_preferences"`
	SpiceLevel          string   `json:"spice_level"`
	Budget              string   `json:"budget" binding:"omitempty,oneof=$ $$ $$$"`
}

// InteractionRequest records an explicit like/dislike against a catalog item.
type InteractionRequest struct {
	ItemID    string    `json:"item_id" binding:"required"`
	ItemType  string    `json:"item_type" binding:"required,oneof=restaurant dish"`
	Type      string    `json:"interaction_type" binding:"required,oneof=like dislike"`
	Timestamp time.Time `json:"timestamp"`
}

// FeedbackRequest carries free-text feedback to be sentiment-classified.
type FeedbackRequest struct {
	FeedbackText string    `json:"feedback_text" binding:"required"`
	ItemID       string    `json:"item_id" binding:"required"`
	ItemType     string    `json:"item_type" binding:"required,oneof=restaurant dish"`
	Timestamp    time.Time `json:"timestamp"`
}
