package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Item and interaction kinds recorded against a user context.
const (
	ItemTypeRestaurant = "restaurant"
	ItemTypeDish       = "dish"

	InteractionLike    = "like"
	InteractionDislike = "dislike"
)

// UserContext is the per-user preference record, keyed uniquely by UserID.
// InferredTastes maps a taste key (cuisine_<name> or prefers_<tag>) to a
// score in [0,1]; a missing key means a neutral 0.5, not zero. The record
// is only mutated through the taste update engine.
type UserContext struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`

	DietaryRestrictions datatypes.JSONSlice[string] `json:"dietary_restrictions"`
	CuisinePreferences  datatypes.JSONSlice[string] `json:"cuisine_preferences"`
	SpiceLevel          string                      `json:"spice_level"`
	Budget              string                      `gorm:"size:3" json:"budget"`

	InferredTastes datatypes.JSONType[map[string]float64] `json:"inferred_tastes"`

	// Append-only, insertion order is chronological order.
	Interactions []Interaction `gorm:"foreignKey:UserID;references:UserID" json:"interaction_history,omitempty"`
}

func (UserContext) TableName() string {
	return "user_contexts"
}

// Tastes returns the inferred taste map, never nil.
func (c *UserContext) Tastes() map[string]float64 {
	if m := c.InferredTastes.Data(); m != nil {
		return m
	}
	return map[string]float64{}
}

// Interaction is an immutable record of a single like/dislike event.
// ItemID is stored as a string but must resolve to an integer catalog id
// for taste propagation.
type Interaction struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	UserID    string    `gorm:"index;not null" json:"-"`
	ItemID    string    `gorm:"not null" json:"item_id"`
	ItemType  string    `gorm:"not null" json:"item_type"`
	Type      string    `gorm:"column:interaction_type;not null" json:"interaction_type"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"-"`
}

func (Interaction) TableName() string {
	return "interactions"
}
