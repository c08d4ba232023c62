package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tastemap/backend/internal/models"
	"github.com/tastemap/backend/internal/types"
)

// ErrContextNotFound is returned when no context exists for a user id.
// Read paths never fabricate a context.
var ErrContextNotFound = errors.New("user context not found")

// ContextService is the taste store: it owns persistence of the per-user
// preference record. Taste scores and interaction history are only
// written through the taste update engine.
type ContextService struct {
	db *gorm.DB
}

// NewContextService creates a new ContextService instance
func NewContextService(db *gorm.DB) *ContextService {
	return &ContextService{db: db}
}

// Get loads a user context with its full interaction history.
func (s *ContextService) Get(ctx context.Context, userID string) (*models.UserContext, error) {
	var uc models.UserContext
	err := s.db.WithContext(ctx).
		Preload("Interactions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&uc, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContextNotFound
		}
		return nil, fmt.Errorf("failed to load user context: %w", err)
	}
	return &uc, nil
}

// UpsertPreferences creates the context on first submission and replaces
// the explicit preferences on later ones. Inferred tastes and history are
// left untouched; submitting identical preferences twice is idempotent.
func (s *ContextService) UpsertPreferences(ctx context.Context, userID string, req *types.UpsertPreferencesRequest) (*models.UserContext, error) {
	var uc models.UserContext
	err := s.db.WithContext(ctx).First(&uc, "user_id = ?", userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		uc = models.UserContext{
			ID:                  uuid.New(),
			UserID:              userID,
			DietaryRestrictions: datatypes.JSONSlice[string](req.DietaryRestrictions),
			CuisinePreferences:  datatypes.JSONSlice[string](req.CuisinePreferences),
			SpiceLevel:          req.SpiceLevel,
			Budget:              req.Budget,
			InferredTastes:      datatypes.NewJSONType(map[string]float64{}),
		}
		if err := s.db.WithContext(ctx).Create(&uc).Error; err != nil {
			return nil, fmt.Errorf("failed to create user context: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load user context: %w", err)
	default:
		updates := map[string]interface{}{
			"dietary_restrictions": datatypes.JSONSlice[string](req.DietaryRestrictions),
			"cuisine_preferences":  datatypes.JSONSlice[string](req.CuisinePreferences),
			"spice_level":          req.SpiceLevel,
			"budget":               req.Budget,
		}
		if err := s.db.WithContext(ctx).Model(&uc).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user context: %w", err)
		}
	}

	return s.Get(ctx, userID)
}

// AppendInteraction records an interaction. Records are immutable and
// never removed; insertion order is chronological order.
func (s *ContextService) AppendInteraction(ctx context.Context, interaction *models.Interaction) error {
	if err := s.db.WithContext(ctx).Create(interaction).Error; err != nil {
		return fmt.Errorf("failed to append interaction: %w", err)
	}
	return nil
}

// SetTaste upserts a single taste key with a per-key JSON path update, so
// writes to different keys of the same user never overwrite each other.
// Concurrent updates to the same key are last-write-wins; this weak
// consistency is accepted.
func (s *ContextService) SetTaste(ctx context.Context, userID, key string, value float64) error {
	res := s.db.WithContext(ctx).Model(&models.UserContext{}).
		Where("user_id = ?", userID).
		Update("inferred_tastes", datatypes.JSONSet("inferred_tastes").Set(key, value))
	if res.Error != nil {
		return fmt.Errorf("failed to set taste %q: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrContextNotFound
	}
	return nil
}
