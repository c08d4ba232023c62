package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tastemap/backend/internal/models"
	"github.com/tastemap/backend/internal/pkg/logger"
	"github.com/tastemap/backend/internal/types"
)

const (
	adjustmentFactor = 0.1

	// neutralScore is the implied value of an absent taste key.
	neutralScore = 0.5
)

// TasteService is the taste update engine: the only writer of inferred
// tastes and interaction history.
type TasteService struct {
	contexts   IContextService
	catalog    ICatalogService
	classifier IClassifier
	log        *logger.Logger
}

// NewTasteService creates a new TasteService instance
func NewTasteService(contexts IContextService, catalog ICatalogService, classifier IClassifier, log *logger.Logger) *TasteService {
	return &TasteService{contexts: contexts, catalog: catalog, classifier: classifier, log: log}
}

// ApplyInteraction appends the interaction to the user's history and
// nudges the affected taste keys by ±0.1, clamped to [0,1]. An item id
// that does not resolve to a catalog row still records the interaction;
// only the score adjustment is skipped.
func (s *TasteService) ApplyInteraction(ctx context.Context, userID string, req *types.InteractionRequest) (*models.Interaction, error) {
	uc, err := s.contexts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	interaction := &models.Interaction{
		UserID:    userID,
		ItemID:    req.ItemID,
		ItemType:  req.ItemType,
		Type:      req.Type,
		Timestamp: ts,
	}
	if err := s.contexts.AppendInteraction(ctx, interaction); err != nil {
		return nil, err
	}

	factor := adjustmentFactor
	if req.Type == models.InteractionDislike {
		factor = -adjustmentFactor
	}

	itemID, err := strconv.Atoi(req.ItemID)
	if err != nil {
		s.log.Warn("interaction item id is not a catalog id, skipping taste update",
			"user_id", userID, "item_id", req.ItemID)
		return interaction, nil
	}

	tastes := uc.Tastes()
	switch req.ItemType {
	case models.ItemTypeRestaurant:
		cuisine, err := s.catalog.RestaurantCuisine(ctx, itemID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				s.log.Warn("restaurant not found, skipping taste update", "item_id", itemID)
				return interaction, nil
			}
			return nil, err
		}
		if err := s.adjustTaste(ctx, userID, tastes, cuisineKey(cuisine), factor); err != nil {
			return nil, err
		}

	case models.ItemTypeDish:
		detail, err := s.catalog.DishDetail(ctx, itemID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				s.log.Warn("dish not found, skipping taste update", "item_id", itemID)
				return interaction, nil
			}
			return nil, err
		}
		// A dish whose restaurant row is missing has no cuisine; skip the
		// cuisine key rather than record one with an empty name.
		if detail.Cuisine != "" {
			if err := s.adjustTaste(ctx, userID, tastes, cuisineKey(detail.Cuisine), factor); err != nil {
				return nil, err
			}
		}
		for _, tag := range detail.DietaryTags {
			if err := s.adjustTaste(ctx, userID, tastes, tagKey(tag), factor); err != nil {
				return nil, err
			}
		}
	}

	return interaction, nil
}

// ApplyFeedback classifies the feedback text and applies the derived
// interaction.
func (s *TasteService) ApplyFeedback(ctx context.Context, userID string, req *types.FeedbackRequest) (*types.FeedbackResponse, error) {
	sentiment := s.classifier.ClassifySentiment(ctx, req.FeedbackText)

	interaction, err := s.ApplyInteraction(ctx, userID, &types.InteractionRequest{
		ItemID:    req.ItemID,
		ItemType:  req.ItemType,
		Type:      InteractionTypeForSentiment(sentiment.Sentiment),
		Timestamp: req.Timestamp,
	})
	if err != nil {
		return nil, err
	}

	return &types.FeedbackResponse{
		Message:            fmt.Sprintf("AI-analyzed feedback recorded for user %s", userID),
		SentimentAnalysis:  sentiment,
		DerivedInteraction: *interaction,
		ContextUpdated:     true,
	}, nil
}

// InteractionTypeForSentiment maps a sentiment label to an interaction
// type. NEUTRAL counts as a dislike for now; this is the single decision
// point to change if neutral feedback should stop moving taste scores.
func InteractionTypeForSentiment(label string) string {
	if label == SentimentPositive {
		return models.InteractionLike
	}
	return models.InteractionDislike
}

// adjustTaste applies the factor to one key, clamped to [0,1]. The local
// map keeps multiple keys updated in the same call consistent with the
// snapshot the call started from.
func (s *TasteService) adjustTaste(ctx context.Context, userID string, tastes map[string]float64, key string, factor float64) error {
	current, ok := tastes[key]
	if !ok {
		current = neutralScore
	}
	value := clamp(current+factor, 0, 1)
	if err := s.contexts.SetTaste(ctx, userID, key, value); err != nil {
		return err
	}
	tastes[key] = value
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func cuisineKey(cuisine string) string {
	return "cuisine_" + strings.ToLower(cuisine)
}

func tagKey(tag string) string {
	return "prefers_" + strings.ReplaceAll(tag, "-", "_")
}
