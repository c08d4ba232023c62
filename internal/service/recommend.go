package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tastemap/backend/internal/models"
	"github.com/tastemap/backend/internal/pkg/logger"
	"github.com/tastemap/backend/internal/types"
)

const (
	restaurantLimit         = 15
	fallbackRestaurantLimit = 10
	minDishCount            = 10
	backfillLimit           = 10

	// affinityThreshold is the inferred score above which a cuisine
	// promotes its restaurants to the front of the result.
	affinityThreshold = 0.6

	cuisineMatchWeight = 0.8
	budgetMatchWeight  = 0.7
	dietaryMatchWeight = 0.9
)

// RecommendationService runs the filter/rank/backfill pipeline over the
// catalog and optionally enriches dishes through the classifier.
type RecommendationService struct {
	contexts   IContextService
	catalog    ICatalogService
	classifier IClassifier
	log        *logger.Logger
}

// NewRecommendationService creates a new RecommendationService instance
func NewRecommendationService(contexts IContextService, catalog ICatalogService, classifier IClassifier, log *logger.Logger) *RecommendationService {
	return &RecommendationService{contexts: contexts, catalog: catalog, classifier: classifier, log: log}
}

// Recommend builds restaurant and dish recommendations for a user,
// honoring explicit preferences, promoting inferred affinities and
// widening the query when filters produce nothing.
func (s *RecommendationService) Recommend(ctx context.Context, userID string, excludedIDs []string) (*types.RecommendationResponse, error) {
	uc, err := s.contexts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	restaurants, err := s.catalog.FindRestaurants(ctx, uc.CuisinePreferences, uc.Budget, restaurantLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}

	// Over-constrained preferences must never dead-end: reissue without
	// filters instead of returning an empty set.
	filtered := len(uc.CuisinePreferences) > 0 || uc.Budget != ""
	if len(restaurants) == 0 && filtered {
		s.log.Info("no restaurants matched filters, retrying unfiltered", "user_id", userID)
		restaurants, err = s.catalog.FindRestaurants(ctx, nil, "", fallbackRestaurantLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to query restaurants: %w", err)
		}
	}

	tastes := uc.Tastes()
	restaurants = promoteByAffinity(restaurants, tastes)

	dishes, err := s.collectDishes(ctx, uc, restaurants, excludedIDs)
	if err != nil {
		return nil, err
	}

	factors := map[string]float64{
		"cuisine_match": 0,
		"budget_match":  0,
		"dietary_match": 0,
	}
	if len(uc.CuisinePreferences) > 0 {
		factors["cuisine_match"] = cuisineMatchWeight
	}
	if uc.Budget != "" {
		factors["budget_match"] = budgetMatchWeight
	}
	if len(uc.DietaryRestrictions) > 0 {
		factors["dietary_match"] = dietaryMatchWeight
	}
	for key, value := range tastes {
		factors["inferred_"+key] = value
	}

	return &types.RecommendationResponse{
		Restaurants: restaurants,
		Dishes:      dishes,
		Message: fmt.Sprintf("Generated %d restaurant and %d dish recommendations for user %s",
			len(restaurants), len(dishes), userID),
		Factors:     factors,
		UserContext: uc,
	}, nil
}

// collectDishes fetches dishes for the restaurant set, applies the
// exclusion and dietary filters, and backfills when too few remain.
func (s *RecommendationService) collectDishes(ctx context.Context, uc *models.UserContext, restaurants []models.Restaurant, excludedIDs []string) ([]models.Dish, error) {
	restaurantIDs := make([]uint, len(restaurants))
	for i, r := range restaurants {
		restaurantIDs[i] = r.ID
	}

	candidates, err := s.catalog.FindDishes(ctx, restaurantIDs, excludedIDs, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to query dishes: %w", err)
	}

	var dishes []models.Dish
	for _, d := range candidates {
		if matchesDietary(d.DietaryTags, uc.DietaryRestrictions) {
			dishes = append(dishes, d)
		}
	}

	if len(dishes) >= minDishCount || len(restaurantIDs) == 0 {
		return dishes, nil
	}

	// Backfill ignores the dietary filter but never reintroduces an
	// explicitly excluded id.
	s.log.Info("dish set too sparse after filtering, backfilling", "count", len(dishes))
	extra, err := s.catalog.FindDishes(ctx, restaurantIDs, nil, backfillLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to backfill dishes: %w", err)
	}

	existing := make(map[uint]struct{}, len(dishes))
	for _, d := range dishes {
		existing[d.ID] = struct{}{}
	}
	excluded := make(map[string]struct{}, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = struct{}{}
	}

	for _, d := range extra {
		if _, ok := existing[d.ID]; ok {
			continue
		}
		if _, ok := excluded[strconv.FormatUint(uint64(d.ID), 10)]; ok {
			continue
		}
		dishes = append(dishes, d)
	}
	return dishes, nil
}

// RecommendEnhanced runs the standard pipeline and attaches AI-generated
// descriptions and attributes to every dish. Enrichment only adds
// fields; a failing provider degrades to the classifier's fallbacks.
func (s *RecommendationService) RecommendEnhanced(ctx context.Context, userID string, excludedIDs []string) (*types.EnhancedRecommendationResponse, error) {
	base, err := s.Recommend(ctx, userID, excludedIDs)
	if err != nil {
		return nil, err
	}

	cuisineByRestaurant := make(map[uint]string, len(base.Restaurants))
	for _, r := range base.Restaurants {
		cuisineByRestaurant[r.ID] = r.Cuisine
	}

	var dietary []string
	if base.UserContext != nil {
		dietary = base.UserContext.DietaryRestrictions
	}

	enhanced := make([]types.EnhancedDish, 0, len(base.Dishes))
	for _, dish := range base.Dishes {
		cuisine, ok := cuisineByRestaurant[dish.RestaurantID]
		if !ok {
			cuisine = "delicious"
		}
		enhanced = append(enhanced, types.EnhancedDish{
			Dish:          dish,
			AIDescription: s.classifier.GenerateDescription(ctx, dish.Name, cuisine, dietary),
			AIAttributes:  s.classifier.ClassifyAttributes(ctx, dish.Name, dish.Description),
		})
	}

	resp := &types.EnhancedRecommendationResponse{
		RecommendationResponse: *base,
		EnhancedDishes:         enhanced,
		AIPowered:              true,
	}
	resp.Message = fmt.Sprintf("Generated %d AI-enhanced recommendations for user %s",
		len(base.Restaurants), userID)
	return resp, nil
}

// promoteByAffinity moves restaurants whose cuisine scores above the
// affinity threshold to the front, preserving the order in which they
// were discovered; everyone else keeps their query order.
func promoteByAffinity(restaurants []models.Restaurant, tastes map[string]float64) []models.Restaurant {
	if len(restaurants) == 0 {
		return restaurants
	}

	promoted := make([]models.Restaurant, 0, len(restaurants))
	rest := make([]models.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if tastes[cuisineKey(r.Cuisine)] > affinityThreshold {
			promoted = append(promoted, r)
		} else {
			rest = append(rest, r)
		}
	}
	return append(promoted, rest...)
}

// matchesDietary reports whether a dish passes the user's dietary
// restrictions. With restrictions set, a dish must share at least one
// tag; an untagged dish does not automatically pass.
func matchesDietary(tags []string, restrictions []string) bool {
	if len(restrictions) == 0 {
		return true
	}
	for _, tag := range tags {
		for _, r := range restrictions {
			if tag == r {
				return true
			}
		}
	}
	return false
}
