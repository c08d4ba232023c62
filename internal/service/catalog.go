package service

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/tastemap/backend/internal/models"
)

// ErrNotFound is returned when a catalog row does not exist.
var ErrNotFound = errors.New("catalog row not found")

// DishDetail carries the dish fields the taste update engine needs.
type DishDetail struct {
	Name        string
	Cuisine     string
	DietaryTags []string
}

// CatalogService handles read-only catalog queries.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// FindRestaurants returns restaurants matching the given filters. Empty
// filters are open predicates: no constraint is applied for them.
func (s *CatalogService) FindRestaurants(ctx context.Context, cuisines []string, budget string, limit int) ([]models.Restaurant, error) {
	query := s.db.WithContext(ctx)
	if len(cuisines) > 0 {
		query = query.Where("cuisine IN ?", cuisines)
	}
	if budget != "" {
		query = query.Where("price_range = ?", budget)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var restaurants []models.Restaurant
	if err := query.Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

// FindDishes returns dishes for the given restaurant set, excluding any
// dish whose id (as string) appears in excludeIDs.
func (s *CatalogService) FindDishes(ctx context.Context, restaurantIDs []uint, excludeIDs []string, limit int) ([]models.Dish, error) {
	if len(restaurantIDs) == 0 {
		return nil, nil
	}

	query := s.db.WithContext(ctx).Where("restaurant_id IN ?", restaurantIDs)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dishes []models.Dish
	if err := query.Find(&dishes).Error; err != nil {
		return nil, err
	}
	if len(excludeIDs) == 0 {
		return dishes, nil
	}

	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	kept := dishes[:0]
	for _, d := range dishes {
		if _, ok := excluded[strconv.FormatUint(uint64(d.ID), 10)]; ok {
			continue
		}
		kept = append(kept, d)
	}
	return kept, nil
}

// RestaurantCuisine resolves a restaurant id to its cuisine.
func (s *CatalogService) RestaurantCuisine(ctx context.Context, id int) (string, error) {
	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return restaurant.Cuisine, nil
}

// DishDetail resolves a dish id to its name, dietary tags and the cuisine
// of its restaurant.
func (s *CatalogService) DishDetail(ctx context.Context, id int) (*DishDetail, error) {
	var dish models.Dish
	if err := s.db.WithContext(ctx).First(&dish, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cuisine, err := s.RestaurantCuisine(ctx, int(dish.RestaurantID))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return &DishDetail{
		Name:        dish.Name,
		Cuisine:     cuisine,
		DietaryTags: dish.DietaryTags,
	}, nil
}
