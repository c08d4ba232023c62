package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tastemap/backend/internal/models"
	"github.com/tastemap/backend/internal/types"
)

// newTestDB opens an isolated in-memory database and migrates the schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Restaurant{},
		&models.Dish{},
		&models.UserContext{},
		&models.Interaction{},
	))
	return db
}

// seedCatalog inserts a small cross-cuisine catalog and returns the
// restaurants keyed by cuisine.
func seedCatalog(t *testing.T, db *gorm.DB) map[string]models.Restaurant {
	t.Helper()

	restaurants := []models.Restaurant{
		{Name: "Bella Napoli", Cuisine: "Italian", PriceRange: "$$", Location: "Downtown"},
		{Name: "Taj Spice House", Cuisine: "Indian", PriceRange: "$$", Location: "Midtown"},
		{Name: "El Camino Taqueria", Cuisine: "Mexican", PriceRange: "$", Location: "East Side"},
	}
	require.NoError(t, db.Create(&restaurants).Error)

	byCuisine := make(map[string]models.Restaurant, len(restaurants))
	for _, r := range restaurants {
		byCuisine[r.Cuisine] = r
	}

	dishes := []models.Dish{
		{RestaurantID: byCuisine["Italian"].ID, Name: "Margherita Pizza", Description: "Tomato, mozzarella, basil", Price: 14.50, DietaryTags: models.TagList{"vegetarian"}},
		{RestaurantID: byCuisine["Italian"].ID, Name: "Spaghetti Carbonara", Description: "Guanciale, pecorino, black pepper", Price: 16.00, DietaryTags: models.TagList{}},
		{RestaurantID: byCuisine["Indian"].ID, Name: "Chana Masala", Description: "Chickpeas, garam masala", Price: 12.00, DietaryTags: models.TagList{"vegetarian", "vegan"}},
		{RestaurantID: byCuisine["Indian"].ID, Name: "Butter Chicken", Description: "Creamy tomato gravy", Price: 16.00, DietaryTags: models.TagList{"gluten-free"}},
		{RestaurantID: byCuisine["Mexican"].ID, Name: "Carne Asada Taco", Description: "Grilled marinated steak", Price: 4.50, DietaryTags: models.TagList{}},
		{RestaurantID: byCuisine["Mexican"].ID, Name: "Veggie Burrito", Description: "Beans, rice, guacamole", Price: 10.00, DietaryTags: models.TagList{"vegetarian", "vegan"}},
	}
	require.NoError(t, db.Create(&dishes).Error)

	return byCuisine
}

// createContext stores explicit preferences for a user and returns the
// fresh record.
func createContext(t *testing.T, contexts IContextService, userID string, req *types.UpsertPreferencesRequest) *models.UserContext {
	t.Helper()

	if req == nil {
		req = &types.UpsertPreferencesRequest{}
	}
	uc, err := contexts.UpsertPreferences(context.Background(), userID, req)
	require.NoError(t, err)
	return uc
}

// stubProvider scripts provider answers for classifier tests. A nil field
// makes the corresponding call fail.
type stubProvider struct {
	description string
	sentiment   *types.SentimentResult
	attributes  []string

	descriptionCalls int
	sentimentCalls   int
	attributeCalls   int
}

func (p *stubProvider) GenerateDescription(ctx context.Context, dish, cuisine string, dietary []string) (string, error) {
	p.descriptionCalls++
	if p.description == "" {
		return "", fmt.Errorf("provider unavailable")
	}
	return p.description, nil
}

func (p *stubProvider) ClassifySentiment(ctx context.Context, text string) (*types.SentimentResult, error) {
	p.sentimentCalls++
	if p.sentiment == nil {
		return nil, fmt.Errorf("provider unavailable")
	}
	return p.sentiment, nil
}

func (p *stubProvider) ClassifyAttributes(ctx context.Context, name, description string) ([]string, error) {
	p.attributeCalls++
	if p.attributes == nil {
		return nil, fmt.Errorf("provider unavailable")
	}
	return p.attributes, nil
}
