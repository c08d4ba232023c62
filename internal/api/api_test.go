package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tastemap/backend/internal/models"
	"github.com/tastemap/backend/internal/pkg/logger"
	"github.com/tastemap/backend/internal/service"
)

type fixture struct {
	router *gin.Engine
	db     *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	log := logger.NewNop()
	contexts := service.NewContextService(db)
	catalog := service.NewCatalogService(db)
	classifier := service.NewClassifier(nil, service.NewMemoryCache(time.Minute, 128), log)
	tastes := service.NewTasteService(contexts, catalog, classifier, log)
	summaries := service.NewSummaryService(contexts)
	recommendations := service.NewRecommendationService(contexts, catalog, classifier, log)

	router := gin.New()
	NewHealthHandler(db, nil).RegisterRoutes(router)
	v1 := router.Group("/api/v1")
	NewContextHandler(contexts, tastes, summaries).RegisterRoutes(v1)
	NewRecommendationHandler(recommendations).RegisterRoutes(v1)

	return &fixture{router: router, db: db}
}

func (f *fixture) seed(t *testing.T) (models.Restaurant, models.Dish) {
	t.Helper()

	restaurant := models.Restaurant{Name: "Bella Napoli", Cuisine: "Italian", PriceRange: "$$"}
	require.NoError(t, f.db.Create(&restaurant).Error)

	dish := models.Dish{
		RestaurantID: restaurant.ID,
		Name:         "Margherita Pizza",
		Description:  "Tomato, mozzarella, basil",
		Price:        14.50,
		DietaryTags:  models.TagList{"vegetarian"},
	}
	require.NoError(t, f.db.Create(&dish).Error)
	return restaurant, dish
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestUpsertPreferencesEndpoint(t *testing.T) {
	f := newFixture(t)

	t.Run("creates a context", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/context/users/alice", map[string]interface{}{
			"cuisine_preferences":  []string{"Italian"},
			"dietary_restrictions": []string{"vegetarian"},
			"budget":               "$$",
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, "Preferences saved", body["message"])
	})

	t.Run("rejects an invalid budget", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/context/users/alice", map[string]interface{}{
			"budget": "$$$$",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSummaryEndpoint(t *testing.T) {
	f := newFixture(t)

	t.Run("unknown user", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/context/users/nobody/summary", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("known user", func(t *testing.T) {
		require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/v1/context/users/bob", map[string]interface{}{
			"cuisine_preferences": []string{"Thai"},
		}).Code)

		w := f.do(t, http.MethodGet, "/api/v1/context/users/bob/summary", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, "bob", body["user_id"])
		assert.Equal(t, "new user", body["context_age"])
		assert.NotEmpty(t, body["preference_insights"])
	})
}

func TestInteractionEndpoint(t *testing.T) {
	f := newFixture(t)
	_, dish := f.seed(t)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/v1/context/users/carol", map[string]interface{}{}).Code)

	t.Run("records a like and moves taste scores", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/context/users/carol/interactions", map[string]interface{}{
			"item_id":          strconv.FormatUint(uint64(dish.ID), 10),
			"item_type":        "dish",
			"interaction_type": "like",
		})
		require.Equal(t, http.StatusOK, w.Code)

		summary := decode(t, f.do(t, http.MethodGet, "/api/v1/context/users/carol/summary", nil))
		inferred := summary["inferred_preferences"].(map[string]interface{})
		assert.InDelta(t, 0.6, inferred["cuisine_italian"].(float64), 1e-9)
	})

	t.Run("rejects an unknown interaction type", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/context/users/carol/interactions", map[string]interface{}{
			"item_id":          "1",
			"item_type":        "dish",
			"interaction_type": "meh",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/context/users/nobody/interactions", map[string]interface{}{
			"item_id":          "1",
			"item_type":        "dish",
			"interaction_type": "like",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFeedbackEndpoint(t *testing.T) {
	f := newFixture(t)
	restaurant, _ := f.seed(t)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/v1/context/users/dave", map[string]interface{}{}).Code)

	t.Run("positive feedback", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/context/users/dave/feedback", map[string]interface{}{
			"feedback_text": "The food was great, best pizza in town",
			"item_id":       strconv.FormatUint(uint64(restaurant.ID), 10),
			"item_type":     "restaurant",
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		analysis := body["sentiment_analysis"].(map[string]interface{})
		assert.Equal(t, "POSITIVE", analysis["sentiment"])
		derived := body["derived_interaction"].(map[string]interface{})
		assert.Equal(t, "like", derived["interaction_type"])
		assert.Equal(t, true, body["context_updated"])
	})

	t.Run("missing feedback text", func(t *testing.T) {
		w := f.do(t, http.MethodPost, "/api/v1/context/users/dave/feedback", map[string]interface{}{
			"item_id":   "1",
			"item_type": "restaurant",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRecommendationEndpoints(t *testing.T) {
	f := newFixture(t)
	_, dish := f.seed(t)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/v1/context/users/erin", map[string]interface{}{}).Code)

	t.Run("unknown user", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/recommendations/users/nobody", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("standard recommendations", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/recommendations/users/erin", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.NotEmpty(t, body["restaurants"])
		assert.NotEmpty(t, body["dishes"])
		assert.NotNil(t, body["recommendation_factors"])
	})

	t.Run("excluded query parameter is honored", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/recommendations/users/erin?excluded=%d,99999,", dish.ID)
		w := f.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		dishes, _ := body["dishes"].([]interface{})
		for _, raw := range dishes {
			d := raw.(map[string]interface{})
			assert.NotEqual(t, float64(dish.ID), d["id"])
		}
	})

	t.Run("enhanced recommendations", func(t *testing.T) {
		w := f.do(t, http.MethodGet, "/api/v1/recommendations/users/erin/enhanced", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, true, body["ai_powered"])
		enhanced := body["enhanced_dishes"].([]interface{})
		for _, raw := range enhanced {
			d := raw.(map[string]interface{})
			assert.NotEmpty(t, d["ai_description"])
			assert.NotEmpty(t, d["ai_attributes"])
		}
	})
}

func TestHealthEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	components := body["components"].(map[string]interface{})
	assert.Equal(t, "ok", components["database"])
	assert.Equal(t, "not configured", components["redis"])
}
