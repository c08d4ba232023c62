package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tastemap/backend/internal/models"
	"github.com/tastemap/backend/internal/types"
)

// sqlRecorder captures the statements a gorm session executes.
type sqlRecorder struct {
	mu         sync.Mutex
	statements []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }

func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	r.statements = append(r.statements, sql)
	r.mu.Unlock()
}

func TestContextServiceGet(t *testing.T) {
	ctx := context.Background()
	contexts := NewContextService(newTestDB(t))

	t.Run("unknown user", func(t *testing.T) {
		_, err := contexts.Get(ctx, "nobody")
		assert.ErrorIs(t, err, ErrContextNotFound)
	})

	t.Run("loads interactions in insertion order", func(t *testing.T) {
		createContext(t, contexts, "alice", nil)
		for _, itemID := range []string{"1", "2", "3"} {
			require.NoError(t, contexts.AppendInteraction(ctx, &models.Interaction{
				UserID:    "alice",
				ItemID:    itemID,
				ItemType:  models.ItemTypeDish,
				Type:      models.InteractionLike,
				Timestamp: time.Now(),
			}))
		}

		uc, err := contexts.Get(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, uc.Interactions, 3)
		assert.Equal(t, "1", uc.Interactions[0].ItemID)
		assert.Equal(t, "3", uc.Interactions[2].ItemID)
	})
}

func TestContextServiceUpsertPreferences(t *testing.T) {
	ctx := context.Background()
	contexts := NewContextService(newTestDB(t))

	req := &types.UpsertPreferencesRequest{
		DietaryRestrictions: []string{"vegetarian"},
		CuisinePreferences:  []string{"Italian", "Thai"},
		SpiceLevel:          "medium",
		Budget:              "$$",
	}

	t.Run("creates on first submission", func(t *testing.T) {
		uc, err := contexts.UpsertPreferences(ctx, "bob", req)
		require.NoError(t, err)
		assert.Equal(t, "bob", uc.UserID)
		assert.Equal(t, []string{"vegetarian"}, []string(uc.DietaryRestrictions))
		assert.Equal(t, "$$", uc.Budget)
		assert.Empty(t, uc.Tastes())
	})

	t.Run("identical resubmission is idempotent", func(t *testing.T) {
		first, err := contexts.UpsertPreferences(ctx, "bob", req)
		require.NoError(t, err)
		second, err := contexts.UpsertPreferences(ctx, "bob", req)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.DietaryRestrictions, second.DietaryRestrictions)
		assert.Equal(t, first.CuisinePreferences, second.CuisinePreferences)
	})

	t.Run("update preserves inferred tastes", func(t *testing.T) {
		require.NoError(t, contexts.SetTaste(ctx, "bob", "cuisine_italian", 0.8))

		uc, err := contexts.UpsertPreferences(ctx, "bob", &types.UpsertPreferencesRequest{
			CuisinePreferences: []string{"Mexican"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Mexican"}, []string(uc.CuisinePreferences))
		assert.Equal(t, 0.8, uc.Tastes()["cuisine_italian"])
	})
}

func TestContextServiceSetTaste(t *testing.T) {
	ctx := context.Background()
	contexts := NewContextService(newTestDB(t))

	t.Run("unknown user", func(t *testing.T) {
		err := contexts.SetTaste(ctx, "nobody", "cuisine_thai", 0.6)
		assert.ErrorIs(t, err, ErrContextNotFound)
	})

	t.Run("upserts keys independently", func(t *testing.T) {
		createContext(t, contexts, "carol", nil)

		require.NoError(t, contexts.SetTaste(ctx, "carol", "cuisine_thai", 0.6))
		require.NoError(t, contexts.SetTaste(ctx, "carol", "prefers_vegan", 0.4))
		require.NoError(t, contexts.SetTaste(ctx, "carol", "cuisine_thai", 0.7))

		uc, err := contexts.Get(ctx, "carol")
		require.NoError(t, err)
		assert.Equal(t, 0.7, uc.Tastes()["cuisine_thai"])
		assert.Equal(t, 0.4, uc.Tastes()["prefers_vegan"])
	})

	t.Run("update touches only the target key", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewContextService(db)
		createContext(t, svc, "dave", nil)
		require.NoError(t, svc.SetTaste(ctx, "dave", "cuisine_italian", 0.8))

		rec := &sqlRecorder{}
		traced := NewContextService(db.Session(&gorm.Session{Logger: rec}))
		require.NoError(t, traced.SetTaste(ctx, "dave", "cuisine_thai", 0.6))

		var update string
		for _, stmt := range rec.statements {
			if strings.Contains(stmt, "UPDATE") && strings.Contains(stmt, "inferred_tastes") {
				update = stmt
			}
		}
		require.NotEmpty(t, update)
		assert.Contains(t, update, "JSON_SET")
		assert.Contains(t, update, "cuisine_thai")
		assert.NotContains(t, update, "cuisine_italian")

		uc, err := svc.Get(ctx, "dave")
		require.NoError(t, err)
		assert.Equal(t, 0.8, uc.Tastes()["cuisine_italian"])
		assert.Equal(t, 0.6, uc.Tastes()["cuisine_thai"])
	})
}
