package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tastemap/backend/internal/models"
)

// Migrate creates or updates the catalog and user-context tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Restaurant{},
		&models.Dish{},
		&models.UserContext{},
		&models.Interaction{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
