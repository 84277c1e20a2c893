package db

import (
	"fmt"

	"github.com/stridehq/stride/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Cycle{},
		&models.CycleTransition{},
		&models.Objective{},
		&models.KeyResult{},
		&models.CheckIn{},
		&models.Initiative{},
		&models.Task{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
