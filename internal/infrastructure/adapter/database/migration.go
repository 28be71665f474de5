package database

import (
	"fmt"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/finance-tracker/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-tracker/internal/infrastructure/adapter/model"
)

// Migrate creates or updates the schema for all persisted models
func Migrate(db *gorm.DB, logger coreport.Logger) error {
	logger.Info("Running database migrations", nil)

	if err := db.AutoMigrate(&model.User{}, &model.Transaction{}); err != nil {
		logger.Error("Migration failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info("Database migrations completed", nil)
	return nil
}
