package database

import (
	"amazonia/internal/models"

	"go.uber.org/zap"
)

func MigrateDatabase() error {
	zap.S().Info("Running database migrations...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Article{},
	)
	if err != nil {
		zap.S().Errorf("Error during migration: %v", err)
		return err
	}

	zap.S().Info("Database migrations completed successfully")
	return nil
}
