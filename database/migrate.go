package database

import (
	"healio/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Food{},
		&models.Meal{},
		&models.MealItem{},
	)
	if err != nil {
		log.Error("migration failed", zap.Error(err))
		return err
	}

	log.Info("database migrations completed")
	return nil
}
