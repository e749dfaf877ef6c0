package repository

import (
	"context"
	"time"

	"healio/internal/models"

	"gorm.io/gorm"
)

type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	FindByID(ctx context.Context, userID, id uint) (*models.Meal, error)
	FindByUserAndDateRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Meal, error)
	// Update saves the meal row. When replaceItems is set the stored items are
	// deleted and meal.Items inserted in their place, in one transaction.
	Update(ctx context.Context, meal *models.Meal, replaceItems bool) error
	Delete(ctx context.Context, userID, id uint) error
}

type mealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the meal and its items in one transaction.
func (r *mealRepository) Create(ctx context.Context, meal *models.Meal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("User").Create(meal).Error
	})
}

func (r *mealRepository) FindByID(ctx context.Context, userID, id uint) (*models.Meal, error) {
	var meal models.Meal
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("id = ? AND user_id = ?", id, userID).
		First(&meal).Error
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) FindByUserAndDateRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC").
		Find(&meals).Error
	return meals, err
}

func (r *mealRepository) Update(ctx context.Context, meal *models.Meal, replaceItems bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User", "Items").Save(meal).Error; err != nil {
			return err
		}
		if !replaceItems {
			return nil
		}
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealItem{}).Error; err != nil {
			return err
		}
		if len(meal.Items) == 0 {
			return nil
		}
		for i := range meal.Items {
			meal.Items[i].ID = 0
			meal.Items[i].MealID = meal.ID
		}
		return tx.Create(&meal.Items).Error
	})
}

func (r *mealRepository) Delete(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Unscoped().Where("id = ? AND user_id = ?", id, userID).Delete(&models.Meal{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("meal_id = ?", id).Delete(&models.MealItem{}).Error
	})
}
