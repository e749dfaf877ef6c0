package repository

import (
	"context"
	"strings"

	"healio/internal/models"

	"gorm.io/gorm"
)

// FoodFilter selects a page of the catalog. Page is 1-based.
type FoodFilter struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

type FoodRepository interface {
	List(ctx context.Context, filter FoodFilter) ([]models.Food, int64, error)
	Categories(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id uint) (*models.Food, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Food, error)
	Create(ctx context.Context, food *models.Food) error
	Update(ctx context.Context, food *models.Food) error
	Delete(ctx context.Context, id uint) error
}

type foodRepository struct {
	db *gorm.DB
}

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) filtered(ctx context.Context, filter FoodFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Food{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + escapeLike(s) + "%"
		q = q.Where("name ILIKE ? OR category ILIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	return q
}

func (r *foodRepository) List(ctx context.Context, filter FoodFilter) ([]models.Food, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var foods []models.Food
	err := r.filtered(ctx, filter).
		Order("name ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&foods).Error
	if err != nil {
		return nil, 0, err
	}
	return foods, total, nil
}

func (r *foodRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&models.Food{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *foodRepository) FindByID(ctx context.Context, id uint) (*models.Food, error) {
	var food models.Food
	if err := r.db.WithContext(ctx).First(&food, id).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Food, error) {
	var foods []models.Food
	if len(ids) == 0 {
		return foods, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&foods).Error
	return foods, err
}

func (r *foodRepository) Create(ctx context.Context, food *models.Food) error {
	return r.db.WithContext(ctx).Create(food).Error
}

func (r *foodRepository) Update(ctx context.Context, food *models.Food) error {
	return r.db.WithContext(ctx).Save(food).Error
}

func (r *foodRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Food{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
