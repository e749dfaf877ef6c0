package models

import (
	"time"

	"healio/internal/nutrition"

	"gorm.io/gorm"
)

// Food is a catalog entry. Nutrition describes exactly one serving.
type Food struct {
	ID          uint              `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt   time.Time         `json:"createdAt" example:"2023-01-01T00:00:00Z"`
	UpdatedAt   time.Time         `json:"updatedAt" example:"2023-01-01T00:00:00Z"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-" swaggerignore:"true"`
	Name        string            `gorm:"not null;index" json:"name" example:"Chicken Breast"`
	Category    string            `gorm:"not null;index" json:"category" example:"Protein"`
	ServingSize float64           `gorm:"not null" json:"servingSize" example:"100"`
	ServingUnit string            `gorm:"not null;default:grams" json:"servingUnit" example:"grams"`
	Nutrition   nutrition.Profile `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutrition"`
	Description string            `json:"description,omitempty" example:"Skinless, cooked"`
	ImageURL    string            `json:"imageUrl,omitempty"`
}

// Reference returns the value snapshot used by nutrition computations.
func (f *Food) Reference() nutrition.FoodReference {
	return nutrition.FoodReference{
		ID:          f.ID,
		Name:        f.Name,
		ServingSize: f.ServingSize,
		ServingUnit: f.ServingUnit,
		Nutrition:   f.Nutrition,
	}
}
