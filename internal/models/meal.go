package models

import (
	"time"

	"healio/internal/nutrition"

	"gorm.io/gorm"
)

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// Valid reports whether t is one of the four meal types.
func (t MealType) Valid() bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// Meal is a logged meal. TotalNutrition is derived from Items and is only ever
// written together with a full replacement of Items.
type Meal struct {
	ID             uint              `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt      time.Time         `json:"createdAt" example:"2023-01-01T00:00:00Z"`
	UpdatedAt      time.Time         `json:"updatedAt" example:"2023-01-01T00:00:00Z"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-" swaggerignore:"true"`
	UserID         uint              `gorm:"not null;index:idx_meals_user_date" json:"userId" example:"1"`
	User           User              `gorm:"foreignKey:UserID" json:"-"`
	Date           time.Time         `gorm:"not null;index:idx_meals_user_date" json:"date" example:"2024-01-01T08:00:00Z"`
	MealType       MealType          `gorm:"size:20;not null" json:"mealType" example:"breakfast"`
	Items          []MealItem        `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"items"`
	TotalNutrition nutrition.Profile `gorm:"embedded;embeddedPrefix:total_" json:"totalNutrition"`
	Notes          string            `gorm:"size:500" json:"notes,omitempty"`
}

// MealItem is a food snapshot scaled by quantity.
type MealItem struct {
	ID        uint              `gorm:"primaryKey" json:"-"`
	MealID    uint              `gorm:"not null;index" json:"-"`
	Position  int               `gorm:"not null" json:"-"`
	FoodID    uint              `gorm:"not null" json:"foodId" example:"1"`
	FoodName  string            `gorm:"not null" json:"foodName" example:"Oatmeal"`
	Quantity  float64           `gorm:"not null" json:"quantity" example:"1.5"`
	Nutrition nutrition.Profile `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutrition"`
}

// SetItems replaces the meal's items and recomputes TotalNutrition from them.
func (m *Meal) SetItems(items []nutrition.Item) {
	m.Items = make([]MealItem, len(items))
	for i, it := range items {
		m.Items[i] = MealItem{
			Position:  i,
			FoodID:    it.FoodID,
			FoodName:  it.FoodName,
			Quantity:  it.Quantity,
			Nutrition: it.Nutrition,
		}
	}
	m.TotalNutrition = nutrition.ItemsTotal(items)
}
