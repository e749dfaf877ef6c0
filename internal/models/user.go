package models

import (
	"time"

	"healio/internal/nutrition"

	"gorm.io/gorm"
)

// Defaults applied to new accounts.
const (
	DefaultCalorieGoal   = 2000
	DefaultProteinGoal   = 50
	DefaultCarbsGoal     = 250
	DefaultFatGoal       = 70
	DefaultActivityLevel = "moderate"
)

type User struct {
	ID               uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt        time.Time      `json:"createdAt" example:"2023-01-01T00:00:00Z"`
	UpdatedAt        time.Time      `json:"updatedAt" example:"2023-01-01T00:00:00Z"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
	Email            string         `gorm:"uniqueIndex;not null" json:"email" example:"jane@example.com"`
	Password         string         `json:"-"`
	Name             string         `gorm:"not null" json:"name" example:"Jane"`
	GoogleID         *string        `gorm:"uniqueIndex" json:"-"`
	Height           *float64       `json:"height,omitempty" example:"170"`
	Weight           *float64       `json:"weight,omitempty" example:"70"`
	Age              *int           `json:"age,omitempty" example:"30"`
	Gender           *string        `json:"gender,omitempty" example:"female"`
	ActivityLevel    string         `gorm:"default:moderate" json:"activityLevel" example:"moderate"`
	DailyCalorieGoal float64        `gorm:"default:2000" json:"dailyCalorieGoal" example:"2000"`
	DailyProteinGoal float64        `gorm:"default:50" json:"dailyProteinGoal" example:"50"`
	DailyCarbsGoal   float64        `gorm:"default:250" json:"dailyCarbsGoal" example:"250"`
	DailyFatGoal     float64        `gorm:"default:70" json:"dailyFatGoal" example:"70"`
}

// NewUser returns a user with the default activity level and daily goals set.
func NewUser(email, name string) *User {
	return &User{
		Email:            email,
		Name:             name,
		ActivityLevel:    DefaultActivityLevel,
		DailyCalorieGoal: DefaultCalorieGoal,
		DailyProteinGoal: DefaultProteinGoal,
		DailyCarbsGoal:   DefaultCarbsGoal,
		DailyFatGoal:     DefaultFatGoal,
	}
}

// Goals returns the user's daily macro targets.
func (u *User) Goals() nutrition.Macros {
	return nutrition.Macros{
		Calories: u.DailyCalorieGoal,
		Protein:  u.DailyProteinGoal,
		Carbs:    u.DailyCarbsGoal,
		Fat:      u.DailyFatGoal,
	}
}
