package utils

import (
	"context"
	"fmt"

	"healio/internal/models"
	"healio/internal/nutrition"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func food(name, category string, size float64, unit string, n nutrition.Profile) models.Food {
	return models.Food{Name: name, Category: category, ServingSize: size, ServingUnit: unit, Nutrition: n}
}

// StarterFoods is the catalog loaded by `seed`. Values are per serving.
func StarterFoods() []models.Food {
	return []models.Food{
		food("Apple", "Fruits", 1, "piece", nutrition.Profile{Calories: 95, Protein: 0.5, Carbs: 25, Fat: 0.3, Fiber: 4.4, Sugar: 19, Sodium: 2, Calcium: 11, Iron: 0.2, VitaminA: 5, VitaminC: 8.4}),
		food("Banana", "Fruits", 1, "piece", nutrition.Profile{Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4, Fiber: 3.1, Sugar: 14, Sodium: 1, Calcium: 6, Iron: 0.3, VitaminA: 4, VitaminC: 10.3}),
		food("Orange", "Fruits", 1, "piece", nutrition.Profile{Calories: 62, Protein: 1.2, Carbs: 15.4, Fat: 0.2, Fiber: 3.1, Sugar: 12, Calcium: 52, Iron: 0.1, VitaminA: 14, VitaminC: 69.7}),
		food("Blueberries", "Fruits", 148, "grams", nutrition.Profile{Calories: 84, Protein: 1.1, Carbs: 21, Fat: 0.5, Fiber: 3.6, Sugar: 15, Sodium: 1, Calcium: 9, Iron: 0.4, VitaminA: 4, VitaminC: 14.4}),
		food("Broccoli", "Vegetables", 91, "grams", nutrition.Profile{Calories: 31, Protein: 2.5, Carbs: 6, Fat: 0.3, Fiber: 2.4, Sugar: 1.5, Sodium: 30, Calcium: 43, Iron: 0.7, VitaminA: 28, VitaminC: 81.2}),
		food("Spinach", "Vegetables", 30, "grams", nutrition.Profile{Calories: 7, Protein: 0.9, Carbs: 1.1, Fat: 0.1, Fiber: 0.7, Sodium: 24, Calcium: 30, Iron: 0.8, VitaminA: 141, VitaminC: 8.4}),
		food("Carrot", "Vegetables", 61, "grams", nutrition.Profile{Calories: 25, Protein: 0.6, Carbs: 6, Fat: 0.1, Fiber: 1.7, Sugar: 2.9, Sodium: 42, Calcium: 20, Iron: 0.2, VitaminA: 509, VitaminC: 3.6}),
		food("Sweet Potato", "Vegetables", 130, "grams", nutrition.Profile{Calories: 112, Protein: 2, Carbs: 26, Fat: 0.1, Fiber: 3.9, Sugar: 5.4, Sodium: 72, Calcium: 39, Iron: 0.8, VitaminA: 1096, VitaminC: 3.1}),
		food("Chicken Breast", "Protein", 100, "grams", nutrition.Profile{Calories: 165, Protein: 31, Fat: 3.6, Sodium: 74, Calcium: 15, Iron: 1}),
		food("Salmon", "Protein", 100, "grams", nutrition.Profile{Calories: 208, Protein: 20, Fat: 13, Sodium: 59, Calcium: 9, Iron: 0.3, VitaminA: 12, VitaminD: 11}),
		food("Egg", "Protein", 1, "piece", nutrition.Profile{Calories: 72, Protein: 6.3, Carbs: 0.4, Fat: 4.8, Sugar: 0.2, Sodium: 71, Calcium: 28, Iron: 0.9, VitaminA: 80, VitaminD: 1.1}),
		food("Tofu", "Protein", 100, "grams", nutrition.Profile{Calories: 76, Protein: 8, Carbs: 1.9, Fat: 4.8, Fiber: 0.3, Sodium: 7, Calcium: 350, Iron: 5.4}),
		food("Lentils", "Protein", 198, "grams", nutrition.Profile{Calories: 230, Protein: 18, Carbs: 40, Fat: 0.8, Fiber: 15.6, Sugar: 3.6, Sodium: 4, Calcium: 38, Iron: 6.6, VitaminC: 3}),
		food("Brown Rice", "Grains", 195, "grams", nutrition.Profile{Calories: 216, Protein: 5, Carbs: 45, Fat: 1.8, Fiber: 3.5, Sodium: 10, Calcium: 20, Iron: 0.8}),
		food("Oatmeal", "Grains", 40, "grams", nutrition.Profile{Calories: 150, Protein: 5, Carbs: 27, Fat: 3, Fiber: 4, Sugar: 1, Sodium: 2, Calcium: 20, Iron: 1.7}),
		food("Whole Wheat Bread", "Grains", 1, "slice", nutrition.Profile{Calories: 81, Protein: 4, Carbs: 13.8, Fat: 1.1, Fiber: 1.9, Sugar: 1.4, Sodium: 146, Calcium: 52, Iron: 0.7}),
		food("Quinoa", "Grains", 185, "grams", nutrition.Profile{Calories: 222, Protein: 8.1, Carbs: 39, Fat: 3.6, Fiber: 5.2, Sugar: 1.6, Sodium: 13, Calcium: 31, Iron: 2.8}),
		food("Greek Yogurt", "Dairy", 170, "grams", nutrition.Profile{Calories: 100, Protein: 17, Carbs: 6, Fat: 0.7, Sugar: 6, Sodium: 61, Calcium: 187}),
		food("Milk", "Dairy", 1, "cup", nutrition.Profile{Calories: 103, Protein: 8, Carbs: 12, Fat: 2.4, Sugar: 12, Sodium: 107, Calcium: 305, VitaminA: 149, VitaminD: 2.9}),
		food("Cheddar Cheese", "Dairy", 28, "grams", nutrition.Profile{Calories: 113, Protein: 7, Carbs: 0.4, Fat: 9.3, Sodium: 174, Calcium: 200, Iron: 0.2, VitaminA: 75, VitaminD: 0.3}),
		food("Almonds", "Nuts & Seeds", 28, "grams", nutrition.Profile{Calories: 164, Protein: 6, Carbs: 6, Fat: 14, Fiber: 3.5, Sugar: 1.2, Calcium: 76, Iron: 1}),
		food("Chia Seeds", "Nuts & Seeds", 28, "grams", nutrition.Profile{Calories: 138, Protein: 4.7, Carbs: 12, Fat: 8.7, Fiber: 9.8, Sodium: 5, Calcium: 179, Iron: 2.2}),
		food("Avocado", "Fats & Oils", 1, "piece", nutrition.Profile{Calories: 240, Protein: 3, Carbs: 12.8, Fat: 22, Fiber: 10, Sugar: 1, Sodium: 11, Calcium: 18, Iron: 0.8, VitaminA: 10, VitaminC: 15}),
		food("Olive Oil", "Fats & Oils", 1, "tbsp", nutrition.Profile{Calories: 119, Fat: 13.5}),
	}
}

// SeedFoods inserts the starter foods that are not already in the catalog, matched by name.
func SeedFoods(ctx context.Context, db *gorm.DB, log *zap.Logger) (int, error) {
	starter := StarterFoods()
	names := make([]string, len(starter))
	for i, f := range starter {
		names[i] = f.Name
	}

	var existing []string
	if err := db.WithContext(ctx).Model(&models.Food{}).Where("name IN ?", names).Pluck("name", &existing).Error; err != nil {
		return 0, fmt.Errorf("failed to read existing foods: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, n := range existing {
		present[n] = true
	}

	missing := make([]models.Food, 0, len(starter))
	for _, f := range starter {
		if !present[f.Name] {
			missing = append(missing, f)
		}
	}
	if len(missing) == 0 {
		log.Info("food catalog already seeded")
		return 0, nil
	}

	if err := db.WithContext(ctx).CreateInBatches(&missing, 100).Error; err != nil {
		return 0, fmt.Errorf("failed to seed foods: %w", err)
	}
	log.Info("seeded foods", zap.Int("count", len(missing)))
	return len(missing), nil
}

// ClearFoods removes the starter foods. Logged meals keep their snapshots.
func ClearFoods(ctx context.Context, db *gorm.DB, log *zap.Logger) (int64, error) {
	starter := StarterFoods()
	names := make([]string, len(starter))
	for i, f := range starter {
		names[i] = f.Name
	}

	result := db.WithContext(ctx).Unscoped().Where("name IN ?", names).Delete(&models.Food{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear foods: %w", result.Error)
	}
	log.Info("cleared seeded foods", zap.Int64("count", result.RowsAffected))
	return result.RowsAffected, nil
}

func CountFoods(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&models.Food{}).Count(&count).Error
	return count, err
}
