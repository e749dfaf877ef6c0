package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healio/internal/cache"
	"healio/internal/models"
	"healio/internal/nutrition"
	"healio/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DayLayout = "2006-01-02"

type ItemInput struct {
	FoodID   uint
	Quantity float64
}

type MealInput struct {
	Date     time.Time
	MealType models.MealType
	Items    []ItemInput
	Notes    string
}

// MealUpdate carries the fields to change. A nil Items leaves the items alone;
// a non-nil Items replaces them all.
type MealUpdate struct {
	Date     *time.Time
	MealType *models.MealType
	Items    []ItemInput
	Notes    *string
}

type DailyMeals struct {
	Date       string            `json:"date" example:"2024-01-15"`
	Meals      []models.Meal     `json:"meals"`
	DailyTotal nutrition.Profile `json:"dailyTotal"`
}

type MealService struct {
	meals     repository.MealRepository
	foods     repository.FoodRepository
	users     repository.UserRepository
	summaries cache.SummaryCache
	log       *zap.Logger
}

func NewMealService(meals repository.MealRepository, foods repository.FoodRepository, users repository.UserRepository, summaries cache.SummaryCache, log *zap.Logger) *MealService {
	return &MealService{meals: meals, foods: foods, users: users, summaries: summaries, log: log}
}

// ParseDay reads a YYYY-MM-DD date in the server's local timezone.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, s, time.Local)
}

// DayBounds returns the local-time window [midnight, next midnight) containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.In(time.Local).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 1)
}

func DayKey(t time.Time) string {
	return t.In(time.Local).Format(DayLayout)
}

func (s *MealService) LogMeal(ctx context.Context, userID uint, in MealInput) (*models.Meal, error) {
	if !in.MealType.Valid() {
		return nil, fmt.Errorf("%w: unknown meal type %q", nutrition.ErrInvalidInput, in.MealType)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: a meal needs at least one item", nutrition.ErrInvalidInput)
	}

	items, err := s.resolveItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	meal := &models.Meal{
		UserID:   userID,
		Date:     in.Date,
		MealType: in.MealType,
		Notes:    in.Notes,
	}
	meal.SetItems(items)

	if err := s.meals.Create(ctx, meal); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID, DayKey(meal.Date))
	return meal, nil
}

func (s *MealService) GetMeal(ctx context.Context, userID, id uint) (*models.Meal, error) {
	meal, err := s.meals.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return meal, nil
}

func (s *MealService) MealsForDay(ctx context.Context, userID uint, day time.Time) (*DailyMeals, error) {
	meals, err := s.mealsForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []models.Meal{}
	}
	total, err := dailyTotal(meals)
	if err != nil {
		return nil, err
	}
	return &DailyMeals{
		Date:       DayKey(day),
		Meals:      meals,
		DailyTotal: total,
	}, nil
}

// Summary compares the day's intake with the user's goals. Results are cached
// per user and day until a meal on that day or the user's goals change.
// A result computed while such a change lands is not cached.
func (s *MealService) Summary(ctx context.Context, userID uint, day time.Time) (*nutrition.Summary, error) {
	key := DayKey(day)

	cached, ok, err := s.summaries.GetSummary(ctx, userID, key)
	if err != nil {
		s.log.Warn("summary cache read failed", zap.Uint("user_id", userID), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	// read before the meals so an invalidation racing this call discards the write
	version, err := s.summaries.Version(ctx, userID, key)
	cacheable := err == nil
	if err != nil {
		s.log.Warn("summary cache version read failed", zap.Uint("user_id", userID), zap.Error(err))
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	meals, err := s.mealsForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	total, err := dailyTotal(meals)
	if err != nil {
		return nil, err
	}

	summary, err := nutrition.ComputeSummary(total.Macros(), user.Goals())
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.summaries.SetSummary(ctx, userID, key, version, &summary); err != nil {
			s.log.Warn("summary cache write failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}
	return &summary, nil
}

func (s *MealService) UpdateMeal(ctx context.Context, userID, id uint, upd MealUpdate) (*models.Meal, error) {
	meal, err := s.GetMeal(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	oldDay := DayKey(meal.Date)

	if upd.MealType != nil {
		if !upd.MealType.Valid() {
			return nil, fmt.Errorf("%w: unknown meal type %q", nutrition.ErrInvalidInput, *upd.MealType)
		}
		meal.MealType = *upd.MealType
	}
	if upd.Date != nil {
		meal.Date = *upd.Date
	}
	if upd.Notes != nil {
		meal.Notes = *upd.Notes
	}

	replace := upd.Items != nil
	if replace {
		if len(upd.Items) == 0 {
			return nil, fmt.Errorf("%w: a meal needs at least one item", nutrition.ErrInvalidInput)
		}
		items, err := s.resolveItems(ctx, upd.Items)
		if err != nil {
			return nil, err
		}
		meal.SetItems(items)
	}

	if err := s.meals.Update(ctx, meal, replace); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID, oldDay)
	if newDay := DayKey(meal.Date); newDay != oldDay {
		s.invalidate(ctx, userID, newDay)
	}
	return meal, nil
}

func (s *MealService) DeleteMeal(ctx context.Context, userID, id uint) error {
	meal, err := s.GetMeal(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.meals.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMealNotFound
		}
		return err
	}
	s.invalidate(ctx, userID, DayKey(meal.Date))
	return nil
}

// InvalidateUser drops every cached summary of the user.
func (s *MealService) InvalidateUser(ctx context.Context, userID uint) {
	if err := s.summaries.InvalidateUser(ctx, userID); err != nil {
		s.log.Warn("summary cache invalidation failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}

func (s *MealService) mealsForDay(ctx context.Context, userID uint, day time.Time) ([]models.Meal, error) {
	from, to := DayBounds(day)
	return s.meals.FindByUserAndDateRange(ctx, userID, from, to)
}

// resolveItems loads the referenced foods and scales each one. Every item is
// resolved before anything is written.
func (s *MealService) resolveItems(ctx context.Context, inputs []ItemInput) ([]nutrition.Item, error) {
	ids := make([]uint, 0, len(inputs))
	seen := make(map[uint]bool, len(inputs))
	for _, in := range inputs {
		if !seen[in.FoodID] {
			seen[in.FoodID] = true
			ids = append(ids, in.FoodID)
		}
	}

	foods, err := s.foods.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Food, len(foods))
	for i := range foods {
		byID[foods[i].ID] = &foods[i]
	}

	items := make([]nutrition.Item, 0, len(inputs))
	for _, in := range inputs {
		food, ok := byID[in.FoodID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrFoodNotFound, in.FoodID)
		}
		item, err := nutrition.ScaleItem(food.Reference(), in.Quantity)
		if err != nil {
			return nil, fmt.Errorf("item for food %d: %w", in.FoodID, err)
		}
		items = append(items, item)
	}
	if _, err := nutrition.CheckedItemsTotal(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MealService) invalidate(ctx context.Context, userID uint, day string) {
	if err := s.summaries.InvalidateDay(ctx, userID, day); err != nil {
		s.log.Warn("summary cache invalidation failed", zap.Uint("user_id", userID), zap.String("day", day), zap.Error(err))
	}
}

func dailyTotal(meals []models.Meal) (nutrition.Profile, error) {
	totals := make([]nutrition.Profile, len(meals))
	for i := range meals {
		totals[i] = meals[i].TotalNutrition
	}
	return nutrition.CheckedSum(totals...)
}
