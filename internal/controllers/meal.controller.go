package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"healio/internal/models"
	"healio/internal/nutrition"
	"healio/internal/services"

	"github.com/gin-gonic/gin"
)

type MealItemRequest struct {
	FoodID   uint    `json:"foodId" binding:"required" example:"1"`
	Quantity float64 `json:"quantity" binding:"required,gt=0" example:"1.5"`
}

type CreateMealRequest struct {
	Date     string            `json:"date" example:"2024-01-15T08:30:00Z"`
	MealType string            `json:"mealType" binding:"required,mealtype" example:"breakfast"`
	Items    []MealItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes    string            `json:"notes" binding:"max=500"`
}

// UpdateMealRequest changes only the fields present. Items, when given, replace the meal's items.
type UpdateMealRequest struct {
	Date     *string           `json:"date" example:"2024-01-15T12:30:00Z"`
	MealType *string           `json:"mealType" binding:"omitempty,mealtype" example:"lunch"`
	Items    []MealItemRequest `json:"items" binding:"omitempty,dive"`
	Notes    *string           `json:"notes" binding:"omitempty,max=500"`
}

func itemInputs(items []MealItemRequest) []services.ItemInput {
	if items == nil {
		return nil
	}
	inputs := make([]services.ItemInput, len(items))
	for i, it := range items {
		inputs[i] = services.ItemInput{FoodID: it.FoodID, Quantity: it.Quantity}
	}
	return inputs
}

var errBadDate = errors.New("date must be RFC 3339 or YYYY-MM-DD")

// parseMealDate accepts a full timestamp or a bare local date.
func parseMealDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := services.ParseDay(s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %w", nutrition.ErrInvalidInput, errBadDate)
}

// queryDay reads ?date=YYYY-MM-DD, defaulting to today.
func queryDay(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	day, err := services.ParseDay(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid date",
			"error":   "date must be in YYYY-MM-DD format",
		})
		return time.Time{}, false
	}
	return day, true
}

type MealController struct {
	meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{meals: meals}
}

// LogMeal godoc
// @Summary Log a meal
// @Description Record a meal. Each item's nutrition is the food's serving profile times quantity.
// @Tags meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meal body CreateMealRequest true "Meal data"
// @Success 201 {object} map[string]interface{} "Meal logged successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Food not found"
// @Router /api/meals [post]
func (mc *MealController) LogMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseMealDate(req.Date)
		if err != nil {
			respondError(c, "Invalid request data", err)
			return
		}
		date = parsed
	}

	meal, err := mc.meals.LogMeal(c.Request.Context(), userID, services.MealInput{
		Date:     date,
		MealType: models.MealType(req.MealType),
		Items:    itemInputs(req.Items),
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(c, "Failed to log meal", err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Meal logged successfully", meal)
}

// GetMeals godoc
// @Summary Meals for a day
// @Description The user's meals on the given local day with the day's nutrient total
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} map[string]interface{} "Meals retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid date"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/meals [get]
func (mc *MealController) GetMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	day, ok := queryDay(c)
	if !ok {
		return
	}

	result, err := mc.meals.MealsForDay(c.Request.Context(), userID, day)
	if err != nil {
		respondError(c, "Failed to retrieve meals", err)
		return
	}

	respondSuccess(c, http.StatusOK, "Meals retrieved successfully", result)
}

// GetSummary godoc
// @Summary Daily nutrition summary
// @Description Consumed macros against the user's daily goals
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD), defaults to today"
// @Success 200 {object} map[string]interface{} "Summary retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid date"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 422 {object} map[string]interface{} "A daily goal is zero"
// @Router /api/meals/summary [get]
func (mc *MealController) GetSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	day, ok := queryDay(c)
	if !ok {
		return
	}

	summary, err := mc.meals.Summary(c.Request.Context(), userID, day)
	if err != nil {
		respondError(c, "Failed to compute summary", err)
		return
	}

	respondSuccess(c, http.StatusOK, "Summary retrieved successfully", summary)
}

// GetMeal godoc
// @Summary Get a meal
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meal ID"
// @Success 200 {object} map[string]interface{} "Meal retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Meal not found"
// @Router /api/meals/{id} [get]
func (mc *MealController) GetMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	meal, err := mc.meals.GetMeal(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, "Meal not found", err)
		return
	}

	respondSuccess(c, http.StatusOK, "Meal retrieved successfully", meal)
}

// UpdateMeal godoc
// @Summary Update a meal
// @Description Change date, type or notes. Items, when sent, replace all items and the total is recomputed.
// @Tags meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meal ID"
// @Param meal body UpdateMealRequest true "Fields to change"
// @Success 200 {object} map[string]interface{} "Meal updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "Meal or food not found"
// @Router /api/meals/{id} [put]
func (mc *MealController) UpdateMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}

	upd := services.MealUpdate{
		Items: itemInputs(req.Items),
		Notes: req.Notes,
	}
	if req.MealType != nil {
		mt := models.MealType(*req.MealType)
		upd.MealType = &mt
	}
	if req.Date != nil {
		date, err := parseMealDate(*req.Date)
		if err != nil {
			respondError(c, "Invalid request data", err)
			return
		}
		upd.Date = &date
	}

	meal, err := mc.meals.UpdateMeal(c.Request.Context(), userID, id, upd)
	if err != nil {
		respondError(c, "Failed to update meal", err)
		return
	}

	respondSuccess(c, http.StatusOK, "Meal updated successfully", meal)
}

// DeleteMeal godoc
// @Summary Delete a meal
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meal ID"
// @Success 200 {object} map[string]interface{} "Meal deleted successfully"
// @Failure 404 {object} map[string]interface{} "Meal not found"
// @Router /api/meals/{id} [delete]
func (mc *MealController) DeleteMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := mc.meals.DeleteMeal(c.Request.Context(), userID, id); err != nil {
		respondError(c, "Failed to delete meal", err)
		return
	}

	respondSuccess(c, http.StatusOK, "Meal deleted successfully", nil)
}
