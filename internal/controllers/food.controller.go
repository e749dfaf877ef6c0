package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"healio/internal/models"
	"healio/internal/nutrition"
	"healio/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// NutritionRequest is one serving's nutrients. The four macros must be sent,
// zero included; the rest default to zero.
type NutritionRequest struct {
	Calories *float64 `json:"calories" binding:"required" example:"165"`
	Protein  *float64 `json:"protein" binding:"required" example:"31"`
	Carbs    *float64 `json:"carbs" binding:"required" example:"0"`
	Fat      *float64 `json:"fat" binding:"required" example:"3.6"`
	Fiber    float64  `json:"fiber" example:"0"`
	Sugar    float64  `json:"sugar" example:"0"`
	Sodium   float64  `json:"sodium" example:"74"`
	Calcium  float64  `json:"calcium" example:"15"`
	Iron     float64  `json:"iron" example:"1"`
	VitaminA float64  `json:"vitaminA" example:"0"`
	VitaminC float64  `json:"vitaminC" example:"0"`
	VitaminD float64  `json:"vitaminD" example:"0"`
}

func (r *NutritionRequest) profile() nutrition.Profile {
	return nutrition.Profile{
		Calories: *r.Calories,
		Protein:  *r.Protein,
		Carbs:    *r.Carbs,
		Fat:      *r.Fat,
		Fiber:    r.Fiber,
		Sugar:    r.Sugar,
		Sodium:   r.Sodium,
		Calcium:  r.Calcium,
		Iron:     r.Iron,
		VitaminA: r.VitaminA,
		VitaminC: r.VitaminC,
		VitaminD: r.VitaminD,
	}
}

type FoodRequest struct {
	Name        string            `json:"name" binding:"required" example:"Chicken Breast"`
	Category    string            `json:"category" binding:"required" example:"Protein"`
	ServingSize float64           `json:"servingSize" binding:"required,gt=0" example:"100"`
	ServingUnit string            `json:"servingUnit" example:"grams"`
	Nutrition   *NutritionRequest `json:"nutrition" binding:"required"`
	Description string            `json:"description" example:"Skinless, cooked"`
	ImageURL    string            `json:"imageUrl"`
}

func (r *FoodRequest) apply(f *models.Food) error {
	profile := r.Nutrition.profile()
	if err := profile.Validate(); err != nil {
		return err
	}
	f.Name = strings.TrimSpace(r.Name)
	f.Category = strings.TrimSpace(r.Category)
	f.ServingSize = r.ServingSize
	f.ServingUnit = r.ServingUnit
	if f.ServingUnit == "" {
		f.ServingUnit = "grams"
	}
	f.Nutrition = profile
	f.Description = r.Description
	f.ImageURL = r.ImageURL
	return nil
}

type Pagination struct {
	Page  int   `json:"page" example:"1"`
	Limit int   `json:"limit" example:"20"`
	Total int64 `json:"total" example:"42"`
	Pages int   `json:"pages" example:"3"`
}

type FoodController struct {
	repo repository.FoodRepository
}

func NewFoodController(repo repository.FoodRepository) *FoodController {
	return &FoodController{repo: repo}
}

func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// ListFoods godoc
// @Summary List foods
// @Description Page through the food catalog, optionally filtered by search text and category
// @Tags foods
// @Produce json
// @Param search query string false "Case-insensitive match on name or category"
// @Param category query string false "Exact category"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} map[string]interface{} "Foods retrieved successfully"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve foods"
// @Router /api/foods [get]
func (fc *FoodController) ListFoods(c *gin.Context) {
	filter := repository.FoodFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", defaultPageLimit),
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	foods, total, err := fc.repo.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to retrieve foods", err)
		return
	}
	if foods == nil {
		foods = []models.Food{}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Foods retrieved successfully",
		"data":    foods,
		"pagination": Pagination{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		},
	})
}

// GetCategories godoc
// @Summary List food categories
// @Description Distinct catalog categories in alphabetical order
// @Tags foods
// @Produce json
// @Success 200 {object} map[string]interface{} "Categories retrieved successfully"
// @Router /api/foods/categories [get]
func (fc *FoodController) GetCategories(c *gin.Context) {
	categories, err := fc.repo.Categories(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve categories", err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondSuccess(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// GetFood godoc
// @Summary Get a food
// @Tags foods
// @Produce json
// @Param id path int true "Food ID"
// @Success 200 {object} map[string]interface{} "Food retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Food not found"
// @Router /api/foods/{id} [get]
func (fc *FoodController) GetFood(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	food, err := fc.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Food not found", err)
		return
	}
	respondSuccess(c, http.StatusOK, "Food retrieved successfully", food)
}

// CreateFood godoc
// @Summary Add a food
// @Description Add an entry to the catalog. Nutrition describes one serving.
// @Tags foods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param food body FoodRequest true "Food data"
// @Success 201 {object} map[string]interface{} "Food created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/foods [post]
func (fc *FoodController) CreateFood(c *gin.Context) {
	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}

	var food models.Food
	if err := req.apply(&food); err != nil {
		respondError(c, "Invalid request data", err)
		return
	}

	if err := fc.repo.Create(c.Request.Context(), &food); err != nil {
		respondError(c, "Failed to create food", err)
		return
	}
	respondSuccess(c, http.StatusCreated, "Food created successfully", food)
}

// UpdateFood godoc
// @Summary Update a food
// @Description Replace a catalog entry. Meals already logged keep their snapshot.
// @Tags foods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Food ID"
// @Param food body FoodRequest true "Food data"
// @Success 200 {object} map[string]interface{} "Food updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "Food not found"
// @Router /api/foods/{id} [put]
func (fc *FoodController) UpdateFood(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}

	ctx := c.Request.Context()
	food, err := fc.repo.FindByID(ctx, id)
	if err != nil {
		respondError(c, "Food not found", err)
		return
	}

	if err := req.apply(food); err != nil {
		respondError(c, "Invalid request data", err)
		return
	}

	if err := fc.repo.Update(ctx, food); err != nil {
		respondError(c, "Failed to update food", err)
		return
	}
	respondSuccess(c, http.StatusOK, "Food updated successfully", food)
}

// DeleteFood godoc
// @Summary Delete a food
// @Tags foods
// @Produce json
// @Security BearerAuth
// @Param id path int true "Food ID"
// @Success 200 {object} map[string]interface{} "Food deleted successfully"
// @Failure 404 {object} map[string]interface{} "Food not found"
// @Router /api/foods/{id} [delete]
func (fc *FoodController) DeleteFood(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := fc.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete food", err)
		return
	}
	respondSuccess(c, http.StatusOK, "Food deleted successfully", nil)
}
