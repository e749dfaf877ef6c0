package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"healio/internal/cache"
	"healio/internal/models"
	"healio/internal/nutrition"
	"healio/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpdateUserRequest holds the profile fields a user may change. Nil fields are left as they are.
type UpdateUserRequest struct {
	Name             *string  `json:"name" example:"Jane"`
	Height           *float64 `json:"height" example:"170"`
	Weight           *float64 `json:"weight" example:"70"`
	Age              *int     `json:"age" example:"30"`
	Gender           *string  `json:"gender" binding:"omitempty,oneof=male female other" example:"female"`
	ActivityLevel    *string  `json:"activityLevel" binding:"omitempty,oneof=sedentary light moderate active very_active" example:"moderate"`
	DailyCalorieGoal *float64 `json:"dailyCalorieGoal" example:"2000"`
	DailyProteinGoal *float64 `json:"dailyProteinGoal" example:"50"`
	DailyCarbsGoal   *float64 `json:"dailyCarbsGoal" example:"250"`
	DailyFatGoal     *float64 `json:"dailyFatGoal" example:"70"`
}

func positive(name string, v *float64) error {
	if v != nil && *v <= 0 {
		return fmt.Errorf("%w: %s must be greater than zero", nutrition.ErrInvalidInput, name)
	}
	return nil
}

// apply validates the request and copies it onto u. It reports whether any daily goal changed.
func (r *UpdateUserRequest) apply(u *models.User) (bool, error) {
	checks := []struct {
		name string
		v    *float64
	}{
		{"height", r.Height},
		{"weight", r.Weight},
		{"dailyCalorieGoal", r.DailyCalorieGoal},
		{"dailyProteinGoal", r.DailyProteinGoal},
		{"dailyCarbsGoal", r.DailyCarbsGoal},
		{"dailyFatGoal", r.DailyFatGoal},
	}
	for _, c := range checks {
		if err := positive(c.name, c.v); err != nil {
			return false, err
		}
	}
	if r.Age != nil && (*r.Age <= 0 || *r.Age > 150) {
		return false, fmt.Errorf("%w: age must be between 1 and 150", nutrition.ErrInvalidInput)
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return false, fmt.Errorf("%w: name must not be empty", nutrition.ErrInvalidInput)
	}

	if r.Name != nil {
		u.Name = strings.TrimSpace(*r.Name)
	}
	if r.Height != nil {
		u.Height = r.Height
	}
	if r.Weight != nil {
		u.Weight = r.Weight
	}
	if r.Age != nil {
		u.Age = r.Age
	}
	if r.Gender != nil {
		u.Gender = r.Gender
	}
	if r.ActivityLevel != nil {
		u.ActivityLevel = *r.ActivityLevel
	}

	before := u.Goals()
	if r.DailyCalorieGoal != nil {
		u.DailyCalorieGoal = *r.DailyCalorieGoal
	}
	if r.DailyProteinGoal != nil {
		u.DailyProteinGoal = *r.DailyProteinGoal
	}
	if r.DailyCarbsGoal != nil {
		u.DailyCarbsGoal = *r.DailyCarbsGoal
	}
	if r.DailyFatGoal != nil {
		u.DailyFatGoal = *r.DailyFatGoal
	}
	return u.Goals() != before, nil
}

type UserController struct {
	repo      repository.UserRepository
	summaries cache.SummaryCache
	log       *zap.Logger
}

func NewUserController(repo repository.UserRepository, summaries cache.SummaryCache, log *zap.Logger) *UserController {
	return &UserController{repo: repo, summaries: summaries, log: log}
}

// GetMe godoc
// @Summary Get current user
// @Description Retrieve the authenticated user's profile and daily goals
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "User retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /api/users/me [get]
func (uc *UserController) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := uc.repo.FindByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to retrieve user", err)
		return
	}

	respondSuccess(c, http.StatusOK, "User retrieved successfully", user)
}

// UpdateMe godoc
// @Summary Update current user
// @Description Update profile fields and daily nutrition goals
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "User updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /api/users/me [put]
func (uc *UserController) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}

	ctx := c.Request.Context()
	user, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		respondError(c, "Failed to retrieve user", err)
		return
	}

	goalsChanged, err := req.apply(user)
	if err != nil {
		respondError(c, "Invalid request data", err)
		return
	}

	if err := uc.repo.Update(ctx, user); err != nil {
		respondError(c, "Failed to update user", err)
		return
	}

	if goalsChanged {
		if err := uc.summaries.InvalidateUser(ctx, userID); err != nil {
			uc.log.Warn("summary cache invalidation failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}

	respondSuccess(c, http.StatusOK, "User updated successfully", user)
}

// GetMyBMI godoc
// @Summary BMI from stored measurements
// @Description Evaluate BMI from the authenticated user's stored height and weight
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "BMI calculated successfully"
// @Failure 400 {object} map[string]interface{} "Height and weight are not set"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/users/me/bmi [get]
func (uc *UserController) GetMyBMI(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := uc.repo.FindByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to retrieve user", err)
		return
	}

	if user.Height == nil || user.Weight == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Height and weight are not set",
			"error":   "Update your profile with height and weight first",
		})
		return
	}

	result, err := nutrition.EvaluateBMI(*user.Height, *user.Weight)
	if err != nil {
		respondError(c, "Invalid stored measurements", err)
		return
	}

	respondSuccess(c, http.StatusOK, "BMI calculated successfully", result)
}
