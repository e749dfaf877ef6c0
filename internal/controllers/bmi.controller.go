package controllers

import (
	"net/http"

	"healio/internal/nutrition"

	"github.com/gin-gonic/gin"
)

type BMIRequest struct {
	Height float64 `json:"height" binding:"required" example:"170"`
	Weight float64 `json:"weight" binding:"required" example:"70"`
	// metric: cm and kg (default). imperial: inches and pounds.
	Unit string `json:"unit" binding:"omitempty,oneof=metric imperial" example:"metric"`
}

type BMIController struct{}

func NewBMIController() *BMIController {
	return &BMIController{}
}

// Calculate godoc
// @Summary Calculate BMI
// @Description BMI, category, healthy weight range (kg) and recommendations
// @Tags bmi
// @Accept json
// @Produce json
// @Param request body BMIRequest true "Height and weight"
// @Success 200 {object} map[string]interface{} "BMI calculated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/bmi/calculate [post]
func (bc *BMIController) Calculate(c *gin.Context) {
	var req BMIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data", err)
		return
	}

	height, weight := req.Height, req.Weight
	if req.Unit == "imperial" {
		height, weight = nutrition.ImperialToMetric(height, weight)
	}

	result, err := nutrition.EvaluateBMI(height, weight)
	if err != nil {
		respondError(c, "Invalid request data", err)
		return
	}

	respondSuccess(c, http.StatusOK, "BMI calculated successfully", result)
}
