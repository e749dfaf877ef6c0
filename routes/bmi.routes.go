package routes

import (
	"healio/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterBMIRoutes(router *gin.Engine, bmiController *controllers.BMIController) {
	router.POST("/api/bmi/calculate", bmiController.Calculate)
}
