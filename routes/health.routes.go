package routes

import (
	"healio/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterHealthRoutes(router *gin.Engine, healthController *controllers.HealthController) {
	router.GET("/health", healthController.Health)
	router.GET("/debug/database", healthController.Database)
	router.GET("/debug/cache", healthController.Cache)
}
