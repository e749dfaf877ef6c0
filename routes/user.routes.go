package routes

import (
	"healio/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine, auth gin.HandlerFunc, userController *controllers.UserController) {
	userRoutes := router.Group("/api/users")
	userRoutes.Use(auth)
	{
		userRoutes.GET("/me", userController.GetMe)
		userRoutes.PUT("/me", userController.UpdateMe)
		userRoutes.GET("/me/bmi", userController.GetMyBMI)
	}
}
