package routes

import (
	"healio/internal/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterMealRoutes(router *gin.Engine, auth gin.HandlerFunc, mealController *controllers.MealController) {
	mealRoutes := router.Group("/api/meals")
	mealRoutes.Use(auth)
	{
		mealRoutes.POST("", mealController.LogMeal)
		mealRoutes.GET("", mealController.GetMeals)
		mealRoutes.GET("/summary", mealController.GetSummary)
		mealRoutes.GET("/:id", mealController.GetMeal)
		mealRoutes.PUT("/:id", mealController.UpdateMeal)
		mealRoutes.DELETE("/:id", mealController.DeleteMeal)
	}
}
