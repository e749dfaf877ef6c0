package routes

import (
	"healio/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterFoodRoutes exposes the catalog. Reads are public, writes need a token.
func RegisterFoodRoutes(router *gin.Engine, auth gin.HandlerFunc, foodController *controllers.FoodController) {
	foodRoutes := router.Group("/api/foods")
	{
		foodRoutes.GET("", foodController.ListFoods)
		foodRoutes.GET("/categories", foodController.GetCategories)
		foodRoutes.GET("/:id", foodController.GetFood)
		foodRoutes.POST("", auth, foodController.CreateFood)
		foodRoutes.PUT("/:id", auth, foodController.UpdateFood)
		foodRoutes.DELETE("/:id", auth, foodController.DeleteFood)
	}
}
