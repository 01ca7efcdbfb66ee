package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wawe-app/wawe/backend/internal/api"
	"github.com/wawe-app/wawe/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	ingredientHandler *api.IngredientHandler,
	mealPlanHandler *api.MealPlanHandler,
	imageHandler *api.ImageHandler,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	ingredientHandler.RegisterRoutes(v1)
	mealPlanHandler.RegisterRoutes(v1)
	if imageHandler != nil {
		imageHandler.RegisterRoutes(v1)
	}

	return router
}
