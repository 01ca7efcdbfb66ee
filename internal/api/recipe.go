package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wawe-app/wawe/backend/internal/middleware"
	"github.com/wawe-app/wawe/backend/internal/service"
	"github.com/wawe-app/wawe/backend/internal/types"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
	authService   *service.AuthService
	rateLimiter   *middleware.RateLimiter
}

func NewRecipeHandler(recipeService *service.RecipeService, authService *service.AuthService, rateLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
		rateLimiter:   rateLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.authService))

	recipes.GET("", h.ListRecipes)
	recipes.GET("/:id", h.GetRecipe)

	mutating := recipes.Group("")
	if h.rateLimiter != nil {
		mutating.Use(h.rateLimiter.RateLimitMiddleware())
	}
	mutating.POST("", h.CreateRecipe)
	mutating.PUT("/:id", h.UpdateRecipe)
	mutating.DELETE("/:id", h.DeleteRecipe)
}

// callerClaims pulls the authenticated identity out of the request context
// so service calls receive it explicitly.
func callerClaims(c *gin.Context) (types.TokenClaims, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return types.TokenClaims{}, false
	}
	role, _ := c.Get("role")
	roleStr, _ := role.(string)
	return types.TokenClaims{
		UserID: userID.(uuid.UUID),
		Role:   roleStr,
	}, true
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var (
		recipes interface{}
		err     error
	)
	if c.Query("scope") == "public" {
		recipes, err = h.recipeService.ListPublicRecipes(c.Request.Context(), caller.UserID)
	} else {
		recipes, err = h.recipeService.ListUserRecipes(c.Request.Context(), caller.UserID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	// Private recipes are visible to their owner only
	if !recipe.IsPublic && recipe.UserID != caller.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form := service.RecipeForm{
		Title:       req.Title,
		Description: req.Description,
		CookingTime: req.CookingTime,
		Servings:    req.Servings,
		IsPublic:    req.IsPublic,
		Ingredients: ingredientLines(req.Ingredients),
		Steps:       stepLines(req.Steps),
	}

	id, err := h.recipeService.CreateRecipe(c.Request.Context(), form, caller.UserID)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	// Unknown fields are rejected here instead of being silently dropped
	// by a column allow-list.
	var req UpdateRecipeRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := service.RecipePatch{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CookingTime: req.CookingTime,
		Servings:    req.Servings,
		IsPublic:    req.IsPublic,
		UpdatedAt:   req.UpdatedAt,
	}
	if req.Ingredients != nil {
		patch.Ingredients = ingredientLines(*req.Ingredients)
	}
	if req.Steps != nil {
		patch.Steps = stepLines(*req.Steps)
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, caller.UserID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if recipe == nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Recipe updated, but the fresh copy is unavailable",
			"id":      id,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe updated successfully",
		"recipe":  recipe,
	})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, caller.UserID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      id,
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrTitleRequired) ||
		errors.Is(err, service.ErrIngredientRequired) ||
		errors.Is(err, service.ErrQuantityInvalid) ||
		errors.Is(err, service.ErrUnitRequired) ||
		errors.Is(err, service.ErrStepRequired)
}
