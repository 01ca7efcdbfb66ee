package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wawe-app/wawe/backend/internal/middleware"
	"github.com/wawe-app/wawe/backend/internal/service"
)

type IngredientHandler struct {
	ingredientService *service.IngredientService
	authService       *service.AuthService
}

func NewIngredientHandler(ingredientService *service.IngredientService, authService *service.AuthService) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
		authService:       authService,
	}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	ingredients.Use(middleware.AuthMiddleware(h.authService))

	ingredients.GET("", h.ListIngredients)
	ingredients.GET("/:id", h.GetIngredient)
	ingredients.POST("", h.CreateIngredient)
	ingredients.PUT("/:id", h.UpdateIngredient)
	ingredients.DELETE("/:id", h.DeleteIngredient)
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ingredients, err := h.ingredientService.List(c.Request.Context(), caller)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ingredients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	ingredient, err := h.ingredientService.Get(c.Request.Context(), caller, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.ingredientService.Create(c.Request.Context(), caller, req.Name, req.Category, req.IsPublic)
	if err != nil {
		if errors.Is(err, service.ErrIngredientNameRequired) || errors.Is(err, service.ErrUnknownCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ingredient"})
		return
	}

	c.JSON(http.StatusCreated, ingredient)
}

func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.ingredientService.Update(c.Request.Context(), caller, id, req.Name, req.Category, req.IsPublic)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIngredientForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		case errors.Is(err, service.ErrIngredientNameRequired), errors.Is(err, service.ErrUnknownCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ingredient"})
		}
		return
	}

	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient id"})
		return
	}

	if err := h.ingredientService.Delete(c.Request.Context(), caller, id); err != nil {
		switch {
		case errors.Is(err, service.ErrIngredientForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ingredient"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted successfully", "id": id})
}
