package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wawe-app/wawe/backend/internal/middleware"
	"github.com/wawe-app/wawe/backend/internal/service"
)

type MealPlanHandler struct {
	mealPlanService *service.MealPlanService
	authService     *service.AuthService
}

func NewMealPlanHandler(mealPlanService *service.MealPlanService, authService *service.AuthService) *MealPlanHandler {
	return &MealPlanHandler{
		mealPlanService: mealPlanService,
		authService:     authService,
	}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plan := router.Group("/meal-plan")
	plan.Use(middleware.AuthMiddleware(h.authService))

	plan.GET("/slots", h.ListSlots)
	plan.POST("/slots", h.AddSlot)
	plan.DELETE("/slots/:id", h.RemoveSlot)

	plan.GET("/week", h.WeekPlan)
	plan.POST("/meals", h.PlanMeal)
	plan.DELETE("/meals/:id", h.UnplanMeal)
}

func (h *MealPlanHandler) ListSlots(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	slots, err := h.mealPlanService.ListSlots(c.Request.Context(), caller.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal slots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *MealPlanHandler) AddSlot(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	slot, err := h.mealPlanService.AddSlot(c.Request.Context(), caller.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add meal slot"})
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func (h *MealPlanHandler) RemoveSlot(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot id"})
		return
	}

	if err := h.mealPlanService.RemoveSlot(c.Request.Context(), caller.UserID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrLastSlot):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove meal slot"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal slot removed", "id": id})
}

func (h *MealPlanHandler) WeekPlan(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	weekStart := time.Now()
	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return
		}
		weekStart = parsed
	}

	planned, err := h.mealPlanService.WeekPlan(c.Request.Context(), caller.UserID, weekStart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"planned_meals": planned})
}

func (h *MealPlanHandler) PlanMeal(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PlanMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	planned, err := h.mealPlanService.PlanMeal(c.Request.Context(), caller.UserID, req.RecipeID, req.SlotID, req.MealDate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrRecipeNotVisible):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to plan meal"})
		}
		return
	}

	c.JSON(http.StatusCreated, planned)
}

func (h *MealPlanHandler) UnplanMeal(c *gin.Context) {
	caller, ok := callerClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid planned meal id"})
		return
	}

	if err := h.mealPlanService.UnplanMeal(c.Request.Context(), caller.UserID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Planned meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove planned meal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Planned meal removed", "id": id})
}
