package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/wawe-app/wawe/backend/internal/service"
)

// RegisterRequest represents the request body for account registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username" binding:"required"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries a session token
type AuthResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest represents the request body for profile updates
type UpdateProfileRequest struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// IngredientLineRequest is one ingredient entry of a recipe payload
type IngredientLineRequest struct {
	IngredientID uuid.UUID `json:"ingredient_id" binding:"required"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
}

// StepLineRequest is one step entry of a recipe payload
type StepLineRequest struct {
	StepNumber  int    `json:"step_number"`
	Description string `json:"description"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title       string                  `json:"title" binding:"required"`
	Description string                  `json:"description"`
	CookingTime int                     `json:"cooking_time"`
	Servings    int                     `json:"servings"`
	IsPublic    bool                    `json:"is_public"`
	Ingredients []IngredientLineRequest `json:"ingredients"`
	Steps       []StepLineRequest       `json:"steps"`
}

// UpdateRecipeRequest is the typed patch for a recipe. Absent fields leave
// the header column untouched; absent ingredient/step lists leave the child
// rows untouched. Unknown fields are rejected at decode time rather than
// silently dropped.
type UpdateRecipeRequest struct {
	Title       *string                  `json:"title"`
	Description *string                  `json:"description"`
	ImageURL    *string                  `json:"image_url"`
	CookingTime *int                     `json:"cooking_time"`
	Servings    *int                     `json:"servings"`
	IsPublic    *bool                    `json:"is_public"`
	UpdatedAt   *time.Time               `json:"updated_at"`
	Ingredients *[]IngredientLineRequest `json:"ingredients"`
	Steps       *[]StepLineRequest       `json:"steps"`
}

// IngredientRequest represents the request body for catalog entries
type IngredientRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
	IsPublic bool   `json:"is_public"`
}

// PlanMealRequest represents the request body for planning a meal
type PlanMealRequest struct {
	RecipeID uuid.UUID `json:"recipe_id" binding:"required"`
	SlotID   uuid.UUID `json:"slot_id" binding:"required"`
	MealDate time.Time `json:"meal_date" binding:"required"`
}

func ingredientLines(reqs []IngredientLineRequest) []service.IngredientLine {
	lines := make([]service.IngredientLine, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, service.IngredientLine{
			IngredientID: r.IngredientID,
			Quantity:     r.Quantity,
			Unit:         r.Unit,
		})
	}
	return lines
}

func stepLines(reqs []StepLineRequest) []service.StepLine {
	lines := make([]service.StepLine, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, service.StepLine{
			StepNumber:  r.StepNumber,
			Description: r.Description,
		})
	}
	return lines
}
