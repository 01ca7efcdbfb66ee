package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is the header row of a recipe. Its ingredient links and steps are
// fully owned by it: they are written only by the recipe sequencers and are
// removed whenever the recipe is removed. UserID is immutable after creation.
type Recipe struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:255" json:"image_url"`
	CookingTime int       `json:"cooking_time"`
	Servings    int       `json:"servings"`
	IsPublic    bool      `gorm:"not null;default:false" json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"recipe_ingredients"`
	Steps       []RecipeStep       `gorm:"foreignKey:RecipeID" json:"recipe_steps"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient links a recipe to a catalog ingredient with a quantity
// and unit. Quantity must be > 0 and unit non-empty.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:varchar(36);not null" json:"ingredient_id"`
	Quantity     float64   `gorm:"not null" json:"quantity"`
	Unit         string    `gorm:"size:50;not null" json:"unit"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// RecipeStep is one ordered instruction of a recipe. StepNumber values are
// kept contiguous from 1 by the sequencers.
type RecipeStep struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	StepNumber  int       `gorm:"not null" json:"step_number"`
	Description string    `gorm:"type:text;not null" json:"description"`
}

func (rs *RecipeStep) BeforeCreate(tx *gorm.DB) error {
	if rs.ID == uuid.Nil {
		rs.ID = uuid.New()
	}
	return nil
}
