package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealSlot is a named slot of a user's daily plan ("Meal 1", "Meal 2", ...).
// Positions stay contiguous from 1: removing a slot renumbers the rest and
// carries their planned meals along.
type MealSlot struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Position  int       `gorm:"not null" json:"position"`
	Label     string    `gorm:"size:50;not null" json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *MealSlot) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// PlannedMeal places a recipe on a user's calendar at (date, slot).
type PlannedMeal struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null" json:"recipe_id"`
	MealDate  time.Time `gorm:"not null;index" json:"meal_date"`
	SlotID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"slot_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *PlannedMeal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
