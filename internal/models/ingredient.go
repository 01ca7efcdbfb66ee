package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IngredientCategories is the fixed set of catalog categories.
var IngredientCategories = []string{
	"vegetables",
	"fruits",
	"meat",
	"fish",
	"dairy",
	"grains",
	"legumes",
	"spices",
	"oils",
	"other",
}

// ValidIngredientCategory reports whether c is one of the known categories.
func ValidIngredientCategory(c string) bool {
	for _, known := range IngredientCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Ingredient is a catalog entry. Public entries are readable by everyone,
// private entries only by their creator; admins bypass ownership entirely.
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Category  string    `gorm:"size:50;not null" json:"category"`
	CreatedBy uuid.UUID `gorm:"type:varchar(36);not null;index" json:"created_by"`
	IsPublic  bool      `gorm:"not null;default:false" json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
