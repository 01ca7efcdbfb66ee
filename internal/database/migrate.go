package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/wawe-app/wawe/backend/internal/models"
)

// RunMigrations brings the schema up to date for all entities.
func RunMigrations(db *gorm.DB) error {
	log.Printf("Running migrations (%s)", db.Dialector.Name())
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipeStep{},
		&models.MealSlot{},
		&models.PlannedMeal{},
	)
}
