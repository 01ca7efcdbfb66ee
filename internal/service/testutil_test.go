package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wawe-app/wawe/backend/internal/models"
)

// newTestDB opens an isolated in-memory database and migrates the full
// schema. Each test gets its own database, named after the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipeStep{},
		&models.MealSlot{},
		&models.PlannedMeal{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestIngredient(t *testing.T, db *gorm.DB, name string, createdBy uuid.UUID, isPublic bool) *models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{
		Name:      name,
		Category:  "vegetables",
		CreatedBy: createdBy,
		IsPublic:  isPublic,
	}
	require.NoError(t, db.Create(&ingredient).Error)
	return &ingredient
}
