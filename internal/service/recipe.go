package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wawe-app/wawe/backend/internal/models"
)

// ErrNotOwner is returned when a caller tries to modify a recipe they do
// not own. There is no admin override for recipes; ownership is a strict
// user-id equality check.
var ErrNotOwner = errors.New("only the recipe owner can modify this recipe")

// MediaDeleter removes a hosted image given its stored URL.
type MediaDeleter interface {
	DeleteByURL(ctx context.Context, imageURL string) (bool, error)
}

// RecipeService implements the recipe lifecycle sequencers. Each operation
// is a fixed series of independent data calls; the backing store offers no
// client-side transactions, so creation compensates on partial failure and
// update/deletion document the effects they leave behind.
type RecipeService struct {
	db    *gorm.DB
	media MediaDeleter
}

// NewRecipeService creates a new RecipeService instance. media may be nil,
// in which case deletion skips the hosted-image stage.
func NewRecipeService(db *gorm.DB, media MediaDeleter) *RecipeService {
	return &RecipeService{
		db:    db,
		media: media,
	}
}

// RecipePatch is a partial update of the recipe header, plus optional
// wholesale replacement of the child rows. Nil field pointers leave the
// header column untouched; a nil slice leaves the child set untouched.
type RecipePatch struct {
	Title       *string
	Description *string
	ImageURL    *string
	CookingTime *int
	Servings    *int
	IsPublic    *bool
	UpdatedAt   *time.Time
	Ingredients []IngredientLine
	Steps       []StepLine
}

// headerUpdates returns only the header columns that are actually set.
func (p RecipePatch) headerUpdates() map[string]interface{} {
	updates := make(map[string]interface{})
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.ImageURL != nil {
		updates["image_url"] = *p.ImageURL
	}
	if p.CookingTime != nil {
		updates["cooking_time"] = *p.CookingTime
	}
	if p.Servings != nil {
		updates["servings"] = *p.Servings
	}
	if p.IsPublic != nil {
		updates["is_public"] = *p.IsPublic
	}
	if p.UpdatedAt != nil {
		updates["updated_at"] = *p.UpdatedAt
	}
	return updates
}

// CreateRecipe inserts the recipe header, its ingredient links and its
// steps as three dependent calls. If a later call fails, the earlier
// inserts are compensated with best-effort deletes and the error reports
// the failing step.
func (s *RecipeService) CreateRecipe(ctx context.Context, form RecipeForm, ownerID uuid.UUID) (uuid.UUID, error) {
	if err := ValidateRecipeForm(form); err != nil {
		return uuid.Nil, err
	}

	recipe := models.Recipe{
		UserID:      ownerID,
		Title:       form.Title,
		Description: form.Description,
		CookingTime: form.CookingTime,
		Servings:    form.Servings,
		IsPublic:    form.IsPublic,
	}
	steps := NormalizeSteps(form.Steps)

	saga := NewSaga("RecipeCreation",
		SagaStep{
			Name: "insert recipe header",
			Run: func(ctx context.Context) error {
				return s.db.WithContext(ctx).Create(&recipe).Error
			},
			Compensate: func(ctx context.Context) error {
				return s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", recipe.ID).Error
			},
		},
		SagaStep{
			Name: "insert recipe ingredients",
			Run: func(ctx context.Context) error {
				if len(form.Ingredients) == 0 {
					return nil
				}
				rows := make([]models.RecipeIngredient, 0, len(form.Ingredients))
				for _, line := range form.Ingredients {
					rows = append(rows, models.RecipeIngredient{
						RecipeID:     recipe.ID,
						IngredientID: line.IngredientID,
						Quantity:     line.Quantity,
						Unit:         line.Unit,
					})
				}
				return s.db.WithContext(ctx).Create(&rows).Error
			},
			Compensate: func(ctx context.Context) error {
				return s.db.WithContext(ctx).Delete(&models.RecipeIngredient{}, "recipe_id = ?", recipe.ID).Error
			},
		},
		SagaStep{
			Name: "insert recipe steps",
			Run: func(ctx context.Context) error {
				if len(steps) == 0 {
					return nil
				}
				rows := make([]models.RecipeStep, 0, len(steps))
				for _, line := range steps {
					rows = append(rows, models.RecipeStep{
						RecipeID:    recipe.ID,
						StepNumber:  line.StepNumber,
						Description: line.Description,
					})
				}
				return s.db.WithContext(ctx).Create(&rows).Error
			},
		},
	)

	if err := saga.Execute(ctx); err != nil {
		return uuid.Nil, err
	}
	return recipe.ID, nil
}

// GetRecipe retrieves a recipe with its ingredient links and ordered steps.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListUserRecipes lists all recipes owned by a user.
func (s *RecipeService) ListUserRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Steps").
		Where("user_id = ?", userID).
		Find(&recipes).Error
	return recipes, err
}

// ListPublicRecipes lists public recipes owned by other users.
func (s *RecipeService) ListPublicRecipes(ctx context.Context, excludeUserID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Steps").
		Where("is_public = ? AND user_id <> ?", true, excludeUserID).
		Find(&recipes).Error
	return recipes, err
}

// CanModify reports whether userID owns the recipe. A missing recipe is
// simply not modifiable.
func (s *RecipeService) CanModify(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).Select("user_id").First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return recipe.UserID == userID, nil
}

// requireOwner is the service-side permission gate run before every
// mutating sequence, regardless of what the caller already checked. It
// distinguishes a missing recipe from a foreign one.
func (s *RecipeService) requireOwner(ctx context.Context, recipeID, callerID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("user_id").First(&recipe, "id = ?", recipeID).Error; err != nil {
		return err
	}
	if recipe.UserID != callerID {
		return ErrNotOwner
	}
	return nil
}

// UpdateRecipe applies a header patch and, when supplied, wholesale
// replacement of the ingredient and step lists. The header update is NOT
// rolled back if a later child replacement fails; callers get an error
// naming the failing stage instead. A nil recipe with a nil error means
// the update succeeded but the fresh copy could not be fetched.
func (s *RecipeService) UpdateRecipe(ctx context.Context, recipeID, callerID uuid.UUID, patch RecipePatch) (*models.Recipe, error) {
	if err := s.requireOwner(ctx, recipeID, callerID); err != nil {
		return nil, err
	}

	if updates := patch.headerUpdates(); len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update recipe header: %w", err)
		}
	}

	if patch.Ingredients != nil {
		if err := s.replaceIngredients(ctx, recipeID, patch.Ingredients); err != nil {
			return nil, err
		}
	}

	if patch.Steps != nil {
		if err := s.replaceSteps(ctx, recipeID, patch.Steps); err != nil {
			return nil, err
		}
	}

	updated, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		log.Printf("[RecipeService] recipe %s updated but re-fetch failed: %v", recipeID, err)
		return nil, nil
	}
	return updated, nil
}

func (s *RecipeService) replaceIngredients(ctx context.Context, recipeID uuid.UUID, lines []IngredientLine) error {
	if err := s.db.WithContext(ctx).Delete(&models.RecipeIngredient{}, "recipe_id = ?", recipeID).Error; err != nil {
		return fmt.Errorf("delete old recipe ingredients: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}
	rows := make([]models.RecipeIngredient, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
		})
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert new recipe ingredients: %w", err)
	}
	return nil
}

func (s *RecipeService) replaceSteps(ctx context.Context, recipeID uuid.UUID, lines []StepLine) error {
	if err := s.db.WithContext(ctx).Delete(&models.RecipeStep{}, "recipe_id = ?", recipeID).Error; err != nil {
		return fmt.Errorf("delete old recipe steps: %w", err)
	}
	steps := NormalizeSteps(lines)
	if len(steps) == 0 {
		return nil
	}
	rows := make([]models.RecipeStep, 0, len(steps))
	for _, line := range steps {
		rows = append(rows, models.RecipeStep{
			RecipeID:    recipeID,
			StepNumber:  line.StepNumber,
			Description: line.Description,
		})
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert new recipe steps: %w", err)
	}
	return nil
}

// DeleteRecipe removes a recipe, its child rows and its hosted image, in a
// fixed order where each row-delete stage gates the next. A failed media
// deletion is logged but does not stop the row deletes.
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID, callerID uuid.UUID) error {
	if err := s.requireOwner(ctx, recipeID, callerID); err != nil {
		return err
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("image_url").First(&recipe, "id = ?", recipeID).Error; err != nil {
		return fmt.Errorf("fetch recipe: %w", err)
	}

	if recipe.ImageURL != "" && s.media != nil {
		if deleted, err := s.media.DeleteByURL(ctx, recipe.ImageURL); err != nil {
			log.Printf("[RecipeService] media delete for recipe %s failed: %v", recipeID, err)
		} else if !deleted {
			log.Printf("[RecipeService] media host did not delete image for recipe %s", recipeID)
		}
	}

	if err := s.db.WithContext(ctx).Delete(&models.RecipeIngredient{}, "recipe_id = ?", recipeID).Error; err != nil {
		return fmt.Errorf("delete recipe ingredients: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&models.RecipeStep{}, "recipe_id = ?", recipeID).Error; err != nil {
		return fmt.Errorf("delete recipe steps: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", recipeID).Error; err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}
