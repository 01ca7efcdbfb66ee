package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wawe-app/wawe/backend/internal/models"
	"github.com/wawe-app/wawe/backend/internal/types"
)

var (
	ErrIngredientNameRequired = errors.New("ingredient name is required")
	ErrUnknownCategory        = errors.New("unknown ingredient category")
	ErrIngredientForbidden    = errors.New("not allowed to modify this ingredient")
)

// IngredientService handles the personal ingredient catalog. Public
// entries are readable by everyone, private ones only by their creator.
// Admins bypass ownership checks and are the only role allowed to publish.
type IngredientService struct {
	db *gorm.DB
}

// NewIngredientService creates a new IngredientService instance
func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// List returns the ingredients visible to the caller, ordered by name.
func (s *IngredientService) List(ctx context.Context, caller types.TokenClaims) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Order("name ASC")
	if caller.Role != models.RoleAdmin {
		query = query.Where("is_public = ? OR created_by = ?", true, caller.UserID)
	}
	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Get returns one ingredient if the caller may see it.
func (s *IngredientService) Get(ctx context.Context, caller types.TokenClaims, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if !ingredient.IsPublic && ingredient.CreatedBy != caller.UserID && caller.Role != models.RoleAdmin {
		return nil, gorm.ErrRecordNotFound
	}
	return &ingredient, nil
}

// Create adds a catalog entry owned by the caller. Non-admin callers
// cannot publish: is_public is forced to false for them.
func (s *IngredientService) Create(ctx context.Context, caller types.TokenClaims, name, category string, isPublic bool) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrIngredientNameRequired
	}
	if !models.ValidIngredientCategory(category) {
		return nil, ErrUnknownCategory
	}
	if caller.Role != models.RoleAdmin {
		isPublic = false
	}

	ingredient := models.Ingredient{
		Name:      name,
		Category:  category,
		CreatedBy: caller.UserID,
		IsPublic:  isPublic,
	}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Update modifies an entry. Allowed for the creator or an admin.
func (s *IngredientService) Update(ctx context.Context, caller types.TokenClaims, id uuid.UUID, name, category string, isPublic bool) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrIngredientNameRequired
	}
	if !models.ValidIngredientCategory(category) {
		return nil, ErrUnknownCategory
	}

	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if caller.Role != models.RoleAdmin && ingredient.CreatedBy != caller.UserID {
		return nil, ErrIngredientForbidden
	}
	if caller.Role != models.RoleAdmin {
		isPublic = false
	}

	updates := map[string]interface{}{
		"name":      name,
		"category":  category,
		"is_public": isPublic,
	}
	if err := s.db.WithContext(ctx).Model(&ingredient).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Delete removes an entry. Allowed for the creator or an admin.
func (s *IngredientService) Delete(ctx context.Context, caller types.TokenClaims, id uuid.UUID) error {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return err
	}
	if caller.Role != models.RoleAdmin && ingredient.CreatedBy != caller.UserID {
		return ErrIngredientForbidden
	}
	return s.db.WithContext(ctx).Delete(&models.Ingredient{}, "id = ?", id).Error
}
