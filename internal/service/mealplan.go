package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wawe-app/wawe/backend/internal/models"
)

var (
	ErrLastSlot         = errors.New("cannot remove the last meal slot")
	ErrSlotNotFound     = errors.New("meal slot not found")
	ErrRecipeNotVisible = errors.New("recipe is not visible to this user")
)

// MealPlanService manages the weekly calendar: named meal slots and the
// recipes planned into them.
type MealPlanService struct {
	db *gorm.DB
}

// NewMealPlanService creates a new MealPlanService instance
func NewMealPlanService(db *gorm.DB) *MealPlanService {
	return &MealPlanService{db: db}
}

// ListSlots returns the caller's meal slots ordered by position, creating
// the default first slot on first access.
func (s *MealPlanService) ListSlots(ctx context.Context, userID uuid.UUID) ([]models.MealSlot, error) {
	var slots []models.MealSlot
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("position ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	if len(slots) > 0 {
		return slots, nil
	}

	first := models.MealSlot{
		UserID:   userID,
		Position: 1,
		Label:    "Meal 1",
	}
	if err := s.db.WithContext(ctx).Create(&first).Error; err != nil {
		return nil, err
	}
	return []models.MealSlot{first}, nil
}

// AddSlot appends a new slot after the existing ones.
func (s *MealPlanService) AddSlot(ctx context.Context, userID uuid.UUID) (*models.MealSlot, error) {
	slots, err := s.ListSlots(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := len(slots) + 1
	slot := models.MealSlot{
		UserID:   userID,
		Position: next,
		Label:    fmt.Sprintf("Meal %d", next),
	}
	if err := s.db.WithContext(ctx).Create(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// RemoveSlot deletes a slot together with its planned meals, then
// renumbers the remaining slots contiguously from 1. The planned meals of
// the surviving slots follow them to their new positions. The last
// remaining slot cannot be removed.
func (s *MealPlanService) RemoveSlot(ctx context.Context, userID, slotID uuid.UUID) error {
	slots, err := s.ListSlots(ctx, userID)
	if err != nil {
		return err
	}
	if len(slots) <= 1 {
		return ErrLastSlot
	}

	found := false
	for _, slot := range slots {
		if slot.ID == slotID {
			found = true
			break
		}
	}
	if !found {
		return ErrSlotNotFound
	}

	if err := s.db.WithContext(ctx).Delete(&models.PlannedMeal{}, "slot_id = ?", slotID).Error; err != nil {
		return fmt.Errorf("delete planned meals of slot: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&models.MealSlot{}, "id = ?", slotID).Error; err != nil {
		return fmt.Errorf("delete meal slot: %w", err)
	}

	position := 0
	for _, slot := range slots {
		if slot.ID == slotID {
			continue
		}
		position++
		updates := map[string]interface{}{
			"position": position,
			"label":    fmt.Sprintf("Meal %d", position),
		}
		if err := s.db.WithContext(ctx).Model(&models.MealSlot{}).Where("id = ?", slot.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("renumber meal slots: %w", err)
		}
	}
	return nil
}

// PlanMeal places a recipe on the caller's calendar at (date, slot). The
// recipe must be the caller's own or public; the slot must be theirs.
func (s *MealPlanService) PlanMeal(ctx context.Context, userID, recipeID, slotID uuid.UUID, date time.Time) (*models.PlannedMeal, error) {
	var slot models.MealSlot
	if err := s.db.WithContext(ctx).First(&slot, "id = ? AND user_id = ?", slotID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("user_id", "is_public").First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, err
	}
	if !recipe.IsPublic && recipe.UserID != userID {
		return nil, ErrRecipeNotVisible
	}

	planned := models.PlannedMeal{
		UserID:   userID,
		RecipeID: recipeID,
		SlotID:   slotID,
		MealDate: date.Truncate(24 * time.Hour),
	}
	if err := s.db.WithContext(ctx).Create(&planned).Error; err != nil {
		return nil, err
	}
	return &planned, nil
}

// UnplanMeal removes one planned meal from the caller's calendar.
func (s *MealPlanService) UnplanMeal(ctx context.Context, userID, plannedID uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.PlannedMeal{}, "id = ? AND user_id = ?", plannedID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// WeekPlan returns the planned meals of the seven days starting at weekStart.
func (s *MealPlanService) WeekPlan(ctx context.Context, userID uuid.UUID, weekStart time.Time) ([]models.PlannedMeal, error) {
	start := weekStart.Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 7)

	var planned []models.PlannedMeal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND meal_date >= ? AND meal_date < ?", userID, start, end).
		Order("meal_date ASC").
		Find(&planned).Error
	return planned, err
}
