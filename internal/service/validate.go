package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired      = errors.New("recipe title is required")
	ErrIngredientRequired = errors.New("every ingredient line must have an ingredient selected")
	ErrQuantityInvalid    = errors.New("ingredient quantities must be greater than zero")
	ErrUnitRequired       = errors.New("every ingredient line must have a unit")
	ErrStepRequired       = errors.New("every step must have a description")
)

// IngredientLine is one ingredient entry of a recipe form.
type IngredientLine struct {
	IngredientID uuid.UUID
	Quantity     float64
	Unit         string
}

// StepLine is one instruction entry of a recipe form.
type StepLine struct {
	StepNumber  int
	Description string
}

// RecipeForm is the validated input of the creation sequencer.
type RecipeForm struct {
	Title       string
	Description string
	CookingTime int
	Servings    int
	IsPublic    bool
	Ingredients []IngredientLine
	Steps       []StepLine
}

// ValidateRecipeForm checks the form before any data call is issued.
func ValidateRecipeForm(form RecipeForm) error {
	if strings.TrimSpace(form.Title) == "" {
		return ErrTitleRequired
	}
	for _, ing := range form.Ingredients {
		if ing.IngredientID == uuid.Nil {
			return ErrIngredientRequired
		}
		if ing.Quantity <= 0 {
			return ErrQuantityInvalid
		}
		if strings.TrimSpace(ing.Unit) == "" {
			return ErrUnitRequired
		}
	}
	for _, step := range form.Steps {
		if strings.TrimSpace(step.Description) == "" {
			return ErrStepRequired
		}
	}
	return nil
}

// NormalizeSteps orders steps by their submitted number and renumbers them
// contiguously from 1, so removed lines never leave gaps.
func NormalizeSteps(steps []StepLine) []StepLine {
	out := make([]StepLine, len(steps))
	copy(out, steps)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StepNumber < out[j].StepNumber
	})
	for i := range out {
		out[i].StepNumber = i + 1
	}
	return out
}
