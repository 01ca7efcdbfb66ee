package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wawe-app/wawe/backend/internal/models"
)

type fakeMediaDeleter struct {
	deletedURLs []string
	deleted     bool
	err         error
}

func (f *fakeMediaDeleter) DeleteByURL(ctx context.Context, imageURL string) (bool, error) {
	f.deletedURLs = append(f.deletedURLs, imageURL)
	return f.deleted, f.err
}

func soupForm(carrot, potato uuid.UUID) RecipeForm {
	return RecipeForm{
		Title:       "Soup",
		Description: "A simple soup",
		CookingTime: 45,
		Servings:    4,
		Ingredients: []IngredientLine{
			{IngredientID: carrot, Quantity: 2, Unit: "pcs"},
			{IngredientID: potato, Quantity: 3, Unit: "pcs"},
		},
		Steps: []StepLine{
			{StepNumber: 1, Description: "Chop everything"},
			{StepNumber: 2, Description: "Boil for 40 minutes"},
		},
	}
}

func TestCreateRecipeInsertsAllRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)
	potato := createTestIngredient(t, db, "Potato", owner.ID, true)

	id, err := svc.CreateRecipe(ctx, soupForm(carrot.ID, potato.ID), owner.ID)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	recipe, err := svc.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Soup", recipe.Title)
	assert.Equal(t, owner.ID, recipe.UserID)
	assert.Len(t, recipe.Ingredients, 2)
	assert.Len(t, recipe.Steps, 2)
}

func TestCreateRecipeValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)

	tests := []struct {
		name    string
		mutate  func(*RecipeForm)
		wantErr error
	}{
		{"blank title", func(f *RecipeForm) { f.Title = "  " }, ErrTitleRequired},
		{"nil ingredient id", func(f *RecipeForm) { f.Ingredients[0].IngredientID = uuid.Nil }, ErrIngredientRequired},
		{"zero quantity", func(f *RecipeForm) { f.Ingredients[0].Quantity = 0 }, ErrQuantityInvalid},
		{"negative quantity", func(f *RecipeForm) { f.Ingredients[0].Quantity = -1 }, ErrQuantityInvalid},
		{"blank unit", func(f *RecipeForm) { f.Ingredients[0].Unit = " " }, ErrUnitRequired},
		{"blank step", func(f *RecipeForm) { f.Steps[0].Description = "" }, ErrStepRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := soupForm(carrot.ID, carrot.ID)
			tt.mutate(&form)
			_, err := svc.CreateRecipe(ctx, form, owner.ID)
			assert.ErrorIs(t, err, tt.wantErr)

			// validation failures must not leave any rows behind
			var count int64
			require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
			assert.Zero(t, count)
		})
	}
}

func TestCreateRecipeRenumbersSteps(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)

	form := soupForm(carrot.ID, carrot.ID)
	form.Steps = []StepLine{
		{StepNumber: 7, Description: "Serve"},
		{StepNumber: 2, Description: "Chop"},
		{StepNumber: 5, Description: "Boil"},
	}

	id, err := svc.CreateRecipe(ctx, form, owner.ID)
	require.NoError(t, err)

	recipe, err := svc.GetRecipe(ctx, id)
	require.NoError(t, err)
	require.Len(t, recipe.Steps, 3)
	assert.Equal(t, 1, recipe.Steps[0].StepNumber)
	assert.Equal(t, "Chop", recipe.Steps[0].Description)
	assert.Equal(t, 2, recipe.Steps[1].StepNumber)
	assert.Equal(t, "Boil", recipe.Steps[1].Description)
	assert.Equal(t, 3, recipe.Steps[2].StepNumber)
	assert.Equal(t, "Serve", recipe.Steps[2].Description)
}

func TestCreateRecipeCompensatesOnStepInsertFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)

	// make the third saga step fail against the real store
	require.NoError(t, db.Migrator().DropTable(&models.RecipeStep{}))

	_, err := svc.CreateRecipe(ctx, soupForm(carrot.ID, carrot.ID), owner.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert recipe steps")

	// the header and ingredient inserts were compensated
	var headers, links int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&headers).Error)
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Count(&links).Error)
	assert.Zero(t, headers)
	assert.Zero(t, links)
}

func TestCreateRecipeCompensatesOnIngredientInsertFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)

	require.NoError(t, db.Migrator().DropTable(&models.RecipeIngredient{}))

	_, err := svc.CreateRecipe(ctx, soupForm(carrot.ID, carrot.ID), owner.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert recipe ingredients")

	var headers int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&headers).Error)
	assert.Zero(t, headers)
}

func TestCanModify(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)

	id, err := svc.CreateRecipe(ctx, soupForm(carrot.ID, carrot.ID), owner.ID)
	require.NoError(t, err)

	ok, err := svc.CanModify(ctx, id, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanModify(ctx, id, other.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// a missing recipe is not modifiable, but is not an error either
	ok, err = svc.CanModify(ctx, uuid.New(), owner.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateRecipeHeaderOnlyLeavesChildrenAlone(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)
	potato := createTestIngredient(t, db, "Potato", owner.ID, true)

	id, err := svc.CreateRecipe(ctx, soupForm(carrot.ID, potato.ID), owner.ID)
	require.NoError(t, err)

	title := "Winter Soup"
	servings := 6
	updated, err := svc.UpdateRecipe(ctx, id, owner.ID, RecipePatch{
		Title:    &title,
		Servings: &servings,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Winter Soup", updated.Title)
	assert.Equal(t, 6, updated.Servings)
	assert.Equal(t, "A simple soup", updated.Description)
	assert.Len(t, updated.Ingredients, 2)
	assert.Len(t, updated.Steps, 2)
}

func TestUpdateRecipeReplacesChildListsWholesale(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)
	potato := createTestIngredient(t, db, "Potato", owner.ID, true)
	leek := createTestIngredient(t, db, "Leek", owner.ID, true)

	id, err := svc.CreateRecipe(ctx, soupForm(carrot.ID, potato.ID), owner.ID)
	require.NoError(t, err)

	// the submitted list fully replaces the stored one
	updated, err := svc.UpdateRecipe(ctx, id, owner.ID, RecipePatch{
		Ingredients: []IngredientLine{
			{IngredientID: leek.ID, Quantity: 1, Unit: "pcs"},
		},
		Steps: []StepLine{
			{StepNumber: 4, Description: "Simmer"},
			{StepNumber: 1, Description: "Slice the leek"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, leek.ID, updated.Ingredients[0].IngredientID)

	require.Len(t, updated.Steps, 2)
	assert.Equal(t, 1, updated.Steps[0].StepNumber)
	assert.Equal(t, "Slice the leek", updated.Steps[0].Description)
	assert.Equal(t, 2, updated.Steps[1].StepNumber)
	assert.Equal(t, "Simmer", updated.Steps[1].Description)
}

func TestUpdateRecipeEmptySliceClearsChildren(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)

	id, err := svc.CreateRecipe(ctx, soupForm(carrot.ID, carrot.ID), owner.ID)
	require.NoError(t, err)

	// an empty (non-nil) slice means "remove them all"
	updated, err := svc.UpdateRecipe(ctx, id, owner.ID, RecipePatch{
		Ingredients: []IngredientLine{},
		Steps:       []StepLine{},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Empty(t, updated.Ingredients)
	assert.Empty(t, updated.Steps)
}

func TestUpdateRecipePermissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)

	id, err := svc.CreateRecipe(ctx, soupForm(carrot.ID, carrot.ID), owner.ID)
	require.NoError(t, err)

	title := "Stolen Soup"
	_, err = svc.UpdateRecipe(ctx, id, other.ID, RecipePatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.UpdateRecipe(ctx, uuid.New(), owner.ID, RecipePatch{Title: &title})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// the foreign update attempt changed nothing
	recipe, err := svc.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Soup", recipe.Title)
}

func TestUpdateRecipeHeaderIsNotRolledBackOnChildFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)

	id, err := svc.CreateRecipe(ctx, soupForm(carrot.ID, carrot.ID), owner.ID)
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable(&models.RecipeIngredient{}))

	title := "Renamed Soup"
	_, err = svc.UpdateRecipe(ctx, id, owner.ID, RecipePatch{
		Title:       &title,
		Ingredients: []IngredientLine{{IngredientID: carrot.ID, Quantity: 1, Unit: "pcs"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipe ingredients")

	// the header update sticks even though the child replacement failed
	var recipe models.Recipe
	require.NoError(t, db.First(&recipe, "id = ?", id).Error)
	assert.Equal(t, "Renamed Soup", recipe.Title)
}

func TestDeleteRecipeRemovesRowsAndImage(t *testing.T) {
	db := newTestDB(t)
	media := &fakeMediaDeleter{deleted: true}
	svc := NewRecipeService(db, media)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)

	id, err := svc.CreateRecipe(ctx, soupForm(carrot.ID, carrot.ID), owner.ID)
	require.NoError(t, err)

	imageURL := "https://res.cloudinary.com/demo/image/upload/v17/recipes/soup.jpg"
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", id).Update("image_url", imageURL).Error)

	require.NoError(t, svc.DeleteRecipe(ctx, id, owner.ID))

	assert.Equal(t, []string{imageURL}, media.deletedURLs)

	var headers, links, steps int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&headers).Error)
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Count(&links).Error)
	require.NoError(t, db.Model(&models.RecipeStep{}).Count(&steps).Error)
	assert.Zero(t, headers)
	assert.Zero(t, links)
	assert.Zero(t, steps)
}

func TestDeleteRecipeProceedsWhenMediaDeleteFails(t *testing.T) {
	db := newTestDB(t)
	media := &fakeMediaDeleter{err: errors.New("host unreachable")}
	svc := NewRecipeService(db, media)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)

	id, err := svc.CreateRecipe(ctx, soupForm(carrot.ID, carrot.ID), owner.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", id).
		Update("image_url", "https://res.cloudinary.com/demo/image/upload/recipes/soup.jpg").Error)

	// a failed image deletion never blocks the row deletes
	require.NoError(t, svc.DeleteRecipe(ctx, id, owner.ID))

	var headers int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&headers).Error)
	assert.Zero(t, headers)
}

func TestDeleteRecipePermissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)

	id, err := svc.CreateRecipe(ctx, soupForm(carrot.ID, carrot.ID), owner.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, id, other.ID), ErrNotOwner)
	assert.ErrorIs(t, svc.DeleteRecipe(ctx, uuid.New(), owner.ID), gorm.ErrRecordNotFound)

	// still there
	_, err = svc.GetRecipe(ctx, id)
	assert.NoError(t, err)
}

func TestListRecipes(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, nil)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	carrot := createTestIngredient(t, db, "Carrot", owner.ID, true)

	mine := soupForm(carrot.ID, carrot.ID)
	mine.Title = "My Private Soup"
	_, err := svc.CreateRecipe(ctx, mine, owner.ID)
	require.NoError(t, err)

	theirsPublic := soupForm(carrot.ID, carrot.ID)
	theirsPublic.Title = "Shared Stew"
	theirsPublic.IsPublic = true
	_, err = svc.CreateRecipe(ctx, theirsPublic, other.ID)
	require.NoError(t, err)

	theirsPrivate := soupForm(carrot.ID, carrot.ID)
	theirsPrivate.Title = "Secret Stew"
	_, err = svc.CreateRecipe(ctx, theirsPrivate, other.ID)
	require.NoError(t, err)

	own, err := svc.ListUserRecipes(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "My Private Soup", own[0].Title)

	public, err := svc.ListPublicRecipes(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Shared Stew", public[0].Title)
}
