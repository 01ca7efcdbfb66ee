package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealSlotEndpoints(t *testing.T) {
	e := setupTestEnv(t)
	_, token := e.registerUser(t, "alice@example.com", "alice")

	// first access lazily creates the default slot
	w := e.do(t, http.MethodGet, "/api/v1/meal-plan/slots", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	slots := decodeBody(t, w)["slots"].([]interface{})
	require.Len(t, slots, 1)
	assert.Equal(t, "Meal 1", slots[0].(map[string]interface{})["label"])

	w = e.do(t, http.MethodPost, "/api/v1/meal-plan/slots", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	added := decodeBody(t, w)
	assert.Equal(t, "Meal 2", added["label"])

	w = e.do(t, http.MethodDelete, "/api/v1/meal-plan/slots/"+added["id"].(string), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the last remaining slot cannot be removed
	firstID := slots[0].(map[string]interface{})["id"].(string)
	w = e.do(t, http.MethodDelete, "/api/v1/meal-plan/slots/"+firstID, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanMealEndpoints(t *testing.T) {
	e := setupTestEnv(t)
	_, aliceToken := e.registerUser(t, "alice@example.com", "alice")
	_, bobToken := e.registerUser(t, "bob@example.com", "bob")
	carrot := createCatalogIngredient(t, e, "Carrot")

	recipeID := createSoup(t, e, aliceToken, carrot)
	foreignPrivate := createSoup(t, e, bobToken, carrot)

	w := e.do(t, http.MethodGet, "/api/v1/meal-plan/slots", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	slots := decodeBody(t, w)["slots"].([]interface{})
	slotID := slots[0].(map[string]interface{})["id"].(string)

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	w = e.do(t, http.MethodPost, "/api/v1/meal-plan/meals", aliceToken, map[string]interface{}{
		"recipe_id": recipeID,
		"slot_id":   slotID,
		"meal_date": monday.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	plannedID := decodeBody(t, w)["id"].(string)

	// a foreign private recipe cannot be planned
	w = e.do(t, http.MethodPost, "/api/v1/meal-plan/meals", aliceToken, map[string]interface{}{
		"recipe_id": foreignPrivate,
		"slot_id":   slotID,
		"meal_date": monday.Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodGet, "/api/v1/meal-plan/week?from=2026-03-02", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	week := decodeBody(t, w)["planned_meals"].([]interface{})
	require.Len(t, week, 1)

	w = e.do(t, http.MethodDelete, "/api/v1/meal-plan/meals/"+plannedID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodDelete, "/api/v1/meal-plan/meals/"+plannedID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWeekPlanRejectsBadDate(t *testing.T) {
	e := setupTestEnv(t)
	_, token := e.registerUser(t, "alice@example.com", "alice")

	w := e.do(t, http.MethodGet, "/api/v1/meal-plan/week?from=tomorrow", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
