package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wawe-app/wawe/backend/internal/models"
	"github.com/wawe-app/wawe/backend/internal/service"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	auth := service.NewAuthService(db, "test-secret")
	recipeHandler := NewRecipeHandler(service.NewRecipeService(db, nil), auth, nil)
	ingredientHandler := NewIngredientHandler(service.NewIngredientService(db), auth)
	mealPlanHandler := NewMealPlanHandler(service.NewMealPlanService(db), auth)
	authHandler := NewAuthHandler(auth)

	router := gin.New()
	router.Use(gin.Recovery())
	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)
	ingredientHandler.RegisterRoutes(v1)
	mealPlanHandler.RegisterRoutes(v1)

	return &testEnv{router: router, db: db, auth: auth}
}

// registerUser creates an account through the API and returns its id and token.
func (e *testEnv) registerUser(t *testing.T, email, username string) (uuid.UUID, string) {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    email,
		"password": "test-password",
		"username": username,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	claims, err := e.auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	return claims.UserID, resp.Token
}

// login fetches a fresh token, picking up role changes made after register.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": "test-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func (e *testEnv) promoteToAdmin(t *testing.T, userID uuid.UUID) {
	t.Helper()
	require.NoError(t, e.db.Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Update("role", models.RoleAdmin).Error)
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
