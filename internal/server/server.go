package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wawe-app/wawe/backend/config"
	"github.com/wawe-app/wawe/backend/internal/api"
	"github.com/wawe-app/wawe/backend/internal/middleware"
	"github.com/wawe-app/wawe/backend/internal/router"
	"github.com/wawe-app/wawe/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	cfg  *config.Config
	http *http.Server
}

// New wires the services and handlers and returns a server ready to start.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	authService := service.NewAuthService(db, cfg.JWTSecret)
	ingredientService := service.NewIngredientService(db)
	mealPlanService := service.NewMealPlanService(db)

	// Recipe deletion only talks to Cloudinary when credentials are
	// configured; otherwise the image is left behind and logged.
	var mediaService *service.MediaService
	var mediaDeleter service.MediaDeleter
	if cfg.Cloudinary.Complete() {
		mediaService = service.NewMediaService(cfg.Cloudinary)
		mediaDeleter = mediaService
	} else {
		log.Println("[Server] Cloudinary is not configured, image cleanup disabled")
	}
	recipeService := service.NewRecipeService(db, mediaDeleter)

	rateLimiter := middleware.NewMutationRateLimiter(redisClient)

	authHandler := api.NewAuthHandler(authService)
	recipeHandler := api.NewRecipeHandler(recipeService, authService, rateLimiter)
	ingredientHandler := api.NewIngredientHandler(ingredientService, authService)
	mealPlanHandler := api.NewMealPlanHandler(mealPlanService, authService)

	var imageHandler *api.ImageHandler
	if mediaService != nil {
		imageHandler = api.NewImageHandler(mediaService, authService)
	}

	engine := router.SetupRouter(authHandler, recipeHandler, ingredientHandler, mealPlanHandler, imageHandler)

	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:              cfg.ServerHost + ":" + cfg.ServerPort,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	log.Printf("[Server] listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
