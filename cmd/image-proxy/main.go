package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wawe-app/wawe/backend/config"
	"github.com/wawe-app/wawe/backend/internal/api"
	"github.com/wawe-app/wawe/backend/internal/service"
)

// image-proxy is a standalone deployment of the Cloudinary deletion
// relay. It validates bearer tokens with the shared JWT secret and
// never opens a database connection, so it can run on tiny instances
// next to the static frontend.
func main() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	cloudinary := config.LoadCloudinaryConfig()
	if !cloudinary.Complete() {
		log.Fatal("Cloudinary configuration is incomplete")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	authService := service.NewAuthService(nil, jwtSecret)
	mediaService := service.NewMediaService(cloudinary)
	imageHandler := api.NewImageHandler(mediaService, authService)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://wawe-phi-eight.vercel.app"},
		AllowMethods:     []string{"DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	imageHandler.RegisterRoutes(router.Group("/api/v1"))

	log.Printf("[ImageProxy] listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
