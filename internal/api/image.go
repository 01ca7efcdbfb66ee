package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wawe-app/wawe/backend/internal/middleware"
	"github.com/wawe-app/wawe/backend/internal/service"
)

// ImageHandler relays Cloudinary destroy calls so the API secret never
// reaches the browser.
type ImageHandler struct {
	mediaService *service.MediaService
	validator    middleware.TokenValidator
}

func NewImageHandler(mediaService *service.MediaService, validator middleware.TokenValidator) *ImageHandler {
	return &ImageHandler{
		mediaService: mediaService,
		validator:    validator,
	}
}

// RegisterRoutes mounts the proxy on every method so unsupported verbs
// get a proper 405 instead of the router's default 404.
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.Any("/images/delete", h.DeleteImage)
}

type deleteImageRequest struct {
	PublicID string `json:"publicId"`
}

func (h *ImageHandler) DeleteImage(c *gin.Context) {
	if c.Request.Method != http.MethodDelete {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid authorization header"})
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if _, err := h.validator.ValidateToken(token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	// publicId arrives in the JSON body, or as a query parameter for
	// clients whose HTTP stack drops DELETE bodies.
	var req deleteImageRequest
	if c.Request.Body != nil {
		_ = c.ShouldBindJSON(&req)
	}
	if req.PublicID == "" {
		req.PublicID = c.Query("publicId")
	}
	if req.PublicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publicId is required"})
		return
	}

	result, err := h.mediaService.Destroy(c.Request.Context(), req.PublicID)
	if err != nil {
		log.Printf("[ImageHandler] destroy %q failed: %v", req.PublicID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	if result.Result != "ok" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Cloudinary did not delete the image",
			"result": result.Result,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image deleted",
		"result":  result.Result,
	})
}
