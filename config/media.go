package config

import (
	"fmt"
)

// CloudinaryConfig holds credentials for the external media host. The API
// secret stays server-side: clients upload with the unsigned preset and
// delete through the signed proxy endpoint.
type CloudinaryConfig struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadPreset string
}

// LoadCloudinaryConfig reads media host settings from the environment or
// Docker secrets.
func LoadCloudinaryConfig() CloudinaryConfig {
	return CloudinaryConfig{
		CloudName:    getSetting("CLOUDINARY_CLOUD_NAME", ""),
		APIKey:       getSetting("CLOUDINARY_API_KEY", ""),
		APISecret:    getSetting("CLOUDINARY_API_SECRET", ""),
		UploadPreset: getSetting("CLOUDINARY_UPLOAD_PRESET", ""),
	}
}

// UploadURL returns the media host upload endpoint for the configured cloud.
func (c CloudinaryConfig) UploadURL() string {
	return fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", c.CloudName)
}

// DestroyURL returns the media host destroy endpoint for the configured cloud.
func (c CloudinaryConfig) DestroyURL() string {
	return fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/destroy", c.CloudName)
}

// Complete reports whether the credentials needed for signed deletion are set.
func (c CloudinaryConfig) Complete() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}
