package config

import (
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the settings a running server cannot do
// without are present. Media credentials are validated separately by the
// components that use them, so the API can run without Cloudinary access.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return ValidationError{Field: "JWT_SECRET", Message: "must be set"}
	}
	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "must be set"}
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
		return ValidationError{Field: "DB_HOST/DB_PORT/DB_NAME", Message: "must be set"}
	}
	// Local runs may lean on trust auth; production may not.
	if IsProduction() {
		if cfg.DBUser == "" || cfg.DBPassword == "" {
			return ValidationError{Field: "DB_USER/DB_PASSWORD", Message: "must be set in production"}
		}
	}
	return nil
}
