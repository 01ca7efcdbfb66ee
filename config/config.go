package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Media host (Cloudinary) configuration
	Cloudinary CloudinaryConfig
}

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to Docker secrets in production.
func LoadConfig() (*Config, error) {
	// Outside production the database usually runs next door without TLS.
	sslDefault := "disable"
	if IsProduction() {
		sslDefault = "require"
	}

	cfg := &Config{
		ServerPort:    getSetting("SERVER_PORT", "8080"),
		ServerHost:    getSetting("SERVER_HOST", "0.0.0.0"),
		DBHost:        getSetting("DB_HOST", "localhost"),
		DBPort:        getSetting("DB_PORT", "5432"),
		DBUser:        getSetting("DB_USER", ""),
		DBPassword:    getSetting("DB_PASSWORD", ""),
		DBName:        getSetting("DB_NAME", "wawe"),
		DBSSLMode:     getSetting("DB_SSL_MODE", sslDefault),
		RedisHost:     getSetting("REDIS_HOST", "localhost"),
		RedisPort:     getSetting("REDIS_PORT", "6379"),
		RedisPassword: getSetting("REDIS_PASSWORD", ""),
		RedisDB:       0,
		RedisURL:      getSetting("REDIS_URL", ""),
		JWTSecret:     getSetting("JWT_SECRET", ""),
		Cloudinary:    LoadCloudinaryConfig(),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getSetting reads a value from the environment, then from the Docker
// secrets directory (lowercased name), then falls back to the default.
func getSetting(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(name)); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
