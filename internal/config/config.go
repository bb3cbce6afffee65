// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	JWT       JWTConfig
	Uploads   UploadsConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port           int
	MaxRequestSize int64
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds JWT token configuration
type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

// UploadsConfig holds the location of uploaded files
type UploadsConfig struct {
	Dir string
}

// RateLimitConfig holds per-IP request limits
type RateLimitConfig struct {
	RequestsPerMinute int
}

// AdminConfig holds the bootstrap administrator account.
// The account is only ensured when Password is set.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join("data", "library.db") // default
	}
	cfg.Database.Path = dbPath

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	maxSizeStr := os.Getenv("MAX_REQUEST_SIZE_MB")
	if maxSizeStr == "" {
		maxSizeStr = "50" // two 20MB uploads plus form fields
	}
	maxSizeMB, err := strconv.Atoi(maxSizeStr)
	if err != nil || maxSizeMB <= 0 {
		return nil, fmt.Errorf("invalid MAX_REQUEST_SIZE_MB: %s", maxSizeStr)
	}
	cfg.Server.MaxRequestSize = int64(maxSizeMB) << 20

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWT.Secret = jwtSecret

	// Token expiry (default: 1 hour)
	expiryStr := os.Getenv("JWT_TOKEN_EXPIRY")
	if expiryStr == "" {
		expiryStr = "1h"
	}
	expiry, err := time.ParseDuration(expiryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TOKEN_EXPIRY: %w", err)
	}
	if expiry <= 0 {
		return nil, fmt.Errorf("JWT_TOKEN_EXPIRY must be positive")
	}
	cfg.JWT.TokenExpiry = expiry

	// Uploads configuration
	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "public" // default
	}
	cfg.Uploads.Dir = uploadsDir

	// Rate limit configuration
	rateStr := os.Getenv("RATE_LIMIT_PER_MINUTE")
	if rateStr == "" {
		rateStr = "100" // default
	}
	rate, err := strconv.Atoi(rateStr)
	if err != nil || rate <= 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %s", rateStr)
	}
	cfg.RateLimit.RequestsPerMinute = rate

	// Admin bootstrap configuration (optional)
	cfg.Admin.Username = os.Getenv("ADMIN_USERNAME")
	if cfg.Admin.Username == "" {
		cfg.Admin.Username = "admin"
	}
	cfg.Admin.Email = os.Getenv("ADMIN_EMAIL")
	if cfg.Admin.Email == "" {
		cfg.Admin.Email = "admin@example.com"
	}
	cfg.Admin.Password = os.Getenv("ADMIN_PASSWORD")

	return cfg, nil
}

// parseOrigins parses a comma-separated origins list, allowing all origins when empty
func parseOrigins(corsOrigins string) []string {
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}
	if len(allowed) == 0 {
		return []string{"*"}
	}
	return allowed
}
