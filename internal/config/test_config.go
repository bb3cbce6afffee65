package config

import (
	"path/filepath"
	"time"
)

// LoadTestConfig builds a configuration for tests rooted at dir.
// The database file and uploads live under dir so every test gets isolated state.
func LoadTestConfig(dir string) *Config {
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(dir, "library_test.db")},
		Server: ServerConfig{
			Port:           0,
			MaxRequestSize: 50 << 20,
		},
		Logging:   LoggingConfig{Level: "debug"},
		CORS:      CORSConfig{AllowedOrigins: []string{"*"}},
		JWT:       JWTConfig{Secret: "test-secret-key", TokenExpiry: time.Hour},
		Uploads:   UploadsConfig{Dir: filepath.Join(dir, "public")},
		RateLimit: RateLimitConfig{RequestsPerMinute: 10000},
		Admin: AdminConfig{
			Username: "admin",
			Email:    "admin@example.com",
			Password: "admin123",
		},
	}
}
