package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DB_PATH", "")
		t.Setenv("SERVER_PORT", "")
		t.Setenv("JWT_TOKEN_EXPIRY", "")
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		t.Setenv("ADMIN_PASSWORD", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, time.Hour, cfg.JWT.TokenExpiry)
		assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
		assert.Equal(t, int64(50<<20), cfg.Server.MaxRequestSize)
		assert.Equal(t, "admin", cfg.Admin.Username)
		assert.Empty(t, cfg.Admin.Password)
	})

	t.Run("custom values", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("DB_PATH", "/tmp/lib.db")
		t.Setenv("JWT_TOKEN_EXPIRY", "30m")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, ,https://example.com")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "/tmp/lib.db", cfg.Database.Path)
		assert.Equal(t, 30*time.Minute, cfg.JWT.TokenExpiry)
		assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.CORS.AllowedOrigins)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET is required")
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SERVER_PORT", "abc")

		_, err := Load()
		assert.ErrorContains(t, err, "invalid SERVER_PORT")
	})

	t.Run("invalid expiry", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SERVER_PORT", "")
		t.Setenv("JWT_TOKEN_EXPIRY", "soon")

		_, err := Load()
		assert.ErrorContains(t, err, "invalid JWT_TOKEN_EXPIRY")
	})
}
