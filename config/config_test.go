package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, 5*time.Minute, cfg.Cache.StatisticsTTL)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{JWT: JWTConfig{Secret: "   "}}
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)

	cfg.JWT.Secret = "s3cret"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("DATABASE_URL", "sqlite://expenses.db")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("STATS_CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://app.example.com ,")

	cfg := Load()

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "sqlite://expenses.db", cfg.Database.URL)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, 30*time.Second, cfg.Cache.StatisticsTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 4000\n  log_level: debug\njwt:\n  expiry: 1h\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Run("file values", func(t *testing.T) {
		cfg := LoadFile(path)
		assert.Equal(t, 4000, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.LogLevel)
		assert.Equal(t, time.Hour, cfg.JWT.Expiry)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "5000")
		cfg := LoadFile(path)
		assert.Equal(t, 5000, cfg.Server.Port)
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogLevel(tt.input))
		})
	}
}
