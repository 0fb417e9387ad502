package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 60, cfg.JWTExpirationMinutes)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "8080")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RedisDeshabilitado(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REDIS_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_RedisPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	if _, set := os.LookupEnv("REDIS_URL"); !set {
		assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	}
}
