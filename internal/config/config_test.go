package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithSecretFromEnv(t *testing.T) {
	t.Setenv("TASKHUB_AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "@hourly", cfg.Scheduler.DueDatesSpec)
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("TASKHUB_AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Driver: "oracle"},
		Auth:     AuthConfig{JWTSecret: "s", AccessTokenTTL: time.Minute},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
