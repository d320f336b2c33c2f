package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_DB", "")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "learnhub", cfg.MongoDB)
	assert.Equal(t, "development", cfg.Env)
}

func TestLoadConfigAllowedOrigins(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("ALLOWED_ORIGINS", "")

		cfg, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.AllowedOrigins)
	})

	t.Run("FromEnv", func(t *testing.T) {
		t.Setenv("ALLOWED_ORIGINS", "https://learnhub.example.com, https://staging.learnhub.example.com")

		cfg, err := LoadConfig()
		assert.NoError(t, err)
		assert.Equal(t, []string{"https://learnhub.example.com", "https://staging.learnhub.example.com"}, cfg.AllowedOrigins)
	})
}

func TestLoadConfigReadsEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_URL", "mongodb://db:27017")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURL)
}
