package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CART_TTL_MINUTES", "ALLOW_REGISTRATION"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Address())
	assert.Equal(t, 120, cfg.CartTTLMinutes)
	assert.False(t, cfg.AllowRegistration)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CART_TTL_MINUTES", "15")
	t.Setenv("ALLOW_REGISTRATION", "true")
	t.Setenv("JWT_SECRET", "  s3cret  ")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Address())
	assert.Equal(t, 15, cfg.CartTTLMinutes)
	assert.True(t, cfg.AllowRegistration)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoadIgnoresBadTTL(t *testing.T) {
	t.Setenv("CART_TTL_MINUTES", "zero")
	assert.Equal(t, 120, Load().CartTTLMinutes)
}
