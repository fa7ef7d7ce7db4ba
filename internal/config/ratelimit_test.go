package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_CAPACITY", "")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "")
	t.Setenv("RATE_LIMIT_TTL", "")
	t.Setenv("RATE_LIMIT_KEY_STRATEGY", "")
	t.Setenv("RATE_LIMIT_PREFIX", "")
	t.Setenv("RATE_LIMIT_BURST", "")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "")

	cfg := LoadRateLimitConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 60, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, time.Second, cfg.RefillInterval)
	assert.Equal(t, "ip_user_route", cfg.KeyStrategy)
	assert.Equal(t, "rl", cfg.Prefix)
}

func TestLoadRateLimitConfigOverridesAndFloors(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s") // below the 5x interval floor

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 5, cfg.Capacity, "BURST overrides capacity")
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL, "TTL is floored to 5x refill interval")
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_STR", "hello")
	assert.Equal(t, "hello", envStr("X_STR", "def"))
	assert.Equal(t, "def", envStr("X_STR_MISSING", "def"))

	t.Setenv("X_BOOL", "off")
	assert.False(t, envBool("X_BOOL", true))
	t.Setenv("X_BOOL", "YES")
	assert.True(t, envBool("X_BOOL", false))
	t.Setenv("X_BOOL", "maybe")
	assert.True(t, envBool("X_BOOL", true), "unparseable falls back to default")

	t.Setenv("X_INT", "12")
	assert.Equal(t, 12, envInt("X_INT", 3))
	t.Setenv("X_INT", "nope")
	assert.Equal(t, 3, envInt("X_INT", 3))

	t.Setenv("X_DUR", "250ms")
	assert.Equal(t, 250*time.Millisecond, envDur("X_DUR", time.Second))
	t.Setenv("X_DUR", "bad")
	assert.Equal(t, time.Second, envDur("X_DUR", time.Second))
}
