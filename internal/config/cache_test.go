package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadCacheConfigDefaults(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "")
	t.Setenv("CACHE_METHODS", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("CACHE_KEY_STRATEGY", "")
	t.Setenv("CACHE_PREFIX", "")
	t.Setenv("CACHE_MAX_BODY_BYTES", "")

	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, map[string]bool{"GET": true}, cfg.Methods)
	assert.Equal(t, 30*time.Second, cfg.TTL)
	assert.Equal(t, "route_query", cfg.KeyStrategy)
	assert.Equal(t, "cache", cfg.Prefix)
	assert.Equal(t, 1048576, cfg.MaxBodyBytes)
}

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, head ,POST")
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true, "POST": true}, m)

	assert.Empty(t, parseMethods(" , "))
}

func TestParseDurFallback(t *testing.T) {
	assert.Equal(t, 5*time.Minute, parseDur("5m"))
	assert.Equal(t, time.Second, parseDur("junk"))
}
