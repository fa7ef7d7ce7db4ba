package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/festival-ticketing/internal/config"
)

func newRateCtx(uid string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events/7/book", nil)
	req.Header.Set("X-Real-IP", "203.0.113.9")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/events/:id/book")
	if uid != "" {
		c.Set("user_id", uid)
	}
	return c
}

func TestBuildRateKeyStrategies(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl"}
	c := newRateCtx("42")

	cfg.KeyStrategy = "ip"
	assert.Equal(t, "rl:ip:203.0.113.9", buildRateKey(cfg, c))

	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:42", buildRateKey(cfg, c))

	cfg.KeyStrategy = "route"
	assert.Equal(t, "rl:route:POST /v1/events/:id/book", buildRateKey(cfg, c))

	cfg.KeyStrategy = "ip_user_route"
	assert.Equal(t, "rl:ip:203.0.113.9:user:42:route:POST /v1/events/:id/book", buildRateKey(cfg, c))

	// unknown strategies fall back to the full key
	cfg.KeyStrategy = "bogus"
	assert.Equal(t, "rl:ip:203.0.113.9:user:42:route:POST /v1/events/:id/book", buildRateKey(cfg, c))
}

func TestCurrentUserIDFallsBackToAnon(t *testing.T) {
	c := newRateCtx("")
	assert.Equal(t, "anon", currentUserID(c))

	c = newRateCtx("7")
	assert.Equal(t, "7", currentUserID(c))
}

// JWTAuth stores the numeric sub claim, which MapClaims decodes as
// float64; user-keyed buckets must not collapse into "anon" for it.
func TestCurrentUserIDCoercesNumericClaims(t *testing.T) {
	c := newRateCtx("")
	c.Set("user_id", float64(42))
	assert.Equal(t, "42", currentUserID(c))

	c = newRateCtx("")
	c.Set("user_id", uint64(7))
	assert.Equal(t, "7", currentUserID(c))

	c = newRateCtx("")
	c.Set("user_id", int64(9))
	assert.Equal(t, "9", currentUserID(c))

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
	c = newRateCtx("")
	c.Set("user_id", float64(42))
	assert.Equal(t, "rl:user:42", buildRateKey(cfg, c))
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(5), asInt64(int64(5)))
	assert.Equal(t, int64(5), asInt64(5))
	assert.Equal(t, int64(5), asInt64(5.9))
	assert.Equal(t, int64(5), asInt64("5"))
	assert.Equal(t, int64(0), asInt64("nope"))
	assert.Equal(t, int64(0), asInt64(nil))
}

func TestNewTokenBucketDisabledPassthrough(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled:        false,
		Capacity:       1,
		RefillTokens:   1,
		RefillInterval: time.Second,
		TTL:            time.Minute,
	}
	mw := NewTokenBucket(cfg, nil)
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(newRateCtx("1")))
	assert.True(t, called)
}
