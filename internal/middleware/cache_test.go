package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/festival-ticketing/internal/config"
)

func newCacheCtx(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/events")
	return c, rec
}

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	body := []byte(`{"items":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadCorrupt(t *testing.T) {
	_, _, _, ok := decodePayload(nil)
	assert.False(t, ok)
	_, _, _, ok = decodePayload([]byte{0, 0})
	assert.False(t, ok)
	// header length pointing past the buffer
	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 0, 99, 'x'})
	assert.False(t, ok)
}

func TestCacheKeyFromStrategies(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	c1, _ := newCacheCtx(http.MethodGet, "/v1/events?page=1")
	c2, _ := newCacheCtx(http.MethodGet, "/v1/events?page=2")
	k1 := cacheKeyFrom(cfg, c1)
	k2 := cacheKeyFrom(cfg, c2)
	assert.NotEqual(t, k1, k2, "query must contribute to the key")
	assert.Contains(t, k1, "cache:")

	// route-only strategy ignores the query string
	cfg.KeyStrategy = "route"
	c3, _ := newCacheCtx(http.MethodGet, "/v1/events?page=1")
	c4, _ := newCacheCtx(http.MethodGet, "/v1/events?page=2")
	assert.Equal(t, cacheKeyFrom(cfg, c3), cacheKeyFrom(cfg, c4))

	// method_route distinguishes verbs
	cfg.KeyStrategy = "method_route"
	c5, _ := newCacheCtx(http.MethodGet, "/v1/events")
	c6, _ := newCacheCtx(http.MethodHead, "/v1/events")
	assert.NotEqual(t, cacheKeyFrom(cfg, c5), cacheKeyFrom(cfg, c6))
}

func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 5}

	_, err := cw.Write([]byte("0123456789"))
	require.NoError(t, err)

	assert.Equal(t, "01234", cw.buf.String(), "capture stops at the limit")
	assert.Equal(t, "0123456789", rec.Body.String(), "client still gets the full body")
}

func TestNewRedisCacheDisabledPassthrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "live")
	})

	c, rec := newCacheCtx(http.MethodGet, "/v1/events")
	require.NoError(t, h(c))
	assert.True(t, called)
	assert.Equal(t, "live", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestNewRedisCacheHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cfg := config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{"GET": true},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "cache",
	}

	c, rec := newCacheCtx(http.MethodGet, "/v1/events")
	key := cacheKeyFrom(cfg, c)

	payload, err := encodePayload(http.StatusOK, http.Header{"Content-Type": {"application/json"}}, []byte(`{"items":[]}`))
	require.NoError(t, err)
	mock.ExpectGet(key).SetVal(string(payload))

	mw := NewRedisCache(cfg, rdb)
	h := mw(func(c echo.Context) error {
		t.Fatal("handler must not run on a cache hit")
		return nil
	})

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, `{"items":[]}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRedisCacheSkipsUncachedMethods(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cfg := config.CacheConfig{
		Enabled: true,
		Methods: map[string]bool{"GET": true},
		TTL:     time.Minute,
		Prefix:  "cache",
	}
	mw := NewRedisCache(cfg, rdb)
	h := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})

	c, rec := newCacheCtx(http.MethodPost, "/v1/events")
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet(), "no redis calls for POST")
}
