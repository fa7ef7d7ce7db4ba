package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/festival-ticketing/internal/utils"
)

func runWithRole(t *testing.T, role interface{}, allowed ...string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/my-events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	called := false
	h := RequireRole(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, called
}

func TestRequireRole(t *testing.T) {
	rec, called := runWithRole(t, "ORGANIZER", "ORGANIZER")
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, called = runWithRole(t, "ATTENDEE", "ORGANIZER")
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, called = runWithRole(t, nil, "ORGANIZER", "ATTENDEE")
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// non-string role values are rejected
	rec, called = runWithRole(t, 42, "ORGANIZER")
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuth(t *testing.T) {
	const secret = "test-secret"
	e := echo.New()

	newCtx := func(auth string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	h := JWTAuth(secret)(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"role": c.Get("role")})
	})

	// missing header
	c, rec := newCtx("")
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// garbage token
	c, rec = newCtx("Bearer nonsense")
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// wrong secret
	at, err := utils.NewAccessToken("other-secret", 1, "ATTENDEE", 5)
	require.NoError(t, err)
	c, rec = newCtx("Bearer " + at.Token)
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// valid token populates context claims
	at, err = utils.NewAccessToken(secret, 1, "ATTENDEE", 5)
	require.NoError(t, err)
	c, rec = newCtx("Bearer " + at.Token)
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ATTENDEE")
}
