package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEventTimes(t *testing.T) {
	start, end, err := parseEventTimes("2026-07-01T18:00:00Z", "2026-07-01T23:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 18, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 7, 1, 23, 30, 0, 0, time.UTC), end)

	// offsets are normalized to UTC
	start, _, err = parseEventTimes("2026-07-01T18:00:00+02:00", "2026-07-01T23:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 16, 0, 0, 0, time.UTC), start)

	_, _, err = parseEventTimes("not-a-date", "2026-07-01T23:30:00Z")
	assert.EqualError(t, err, "invalid starts_at; use RFC3339")

	_, _, err = parseEventTimes("2026-07-01T18:00:00Z", "2026-07-01")
	assert.EqualError(t, err, "invalid ends_at; use RFC3339")

	_, _, err = parseEventTimes("2026-07-01T23:30:00Z", "2026-07-01T18:00:00Z")
	assert.EqualError(t, err, "ends_at must be after starts_at")

	// equal bounds are rejected too
	_, _, err = parseEventTimes("2026-07-01T18:00:00Z", "2026-07-01T18:00:00Z")
	assert.EqualError(t, err, "ends_at must be after starts_at")
}
