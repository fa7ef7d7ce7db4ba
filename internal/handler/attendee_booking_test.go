package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingConflict(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-time.Hour)

	assert.Equal(t, "", bookingConflict(false, future, now))
	assert.Equal(t, "event is cancelled", bookingConflict(true, future, now))
	assert.Equal(t, "event already ended", bookingConflict(false, past, now))
	// a cancelled, ended event reports the cancellation first
	assert.Equal(t, "event is cancelled", bookingConflict(true, past, now))
	// boundary: an event ending exactly now no longer accepts bookings
	assert.Equal(t, "event already ended", bookingConflict(false, now, now))
}
