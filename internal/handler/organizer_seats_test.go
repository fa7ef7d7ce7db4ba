package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/festival-ticketing/internal/model"
	"github.com/iliyamo/festival-ticketing/internal/repository"
)

func TestNextRowLabel(t *testing.T) {
	used := map[string]struct{}{}
	assert.Equal(t, "A", nextRowLabel(used))

	used["A"] = struct{}{}
	assert.Equal(t, "B", nextRowLabel(used))

	// gaps are filled before moving on
	used["B"] = struct{}{}
	used["D"] = struct{}{}
	assert.Equal(t, "C", nextRowLabel(used))

	for i := 0; i < 26; i++ {
		used[indexToRowLabel(i)] = struct{}{}
	}
	assert.Equal(t, "AA", nextRowLabel(used))
}

func performAddSeats(t *testing.T, h *OrganizerHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events/3/seats", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/events/:id/seats")
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("user_id", uint64(1))
	require.NoError(t, h.AddSeats(c))
	return rec
}

func TestAddSeatsRejectsNonPositiveCount(t *testing.T) {
	seats := newMockSeatStore(t)
	h := &OrganizerHandler{SeatRepo: seats}

	for _, body := range []string{
		`{"total_seats":0,"price_cents":2500}`,
		`{"total_seats":-3,"price_cents":2500}`,
	} {
		rec := performAddSeats(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid number of seats")
	}
	seats.AssertNumberOfCalls(t, "AddBatch", 0)
}

// An event with capacity 10 takes a batch of 8, then refuses a batch
// of 5.  On the refused batch the store sees the whole request once
// and writes nothing, so no partial row is created.
func TestAddSeatsCapacityScenario(t *testing.T) {
	events := newMockEventStore(t)
	seats := newMockSeatStore(t)

	ev := &model.Event{ID: 3, OrganizerID: 1, MaxCapacity: 10}
	events.On("GetByIDAndOwner", mock.Anything, uint64(3), uint64(1)).Return(ev, nil).Twice()

	seats.On("AddBatch", mock.Anything, uint64(3), 8, "A", "STANDARD", uint32(2500)).
		Return(nil).Once()
	seats.On("AddBatch", mock.Anything, uint64(3), 5, "B", "STANDARD", uint32(2500)).
		Return(repository.ErrCapacityExceeded).Once()

	h := &OrganizerHandler{EventRepo: events, SeatRepo: seats}

	first := performAddSeats(t, h, `{"total_seats":8,"row_label":"A","price_cents":2500}`)
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Contains(t, first.Body.String(), "Added 8 seats")

	second := performAddSeats(t, h, `{"total_seats":5,"row_label":"B","price_cents":2500}`)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "Max capacity exceeded")

	seats.AssertNumberOfCalls(t, "AddBatch", 2)
}

func TestAddSeatsUnknownEvent(t *testing.T) {
	events := newMockEventStore(t)
	seats := newMockSeatStore(t)

	events.On("GetByIDAndOwner", mock.Anything, uint64(3), uint64(1)).
		Return(nil, repository.ErrEventNotFound).Once()

	h := &OrganizerHandler{EventRepo: events, SeatRepo: seats}
	rec := performAddSeats(t, h, `{"total_seats":4,"row_label":"A","price_cents":1000}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "event not found")
	seats.AssertNumberOfCalls(t, "AddBatch", 0)
}
