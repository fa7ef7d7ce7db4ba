package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/festival-ticketing/internal/model"
	"github.com/iliyamo/festival-ticketing/internal/repository"
)

func liveEvent() *model.Event {
	return &model.Event{
		ID:          3,
		OrganizerID: 1,
		Name:        "Summer Jazz Nights",
		MaxCapacity: 10,
		StartsAt:    time.Now().UTC().Add(24 * time.Hour),
		EndsAt:      time.Now().UTC().Add(30 * time.Hour),
	}
}

func performBook(t *testing.T, h *AttendeeHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/events/3/book", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/events/:id/book")
	c.SetParamNames("id")
	c.SetParamValues("3")
	c.Set("user_id", uint64(7))
	require.NoError(t, h.Book(c))
	return rec
}

// Two buyers race for seat 11.  The store reports one reservation and
// one lost race; the handler must turn that into exactly one 201.
func TestBookOneSeatTwoBuyers(t *testing.T) {
	events := newMockEventStore(t)
	seats := newMockSeatStore(t)
	deliveries := newMockDeliveryStore(t)
	bookings := newMockBookingStore(t)

	events.On("GetByID", mock.Anything, uint64(3)).Return(liveEvent(), nil).Twice()
	deliveries.On("GetByID", mock.Anything, uint64(2)).
		Return(&model.Delivery{ID: 2, Name: "e-ticket", OverpriceCents: 500}, nil).Twice()
	seats.On("GetByID", mock.Anything, uint64(11)).
		Return(&model.Seat{ID: 11, EventID: 3, RowLabel: "A", SeatNumber: 4, PriceCents: 2500, Available: true}, nil).Twice()

	bookings.On("Book", mock.Anything, uint64(3), mock.AnythingOfType("*model.Ticket")).
		Run(func(args mock.Arguments) { args.Get(2).(*model.Ticket).ID = 501 }).
		Return(nil).Once()
	bookings.On("Book", mock.Anything, uint64(3), mock.AnythingOfType("*model.Ticket")).
		Return(repository.ErrSeatTaken).Once()

	h := &AttendeeHandler{
		EventRepo:    events,
		SeatRepo:     seats,
		DeliveryRepo: deliveries,
		BookingRepo:  bookings,
	}

	body := `{"seat_id":11,"delivery_id":2}`
	first := performBook(t, h, body)
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Contains(t, first.Body.String(), `"ticket_id":501`)
	assert.Contains(t, first.Body.String(), `"seat_label":"A4"`)
	assert.Contains(t, first.Body.String(), `"total_cents":3000`)

	second := performBook(t, h, body)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "seat not available")

	bookings.AssertNumberOfCalls(t, "Book", 2)
}

func TestBookCancelledEventNeverReachesStore(t *testing.T) {
	events := newMockEventStore(t)
	bookings := newMockBookingStore(t)

	ev := liveEvent()
	ev.Cancelled = true
	events.On("GetByID", mock.Anything, uint64(3)).Return(ev, nil).Once()

	h := &AttendeeHandler{EventRepo: events, BookingRepo: bookings}
	rec := performBook(t, h, `{"seat_id":11,"delivery_id":2}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "event is cancelled")
	bookings.AssertNumberOfCalls(t, "Book", 0)
}

func TestBookSeatFromAnotherEvent(t *testing.T) {
	events := newMockEventStore(t)
	seats := newMockSeatStore(t)
	deliveries := newMockDeliveryStore(t)
	bookings := newMockBookingStore(t)

	events.On("GetByID", mock.Anything, uint64(3)).Return(liveEvent(), nil).Once()
	deliveries.On("GetByID", mock.Anything, uint64(2)).
		Return(&model.Delivery{ID: 2, Name: "e-ticket"}, nil).Once()
	seats.On("GetByID", mock.Anything, uint64(11)).
		Return(&model.Seat{ID: 11, EventID: 99, RowLabel: "A", SeatNumber: 0}, nil).Once()

	h := &AttendeeHandler{
		EventRepo:    events,
		SeatRepo:     seats,
		DeliveryRepo: deliveries,
		BookingRepo:  bookings,
	}
	rec := performBook(t, h, `{"seat_id":11,"delivery_id":2}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "seat not found")
	bookings.AssertNumberOfCalls(t, "Book", 0)
}

func TestBookUnknownDelivery(t *testing.T) {
	events := newMockEventStore(t)
	deliveries := newMockDeliveryStore(t)
	bookings := newMockBookingStore(t)

	events.On("GetByID", mock.Anything, uint64(3)).Return(liveEvent(), nil).Once()
	deliveries.On("GetByID", mock.Anything, uint64(2)).
		Return(nil, repository.ErrDeliveryNotFound).Once()

	h := &AttendeeHandler{EventRepo: events, DeliveryRepo: deliveries, BookingRepo: bookings}
	rec := performBook(t, h, `{"seat_id":11,"delivery_id":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown delivery option")
	bookings.AssertNumberOfCalls(t, "Book", 0)
}

func performCancelTicket(t *testing.T, h *AttendeeHandler, ticketID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/tickets/"+ticketID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/tickets/:id")
	c.SetParamNames("id")
	c.SetParamValues(ticketID)
	c.Set("user_id", uint64(7))
	require.NoError(t, h.DeleteTicket(c))
	return rec
}

func TestCancelTicketOutcomes(t *testing.T) {
	cases := []struct {
		name     string
		storeErr error
		status   int
		body     string
	}{
		{"released", nil, http.StatusNoContent, ""},
		{"already started", repository.ErrEventStarted, http.StatusConflict, "event already started"},
		{"someone else's ticket", repository.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"unknown ticket", repository.ErrTicketNotFound, http.StatusNotFound, "ticket not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bookings := newMockBookingStore(t)
			bookings.On("Cancel", mock.Anything, uint64(501), uint64(7), mock.AnythingOfType("time.Time")).
				Return(tc.storeErr).Once()

			h := &AttendeeHandler{BookingRepo: bookings}
			rec := performCancelTicket(t, h, "501")
			assert.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				assert.Contains(t, rec.Body.String(), tc.body)
			}
		})
	}
}
