package handler

import (
	"context"  // detached context for async notification publishing
	"errors"   // errors.Is comparisons
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters
	"time"     // working with timestamps

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/festival-ticketing/internal/model"
	"github.com/iliyamo/festival-ticketing/internal/queue"
	"github.com/iliyamo/festival-ticketing/internal/repository"
	queue_publisher "github.com/iliyamo/festival-ticketing/internal/service"
)

type attendeeEventStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Event, error)
	RefreshAvgRating(ctx context.Context, eventID uint64) error
}

type attendeeSeatStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
}

type attendeeTicketStore interface {
	GetByIDForUser(ctx context.Context, ticketID, userID uint64) (*repository.TicketDetail, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.TicketDetail, error)
}

type attendeeReviewStore interface {
	GetOrCreateByTicket(ctx context.Context, ticketID uint64) (*model.Review, error)
	Submit(ctx context.Context, ticketID uint64, rating uint8, content string) error
}

type attendeeDeliveryStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Delivery, error)
}

// bookingStore is the transactional core of booking.  Book and Cancel
// each run as one transaction, so the availability flip, the ticket
// write and the aggregate refresh land together or not at all.
type bookingStore interface {
	Book(ctx context.Context, eventID uint64, t *model.Ticket) error
	Cancel(ctx context.Context, ticketID, userID uint64, now time.Time) error
}

// AttendeeHandler groups the stores required to book seats, manage
// tickets and submit reviews on behalf of attendees.  All methods assume
// JWT authentication and role validation has already been performed by
// middleware.
type AttendeeHandler struct {
	EventRepo    attendeeEventStore    // access to events and cached aggregates
	SeatRepo     attendeeSeatStore     // access to seats
	TicketRepo   attendeeTicketStore   // access to tickets
	ReviewRepo   attendeeReviewStore   // access to review drafts and submissions
	DeliveryRepo attendeeDeliveryStore // access to the delivery catalog
	BookingRepo  bookingStore          // transactional book/cancel
}

// NewAttendeeHandler constructs a new AttendeeHandler with the provided
// stores.  All dependencies must be non-nil.
func NewAttendeeHandler(eventRepo attendeeEventStore, seatRepo attendeeSeatStore, ticketRepo attendeeTicketStore, reviewRepo attendeeReviewStore, deliveryRepo attendeeDeliveryStore, bookingRepo bookingStore) *AttendeeHandler {
	if eventRepo == nil || seatRepo == nil || ticketRepo == nil || reviewRepo == nil || deliveryRepo == nil || bookingRepo == nil {
		panic("nil store passed to NewAttendeeHandler")
	}
	return &AttendeeHandler{
		EventRepo:    eventRepo,
		SeatRepo:     seatRepo,
		TicketRepo:   ticketRepo,
		ReviewRepo:   reviewRepo,
		DeliveryRepo: deliveryRepo,
		BookingRepo:  bookingRepo,
	}
}

// bookingConflict returns a non-empty message when an event cannot take
// new bookings: it was cancelled or its schedule has already ended.
func bookingConflict(cancelled bool, endsAt, now time.Time) string {
	if cancelled {
		return "event is cancelled"
	}
	if !endsAt.After(now) {
		return "event already ended"
	}
	return ""
}

// Book handles POST /v1/events/:id/book.  The request body carries the
// seat and delivery choice.  The availability flip is a conditional
// update, so two concurrent bookings for the same seat resolve to
// exactly one ticket; the loser receives 409.  On success the
// seats_available cache is refreshed in the same transaction and the
// organizer is notified asynchronously.
func (h *AttendeeHandler) Book(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var body struct {
		SeatID     uint64 `json:"seat_id"`
		DeliveryID uint64 `json:"delivery_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.SeatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id is required"})
	}
	if body.DeliveryID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "delivery_id is required"})
	}

	ctx := c.Request().Context()
	ev, err := h.EventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if msg := bookingConflict(ev.Cancelled, ev.EndsAt, time.Now().UTC()); msg != "" {
		return c.JSON(http.StatusConflict, echo.Map{"error": msg})
	}
	delivery, err := h.DeliveryRepo.GetByID(ctx, body.DeliveryID)
	if err != nil {
		if errors.Is(err, repository.ErrDeliveryNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown delivery option"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	seat, err := h.SeatRepo.GetByID(ctx, body.SeatID)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if seat.EventID != eventID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	}

	ticket := &model.Ticket{SeatID: body.SeatID, UserID: userID, DeliveryID: body.DeliveryID}
	if err := h.BookingRepo.Book(ctx, eventID, ticket); err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		if errors.Is(err, repository.ErrSeatTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat not available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to book seat"})
	}

	seatLabel := seat.RowLabel + strconv.FormatUint(uint64(seat.SeatNumber), 10)
	go func() {
		_ = queue_publisher.PublishTicketBooked(context.Background(), queue.TicketBookedEvent{
			TicketID:    ticket.ID,
			EventID:     ev.ID,
			EventName:   ev.Name,
			OrganizerID: ev.OrganizerID,
			AttendeeID:  userID,
			SeatLabel:   seatLabel,
			PriceCents:  seat.PriceCents,
			BookedAt:    ticket.CreatedAt.UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"ticket_id":   ticket.ID,
		"event_id":    eventID,
		"seat_id":     body.SeatID,
		"seat_label":  seatLabel,
		"total_cents": seat.PriceCents + delivery.OverpriceCents,
	})
}

// MyTickets handles GET /v1/my-tickets.  It returns all tickets of the
// current attendee with seat, event and delivery details, newest first.
func (h *AttendeeHandler) MyTickets(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.TicketRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tickets"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// GetTicket handles GET /v1/tickets/:id.  Opening the detail also
// materializes an empty review draft for the ticket, so a later submit
// only fills in the rating.
func (h *AttendeeHandler) GetTicket(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ticketID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	ctx := c.Request().Context()
	detail, err := h.TicketRepo.GetByIDForUser(ctx, ticketID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch ticket"})
	}
	if detail.Review == nil {
		if _, err := h.ReviewRepo.GetOrCreateByTicket(ctx, ticketID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to prepare review"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// DeleteTicket handles DELETE /v1/tickets/:id.  An attendee may cancel
// their ticket while the event has not started.  The seat is released
// and the seats_available cache refreshed in the same transaction.
// Returns 204 on success, 404 when the ticket does not exist, 403 when
// it belongs to another user, 409 when the event already started.
func (h *AttendeeHandler) DeleteTicket(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ticketID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	ctx := c.Request().Context()
	if err := h.BookingRepo.Cancel(ctx, ticketID, userID, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		if errors.Is(err, repository.ErrEventStarted) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "event already started"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel ticket"})
	}
	return c.NoContent(http.StatusNoContent)
}

// SubmitReview handles PUT /v1/tickets/:id/review.  Ratings are 1..5;
// submitting again overwrites the previous review.  The event must have
// ended before it can be reviewed.  The avg_rating cache is refreshed
// right after the write.
func (h *AttendeeHandler) SubmitReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ticketID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	var body struct {
		Rating  uint8  `json:"rating"`
		Content string `json:"content"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Rating < 1 || body.Rating > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx := c.Request().Context()
	detail, err := h.TicketRepo.GetByIDForUser(ctx, ticketID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch ticket"})
	}
	if detail.EventEndsAt.After(time.Now().UTC()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "event not finished yet"})
	}
	if err := h.ReviewRepo.Submit(ctx, ticketID, body.Rating, body.Content); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save review"})
	}
	if err := h.EventRepo.RefreshAvgRating(ctx, detail.EventID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to refresh rating"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ticket_id": ticketID,
		"rating":    body.Rating,
		"content":   body.Content,
	})
}
