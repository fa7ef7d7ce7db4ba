package handler

import (
	"context"  // detached context for async notification publishing
	"errors"   // errors.Is comparisons against repository sentinels
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters
	"time"     // timestamp parsing and comparisons

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/festival-ticketing/internal/model"
	"github.com/iliyamo/festival-ticketing/internal/queue"
	"github.com/iliyamo/festival-ticketing/internal/repository"
	queue_publisher "github.com/iliyamo/festival-ticketing/internal/service"
)

type eventReq struct {
	Name             string `json:"name"`
	BriefDescription string `json:"brief_description"`
	Description      string `json:"description"`
	City             string `json:"city"`
	Province         string `json:"province"`
	PostalCode       string `json:"postal_code"`
	Country          string `json:"country"`
	Address          string `json:"address"`
	HowToReach       string `json:"how_to_reach"`
	MaxCapacity      uint32 `json:"max_capacity"`
	StartsAt         string `json:"starts_at"` // RFC3339
	EndsAt           string `json:"ends_at"`   // RFC3339
}

// parseEventTimes validates and parses the schedule fields of an event
// request.  Both bounds are required and the end must be after the start.
func parseEventTimes(startsAt, endsAt string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startsAt)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid starts_at; use RFC3339")
	}
	end, err := time.Parse(time.RFC3339, endsAt)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid ends_at; use RFC3339")
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.New("ends_at must be after starts_at")
	}
	return start.UTC(), end.UTC(), nil
}

// CreateEvent handles POST /v1/events.  The authenticated organizer
// becomes the owner of the new event.  max_capacity bounds future seat
// provisioning and must be positive.
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.MaxCapacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_capacity must be positive"})
	}
	start, end, err := parseEventTimes(req.StartsAt, req.EndsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ev := &model.Event{
		OrganizerID:      organizerID,
		Name:             req.Name,
		BriefDescription: req.BriefDescription,
		Description:      req.Description,
		City:             req.City,
		Province:         req.Province,
		PostalCode:       req.PostalCode,
		Country:          req.Country,
		Address:          req.Address,
		HowToReach:       req.HowToReach,
		MaxCapacity:      req.MaxCapacity,
		StartsAt:         start,
		EndsAt:           end,
	}
	if err := h.EventRepo.Create(c.Request().Context(), ev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create event"})
	}
	return c.JSON(http.StatusCreated, eventResponse(ev))
}

// UpdateEvent handles PUT /v1/events/:id.  Only the owner may update.
// Capacity cannot shrink below the number of seats already provisioned.
func (h *OrganizerHandler) UpdateEvent(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if req.MaxCapacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_capacity must be positive"})
	}
	start, end, err := parseEventTimes(req.StartsAt, req.EndsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	existing, err := h.EventRepo.GetByIDAndOwner(ctx, eventID, organizerID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	seats, err := h.SeatRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if int(req.MaxCapacity) < len(seats) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "max_capacity below provisioned seats"})
	}

	existing.Name = req.Name
	existing.BriefDescription = req.BriefDescription
	existing.Description = req.Description
	existing.City = req.City
	existing.Province = req.Province
	existing.PostalCode = req.PostalCode
	existing.Country = req.Country
	existing.Address = req.Address
	existing.HowToReach = req.HowToReach
	existing.MaxCapacity = req.MaxCapacity
	existing.StartsAt = start
	existing.EndsAt = end

	if err := h.EventRepo.UpdateByIDAndOwner(ctx, existing); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update event"})
	}
	return c.JSON(http.StatusOK, eventResponse(existing))
}

// ListMyEvents handles GET /v1/my-events and returns the organizer's
// events including the cached aggregates.
func (h *OrganizerHandler) ListMyEvents(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.EventRepo.ListByOwner(c.Request().Context(), organizerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	items := make([]echo.Map, 0, len(events))
	for i := range events {
		items = append(items, eventResponse(&events[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ToggleCancel handles POST /v1/events/:id/cancel.  The endpoint flips
// the cancelled flag: cancelling a live event or reactivating a
// cancelled one.  Sold seats are not released on either transition, so
// a reactivated event keeps its bookings intact.  Every current ticket
// holder is notified asynchronously.
func (h *OrganizerHandler) ToggleCancel(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx := c.Request().Context()
	cancelled, err := h.EventRepo.ToggleCancel(ctx, eventID, organizerID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to toggle cancellation"})
	}

	ev, err := h.EventRepo.GetByID(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reload event"})
	}
	holders, err := h.EventRepo.TicketHolders(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load ticket holders"})
	}

	// Publishing happens outside the request so a slow broker never
	// delays the response; failures are logged by the publisher.
	changedAt := time.Now().UTC().Format(time.RFC3339)
	go func(holders []repository.TicketHolder) {
		for _, hldr := range holders {
			_ = queue_publisher.PublishEventCancellation(context.Background(), queue.EventCancelledEvent{
				EventID:     ev.ID,
				EventName:   ev.Name,
				OrganizerID: ev.OrganizerID,
				RecipientID: hldr.UserID,
				Cancelled:   cancelled,
				ChangedAt:   changedAt,
			})
		}
	}(holders)

	return c.JSON(http.StatusOK, echo.Map{
		"event_id":  eventID,
		"cancelled": cancelled,
		"notified":  len(holders),
	})
}

// eventResponse shapes an event for JSON output.
func eventResponse(e *model.Event) echo.Map {
	return echo.Map{
		"id":                e.ID,
		"organizer_id":      e.OrganizerID,
		"name":              e.Name,
		"brief_description": e.BriefDescription,
		"description":       e.Description,
		"city":              e.City,
		"province":          e.Province,
		"postal_code":       e.PostalCode,
		"country":           e.Country,
		"address":           e.Address,
		"how_to_reach":      e.HowToReach,
		"max_capacity":      e.MaxCapacity,
		"starts_at":         e.StartsAt,
		"ends_at":           e.EndsAt,
		"cancelled":         e.Cancelled,
		"seats_available":   e.SeatsAvailable,
		"avg_rating":        e.AvgRating,
		"created_at":        e.CreatedAt,
		"updated_at":        e.UpdatedAt,
	}
}
