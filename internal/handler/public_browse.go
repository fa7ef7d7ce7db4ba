// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public browsing API. These routes allow
// unauthenticated users to browse events, seat availability, delivery options
// and submitted reviews. Sensitive fields (organizer emails, internal IDs of
// other users, etc.) are filtered from responses.

package handler

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-ticketing/internal/model"
	"github.com/iliyamo/festival-ticketing/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
// It produces sanitized responses suitable for public consumption.
type PublicHandler struct {
	EventRepo    *repository.EventRepo    // provides access to event data
	SeatRepo     *repository.SeatRepo     // provides access to seat data
	ReviewRepo   *repository.ReviewRepo   // provides access to submitted reviews
	DeliveryRepo *repository.DeliveryRepo // provides access to the delivery catalog
	CatalogRepo  *repository.CatalogRepo  // provides access to artists and services
}

// PublicEvent is the list-page shape of an event: the cached aggregates
// are rendered exactly as stored, never recomputed here.
type PublicEvent struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Brief          string  `json:"brief_description"`
	City           string  `json:"city"`
	Country        string  `json:"country"`
	StartsAt       string  `json:"starts_at"`
	EndsAt         string  `json:"ends_at"`
	Cancelled      bool    `json:"cancelled"`
	SeatsAvailable uint32  `json:"seats_available"`
	AvgRating      float64 `json:"avg_rating"`
}

// PublicSeat is one seat in the public availability view.
type PublicSeat struct {
	ID         uint64 `json:"id"`
	RowLabel   string `json:"row_label"`
	SeatNumber uint32 `json:"seat_number"`
	SeatType   string `json:"seat_type"`
	PriceCents uint32 `json:"price_cents"`
	Available  bool   `json:"available"`
}

func publicEventFromModel(e *model.Event) PublicEvent {
	return PublicEvent{
		ID:             e.ID,
		Name:           e.Name,
		Brief:          e.BriefDescription,
		City:           e.City,
		Country:        e.Country,
		StartsAt:       e.StartsAt.Format("2006-01-02 15:04:05"),
		EndsAt:         e.EndsAt.Format("2006-01-02 15:04:05"),
		Cancelled:      e.Cancelled,
		SeatsAvailable: e.SeatsAvailable,
		AvgRating:      e.AvgRating,
	}
}

// ListEvents returns every event for unauthenticated users.  Response
// JSON contains an "items" array of PublicEvent.
func (h *PublicHandler) ListEvents(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.EventRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicEvent, 0, len(events))
	for i := range events {
		out = append(out, publicEventFromModel(&events[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetEvent returns the full detail page of one event: description and
// venue, attached artists and services, the seat grid grouped by row
// and the submitted reviews.
func (h *PublicHandler) GetEvent(c echo.Context) error {
	ctx := c.Request().Context()
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ev, err := h.EventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	seats, err := h.SeatRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	artists, err := h.CatalogRepo.ArtistsByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	services, err := h.CatalogRepo.ServicesByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reviews, err := h.ReviewRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	// group seats by row for the grid view
	type rowOut struct {
		RowLabel string       `json:"row_label"`
		Seats    []PublicSeat `json:"seats"`
	}
	rowsMap := make(map[string][]PublicSeat)
	occupied := make([]uint64, 0)
	for _, s := range seats {
		lbl := strings.ToUpper(strings.TrimSpace(s.RowLabel))
		rowsMap[lbl] = append(rowsMap[lbl], PublicSeat{
			ID: s.ID, RowLabel: lbl, SeatNumber: s.SeatNumber,
			SeatType: s.SeatType, PriceCents: s.PriceCents, Available: s.Available,
		})
		if !s.Available {
			occupied = append(occupied, s.ID)
		}
	}
	rowOrder := make([]string, 0, len(rowsMap))
	for lbl := range rowsMap {
		rowOrder = append(rowOrder, lbl)
	}
	sort.Slice(rowOrder, func(i, j int) bool {
		ii, okI := rowLabelToIndex(rowOrder[i])
		jj, okJ := rowLabelToIndex(rowOrder[j])
		if !okI || !okJ {
			return rowOrder[i] < rowOrder[j]
		}
		return ii < jj
	})
	rowsOut := make([]rowOut, 0, len(rowOrder))
	for _, lbl := range rowOrder {
		nums := rowsMap[lbl]
		sort.Slice(nums, func(i, j int) bool { return nums[i].SeatNumber < nums[j].SeatNumber })
		rowsOut = append(rowsOut, rowOut{RowLabel: lbl, Seats: nums})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"event": echo.Map{
			"id":                ev.ID,
			"name":              ev.Name,
			"brief_description": ev.BriefDescription,
			"description":       ev.Description,
			"city":              ev.City,
			"province":          ev.Province,
			"postal_code":       ev.PostalCode,
			"country":           ev.Country,
			"address":           ev.Address,
			"how_to_reach":      ev.HowToReach,
			"max_capacity":      ev.MaxCapacity,
			"starts_at":         ev.StartsAt,
			"ends_at":           ev.EndsAt,
			"cancelled":         ev.Cancelled,
			"seats_available":   ev.SeatsAvailable,
			"avg_rating":        ev.AvgRating,
		},
		"rows":     rowsOut,
		"occupied": occupied,
		"artists":  artists,
		"services": services,
		"reviews":  reviews,
	})
}

// ListEventSeats returns the flat seat list of an event, optionally
// filtered by availability via the "available" query parameter.
func (h *PublicHandler) ListEventSeats(c echo.Context) error {
	ctx := c.Request().Context()
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.EventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	seats, err := h.SeatRepo.GetByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicSeat, 0, len(seats))
	filter := strings.ToLower(strings.TrimSpace(c.QueryParam("available")))
	filtering := filter == "true" || filter == "1" || filter == "false" || filter == "0"
	want := filter == "true" || filter == "1"
	for _, s := range seats {
		if filtering && s.Available != want {
			continue
		}
		out = append(out, PublicSeat{
			ID: s.ID, RowLabel: s.RowLabel, SeatNumber: s.SeatNumber,
			SeatType: s.SeatType, PriceCents: s.PriceCents, Available: s.Available,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event_id": eventID,
		"count":    len(out),
		"items":    out,
	})
}

// ListDeliveries returns the delivery options catalog ordered by
// surcharge.
func (h *PublicHandler) ListDeliveries(c echo.Context) error {
	deliveries, err := h.DeliveryRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type deliveryOut struct {
		ID             uint64 `json:"id"`
		Name           string `json:"name"`
		OverpriceCents uint32 `json:"overprice_cents"`
		DeliveryDays   uint32 `json:"delivery_days"`
	}
	out := make([]deliveryOut, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, deliveryOut{ID: d.ID, Name: d.Name, OverpriceCents: d.OverpriceCents, DeliveryDays: d.DeliveryDays})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
