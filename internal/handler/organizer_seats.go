package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/festival-ticketing/internal/repository"
)

type addSeatsReq struct {
	TotalSeats int    `json:"total_seats"`
	RowLabel   string `json:"row_label"`  // optional; next free letter when omitted
	SeatType   string `json:"seat_type"`  // optional, defaults to STANDARD
	PriceCents uint32 `json:"price_cents"`
}

// nextRowLabel picks the first alphabetical label not yet used by the
// event's seats.
func nextRowLabel(used map[string]struct{}) string {
	for i := 0; ; i++ {
		lbl := indexToRowLabel(i)
		if _, taken := used[lbl]; !taken {
			return lbl
		}
	}
}

// AddSeats handles POST /v1/events/:id/seats.  It provisions a batch of
// seats in one row, subject to the event's max_capacity.  The capacity
// check and the insert run in one transaction with the event row locked,
// so concurrent batches cannot jointly oversell; on failure no seats are
// created.  The seats_available cache is refreshed before commit.
func (h *OrganizerHandler) AddSeats(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	var req addSeatsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.TotalSeats <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid number of seats"})
	}

	ctx := c.Request().Context()
	// Ownership check before touching inventory.
	if _, err := h.EventRepo.GetByIDAndOwner(ctx, eventID, organizerID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	rowLabel := normalizeRowLabel(req.RowLabel)
	if rowLabel == "" {
		existing, err := h.SeatRepo.GetByEvent(ctx, eventID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		used := make(map[string]struct{}, len(existing))
		for _, s := range existing {
			used[s.RowLabel] = struct{}{}
		}
		rowLabel = nextRowLabel(used)
	} else if _, ok := rowLabelToIndex(rowLabel); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid row_label"})
	}
	seatType := req.SeatType
	if seatType == "" {
		seatType = "STANDARD"
	}

	if err := h.SeatRepo.AddBatch(ctx, eventID, req.TotalSeats, rowLabel, seatType, req.PriceCents); err != nil {
		if errors.Is(err, repository.ErrCapacityExceeded) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Max capacity exceeded"})
		}
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create seats"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Added " + strconv.Itoa(req.TotalSeats) + " seats",
		"event_id":  eventID,
		"row_label": rowLabel,
		"count":     req.TotalSeats,
	})
}

// ListEventTickets handles GET /v1/events/:id/tickets.  It returns every
// ticket sold for one of the organizer's events with buyer and seat
// details, ordered by seat.
func (h *OrganizerHandler) ListEventTickets(c echo.Context) error {
	organizerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	rows, err := h.TicketRepo.ListByEventForOwner(c.Request().Context(), eventID, organizerID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load tickets"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event_id": eventID,
		"count":    len(rows),
		"items":    rows,
	})
}
