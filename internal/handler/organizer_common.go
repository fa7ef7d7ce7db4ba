package handler // handler defines http handlers

import (
	"context" // context appears in the store interface signatures
	"errors"  // errors provides sentinel values used in getUserID
	"strconv" // strconv converts strings to numeric types
	"strings" // strings provides trimming and case helpers

	"github.com/iliyamo/festival-ticketing/internal/model"      // model holds domain entities
	"github.com/iliyamo/festival-ticketing/internal/repository" // repository holds data access layer
	"github.com/labstack/echo/v4"                               // echo defines request context types
)

// Handlers depend on narrow store interfaces rather than the concrete
// repositories, so the flows behind them can be exercised against
// mocks.  The repository types satisfy these interfaces.

type organizerEventStore interface {
	Create(ctx context.Context, e *model.Event) error
	GetByID(ctx context.Context, id uint64) (*model.Event, error)
	GetByIDAndOwner(ctx context.Context, id, organizerID uint64) (*model.Event, error)
	UpdateByIDAndOwner(ctx context.Context, e *model.Event) error
	ListByOwner(ctx context.Context, organizerID uint64) ([]model.Event, error)
	ToggleCancel(ctx context.Context, eventID, organizerID uint64) (bool, error)
	TicketHolders(ctx context.Context, eventID uint64) ([]repository.TicketHolder, error)
}

type organizerSeatStore interface {
	GetByEvent(ctx context.Context, eventID uint64) ([]model.Seat, error)
	AddBatch(ctx context.Context, eventID uint64, totalNew int, rowLabel, seatType string, priceCents uint32) error
}

type organizerTicketStore interface {
	ListByEventForOwner(ctx context.Context, eventID, organizerID uint64) ([]repository.OwnerTicketRow, error)
}

type organizerCatalogStore interface {
	CreateArtist(ctx context.Context, a *model.Artist) error
	CreateService(ctx context.Context, s *model.Service) error
	AttachArtist(ctx context.Context, eventID, artistID, organizerID uint64) error
	AttachService(ctx context.Context, eventID, serviceID, organizerID uint64) error
}

// OrganizerHandler bundles the stores organizers need to manipulate
// their events, seat inventory and catalogs.
type OrganizerHandler struct {
	EventRepo   organizerEventStore   // EventRepo provides event persistence
	SeatRepo    organizerSeatStore    // SeatRepo provides seat persistence
	TicketRepo  organizerTicketStore  // TicketRepo provides ticket queries
	CatalogRepo organizerCatalogStore // CatalogRepo provides artist/service persistence
}

// NewOrganizerHandler constructs a new OrganizerHandler and panics if any dependency is nil
func NewOrganizerHandler(eventRepo organizerEventStore, seatRepo organizerSeatStore, ticketRepo organizerTicketStore, catalogRepo organizerCatalogStore) *OrganizerHandler {
	if eventRepo == nil || seatRepo == nil || ticketRepo == nil || catalogRepo == nil {
		panic("nil store passed to NewOrganizerHandler")
	}
	return &OrganizerHandler{
		EventRepo:   eventRepo,
		SeatRepo:    seatRepo,
		TicketRepo:  ticketRepo,
		CatalogRepo: catalogRepo,
	}
}

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64: // JWT numeric claims decode as float64
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// indexToRowLabel converts a zero-based index to an alphabetical row label like A, B, AA
func indexToRowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		rem := i % 26
		res = append(res, rune('A'+rem))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// rowLabelToIndex converts a row label like A or AA into its zero-based index
func rowLabelToIndex(label string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if s == "" {
		return -1, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < 'A' || ch > 'Z' {
			return -1, false
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n - 1, true
}

// normalizeRowLabel strips non ASCII letters and converts to uppercase
func normalizeRowLabel(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r - 32)
		} else if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
