// Package repository contains data access logic for Event domain operations.
// This file defines repository methods for events.  An Event is a scheduled
// festival instance owned by one organizer.  The cached aggregate columns
// seats_available and avg_rating are never recomputed on read paths; they
// are refreshed explicitly after each mutating operation (seats added,
// ticket booked or cancelled, review submitted).
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/festival-ticketing/internal/model"
)

const eventColumns = `id, organizer_id, name, brief_description, description,
	city, province, postal_code, country, address, how_to_reach,
	max_capacity, starts_at, ends_at, cancelled, seats_available, avg_rating,
	created_at, updated_at`

// EventRepo manages persistence for events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

func scanEvent(row interface{ Scan(...any) error }, e *model.Event) error {
	return row.Scan(
		&e.ID, &e.OrganizerID, &e.Name, &e.BriefDescription, &e.Description,
		&e.City, &e.Province, &e.PostalCode, &e.Country, &e.Address, &e.HowToReach,
		&e.MaxCapacity, &e.StartsAt, &e.EndsAt, &e.Cancelled, &e.SeatsAvailable, &e.AvgRating,
		&e.CreatedAt, &e.UpdatedAt,
	)
}

// Create inserts a new event and assigns the generated ID back to the
// struct.  The inserted row is queried back to populate DB defaults
// (cancelled, seats_available, avg_rating, timestamps).
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events
		(organizer_id, name, brief_description, description, city, province,
		 postal_code, country, address, how_to_reach, max_capacity, starts_at, ends_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.OrganizerID, e.Name, e.BriefDescription, e.Description, e.City, e.Province,
		e.PostalCode, e.Country, e.Address, e.HowToReach, e.MaxCapacity, e.StartsAt, e.EndsAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	sel := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	return scanEvent(r.db.QueryRowContext(ctx, sel, e.ID), e)
}

// GetByID retrieves an event by its ID.  It returns ErrEventNotFound
// when no matching row exists.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	var e model.Event
	if err := scanEvent(r.db.QueryRowContext(ctx, q, id), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetByIDAndOwner retrieves an event by its ID while enforcing ownership.
func (r *EventRepo) GetByIDAndOwner(ctx context.Context, id, organizerID uint64) (*model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE id = ? AND organizer_id = ?`
	var e model.Event
	if err := scanEvent(r.db.QueryRowContext(ctx, q, id, organizerID), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// UpdateByIDAndOwner updates the mutable descriptive fields of an event.
// Capacity may only grow; shrinking below the provisioned seat count is
// rejected by the handler before this call.  Returns sql.ErrNoRows when
// the event does not exist or is not owned by this organizer.
func (r *EventRepo) UpdateByIDAndOwner(ctx context.Context, e *model.Event) error {
	const q = `UPDATE events
		SET name = ?, brief_description = ?, description = ?, city = ?, province = ?,
		    postal_code = ?, country = ?, address = ?, how_to_reach = ?,
		    max_capacity = ?, starts_at = ?, ends_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND organizer_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		e.Name, e.BriefDescription, e.Description, e.City, e.Province,
		e.PostalCode, e.Country, e.Address, e.HowToReach,
		e.MaxCapacity, e.StartsAt, e.EndsAt,
		e.ID, e.OrganizerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListAll returns every event ordered by start time ascending.  The
// cached aggregates are returned exactly as stored; list rendering
// never triggers a recomputation.
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events ORDER BY starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Event
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListByOwner returns the organizer's own events ordered by start time.
func (r *EventRepo) ListByOwner(ctx context.Context, organizerID uint64) ([]model.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = ? ORDER BY starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Event
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ToggleCancelTx flips the cancelled flag of an event owned by the given
// organizer and returns the new value.  Seats and tickets are left
// untouched on either transition; the caller is responsible for
// notifying affected ticket holders.  ErrEventNotFound is returned when
// the event does not exist, ErrForbidden when it is owned by someone else.
func (r *EventRepo) ToggleCancelTx(ctx context.Context, tx *sql.Tx, eventID, organizerID uint64) (bool, error) {
	var ownerID uint64
	var cancelled bool
	const sel = `SELECT organizer_id, cancelled FROM events WHERE id = ? FOR UPDATE`
	if err := tx.QueryRowContext(ctx, sel, eventID).Scan(&ownerID, &cancelled); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrEventNotFound
		}
		return false, err
	}
	if ownerID != organizerID {
		return false, ErrForbidden
	}
	const upd = `UPDATE events SET cancelled = NOT cancelled, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd, eventID); err != nil {
		return false, err
	}
	return !cancelled, nil
}

// ToggleCancel runs ToggleCancelTx in its own transaction.
func (r *EventRepo) ToggleCancel(ctx context.Context, eventID, organizerID uint64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	cancelled, err := r.ToggleCancelTx(ctx, tx, eventID, organizerID)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return cancelled, nil
}

// refreshSeatsAvailableTx recomputes the seats_available cache from the
// seats table inside the caller's transaction.  It runs after seat
// provisioning, booking and ticket cancellation so the cache tracks the
// last mutation rather than the last list-page load.
func refreshSeatsAvailableTx(ctx context.Context, tx *sql.Tx, eventID uint64) error {
	const q = `UPDATE events
		SET seats_available = (SELECT COUNT(*) FROM seats WHERE event_id = ? AND available = 1)
		WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, eventID, eventID)
	return err
}

// RefreshAvgRating recomputes the avg_rating cache from submitted
// reviews.  Draft reviews (rating 0) are excluded; an event with no
// submitted reviews stores 0.0, never NULL.
func (r *EventRepo) RefreshAvgRating(ctx context.Context, eventID uint64) error {
	const q = `UPDATE events
		SET avg_rating = COALESCE((
			SELECT AVG(r.rating)
			FROM reviews r
			JOIN tickets t ON t.id = r.ticket_id
			JOIN seats s   ON s.id = t.seat_id
			WHERE s.event_id = ? AND r.rating > 0
		), 0)
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, eventID, eventID)
	return err
}

// TicketHolder identifies one user to notify when an event is cancelled
// or restored.
type TicketHolder struct {
	UserID   uint64 `json:"user_id"`
	Email    string `json:"email"`
	TicketID uint64 `json:"ticket_id"`
}

// TicketHolders returns every user currently holding a ticket for the
// event.  Used to fan out cancellation notifications.
func (r *EventRepo) TicketHolders(ctx context.Context, eventID uint64) ([]TicketHolder, error) {
	const q = `SELECT u.id, u.email, t.id
		FROM tickets t
		JOIN seats s ON s.id = t.seat_id
		JOIN users u ON u.id = t.user_id
		WHERE s.event_id = ?
		ORDER BY t.id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holders []TicketHolder
	for rows.Next() {
		var h TicketHolder
		if err := rows.Scan(&h.UserID, &h.Email, &h.TicketID); err != nil {
			return nil, err
		}
		holders = append(holders, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return holders, nil
}
