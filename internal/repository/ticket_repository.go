package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/festival-ticketing/internal/model"
)

// TicketRepo provides CRUD operations for tickets.  A ticket joins one
// seat to one attendee and a delivery option.  The seat_id column is
// UNIQUE so the database itself refuses a second ticket for a seat even
// if application-level checks were bypassed.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// CreateTx inserts a new ticket within the scope of an existing
// transaction.  It populates the generated ID on the provided record.
// The caller must commit or rollback the transaction.  A duplicate-key
// failure on seat_id is mapped to ErrSeatTaken.
func (r *TicketRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
	const q = `INSERT INTO tickets (seat_id, user_id, delivery_id) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, t.SeatID, t.UserID, t.DeliveryID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrSeatTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	const sel = `SELECT created_at FROM tickets WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, t.ID).Scan(&t.CreatedAt)
}

// TicketDetail encapsulates a ticket along with its seat, event and
// delivery information plus the review draft, if any.  It is returned
// by ListByUser and GetByIDForUser for display to attendees.
type TicketDetail struct {
	ID             uint64    `json:"id"`
	EventID        uint64    `json:"event_id"`
	EventName      string    `json:"event_name"`
	EventStartsAt  time.Time `json:"event_starts_at"`
	EventEndsAt    time.Time `json:"event_ends_at"`
	EventCancelled bool      `json:"event_cancelled"`
	SeatID         uint64    `json:"seat_id"`
	RowLabel       string    `json:"row_label"`
	SeatNumber     uint32    `json:"seat_number"`
	SeatType       string    `json:"seat_type"`
	PriceCents     uint32    `json:"price_cents"`
	DeliveryName   string    `json:"delivery_name"`
	OverpriceCents uint32    `json:"overprice_cents"`
	DeliveryDays   uint32    `json:"delivery_days"`
	TotalCents     uint32    `json:"total_cents"`
	CreatedAt      time.Time `json:"created_at"`
	Review         *struct {
		Rating  uint8  `json:"rating"`
		Content string `json:"content"`
	} `json:"review,omitempty"`
}

const ticketDetailSelect = `SELECT t.id, e.id, e.name, e.starts_at, e.ends_at, e.cancelled,
		s.id, s.row_label, s.seat_number, s.seat_type, s.price_cents,
		d.name, d.overprice_cents, d.delivery_days, t.created_at,
		r.rating, r.content
	FROM tickets t
	JOIN seats s      ON s.id = t.seat_id
	JOIN events e     ON e.id = s.event_id
	JOIN deliveries d ON d.id = t.delivery_id
	LEFT JOIN reviews r ON r.ticket_id = t.id`

func scanTicketDetail(row interface{ Scan(...any) error }) (*TicketDetail, error) {
	var det TicketDetail
	var rating sql.NullInt16
	var content sql.NullString
	err := row.Scan(
		&det.ID, &det.EventID, &det.EventName, &det.EventStartsAt, &det.EventEndsAt, &det.EventCancelled,
		&det.SeatID, &det.RowLabel, &det.SeatNumber, &det.SeatType, &det.PriceCents,
		&det.DeliveryName, &det.OverpriceCents, &det.DeliveryDays, &det.CreatedAt,
		&rating, &content,
	)
	if err != nil {
		return nil, err
	}
	det.TotalCents = det.PriceCents + det.OverpriceCents
	if rating.Valid {
		rev := &struct {
			Rating  uint8  `json:"rating"`
			Content string `json:"content"`
		}{Rating: uint8(rating.Int16)}
		if content.Valid {
			rev.Content = content.String
		}
		det.Review = rev
	}
	return &det, nil
}

// GetByIDForUser returns a single ticket for the given user.  When no
// ticket with the specified ID exists for the user, ErrTicketNotFound
// is returned.
func (r *TicketRepo) GetByIDForUser(ctx context.Context, ticketID, userID uint64) (*TicketDetail, error) {
	q := ticketDetailSelect + ` WHERE t.id = ? AND t.user_id = ?`
	det, err := scanTicketDetail(r.db.QueryRowContext(ctx, q, ticketID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return det, nil
}

// ListByUser returns all tickets created by the user ordered by
// purchase time descending.  When no tickets exist it returns an
// empty slice and nil error.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]TicketDetail, error) {
	q := ticketDetailSelect + ` WHERE t.user_id = ? ORDER BY t.created_at DESC, t.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]TicketDetail, 0)
	for rows.Next() {
		det, err := scanTicketDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *det)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetInfoForUserTx loads the event, seat and schedule behind a ticket
// inside the caller's transaction, locking the ticket row.  It returns
// ErrForbidden when the ticket belongs to a different user so handlers
// can answer 403 instead of 404.
func (r *TicketRepo) GetInfoForUserTx(ctx context.Context, tx *sql.Tx, ticketID, userID uint64) (eventID, seatID uint64, startsAt time.Time, err error) {
	const q = `SELECT t.user_id, e.id, s.id, e.starts_at
		FROM tickets t
		JOIN seats s  ON s.id = t.seat_id
		JOIN events e ON e.id = s.event_id
		WHERE t.id = ?
		FOR UPDATE`
	var ownerID uint64
	if err = tx.QueryRowContext(ctx, q, ticketID).Scan(&ownerID, &eventID, &seatID, &startsAt); err != nil {
		return 0, 0, time.Time{}, err
	}
	if ownerID != userID {
		return 0, 0, time.Time{}, ErrForbidden
	}
	return eventID, seatID, startsAt, nil
}

// DeleteTx removes a ticket; the review row, if any, cascades via FK.
func (r *TicketRepo) DeleteTx(ctx context.Context, tx *sql.Tx, ticketID uint64) error {
	const q = `DELETE FROM tickets WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, ticketID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// OwnerTicketRow is the organizer's view of one sold ticket.
type OwnerTicketRow struct {
	TicketID   uint64    `json:"ticket_id"`
	UserID     uint64    `json:"user_id"`
	UserEmail  string    `json:"user_email"`
	RowLabel   string    `json:"row_label"`
	SeatNumber uint32    `json:"seat_number"`
	SeatType   string    `json:"seat_type"`
	PriceCents uint32    `json:"price_cents"`
	Delivery   string    `json:"delivery"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListByEventForOwner returns all tickets sold for an event while
// enforcing ownership via the events table.  ErrEventNotFound is
// returned when the event does not exist for this organizer.
func (r *TicketRepo) ListByEventForOwner(ctx context.Context, eventID, organizerID uint64) ([]OwnerTicketRow, error) {
	var one int
	const check = `SELECT 1 FROM events WHERE id = ? AND organizer_id = ?`
	if err := r.db.QueryRowContext(ctx, check, eventID, organizerID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	const q = `SELECT t.id, u.id, u.email, s.row_label, s.seat_number, s.seat_type, s.price_cents, d.name, t.created_at
		FROM tickets t
		JOIN seats s      ON s.id = t.seat_id
		JOIN users u      ON u.id = t.user_id
		JOIN deliveries d ON d.id = t.delivery_id
		WHERE s.event_id = ?
		ORDER BY s.row_label, s.seat_number`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]OwnerTicketRow, 0)
	for rows.Next() {
		var row OwnerTicketRow
		if err := rows.Scan(
			&row.TicketID, &row.UserID, &row.UserEmail, &row.RowLabel, &row.SeatNumber,
			&row.SeatType, &row.PriceCents, &row.Delivery, &row.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
