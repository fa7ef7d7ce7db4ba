package repository // repository holds the booking unit of work

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/festival-ticketing/internal/model"
)

// BookingRepo bundles the seat, ticket and event repositories into the
// two transactional units behind booking: claiming a seat and giving it
// back.  Each method owns its transaction, so callers never see a
// half-applied booking.
type BookingRepo struct {
	db      *sql.DB
	seats   *SeatRepo
	tickets *TicketRepo
	events  *EventRepo
}

// NewBookingRepo constructs a BookingRepo over the shared DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{
		db:      db,
		seats:   NewSeatRepo(db),
		tickets: NewTicketRepo(db),
		events:  NewEventRepo(db),
	}
}

// Book flips the seat's availability, inserts the ticket and refreshes
// the event's seats_available cache in one transaction.  The flip is a
// conditional update, so of two concurrent bookings for one seat
// exactly one commits; the other observes ErrSeatTaken and nothing it
// did survives.  The generated ticket ID and created_at are written
// back onto t.
func (r *BookingRepo) Book(ctx context.Context, eventID uint64, t *model.Ticket) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := r.seats.ReserveTx(ctx, tx, t.SeatID, eventID); err != nil {
		return err
	}
	if err := r.tickets.CreateTx(ctx, tx, t); err != nil {
		return err
	}
	if err := refreshSeatsAvailableTx(ctx, tx, eventID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Cancel deletes the user's ticket, releases its seat and refreshes the
// seats_available cache in one transaction.  Returns ErrTicketNotFound
// when the ticket does not exist, ErrForbidden when it belongs to a
// different user and ErrEventStarted when the event's start time has
// already passed relative to now.
func (r *BookingRepo) Cancel(ctx context.Context, ticketID, userID uint64, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	eventID, seatID, startsAt, err := r.tickets.GetInfoForUserTx(ctx, tx, ticketID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTicketNotFound
		}
		return err
	}
	if !startsAt.After(now) {
		return ErrEventStarted
	}
	if err := r.tickets.DeleteTx(ctx, tx, ticketID); err != nil {
		return err
	}
	if err := r.seats.ReleaseTx(ctx, tx, seatID); err != nil {
		return err
	}
	if err := refreshSeatsAvailableTx(ctx, tx, eventID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
