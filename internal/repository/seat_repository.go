package repository // repository defines data access for seats

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/festival-ticketing/internal/model"
)

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// CreateBatchTx provisions totalNew seats for an event inside the
// caller's transaction.  The event row is locked first so that the
// capacity check and the insert are atomic: two concurrent batches
// cannot jointly oversell max_capacity.  Seats are numbered
// sequentially from 0 and share the given row label, type and price.
// No uniqueness is enforced across (row_label, seat_number); invoking
// the same row twice produces duplicate labels on purpose, matching
// how organizers re-run provisioning.
//
// Returns ErrEventNotFound when the event does not exist and
// ErrCapacityExceeded when the batch would exceed max_capacity; in
// both cases zero seats are created.
func (r *SeatRepo) CreateBatchTx(ctx context.Context, tx *sql.Tx, eventID uint64, totalNew int, rowLabel, seatType string, priceCents uint32) error {
	var maxCapacity uint32
	const lockEvent = `SELECT max_capacity FROM events WHERE id = ? FOR UPDATE`
	if err := tx.QueryRowContext(ctx, lockEvent, eventID).Scan(&maxCapacity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}

	var current int
	const countSeats = `SELECT COUNT(*) FROM seats WHERE event_id = ?`
	if err := tx.QueryRowContext(ctx, countSeats, eventID).Scan(&current); err != nil {
		return err
	}
	if current+totalNew > int(maxCapacity) {
		return ErrCapacityExceeded
	}

	query := `INSERT INTO seats (event_id, row_label, seat_number, seat_type, price_cents) VALUES `
	args := make([]interface{}, 0, totalNew*5)
	for i := 0; i < totalNew; i++ {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, eventID, rowLabel, uint32(i), seatType, priceCents)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// AddBatch runs CreateBatchTx in its own transaction and refreshes the
// event's seats_available cache before commit.  Either the whole batch
// lands together with the refreshed cache or nothing does.
func (r *SeatRepo) AddBatch(ctx context.Context, eventID uint64, totalNew int, rowLabel, seatType string, priceCents uint32) error {
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
	if err := r.CreateBatchTx(ctx, tx, eventID, totalNew, rowLabel, seatType, priceCents); err != nil {
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

// GetByEvent retrieves all seats of an event ordered by row_label then
// seat_number.
func (r *SeatRepo) GetByEvent(ctx context.Context, eventID uint64) ([]model.Seat, error) {
	const q = `SELECT id, event_id, row_label, seat_number, seat_type, price_cents, available, created_at, updated_at
	           FROM seats
	           WHERE event_id = ?
	           ORDER BY row_label, seat_number`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(
			&s.ID, &s.EventID, &s.RowLabel, &s.SeatNumber, &s.SeatType,
			&s.PriceCents, &s.Available, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a seat by its id (no ownership check).
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, event_id, row_label, seat_number, seat_type, price_cents, available, created_at, updated_at
	           FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.EventID, &s.RowLabel, &s.SeatNumber, &s.SeatType, &s.PriceCents, &s.Available, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ReserveTx flips available to false with a conditional update.  The
// WHERE clause carries the availability predicate, so the check and the
// flip are a single atomic statement: when two bookings race for one
// seat, exactly one update reports an affected row.  The losing caller
// receives ErrSeatTaken (or ErrSeatNotFound if the seat does not belong
// to the event at all).
func (r *SeatRepo) ReserveTx(ctx context.Context, tx *sql.Tx, seatID, eventID uint64) error {
	const q = `UPDATE seats SET available = 0, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND event_id = ? AND available = 1`
	res, err := tx.ExecContext(ctx, q, seatID, eventID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Zero rows: distinguish a missing seat from a lost race.
	var one int
	const sel = `SELECT 1 FROM seats WHERE id = ? AND event_id = ?`
	if err := tx.QueryRowContext(ctx, sel, seatID, eventID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSeatNotFound
		}
		return err
	}
	return ErrSeatTaken
}

// ReleaseTx makes a seat available again after its ticket is cancelled.
func (r *SeatRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, seatID uint64) error {
	const q = `UPDATE seats SET available = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, seatID)
	return err
}
