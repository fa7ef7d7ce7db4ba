package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/festival-ticketing/internal/model"
)

// ReviewRepo manages review rows.  A review is created lazily as an
// empty draft (rating 0) the first time an attendee opens their ticket
// detail, and populated when they explicitly submit a rating.  Only
// submitted reviews count toward an event's average.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// GetOrCreateByTicket loads the review row for a ticket, inserting an
// empty draft when none exists.  A concurrent insert losing the race on
// the unique ticket_id key falls through to the select.
func (r *ReviewRepo) GetOrCreateByTicket(ctx context.Context, ticketID uint64) (*model.Review, error) {
	sel := func() (*model.Review, error) {
		const q = `SELECT id, ticket_id, rating, content, created_at FROM reviews WHERE ticket_id = ?`
		var rev model.Review
		err := r.db.QueryRowContext(ctx, q, ticketID).
			Scan(&rev.ID, &rev.TicketID, &rev.Rating, &rev.Content, &rev.CreatedAt)
		if err != nil {
			return nil, err
		}
		return &rev, nil
	}

	rev, err := sel()
	if err == nil {
		return rev, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	const ins = `INSERT INTO reviews (ticket_id, rating, content) VALUES (?, 0, '')`
	if _, err := r.db.ExecContext(ctx, ins, ticketID); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, err
		}
	}
	return sel()
}

// Submit records the rating and content for a ticket's review,
// creating the row when the draft was never materialized.  Rating
// bounds are validated by the handler.
func (r *ReviewRepo) Submit(ctx context.Context, ticketID uint64, rating uint8, content string) error {
	const q = `INSERT INTO reviews (ticket_id, rating, content)
	           VALUES (?, ?, ?)
	           ON DUPLICATE KEY UPDATE rating = VALUES(rating), content = VALUES(content), created_at = CURRENT_TIMESTAMP`
	_, err := r.db.ExecContext(ctx, q, ticketID, rating, content)
	return err
}

// EventReview is one submitted review as shown on the public event page.
type EventReview struct {
	Rating    uint8     `json:"rating"`
	Content   string    `json:"content"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
}

// ListByEvent returns the submitted reviews (rating > 0) for an event,
// newest first.  Draft rows are never exposed.
func (r *ReviewRepo) ListByEvent(ctx context.Context, eventID uint64) ([]EventReview, error) {
	const q = `SELECT rv.rating, rv.content, u.email, rv.created_at
		FROM reviews rv
		JOIN tickets t ON t.id = rv.ticket_id
		JOIN seats s   ON s.id = t.seat_id
		JOIN users u   ON u.id = t.user_id
		WHERE s.event_id = ? AND rv.rating > 0
		ORDER BY rv.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]EventReview, 0)
	for rows.Next() {
		var rev EventReview
		if err := rows.Scan(&rev.Rating, &rev.Content, &rev.UserEmail, &rev.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
