package model

import "time"

// Seat is one bookable unit of capacity within an event.  Seats are
// provisioned in batches by the organizer and share a row label,
// price and type per batch.  Available flips to false exactly once
// when a ticket is issued against the seat.
type Seat struct {
	ID         uint64    // seats.id
	EventID    uint64    // seats.event_id
	RowLabel   string    // seats.row_label, e.g. A, B, AA
	SeatNumber uint32    // seats.seat_number (0-based within the row)
	SeatType   string    // seats.seat_type: STANDARD | VIP | ACCESSIBLE
	PriceCents uint32    // seats.price_cents
	Available  bool      // seats.available
	CreatedAt  time.Time // seats.created_at
	UpdatedAt  time.Time // seats.updated_at
}
