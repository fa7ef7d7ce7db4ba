package model

import "time"

// Ticket records a seat being claimed by an attendee, with a chosen
// delivery method.  The seats.id reference is unique so a seat can
// never carry two tickets.
type Ticket struct {
	ID         uint64    // tickets.id
	SeatID     uint64    // tickets.seat_id (unique)
	UserID     uint64    // tickets.user_id
	DeliveryID uint64    // tickets.delivery_id
	CreatedAt  time.Time // tickets.created_at
}

// Delivery is a shipping/fulfillment option attached to a ticket.
// OverpriceCents is the surcharge added to the seat price and
// DeliveryDays the expected lead time.
type Delivery struct {
	ID             uint64 // deliveries.id
	Name           string // deliveries.name
	OverpriceCents uint32 // deliveries.overprice_cents
	DeliveryDays   uint32 // deliveries.delivery_days
}

// Review holds an attendee's rating of the event a ticket belongs
// to.  A row is created empty when the ticket detail is first viewed
// and populated on explicit submission; rows with Rating zero are
// drafts and excluded from the average.
type Review struct {
	ID        uint64    // reviews.id
	TicketID  uint64    // reviews.ticket_id (unique)
	Rating    uint8     // reviews.rating, 1..5 once submitted, 0 while draft
	Content   string    // reviews.content
	CreatedAt time.Time // reviews.created_at
}
