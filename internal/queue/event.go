// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketBookedEvent is published when a seat is successfully booked. It
// carries enough context for downstream consumers to notify the organizer
// without querying the primary database.
type TicketBookedEvent struct {
	TicketID    uint64 `json:"ticket_id"`
	EventID     uint64 `json:"event_id"`
	EventName   string `json:"event_name"`
	OrganizerID uint64 `json:"organizer_id"`
	AttendeeID  uint64 `json:"attendee_id"`
	SeatLabel   string `json:"seat_label"`
	PriceCents  uint32 `json:"price_cents"`
	BookedAt    string `json:"booked_at"`
}

// EventCancelledEvent is published once per ticket holder when an organizer
// toggles the cancelled flag on an event. Reactivations set Cancelled=false
// and are delivered to the same recipients.
type EventCancelledEvent struct {
	EventID     uint64 `json:"event_id"`
	EventName   string `json:"event_name"`
	OrganizerID uint64 `json:"organizer_id"`
	RecipientID uint64 `json:"recipient_id"`
	Cancelled   bool   `json:"cancelled"`
	ChangedAt   string `json:"changed_at"`
}
