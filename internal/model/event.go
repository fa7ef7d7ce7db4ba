package model

import "time"

// Event represents a scheduled festival instance owned by one
// organizer.  It carries the venue address fields, the capacity
// ceiling enforced by seat provisioning, the scheduled time window
// and two cached aggregates (SeatsAvailable and AvgRating) that are
// refreshed after every mutating operation.
//
// Fields:
//
//	ID               – primary key identifier.
//	OrganizerID      – user who owns the event.
//	Name             – display name of the festival.
//	BriefDescription – one-line summary shown in lists.
//	Description      – full description shown on the detail page.
//	City, Province, PostalCode, Country, Address – venue location.
//	HowToReach       – free-text directions.
//	MaxCapacity      – upper bound on the number of seats.
//	StartsAt         – when the event begins.
//	EndsAt           – when the event ends (must be after StartsAt).
//	Cancelled        – whether the organizer has cancelled the event.
//	SeatsAvailable   – cached count of seats with available=1.
//	AvgRating        – cached mean review rating, 0.0 when unreviewed.
//	CreatedAt        – creation timestamp.
//	UpdatedAt        – last update timestamp.
type Event struct {
	ID               uint64    // events.id
	OrganizerID      uint64    // events.organizer_id
	Name             string    // events.name
	BriefDescription string    // events.brief_description
	Description      string    // events.description
	City             string    // events.city
	Province         string    // events.province
	PostalCode       string    // events.postal_code
	Country          string    // events.country
	Address          string    // events.address
	HowToReach       string    // events.how_to_reach
	MaxCapacity      uint32    // events.max_capacity
	StartsAt         time.Time // events.starts_at
	EndsAt           time.Time // events.ends_at
	Cancelled        bool      // events.cancelled
	SeatsAvailable   uint32    // events.seats_available (cached aggregate)
	AvgRating        float64   // events.avg_rating (cached aggregate)
	CreatedAt        time.Time // events.created_at
	UpdatedAt        time.Time // events.updated_at
}

// Artist is a performer that can appear at many events (M2M via
// event_artists).
type Artist struct {
	ID       uint64 // artists.id
	FullName string // artists.full_name
	Genre    string // artists.genre
}

// Service is an amenity offered at an event, such as parking or a
// food court (M2M via event_services).
type Service struct {
	ID          uint64 // services.id
	Name        string // services.name
	Description string // services.description
}
