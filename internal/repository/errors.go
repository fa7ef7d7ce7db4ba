// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios.  For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrSeatTaken signals that a booking lost the race for a
// seat and must be reported as a conflict rather than a success.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own.  Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// cancel a ticket for an event that has already started.  Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrEventNotFound is returned when an event lookup yields no rows.
var ErrEventNotFound = errors.New("event not found")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrTicketNotFound is returned when a ticket lookup yields no rows.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrDeliveryNotFound is returned when a delivery option lookup yields no rows.
var ErrDeliveryNotFound = errors.New("delivery not found")

// ErrSeatTaken is returned when the conditional availability update
// affects zero rows: the seat was already booked by the time the
// statement ran.  Exactly one of two concurrent bookings for the
// same seat observes this error.
var ErrSeatTaken = errors.New("seat already taken")

// ErrCapacityExceeded is returned by seat provisioning when the
// requested batch would push the event past its max_capacity.
var ErrCapacityExceeded = errors.New("max capacity exceeded")

// ErrEventStarted is returned when a ticket cancellation arrives at or
// after the event's start time.  Handlers should translate this into
// an HTTP 409 response.
var ErrEventStarted = errors.New("event already started")
