package router

import (
	"github.com/iliyamo/festival-ticketing/internal/handler"
	"github.com/iliyamo/festival-ticketing/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterAttendee registers attendee-scoped endpoints under /v1.  All
// routes require a valid JWT and the ATTENDEE role.  Attendees can book
// seats, manage their own tickets and submit reviews.
func RegisterAttendee(e *echo.Echo, h *handler.AttendeeHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ATTENDEE"),
	)
	// Note: GET /v1/events, /v1/events/:id and /v1/events/:id/seats are
	// registered on the public router so that guests can browse events
	// and seat availability.  Attendee-specific endpoints begin here.
	g.POST("/events/:id/book", h.Book)
	g.GET("/my-tickets", h.MyTickets)

	// Ticket detail, cancellation and review endpoints.  Ownership is
	// validated within the handler.
	g.GET("/tickets/:id", h.GetTicket)
	g.DELETE("/tickets/:id", h.DeleteTicket)
	g.PUT("/tickets/:id/review", h.SubmitReview)
}
