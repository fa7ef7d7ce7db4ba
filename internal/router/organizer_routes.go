package router // router defines how HTTP routes are registered for the API

import (
	"github.com/iliyamo/festival-ticketing/internal/handler"    // organizer handlers
	"github.com/iliyamo/festival-ticketing/internal/middleware" // JWT + role middlewares
	"github.com/labstack/echo/v4"
)

// RegisterOrganizer registers ORGANIZER-scoped endpoints under /v1.
// All routes require a valid JWT and ORGANIZER role.
func RegisterOrganizer(e *echo.Echo, o *handler.OrganizerHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ORGANIZER"),
	)

	// ---- Events ----
	g.POST("/events", o.CreateEvent)
	g.PUT("/events/:id", o.UpdateEvent)
	g.PATCH("/events/:id", o.UpdateEvent) // allow partial/semantic updates via PATCH as well
	g.GET("/my-events", o.ListMyEvents)
	// Toggle: cancels a live event, reactivates a cancelled one.
	g.POST("/events/:id/cancel", o.ToggleCancel)

	// ---- Seat inventory ----
	g.POST("/events/:id/seats", o.AddSeats)
	g.GET("/events/:id/tickets", o.ListEventTickets)

	// ---- Catalogs ----
	g.POST("/artists", o.CreateArtist)
	g.POST("/services", o.CreateService)
	g.POST("/events/:id/artists", o.AttachArtist)
	g.POST("/events/:id/services", o.AttachService)
}
