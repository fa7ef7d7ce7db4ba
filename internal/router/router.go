package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/festival-ticketing/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/festival-ticketing/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers or monitoring systems to verify that the
	// service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication; the handler accepts a
	// refresh_token body or an Authorization header.
	g.POST("/logout", a.Logout)

	// Protected endpoints accept both roles; finer-grained role gates
	// live on the organizer and attendee route groups.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ORGANIZER", "ATTENDEE"))
	auth.GET("/me", a.Me)

	// Alias so clients can call either /v1/auth/logout or /v1/logout.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The PublicHandler returns sanitized data for events, seats,
// deliveries and reviews.  These routes apply no JWT or role middleware and
// are intended for guest users.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	// List of all events with cached aggregates as stored.
	e.GET("/v1/events", p.ListEvents)
	// Event detail with seat grid, artists, services and reviews.
	e.GET("/v1/events/:id", p.GetEvent)
	// Flat seat list with optional ?available=true|false filter.
	e.GET("/v1/events/:id/seats", p.ListEventSeats)
	// Delivery options catalog.
	e.GET("/v1/deliveries", p.ListDeliveries)
	// Filtered, paginated event search.
	e.GET("/v1/search/events", p.SearchEvents)
}
