package router // router defines how HTTP routes are registered for the API

import (
	"github.com/iliyamo/venue-hall-booking/internal/handler"    // owner handlers
	"github.com/iliyamo/venue-hall-booking/internal/middleware" // JWT + role middlewares
	"github.com/labstack/echo/v4"
)

// RegisterOwner registers OWNER-scoped endpoints under /v1.
// All routes require a valid JWT and OWNER role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)

	// ---- Venues ----
	g.POST("/venues", o.CreateVenue)
	// NOTE: listing and venue detail are handled by the public browse API
	// to avoid route conflicts with the public /v1/venues handlers.

	// ---- Halls ----
	g.POST("/venues/:id/halls", o.CreateHall)

	// ---- Reservations (owner perspective) ----
	g.GET("/halls/:id/reservations", o.HallReservations)
}
