package router

import (
	"github.com/iliyamo/venue-hall-booking/internal/handler"
	"github.com/iliyamo/venue-hall-booking/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterCustomer registers booking endpoints under /v1.  All routes require
// a valid JWT; owners may book halls too, so both roles are accepted.  Callers
// can submit bookings, inspect and cancel their own reservations and list
// their booking history.
func RegisterCustomer(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "OWNER"),
	)
	// Note: venue browsing and check-availability are registered on the
	// public router so that guests can assemble a booking before signing
	// in.  Customer-specific endpoints begin here.
	g.POST("/bookings", h.Create)
	g.GET("/bookings/:id", h.Get)
	g.DELETE("/bookings/:id", h.Cancel)
	g.GET("/my-bookings", h.ListMine)
}
