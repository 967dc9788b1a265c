package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/venue-hall-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/venue-hall-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session (register, login,
	// refresh).  Each of these handlers is responsible for generating or
	// exchanging tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access issues a new access
	// token without rotating.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication.  The handler accepts a
	// JSON body containing a `refresh_token` (or an Authorization header)
	// and will invalidate the matching session(s).
	g.POST("/logout", a.Logout)

	// Protected endpoints live under /v1.  Both roles may inspect their own
	// session.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("OWNER", "CUSTOMER"))
	auth.GET("/me", a.Me)

	// Clients can call either /v1/auth/logout or /v1/logout with a valid
	// refresh token in the body to terminate a session.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse and availability endpoints
// on the provided Echo instance.  These routes do not apply any JWT or role
// middleware and are intended for guest users assembling a booking.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	// Venue catalogue with pagination
	e.GET("/v1/venues", p.ListVenues)
	// Venue details together with its active halls
	e.GET("/v1/venues/:id", p.GetVenue)
	// Bookable slot computation for a hall on a date.  POST because the
	// query carries a body; the operation itself is read-only and holds
	// nothing.
	e.POST("/v1/venues/:id/check-availability", p.CheckAvailability)
}
