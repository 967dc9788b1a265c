// Package repository holds the data access layer. This file defines
// sentinel errors shared across repositories and the booking admission
// path. Handlers translate them into HTTP status codes and stable
// machine-readable reason strings, so callers of the API can react to
// a rejection without parsing prose.
package repository

import "errors"

// Lookup failures.
var (
	ErrVenueNotFound       = errors.New("venue not found")
	ErrHallNotFound        = errors.New("hall not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers map it to 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// existing state, such as cancelling a reservation twice. Handlers map
// it to 409.
var ErrConflict = errors.New("conflict")

// Admission rejections. Each one is terminal for the request; the
// caller is expected to re-query availability rather than retry the
// same booking.
var (
	ErrSlotTaken             = errors.New("slot taken")
	ErrCapacityExceeded      = errors.New("capacity exceeded")
	ErrBelowMinimumDuration  = errors.New("below minimum duration")
	ErrOutsideOperatingHours = errors.New("outside operating hours")
)
