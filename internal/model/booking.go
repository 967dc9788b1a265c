package model

import "github.com/go-playground/validator/v10"

// Validate is the shared validator instance used for structural checks
// on inbound request bodies.
var Validate = validator.New()

// BookingRequest is the transient payload of POST /v1/bookings. It is
// not persisted; a reservation row is created only when admission
// succeeds. Field names mirror the booking form of the web client.
type BookingRequest struct {
	VenueID         uint64 `json:"venue_id" validate:"required"`
	HallID          uint64 `json:"hall_id" validate:"required"`
	Date            string `json:"date" validate:"required"`
	StartTime       string `json:"start_time" validate:"required"`
	EndTime         string `json:"end_time" validate:"required"`
	CustomerName    string `json:"customer_name" validate:"required"`
	CustomerEmail   string `json:"customer_email" validate:"required,email"`
	CustomerPhone   string `json:"customer_phone" validate:"required"`
	EventType       string `json:"event_type" validate:"required"`
	Attendees       int    `json:"attendees" validate:"required,min=1"`
	SpecialRequests string `json:"special_requests"`
}
