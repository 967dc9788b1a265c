package model

import "time"

// Venue is the reference record for a bookable property. Venues are
// owned by an OWNER user and contain one or more halls; all booking
// happens at the hall level. Venue data is immutable from the booking
// path's point of view.
//
// Fields:
//  ID              – primary key identifier.
//  OwnerID         – user ID of the venue owner.
//  Name            – display name.
//  Description     – marketing copy shown on the detail page.
//  Address/City/State/ZipCode – postal location.
//  Phone, Email    – contact info.
//  Capacity        – total capacity across the property.
//  PricePerHour    – base hourly price; halls carry their own rate.
//  MinBookingHours – venue-level default minimum booking duration.
//  Images          – gallery image references.
//  Amenities       – amenity labels.
type Venue struct {
	ID              uint64    `json:"id"`
	OwnerID         uint64    `json:"owner_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	ZipCode         string    `json:"zip_code"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email"`
	Capacity        int       `json:"capacity"`
	PricePerHour    float64   `json:"price_per_hour"`
	MinBookingHours int       `json:"min_booking_hours"`
	Images          []string  `json:"images"`
	Amenities       []string  `json:"amenities"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
