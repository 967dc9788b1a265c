package model

import "time"

// Hall is an individually bookable room inside a venue. Each hall
// belongs to exactly one venue and carries its own capacity, pricing
// and daily operating window. The window is stored as minutes from
// midnight and applies to every day; reservations must fall fully
// inside it.
//
// Fields:
//  ID              – primary key identifier.
//  VenueID         – owning venue.
//  Name            – unique hall name per venue.
//  Description     – optional description.
//  Capacity        – maximum attendees a reservation may bring.
//  PricePerHour    – hourly rate used to compute the booking total.
//  MinBookingHours – minimum duration of a reservation in hours.
//  Amenities       – amenity labels.
//  OpenMinute      – daily opening time, minutes from midnight.
//  CloseMinute     – daily closing time, minutes from midnight.
//  IsActive        – inactive halls are hidden and not bookable.
type Hall struct {
	ID              uint64    `json:"id"`
	VenueID         uint64    `json:"venue_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Capacity        int       `json:"capacity"`
	PricePerHour    float64   `json:"price_per_hour"`
	MinBookingHours int       `json:"min_booking_hours"`
	Amenities       []string  `json:"amenities"`
	OpenMinute      int       `json:"open_minute"`
	CloseMinute     int       `json:"close_minute"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Default operating window applied when a hall is created without one.
const (
	DefaultOpenMinute  = 9 * 60  // 09:00
	DefaultCloseMinute = 21 * 60 // 21:00
)

// Window returns the hall's operating window on the given day.
func (h Hall) Window(day time.Time) TimeSlot {
	return TimeSlot{Day: day, Start: h.OpenMinute, End: h.CloseMinute}
}
