package model

import "time"

// Reservation statuses. Cancelled reservations are kept as history and
// never physically deleted; only CONFIRMED rows occupy time.
const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Reservation is a committed booking of a hall for a time slot on a
// single day. It is created only by a successful admission and is the
// source of truth for occupied time ranges.
//
// Fields:
//  ID              – UUID primary key.
//  HallID          – hall being booked.
//  UserID          – account that submitted the booking.
//  BookingCode     – short human-facing confirmation code.
//  Day             – calendar day (midnight UTC).
//  StartMinute     – slot start, minutes from midnight, inclusive.
//  EndMinute       – slot end, minutes from midnight, exclusive.
//  Status          – CONFIRMED or CANCELLED.
//  CustomerName    – contact name supplied with the booking.
//  CustomerEmail   – contact email.
//  CustomerPhone   – contact phone.
//  EventType       – free-form event category from the booking form.
//  Attendees       – expected headcount; never above hall capacity.
//  SpecialRequests – optional free text.
//  TotalAmount     – hall rate multiplied by booked hours.
type Reservation struct {
	ID              string    `json:"id"`
	HallID          uint64    `json:"hall_id"`
	UserID          uint64    `json:"user_id"`
	BookingCode     string    `json:"booking_code"`
	Day             time.Time `json:"-"`
	StartMinute     int       `json:"-"`
	EndMinute       int       `json:"-"`
	Status          string    `json:"status"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone"`
	EventType       string    `json:"event_type"`
	Attendees       int       `json:"attendees"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	TotalAmount     float64   `json:"total_amount"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Slot returns the reserved interval as a TimeSlot.
func (r Reservation) Slot() TimeSlot {
	return TimeSlot{Day: r.Day, Start: r.StartMinute, End: r.EndMinute}
}
