// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking passes admission and is
// committed. It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type BookingConfirmedEvent struct {
    ReservationID string  `json:"reservation_id"`
    BookingCode   string  `json:"booking_code"`
    UserID        uint64  `json:"user_id"`
    VenueID       uint64  `json:"venue_id"`
    VenueName     string  `json:"venue_name"`
    HallID        uint64  `json:"hall_id"`
    HallName      string  `json:"hall_name"`
    Date          string  `json:"date"`
    StartTime     string  `json:"start_time"`
    EndTime       string  `json:"end_time"`
    EventType     string  `json:"event_type"`
    Attendees     int     `json:"attendees"`
    TotalAmount   float64 `json:"total_amount"`
    ConfirmedAt   string  `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a confirmed booking is cancelled
// and its time slot becomes available again.
type BookingCancelledEvent struct {
    ReservationID string `json:"reservation_id"`
    BookingCode   string `json:"booking_code"`
    UserID        uint64 `json:"user_id"`
    HallID        uint64 `json:"hall_id"`
    Date          string `json:"date"`
    StartTime     string `json:"start_time"`
    EndTime       string `json:"end_time"`
    CancelledAt   string `json:"cancelled_at"`
}
