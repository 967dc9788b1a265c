package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/venue-hall-booking/internal/booking"
    "github.com/iliyamo/venue-hall-booking/internal/model"
    "github.com/iliyamo/venue-hall-booking/internal/queue"
    queue_publisher "github.com/iliyamo/venue-hall-booking/internal/service"
)

// VenueSource resolves venues for event enrichment. Satisfied by
// repository.VenueRepo.
type VenueSource interface {
    GetByID(ctx context.Context, id uint64) (*model.Venue, error)
}

// HallSource resolves halls for event enrichment. Satisfied by
// repository.HallRepo.
type HallSource interface {
    GetByID(ctx context.Context, id uint64) (*model.Hall, error)
}

// BookingHandler serves the customer booking endpoints. All admission
// decisions are delegated to the booking controller; the handler's job is
// binding, status mapping and event publication. Methods assume JWT
// authentication and role validation have already run.
type BookingHandler struct {
    Ctl    *booking.Controller
    Venues VenueSource
    Halls  HallSource
}

// NewBookingHandler constructs a BookingHandler and panics if any dependency is nil.
func NewBookingHandler(ctl *booking.Controller, venues VenueSource, halls HallSource) *BookingHandler {
    if ctl == nil || venues == nil || halls == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Ctl: ctl, Venues: venues, Halls: halls}
}

// Create handles POST /v1/bookings. A 201 response means the reservation is
// committed; every rejection carries a stable reason and no reservation row
// exists for it. The confirmed event is published after commit on a
// detached context so a slow broker never delays the response.
func (h *BookingHandler) Create(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req model.BookingRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    res, err := h.Ctl.Admit(c.Request().Context(), userID, req)
    if err != nil {
        return admissionError(c, err)
    }

    go h.publishConfirmed(req.VenueID, res)

    return c.JSON(http.StatusCreated, viewOf(res))
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id := c.Param("id")
    if id == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    res, err := h.Ctl.Get(c.Request().Context(), userID, id)
    if err != nil {
        return admissionError(c, err)
    }
    return c.JSON(http.StatusOK, viewOf(res))
}

// ListMine handles GET /v1/my-bookings. Returns the user's reservations,
// newest first; an empty array when none exist.
func (h *BookingHandler) ListMine(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.Ctl.ListByUser(c.Request().Context(), userID)
    if err != nil {
        return storageError(c, "failed to load bookings", err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": viewsOf(items)})
}

// Cancel handles DELETE /v1/bookings/:id. Cancelling frees the time slot
// for new bookings; the row itself is kept as history. Returns 204 on
// success, 409 when the reservation is not in a cancellable state.
func (h *BookingHandler) Cancel(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id := c.Param("id")
    if id == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    res, err := h.Ctl.Cancel(c.Request().Context(), userID, id)
    if err != nil {
        return admissionError(c, err)
    }

    go publishCancelled(res)

    return c.NoContent(http.StatusNoContent)
}

// publishConfirmed enriches the committed reservation with venue and hall
// names and publishes the booking.confirmed event. Failures are logged by
// the publisher and otherwise ignored.
func (h *BookingHandler) publishConfirmed(venueID uint64, res model.Reservation) {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    ev := queue.BookingConfirmedEvent{
        ReservationID: res.ID,
        BookingCode:   res.BookingCode,
        UserID:        res.UserID,
        VenueID:       venueID,
        HallID:        res.HallID,
        Date:          model.FormatDay(res.Day),
        StartTime:     model.FormatClock(res.StartMinute),
        EndTime:       model.FormatClock(res.EndMinute),
        EventType:     res.EventType,
        Attendees:     res.Attendees,
        TotalAmount:   res.TotalAmount,
        ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
    }
    if hall, err := h.Halls.GetByID(ctx, res.HallID); err == nil {
        ev.HallName = hall.Name
    }
    if venue, err := h.Venues.GetByID(ctx, venueID); err == nil {
        ev.VenueName = venue.Name
    }
    _ = queue_publisher.PublishBookingConfirmed(ctx, ev)
}

func publishCancelled(res model.Reservation) {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    _ = queue_publisher.PublishBookingCancelled(ctx, queue.BookingCancelledEvent{
        ReservationID: res.ID,
        BookingCode:   res.BookingCode,
        UserID:        res.UserID,
        HallID:        res.HallID,
        Date:          model.FormatDay(res.Day),
        StartTime:     model.FormatClock(res.StartMinute),
        EndTime:       model.FormatClock(res.EndMinute),
        CancelledAt:   time.Now().UTC().Format(time.RFC3339),
    })
}
