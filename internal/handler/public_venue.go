package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/venue-hall-booking/internal/booking"
    "github.com/iliyamo/venue-hall-booking/internal/model"
    "github.com/iliyamo/venue-hall-booking/internal/repository"
)

// PublicHandler serves the unauthenticated catalogue and availability
// endpoints. Availability answers are advisory only; the admission path
// re-checks everything at commit time, so these endpoints are safe to put
// behind the response cache.
type PublicHandler struct {
    VenueRepo *repository.VenueRepo
    HallRepo  *repository.HallRepo
    Ctl       *booking.Controller
}

// NewPublicHandler constructs a PublicHandler and panics if any dependency is nil.
func NewPublicHandler(venueRepo *repository.VenueRepo, hallRepo *repository.HallRepo, ctl *booking.Controller) *PublicHandler {
    if venueRepo == nil || hallRepo == nil || ctl == nil {
        panic("nil dependency passed to NewPublicHandler")
    }
    return &PublicHandler{VenueRepo: venueRepo, HallRepo: hallRepo, Ctl: ctl}
}

// ListVenues handles GET /v1/venues. Supports limit/offset pagination with
// sane bounds; venues are ordered by name.
func (h *PublicHandler) ListVenues(c echo.Context) error {
    limit := 20
    offset := 0
    if v := c.QueryParam("limit"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
            limit = n
        }
    }
    if v := c.QueryParam("offset"); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n >= 0 {
            offset = n
        }
    }
    venues, err := h.VenueRepo.List(c.Request().Context(), offset, limit)
    if err != nil {
        return storageError(c, "failed to load venues", err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": venues})
}

// GetVenue handles GET /v1/venues/:id. The response includes the venue's
// active halls so the client can render the booking form in one round trip.
func (h *PublicHandler) GetVenue(c echo.Context) error {
    venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || venueID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
    }
    ctx := c.Request().Context()
    venue, err := h.VenueRepo.GetByID(ctx, venueID)
    if err != nil {
        return admissionError(c, err)
    }
    halls, err := h.HallRepo.ListByVenue(ctx, venueID)
    if err != nil {
        return storageError(c, "failed to load halls", err)
    }
    return c.JSON(http.StatusOK, echo.Map{"venue": venue, "halls": halls})
}

// checkAvailabilityReq is the body of POST /v1/venues/:id/check-availability.
type checkAvailabilityReq struct {
    HallID uint64 `json:"hall_id"`
    Date   string `json:"date"`
    Hours  int    `json:"hours"`
}

// slotPart is one bookable slot in a check-availability response, rendered
// in the HH:MM form the booking form submits back.
type slotPart struct {
    Start string `json:"start"`
    End   string `json:"end"`
}

// CheckAvailability handles POST /v1/venues/:id/check-availability. It
// returns every bookable slot of the requested length on the given date,
// aligned to the hour.
func (h *PublicHandler) CheckAvailability(c echo.Context) error {
    venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || venueID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
    }
    var req checkAvailabilityReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.HallID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "hall_id is required"})
    }
    slots, err := h.Ctl.CheckAvailability(c.Request().Context(), venueID, req.HallID, req.Date, req.Hours)
    if err != nil {
        return admissionError(c, err)
    }
    out := make([]slotPart, 0, len(slots))
    for _, s := range slots {
        out = append(out, slotPart{Start: s.StartClock(), End: s.EndClock()})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":            req.Date,
        "hours":           req.Hours,
        "available":       len(out) > 0,
        "available_slots": out,
    })
}

// reservationView is the wire form of a reservation; the slot is rendered
// as date plus HH:MM bounds to match the booking form.
type reservationView struct {
    model.Reservation
    Date      string `json:"date"`
    StartTime string `json:"start_time"`
    EndTime   string `json:"end_time"`
}

func viewOf(r model.Reservation) reservationView {
    return reservationView{
        Reservation: r,
        Date:        model.FormatDay(r.Day),
        StartTime:   model.FormatClock(r.StartMinute),
        EndTime:     model.FormatClock(r.EndMinute),
    }
}

func viewsOf(rs []model.Reservation) []reservationView {
    out := make([]reservationView, 0, len(rs))
    for _, r := range rs {
        out = append(out, viewOf(r))
    }
    return out
}
