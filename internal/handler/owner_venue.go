package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/venue-hall-booking/internal/model"
    "github.com/iliyamo/venue-hall-booking/internal/repository"
)

// OwnerHandler serves the venue management endpoints. All methods require
// the OWNER role; ownership of the touched venue is re-checked against the
// authenticated user on every call.
type OwnerHandler struct {
    VenueRepo       *repository.VenueRepo
    HallRepo        *repository.HallRepo
    ReservationRepo *repository.ReservationRepo
}

// NewOwnerHandler constructs a new OwnerHandler and panics if any dependency is nil
func NewOwnerHandler(venueRepo *repository.VenueRepo, hallRepo *repository.HallRepo, reservationRepo *repository.ReservationRepo) *OwnerHandler {
    if venueRepo == nil || hallRepo == nil || reservationRepo == nil {
        panic("nil repository passed to NewOwnerHandler")
    }
    return &OwnerHandler{VenueRepo: venueRepo, HallRepo: hallRepo, ReservationRepo: reservationRepo}
}

// createVenueReq is the body of POST /v1/venues.
type createVenueReq struct {
    Name            string   `json:"name"`
    Description     string   `json:"description"`
    Address         string   `json:"address"`
    City            string   `json:"city"`
    State           string   `json:"state"`
    ZipCode         string   `json:"zip_code"`
    Phone           string   `json:"phone"`
    Email           string   `json:"email"`
    Capacity        int      `json:"capacity"`
    PricePerHour    float64  `json:"price_per_hour"`
    MinBookingHours int      `json:"min_booking_hours"`
    Images          []string `json:"images"`
    Amenities       []string `json:"amenities"`
}

// CreateVenue handles POST /v1/venues. The venue is owned by the
// authenticated user.
func (h *OwnerHandler) CreateVenue(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createVenueReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    if req.MinBookingHours < 1 {
        req.MinBookingHours = 1
    }
    v := &model.Venue{
        OwnerID:         userID,
        Name:            req.Name,
        Description:     req.Description,
        Address:         req.Address,
        City:            req.City,
        State:           req.State,
        ZipCode:         req.ZipCode,
        Phone:           req.Phone,
        Email:           req.Email,
        Capacity:        req.Capacity,
        PricePerHour:    req.PricePerHour,
        MinBookingHours: req.MinBookingHours,
        Images:          req.Images,
        Amenities:       req.Amenities,
    }
    if err := h.VenueRepo.Create(c.Request().Context(), v); err != nil {
        return storageError(c, "failed to create venue", err)
    }
    return c.JSON(http.StatusCreated, v)
}

// createHallReq is the body of POST /v1/venues/:id/halls. Open and close
// are HH:MM clocks; omitted values fall back to the default window.
type createHallReq struct {
    Name            string   `json:"name"`
    Description     string   `json:"description"`
    Capacity        int      `json:"capacity"`
    PricePerHour    float64  `json:"price_per_hour"`
    MinBookingHours int      `json:"min_booking_hours"`
    Amenities       []string `json:"amenities"`
    Open            string   `json:"open"`
    Close           string   `json:"close"`
}

// CreateHall handles POST /v1/venues/:id/halls. Only the venue owner may
// add halls.
func (h *OwnerHandler) CreateHall(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    venueID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || venueID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
    }
    ctx := c.Request().Context()
    venue, err := h.VenueRepo.GetByID(ctx, venueID)
    if err != nil {
        return admissionError(c, err)
    }
    if venue.OwnerID != userID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    var req createHallReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    if req.Capacity < 1 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
    }
    open := model.DefaultOpenMinute
    if req.Open != "" {
        if open, err = model.ParseClock(req.Open); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid open time"})
        }
    }
    clos := model.DefaultCloseMinute
    if req.Close != "" {
        if clos, err = model.ParseClock(req.Close); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid close time"})
        }
    }
    if clos <= open {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "close must be after open"})
    }
    if req.MinBookingHours < 1 {
        req.MinBookingHours = venue.MinBookingHours
    }
    hall := &model.Hall{
        VenueID:         venueID,
        Name:            req.Name,
        Description:     req.Description,
        Capacity:        req.Capacity,
        PricePerHour:    req.PricePerHour,
        MinBookingHours: req.MinBookingHours,
        Amenities:       req.Amenities,
        OpenMinute:      open,
        CloseMinute:     clos,
        IsActive:        true,
    }
    if err := h.HallRepo.Create(ctx, hall); err != nil {
        return storageError(c, "failed to create hall", err)
    }
    return c.JSON(http.StatusCreated, hall)
}

// HallReservations handles GET /v1/halls/:id/reservations?date=YYYY-MM-DD.
// Owners see every reservation of their hall on the given day, cancelled
// ones included.
func (h *OwnerHandler) HallReservations(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    hallID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || hallID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hall id"})
    }
    day, err := model.ParseDay(c.QueryParam("date"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
    }
    ctx := c.Request().Context()
    hall, err := h.HallRepo.GetByID(ctx, hallID)
    if err != nil {
        return admissionError(c, err)
    }
    venue, err := h.VenueRepo.GetByID(ctx, hall.VenueID)
    if err != nil {
        return admissionError(c, err)
    }
    if venue.OwnerID != userID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    items, err := h.ReservationRepo.ListForHallDay(ctx, hallID, day)
    if err != nil {
        return storageError(c, "failed to load reservations", err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": viewsOf(items)})
}
