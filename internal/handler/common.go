package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel comparisons for admissionError
    "net/http" // http provides standard status codes
    "strconv" // strconv converts strings to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/venue-hall-booking/internal/availability"
    "github.com/iliyamo/venue-hall-booking/internal/booking"
    "github.com/iliyamo/venue-hall-booking/internal/repository"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// admissionError maps booking and repository errors onto an HTTP response
// with a stable reason string. Every rejection reason has exactly one status
// code so clients can branch on either.
func admissionError(c echo.Context, err error) error {
    var verr *booking.ValidationError
    switch {
    case errors.As(err, &verr):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "field": verr.Field, "reason": verr.Reason})
    case errors.Is(err, booking.ErrInvalidDate):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
    case errors.Is(err, availability.ErrInvalidDuration):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid duration"})
    case errors.Is(err, booking.ErrBusy):
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "busy, retry later"})
    case errors.Is(err, repository.ErrVenueNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
    case errors.Is(err, repository.ErrHallNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
    case errors.Is(err, repository.ErrReservationNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    case errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, repository.ErrSlotTaken):
        return c.JSON(http.StatusConflict, echo.Map{"error": "slot taken"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
    case errors.Is(err, repository.ErrCapacityExceeded):
        return c.JSON(http.StatusConflict, echo.Map{"error": "capacity exceeded"})
    case errors.Is(err, repository.ErrBelowMinimumDuration):
        return c.JSON(http.StatusConflict, echo.Map{"error": "below minimum duration"})
    case errors.Is(err, repository.ErrOutsideOperatingHours):
        return c.JSON(http.StatusConflict, echo.Map{"error": "outside operating hours"})
    }
    return storageError(c, "internal error", err)
}

// storageError logs the underlying failure and answers with a generic 500.
// The client only ever sees the stable message; the real error must still
// leave a server-side trace.
func storageError(c echo.Context, msg string, err error) error {
    c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}
