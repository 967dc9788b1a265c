// Package booking implements booking admission: turning a raw
// BookingRequest into a committed reservation or a rejection with a
// precise reason. Each request moves through Received -> Validated ->
// Admitted | Rejected; a rejection is final for that request and the
// caller is expected to re-query availability before trying again.
package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iliyamo/venue-hall-booking/internal/availability"
	"github.com/iliyamo/venue-hall-booking/internal/model"
	"github.com/iliyamo/venue-hall-booking/internal/repository"
)

// ErrBusy is returned when the per-(hall, day) exclusion section could
// not be acquired within the configured wait. It is the only
// caller-retryable rejection; retries belong to the caller, with
// backoff, never to this package.
var ErrBusy = errors.New("busy")

// ErrInvalidDate is returned for unparseable or entirely past dates.
var ErrInvalidDate = errors.New("invalid date")

// ValidationError reports a structural problem with a booking request
// and names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// HallSource resolves halls for admission checks. Implemented by
// repository.HallRepo.
type HallSource interface {
	HallByID(ctx context.Context, id uint64) (model.Hall, error)
}

// Store is the reservation store the controller commits into. Reserve
// must be atomic with respect to its own overlap check; the controller
// additionally serializes callers per (hall, day) so availability
// re-checks and the insert form one admission decision. Implemented by
// repository.ReservationRepo.
type Store interface {
	ListForDate(ctx context.Context, hallID uint64, day time.Time) ([]model.TimeSlot, error)
	Reserve(ctx context.Context, res *model.Reservation) error
	Get(ctx context.Context, id string) (model.Reservation, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)
	Cancel(ctx context.Context, id string) error
}

// DefaultLockWait bounds how long a booking waits for its exclusion
// section before giving up with ErrBusy.
const DefaultLockWait = 2 * time.Second

// Controller is the booking admission controller.
type Controller struct {
	halls    HallSource
	store    Store
	locks    *keyedLock
	lockWait time.Duration
	now      func() time.Time
}

// NewController builds a Controller. A non-positive lockWait falls
// back to DefaultLockWait.
func NewController(halls HallSource, store Store, lockWait time.Duration) *Controller {
	if lockWait <= 0 {
		lockWait = DefaultLockWait
	}
	return &Controller{
		halls:    halls,
		store:    store,
		locks:    newKeyedLock(),
		lockWait: lockWait,
		now:      time.Now,
	}
}

// CheckAvailability returns the bookable slots of a hall on a date for
// the requested number of hours. Read-only: it never blocks on the
// admission lock and may race a concurrent commit, which is why Admit
// re-checks everything at commit time.
func (ctl *Controller) CheckAvailability(ctx context.Context, venueID, hallID uint64, date string, hours int) ([]model.TimeSlot, error) {
	hall, err := ctl.hall(ctx, venueID, hallID)
	if err != nil {
		return nil, err
	}
	day, err := ctl.day(date)
	if err != nil {
		return nil, err
	}
	busy, err := ctl.store.ListForDate(ctx, hall.ID, day)
	if err != nil {
		return nil, err
	}
	return availability.Compute(hall.Window(day), busy, hours, hall.MinBookingHours)
}

// Admit validates a booking request, re-checks availability against
// the current store state inside the per-(hall, day) exclusion
// section, and commits the reservation or rejects with a specific
// reason. The returned reservation carries its generated ID, booking
// code and computed total.
func (ctl *Controller) Admit(ctx context.Context, userID uint64, req model.BookingRequest) (model.Reservation, error) {
	var zero model.Reservation

	// Received -> Validated: structural checks only.
	if err := model.Validate.Struct(req); err != nil {
		return zero, asValidationError(err)
	}
	start, err := model.ParseClock(req.StartTime)
	if err != nil {
		return zero, &ValidationError{Field: "start_time", Reason: err.Error()}
	}
	end, err := model.ParseClock(req.EndTime)
	if err != nil {
		return zero, &ValidationError{Field: "end_time", Reason: err.Error()}
	}
	if end <= start {
		return zero, &ValidationError{Field: "end_time", Reason: "end must be after start"}
	}

	hall, err := ctl.hall(ctx, req.VenueID, req.HallID)
	if err != nil {
		return zero, err
	}
	day, err := ctl.day(req.Date)
	if err != nil {
		return zero, err
	}

	// Validated -> Admitted | Rejected: domain checks, cheapest first.
	minutes := end - start
	if minutes < hall.MinBookingHours*60 {
		return zero, repository.ErrBelowMinimumDuration
	}
	if start < hall.OpenMinute || end > hall.CloseMinute {
		return zero, repository.ErrOutsideOperatingHours
	}
	if req.Attendees > hall.Capacity {
		return zero, repository.ErrCapacityExceeded
	}

	key := lockKey{hallID: hall.ID, day: model.FormatDay(day)}
	if err := ctl.locks.acquire(ctx, key, ctl.lockWait); err != nil {
		return zero, err
	}
	defer ctl.locks.release(key)

	// Commit-time re-check against the current store state, not any
	// cached availability the client saw.
	busy, err := ctl.store.ListForDate(ctx, hall.ID, day)
	if err != nil {
		return zero, err
	}
	slot := model.TimeSlot{Day: day, Start: start, End: end}
	if !availability.Fits(hall.Window(day), busy, slot) {
		return zero, repository.ErrSlotTaken
	}

	res := model.Reservation{
		ID:              uuid.NewString(),
		HallID:          hall.ID,
		UserID:          userID,
		BookingCode:     newBookingCode(),
		Day:             day,
		StartMinute:     start,
		EndMinute:       end,
		Status:          model.StatusConfirmed,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		EventType:       req.EventType,
		Attendees:       req.Attendees,
		SpecialRequests: req.SpecialRequests,
		TotalAmount:     hall.PricePerHour * float64(minutes) / 60,
	}
	if err := ctl.store.Reserve(ctx, &res); err != nil {
		return zero, err
	}
	return res, nil
}

// Get returns a reservation owned by the given user.
func (ctl *Controller) Get(ctx context.Context, userID uint64, id string) (model.Reservation, error) {
	res, err := ctl.store.Get(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if res.UserID != userID {
		return model.Reservation{}, repository.ErrForbidden
	}
	return res, nil
}

// ListByUser returns the user's reservations, newest first.
func (ctl *Controller) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	return ctl.store.ListByUser(ctx, userID)
}

// Cancel marks the user's reservation cancelled under the same
// per-(hall, day) exclusion discipline as Admit, so the freed interval
// appears atomically to concurrent bookings.
func (ctl *Controller) Cancel(ctx context.Context, userID uint64, id string) (model.Reservation, error) {
	res, err := ctl.store.Get(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if res.UserID != userID {
		return model.Reservation{}, repository.ErrForbidden
	}
	key := lockKey{hallID: res.HallID, day: model.FormatDay(res.Day)}
	if err := ctl.locks.acquire(ctx, key, ctl.lockWait); err != nil {
		return model.Reservation{}, err
	}
	defer ctl.locks.release(key)
	if err := ctl.store.Cancel(ctx, id); err != nil {
		return model.Reservation{}, err
	}
	res.Status = model.StatusCancelled
	return res, nil
}

// hall resolves an active hall and verifies it belongs to the claimed
// venue; a mismatch reads the same as an unknown hall.
func (ctl *Controller) hall(ctx context.Context, venueID, hallID uint64) (model.Hall, error) {
	hall, err := ctl.halls.HallByID(ctx, hallID)
	if err != nil {
		return model.Hall{}, err
	}
	if hall.VenueID != venueID || !hall.IsActive {
		return model.Hall{}, repository.ErrHallNotFound
	}
	return hall, nil
}

// day parses the request date and rejects days entirely in the past.
func (ctl *Controller) day(date string) (time.Time, error) {
	day, err := model.ParseDay(date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	today := ctl.now().UTC().Truncate(24 * time.Hour)
	if day.Before(today) {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}

func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return &ValidationError{Field: snakeCase(f.Field()), Reason: "failed " + f.Tag() + " check"}
	}
	return &ValidationError{Field: "body", Reason: err.Error()}
}

// snakeCase maps struct field names back to their JSON form for error
// messages (CustomerEmail -> customer_email).
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// newBookingCode returns a short confirmation code like BK-3F9A21C4.
func newBookingCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process is in real trouble;
		// fall back to a code derived from a fresh UUID.
		return "BK-" + strings.ToUpper(uuid.NewString()[:8])
	}
	return "BK-" + strings.ToUpper(hex.EncodeToString(b))
}
