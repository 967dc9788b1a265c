package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/venue-hall-booking/internal/model"
)

// ReservationRepo is the reservation store: the source of truth for
// occupied time ranges per hall and day. Reserve is the only mutation
// path that creates occupancy and it is atomic — the overlap check and
// the insert happen inside one transaction that holds the hall's row
// lock, so two concurrent calls for overlapping slots cannot both
// commit. Reads never observe a partially applied reservation.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, hall_id, user_id, booking_code, day, start_minute,
	end_minute, status, customer_name, customer_email, customer_phone, event_type,
	attendees, special_requests, total_amount, created_at, updated_at`

// ListForDate returns the confirmed intervals of a hall on a day,
// ordered by start time ascending. Unknown hall IDs yield
// ErrHallNotFound; a fully free day yields an empty slice.
func (r *ReservationRepo) ListForDate(ctx context.Context, hallID uint64, day time.Time) ([]model.TimeSlot, error) {
	var exists uint64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM halls WHERE id = ?`, hallID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHallNotFound
	}
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT start_minute, end_minute FROM reservations
		 WHERE hall_id = ? AND day = ? AND status = ?
		 ORDER BY start_minute`,
		hallID, model.FormatDay(day), model.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]model.TimeSlot, 0)
	for rows.Next() {
		s := model.TimeSlot{Day: day}
		if err := rows.Scan(&s.Start, &s.End); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// Reserve commits a reservation. The hall row is locked for the
// duration of the transaction, which serializes all Reserve and Cancel
// calls touching the same hall; the overlap check therefore sees every
// previously committed reservation. Overlap with a confirmed interval
// returns ErrSlotTaken and nothing is written.
func (r *ReservationRepo) Reserve(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the hall row. This is the per-hall exclusion section: a
	// concurrent Reserve for the same hall blocks here until we commit.
	var hallID uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM halls WHERE id = ? FOR UPDATE`, res.HallID).Scan(&hallID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrHallNotFound
	}
	if err != nil {
		return err
	}

	// Overlap check against confirmed reservations under the lock.
	day := model.FormatDay(res.Day)
	var clash string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM reservations
		 WHERE hall_id = ? AND day = ? AND status = ?
		   AND start_minute < ? AND end_minute > ?
		 LIMIT 1`,
		res.HallID, day, model.StatusConfirmed, res.EndMinute, res.StartMinute).Scan(&clash)
	if err == nil {
		return ErrSlotTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	const ins = `INSERT INTO reservations
		(id, hall_id, user_id, booking_code, day, start_minute, end_minute, status,
		 customer_name, customer_email, customer_phone, event_type, attendees,
		 special_requests, total_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err = tx.ExecContext(ctx, ins,
		res.ID, res.HallID, res.UserID, res.BookingCode, day, res.StartMinute,
		res.EndMinute, model.StatusConfirmed, res.CustomerName, res.CustomerEmail,
		res.CustomerPhone, res.EventType, res.Attendees, res.SpecialRequests,
		res.TotalAmount); err != nil {
		return err
	}

	// Read the row back inside the transaction to pick up timestamps.
	row := tx.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, res.ID)
	got, err := scanReservation(row)
	if err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	*res = *got
	return nil
}

// Get returns a reservation by ID or ErrReservationNotFound.
func (r *ReservationRepo) Get(ctx context.Context, id string) (model.Reservation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	got, err := scanReservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, ErrReservationNotFound
	}
	if err != nil {
		return model.Reservation{}, err
	}
	return *got, nil
}

// ListByUser returns a user's reservations, newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE user_id = ? ORDER BY created_at DESC, id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

// ListForHallDay returns every reservation of a hall on a day,
// including cancelled history, ordered by start time. Used by owners
// to inspect occupancy.
func (r *ReservationRepo) ListForHallDay(ctx context.Context, hallID uint64, day time.Time) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE hall_id = ? AND day = ? ORDER BY start_minute, id`,
		hallID, model.FormatDay(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

// Cancel marks a confirmed reservation cancelled. The row is kept as
// history; the freed interval becomes visible to the next ListForDate
// or Reserve immediately after commit. Cancelling an already cancelled
// reservation returns ErrConflict. Lock order matches Reserve (hall
// row first) so the two paths cannot deadlock.
func (r *ReservationRepo) Cancel(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var hallID uint64
	var status string
	err = tx.QueryRowContext(ctx, `SELECT hall_id, status FROM reservations WHERE id = ?`, id).
		Scan(&hallID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReservationNotFound
	}
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `SELECT id FROM halls WHERE id = ? FOR UPDATE`, hallID); err != nil {
		return err
	}
	// Re-read under the lock; a concurrent cancel may have won.
	err = tx.QueryRowContext(ctx, `SELECT status FROM reservations WHERE id = ? FOR UPDATE`, id).Scan(&status)
	if err != nil {
		return err
	}
	if status != model.StatusConfirmed {
		return ErrConflict
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ?`, model.StatusCancelled, id); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func scanReservation(s scanner) (*model.Reservation, error) {
	var res model.Reservation
	err := s.Scan(&res.ID, &res.HallID, &res.UserID, &res.BookingCode, &res.Day,
		&res.StartMinute, &res.EndMinute, &res.Status, &res.CustomerName,
		&res.CustomerEmail, &res.CustomerPhone, &res.EventType, &res.Attendees,
		&res.SpecialRequests, &res.TotalAmount, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	res.Day = res.Day.UTC()
	return &res, nil
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}
