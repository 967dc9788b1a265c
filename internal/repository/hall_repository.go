package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/iliyamo/venue-hall-booking/internal/model"
)

// HallRepo provides persistence for halls. Halls belong to exactly one
// venue; the operating window is stored as minutes from midnight in
// the open_minute/close_minute columns.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo { return &HallRepo{db: db} }

const hallColumns = `id, venue_id, name, description, capacity, price_per_hour,
	min_booking_hours, amenities, open_minute, close_minute, is_active,
	created_at, updated_at`

// Create inserts a new hall under its venue. The operating window must
// already be validated by the caller (open < close, both within a day).
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	amenities, err := json.Marshal(h.Amenities)
	if err != nil {
		return err
	}
	const q = `INSERT INTO halls
		(venue_id, name, description, capacity, price_per_hour, min_booking_hours,
		 amenities, open_minute, close_minute)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		h.VenueID, h.Name, h.Description, h.Capacity, h.PricePerHour,
		h.MinBookingHours, amenities, h.OpenMinute, h.CloseMinute)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	got, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *got
	return nil
}

// GetByID returns a hall or ErrHallNotFound.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+hallColumns+` FROM halls WHERE id = ?`, id)
	h, err := scanHall(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHallNotFound
	}
	return h, err
}

// HallByID returns the hall by value; it is the lookup used by the
// booking admission controller.
func (r *HallRepo) HallByID(ctx context.Context, id uint64) (model.Hall, error) {
	h, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Hall{}, err
	}
	return *h, nil
}

// ListByVenue returns the active halls of a venue ordered by name.
func (r *HallRepo) ListByVenue(ctx context.Context, venueID uint64) ([]*model.Hall, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+hallColumns+` FROM halls WHERE venue_id = ? AND is_active = 1 ORDER BY name, id`,
		venueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	halls := make([]*model.Hall, 0)
	for rows.Next() {
		h, err := scanHall(rows)
		if err != nil {
			return nil, err
		}
		halls = append(halls, h)
	}
	return halls, rows.Err()
}

func scanHall(s scanner) (*model.Hall, error) {
	var (
		h         model.Hall
		amenities []byte
	)
	err := s.Scan(&h.ID, &h.VenueID, &h.Name, &h.Description, &h.Capacity,
		&h.PricePerHour, &h.MinBookingHours, &amenities, &h.OpenMinute,
		&h.CloseMinute, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(amenities) > 0 {
		if err := json.Unmarshal(amenities, &h.Amenities); err != nil {
			return nil, err
		}
	}
	return &h, nil
}
