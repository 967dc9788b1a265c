package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/iliyamo/venue-hall-booking/internal/model"
)

// VenueRepo provides persistence for venues. Images and amenities are
// stored as JSON columns; timestamps are kept in UTC.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo bound to the given database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions
// spanning multiple repositories.
func (r *VenueRepo) DB() *sql.DB { return r.db }

const venueColumns = `id, owner_id, name, description, address, city, state, zip_code,
	phone, email, capacity, price_per_hour, min_booking_hours, images, amenities,
	created_at, updated_at`

// Create inserts a new venue and populates its generated ID and
// timestamps.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	images, err := json.Marshal(v.Images)
	if err != nil {
		return err
	}
	amenities, err := json.Marshal(v.Amenities)
	if err != nil {
		return err
	}
	const q = `INSERT INTO venues
		(owner_id, name, description, address, city, state, zip_code, phone, email,
		 capacity, price_per_hour, min_booking_hours, images, amenities)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		v.OwnerID, v.Name, v.Description, v.Address, v.City, v.State, v.ZipCode,
		v.Phone, v.Email, v.Capacity, v.PricePerHour, v.MinBookingHours, images, amenities)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	// Read the row back so defaults and timestamps are populated.
	got, err := r.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	*v = *got
	return nil
}

// GetByID returns a venue or ErrVenueNotFound.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id)
	v, err := scanVenue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	return v, err
}

// List returns venues ordered by name, paginated by offset/limit.
func (r *VenueRepo) List(ctx context.Context, offset, limit int) ([]*model.Venue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+venueColumns+` FROM venues ORDER BY name, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]*model.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVenue(s scanner) (*model.Venue, error) {
	var (
		v                 model.Venue
		images, amenities []byte
	)
	err := s.Scan(&v.ID, &v.OwnerID, &v.Name, &v.Description, &v.Address, &v.City,
		&v.State, &v.ZipCode, &v.Phone, &v.Email, &v.Capacity, &v.PricePerHour,
		&v.MinBookingHours, &images, &amenities, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &v.Images); err != nil {
			return nil, err
		}
	}
	if len(amenities) > 0 {
		if err := json.Unmarshal(amenities, &v.Amenities); err != nil {
			return nil, err
		}
	}
	return &v, nil
}
