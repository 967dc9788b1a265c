package model

import "time"

// User roles. OWNER accounts manage venues and halls; CUSTOMER
// accounts submit bookings.
const (
	RoleOwner    = "OWNER"
	RoleCustomer = "CUSTOMER"
)

// User mirrors the `users` table. JSON tags are omitted; handlers
// define their own response shapes.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken models a row in the `refresh_tokens` table. Only the
// SHA-256 hash of a token is stored; the raw value goes back to the
// client once and is never persisted.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
