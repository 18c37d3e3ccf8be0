package model

import "time"

// User roles. Regular users book spots; admins additionally manage lakes,
// spots and other users' reservations.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User mirrors the users table. The password hash is never serialized.
type User struct {
	ID           uint64    `json:"id"`         // users.id
	Email        string    `json:"email"`      // users.email
	PasswordHash string    `json:"-"`          // users.password_hash
	Name         string    `json:"name"`       // users.name
	Role         string    `json:"role"`       // users.role
	IsActive     bool      `json:"is_active"`  // users.is_active
	CreatedAt    time.Time `json:"created_at"` // users.created_at
	UpdatedAt    time.Time `json:"updated_at"` // users.updated_at
}
