package model

import "time"

// Spot is a single fishing spot on a lake. Only active spots can be
// reserved; deactivating a spot blocks new bookings but leaves existing
// reservations untouched.
type Spot struct {
	ID          uint64    `json:"id"`                  // spots.id
	LakeID      uint64    `json:"lake_id"`             // spots.lake_id
	Name        string    `json:"name"`                // spots.name
	Description string    `json:"description"`         // spots.description
	Latitude    *float64  `json:"latitude,omitempty"`  // spots.latitude (nullable)
	Longitude   *float64  `json:"longitude,omitempty"` // spots.longitude (nullable)
	GPSLink     *string   `json:"gps_link,omitempty"`  // spots.gps_link (nullable)
	IsActive    bool      `json:"is_active"`           // spots.is_active
	CreatedAt   time.Time `json:"created_at"`          // spots.created_at
	UpdatedAt   time.Time `json:"updated_at"`          // spots.updated_at
}
