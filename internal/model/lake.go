package model

import "time"

// Lake is a body of water that groups fishing spots. Lakes are created and
// maintained by admins and browsed publicly.
type Lake struct {
	ID            uint64    `json:"id"`                        // lakes.id
	Name          string    `json:"name"`                      // lakes.name (unique)
	Description   string    `json:"description"`               // lakes.description
	Location      string    `json:"location"`                  // lakes.location
	ImageURL      *string   `json:"image_url,omitempty"`       // lakes.image_url (nullable)
	GoogleMapsURL *string   `json:"google_maps_url,omitempty"` // lakes.google_maps_url (nullable)
	CreatedBy     uint64    `json:"created_by"`                // lakes.created_by
	CreatedAt     time.Time `json:"created_at"`                // lakes.created_at
	UpdatedAt     time.Time `json:"updated_at"`                // lakes.updated_at
}
