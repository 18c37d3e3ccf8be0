package model

import "time"

// Reservation statuses. A reservation is created CONFIRMED once the slot
// check passes and only ever transitions to CANCELLED. PENDING is part of
// the schema for future two-phase flows but is never assigned today.
const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
)

// MaxReservationNotesLen caps the free-text notes on a reservation.
const MaxReservationNotesLen = 500

// Reservation records one user's claim on one fishing spot for one
// calendar day. The lake reference is denormalized from the spot so that
// lake-wide availability queries never need a join through spots.
//
// Invariant: for a given (SpotID, Date) at most one reservation exists
// with a status other than CANCELLED. The reservations table enforces this
// with a unique index over (spot_id, reserved_on, active_slot); rows are
// never deleted, cancellation only flips the status.
type Reservation struct {
	ID        uint64    `json:"id"`              // reservations.id
	UserID    uint64    `json:"user_id"`         // reservations.user_id
	SpotID    uint64    `json:"spot_id"`         // reservations.spot_id
	LakeID    uint64    `json:"lake_id"`         // reservations.lake_id
	Date      Day       `json:"date"`            // reservations.reserved_on
	Status    string    `json:"status"`          // reservations.status
	Notes     string    `json:"notes,omitempty"` // reservations.notes (nullable)
	CreatedAt time.Time `json:"created_at"`      // reservations.created_at
	UpdatedAt time.Time `json:"updated_at"`      // reservations.updated_at
}

// IsCancelled reports whether the reservation no longer occupies its slot.
func (r *Reservation) IsCancelled() bool { return r.Status == ReservationCancelled }

// ValidStatus reports whether s is one of the reservation status values.
// Used when validating status filters supplied by clients.
func ValidStatus(s string) bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}
