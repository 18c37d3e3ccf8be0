// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used for reservation lifecycle events.
const (
	ConfirmedQueueName = "reservation.confirmed"
	CancelledQueueName = "reservation.cancelled"
)

// ReservationConfirmedEvent is published when a spot is successfully booked.
// It carries enough context for downstream consumers to log or notify
// without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	SpotID        uint64 `json:"spot_id"`
	SpotName      string `json:"spot_name"`
	LakeID        uint64 `json:"lake_id"`
	LakeName      string `json:"lake_name"`
	Date          string `json:"date"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// ReservationCancelledEvent is published when a reservation is cancelled,
// either by its owner or by an admin.
type ReservationCancelledEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	SpotID        uint64 `json:"spot_id"`
	LakeID        uint64 `json:"lake_id"`
	Date          string `json:"date"`
	CancelledBy   uint64 `json:"cancelled_by"`
	CancelledAt   string `json:"cancelled_at"`
}
