// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific error codes. The single storage-level
// failure that can happen after validation, a unique-index violation on
// (spot_id, reserved_on), is translated into ErrSlotTaken so that no
// MySQL error ever leaks to a caller.
package repository

import (
	"errors"
	"strings"
)

// ErrSlotTaken is returned when a (spot, day) slot already holds a
// non-cancelled reservation, either at the pre-check or when the insert
// trips the unique index. Handlers translate this into HTTP 409.
var ErrSlotTaken = errors.New("spot already reserved for that day")

// Not-found sentinels, one per entity, translated into HTTP 404.
var (
	ErrLakeNotFound        = errors.New("lake not found")
	ErrSpotNotFound        = errors.New("spot not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReviewNotFound      = errors.New("review not found")
)

// ErrEmailExists is returned when registering with an email that is
// already taken. HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateReview is returned when a user already reviewed a lake.
// HTTP 409.
var ErrDuplicateReview = errors.New("lake already reviewed by this user")

// ErrDuplicateLakeName is returned when creating or renaming a lake to a
// name that is already in use. HTTP 409.
var ErrDuplicateLakeName = errors.New("lake name already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (code 1062). The driver does not expose a typed error for this, so the
// code is matched in the message.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
