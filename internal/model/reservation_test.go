package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(ReservationPending))
	assert.True(t, ValidStatus(ReservationConfirmed))
	assert.True(t, ValidStatus(ReservationCancelled))
	assert.False(t, ValidStatus("confirmed"))
	assert.False(t, ValidStatus("DONE"))
	assert.False(t, ValidStatus(""))
}

func TestIsCancelled(t *testing.T) {
	r := Reservation{Status: ReservationConfirmed}
	assert.False(t, r.IsCancelled())
	r.Status = ReservationCancelled
	assert.True(t, r.IsCancelled())
}
