package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
	"github.com/iliyamo/lake-fishing-reservation/internal/repository"
)

func day(t *testing.T, s string) model.Day {
	t.Helper()
	d, err := model.ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestBuildAvailabilityDenseRange(t *testing.T) {
	start := day(t, "2026-07-01")
	end := day(t, "2026-07-03")
	counts := []repository.DayCount{
		{Day: day(t, "2026-07-02"), Count: 2},
	}

	out := buildAvailability(start, end, 5, counts)

	require.Len(t, out, 3)
	assert.Equal(t, dayAvailability{Reserved: 0, Available: 5}, out["2026-07-01"])
	assert.Equal(t, dayAvailability{Reserved: 2, Available: 3}, out["2026-07-02"])
	assert.Equal(t, dayAvailability{Reserved: 0, Available: 5}, out["2026-07-03"])
}

func TestBuildAvailabilitySingleDay(t *testing.T) {
	d := day(t, "2026-07-10")
	out := buildAvailability(d, d, 3, []repository.DayCount{{Day: d, Count: 3}})
	require.Len(t, out, 1)
	assert.Equal(t, dayAvailability{Reserved: 3, Available: 0}, out["2026-07-10"])
}

func TestBuildAvailabilityClampsNegative(t *testing.T) {
	// Spots deactivated after being booked can push reserved above the
	// active total; available must not go negative.
	d := day(t, "2026-07-10")
	out := buildAvailability(d, d, 2, []repository.DayCount{{Day: d, Count: 4}})
	assert.Equal(t, dayAvailability{Reserved: 4, Available: 0}, out["2026-07-10"])
}

func TestBuildAvailabilityCoversWholeRange(t *testing.T) {
	start := day(t, "2026-01-01")
	end := start.AddDays(30)
	out := buildAvailability(start, end, 1, nil)
	assert.Len(t, out, 31)
	for d := start; !d.After(end); d = d.AddDays(1) {
		assert.Equal(t, dayAvailability{Reserved: 0, Available: 1}, out[d.String()])
	}
}

func TestDayHelperUsesUTC(t *testing.T) {
	d := day(t, "2026-03-29") // DST transition day in Europe
	assert.Equal(t, time.UTC, d.Time().Location())
}
