package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDayNormalizesToUTCMidnight(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"already midnight utc", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "2024-06-01"},
		{"late evening utc", time.Date(2024, 6, 1, 23, 59, 59, 999999999, time.UTC), "2024-06-01"},
		{"local time converts before truncating", time.Date(2024, 6, 1, 1, 30, 0, 0, warsaw), "2024-05-31"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDay(tc.in)
			assert.Equal(t, tc.want, d.String())
			assert.Equal(t, time.UTC, d.Time().Location())
			assert.Zero(t, d.Time().Hour())
		})
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d.Time())

	_, err = ParseDay("01.06.2024")
	assert.Error(t, err)
	_, err = ParseDay("2024-06-01T10:00:00Z")
	assert.Error(t, err)
	_, err = ParseDay("")
	assert.Error(t, err)
}

func TestDayBoundsCoverWholeDayInclusive(t *testing.T) {
	d, err := ParseDay("2024-06-01")
	require.NoError(t, err)

	start, end := d.Bounds()
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.True(t, end.Before(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
}

func TestDayComparisons(t *testing.T) {
	a, err := ParseDay("2024-06-01")
	require.NoError(t, err)
	b := a.AddDays(1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(NewDay(a.Time().Add(6*time.Hour))))
	assert.False(t, a.Equal(b))
	assert.False(t, Day{}.IsZero() && !Day{}.IsZero())
	assert.True(t, Day{}.IsZero())
}

func TestDayJSONRoundTrip(t *testing.T) {
	d, err := ParseDay("2024-06-01")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-01"`, string(b))

	var back Day
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back))

	var bad Day
	assert.Error(t, json.Unmarshal([]byte(`"June 1st"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}
