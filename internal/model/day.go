package model

import (
	"fmt"
	"time"
)

// DayFormat is the wire format for calendar days in requests and responses.
const DayFormat = "2006-01-02"

// Day is a single calendar day in the service's reference timezone (UTC).
// Every write and read path that deals with reservation dates must go
// through this type so that "the same day" always means the same instant
// boundaries, regardless of the time-of-day or offset the caller supplied.
type Day struct {
	t time.Time // midnight UTC of the day
}

// NewDay normalizes an arbitrary instant to the calendar day it falls on
// in UTC.
func NewDay(t time.Time) Day {
	u := t.UTC()
	return Day{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a YYYY-MM-DD string into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return NewDay(t), nil
}

// Today returns the current calendar day in UTC.
func Today() Day { return NewDay(time.Now()) }

// Time returns midnight UTC of the day. This is the value persisted in the
// DATE column and compared against other days.
func (d Day) Time() time.Time { return d.t }

// Bounds returns the inclusive instant range covered by the day:
// [00:00:00.000, 23:59:59.999...] in UTC.
func (d Day) Bounds() (start, end time.Time) {
	return d.t, d.t.Add(24*time.Hour - time.Nanosecond)
}

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day { return NewDay(d.t.AddDate(0, 0, n)) }

func (d Day) Before(o Day) bool { return d.t.Before(o.t) }
func (d Day) After(o Day) bool  { return d.t.After(o.t) }
func (d Day) Equal(o Day) bool  { return d.t.Equal(o.t) }

// IsZero reports whether the day is the zero value (no date set).
func (d Day) IsZero() bool { return d.t.IsZero() }

func (d Day) String() string { return d.t.Format(DayFormat) }

// MarshalJSON renders the day as a quoted YYYY-MM-DD string.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.t.Format(DayFormat) + `"`), nil
}

// UnmarshalJSON accepts a quoted YYYY-MM-DD string.
func (d *Day) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid day literal %s", s)
	}
	parsed, err := ParseDay(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
