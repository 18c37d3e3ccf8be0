package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
)

// AvailabilityRepo answers the read-side projections over the reservation
// set: blocked days per spot, blocked spots per lake and day, and per-day
// counts per lake. It shares the reservations table with ReservationRepo
// but never writes; queries run at the storage engine's default isolation.
// This data only advises the UI, the final word at insert time belongs to
// the unique index on (spot_id, reserved_on).
//
// The reserved_on column stores day granularity, so "within the day's
// [00:00:00, 23:59:59.999] bounds" collapses to plain equality and the
// inclusive range checks below compare whole days.
type AvailabilityRepo struct {
	db *sql.DB
}

// NewAvailabilityRepo returns a new AvailabilityRepo bound to the given database.
func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// ReservedDaysForSpot returns every day in [start, end] (inclusive on both
// bounds) that holds a non-cancelled reservation for the spot, ordered
// ascending. Used to render a calendar of blocked dates.
func (r *AvailabilityRepo) ReservedDaysForSpot(ctx context.Context, spotID uint64, start, end model.Day) ([]model.Day, error) {
	const q = `SELECT reserved_on FROM reservations
	           WHERE spot_id = ? AND reserved_on >= ? AND reserved_on <= ?
	             AND status <> 'CANCELLED'
	           ORDER BY reserved_on ASC`
	rows, err := r.db.QueryContext(ctx, q, spotID, start.Time(), end.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	days := make([]model.Day, 0)
	for rows.Next() {
		var t sql.NullTime
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		if t.Valid {
			days = append(days, model.NewDay(t.Time))
		}
	}
	return days, rows.Err()
}

// ReservedSpotIDsForLakeOnDay returns the ids of all spots on the lake
// holding a non-cancelled reservation on the given day. Exposed publicly
// so visitors can see which spots are taken before registering.
func (r *AvailabilityRepo) ReservedSpotIDsForLakeOnDay(ctx context.Context, lakeID uint64, day model.Day) ([]uint64, error) {
	const q = `SELECT spot_id FROM reservations
	           WHERE lake_id = ? AND reserved_on = ? AND status <> 'CANCELLED'
	           ORDER BY spot_id ASC`
	rows, err := r.db.QueryContext(ctx, q, lakeID, day.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DayCount pairs a day with the number of non-cancelled reservations on it.
type DayCount struct {
	Day   model.Day
	Count int
}

// ReservedCountsForLake aggregates non-cancelled reservations per day for
// one lake over [start, end] inclusive. Days without reservations are not
// returned; the caller derives available counts from the active spot total.
func (r *AvailabilityRepo) ReservedCountsForLake(ctx context.Context, lakeID uint64, start, end model.Day) ([]DayCount, error) {
	const q = `SELECT reserved_on, COUNT(*) FROM reservations
	           WHERE lake_id = ? AND reserved_on >= ? AND reserved_on <= ?
	             AND status <> 'CANCELLED'
	           GROUP BY reserved_on
	           ORDER BY reserved_on ASC`
	rows, err := r.db.QueryContext(ctx, q, lakeID, start.Time(), end.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make([]DayCount, 0)
	for rows.Next() {
		var (
			t sql.NullTime
			n int
		)
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		if t.Valid {
			counts = append(counts, DayCount{Day: model.NewDay(t.Time), Count: n})
		}
	}
	return counts, rows.Err()
}
