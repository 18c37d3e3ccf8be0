package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
)

// SpotRepo persists fishing spots. The reservation path uses it as the
// authoritative registry: a spot must exist and be active before a
// reservation may be created against it.
type SpotRepo struct{ DB *sql.DB }

func NewSpotRepo(db *sql.DB) *SpotRepo { return &SpotRepo{DB: db} }

const spotColumns = `id, lake_id, name, description, latitude, longitude, gps_link, is_active, created_at, updated_at`

func scanSpot(row interface{ Scan(...any) error }) (*model.Spot, error) {
	var (
		s    model.Spot
		desc sql.NullString
		lat  sql.NullFloat64
		lon  sql.NullFloat64
		gps  sql.NullString
	)
	err := row.Scan(&s.ID, &s.LakeID, &s.Name, &desc, &lat, &lon, &gps,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		s.Description = desc.String
	}
	if lat.Valid {
		s.Latitude = &lat.Float64
	}
	if lon.Valid {
		s.Longitude = &lon.Float64
	}
	if gps.Valid {
		s.GPSLink = &gps.String
	}
	return &s, nil
}

// GetByID fetches one spot, returning ErrSpotNotFound when absent.
func (r *SpotRepo) GetByID(ctx context.Context, id uint64) (*model.Spot, error) {
	const q = `SELECT ` + spotColumns + ` FROM spots WHERE id = ?`
	s, err := scanSpot(r.DB.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrSpotNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListByLake returns spots of one lake ordered by name. When activeOnly is
// set, deactivated spots are filtered out (the public view).
func (r *SpotRepo) ListByLake(ctx context.Context, lakeID uint64, activeOnly bool) ([]model.Spot, error) {
	q := `SELECT ` + spotColumns + ` FROM spots WHERE lake_id = ?`
	if activeOnly {
		q += ` AND is_active = 1`
	}
	q += ` ORDER BY name ASC, id ASC`
	return r.listSpots(ctx, q, lakeID)
}

// ListAll returns every spot, used by the admin console.
func (r *SpotRepo) ListAll(ctx context.Context) ([]model.Spot, error) {
	const q = `SELECT ` + spotColumns + ` FROM spots ORDER BY lake_id ASC, name ASC`
	return r.listSpots(ctx, q)
}

// CountActiveForLake returns the number of active spots on a lake, the
// denominator of the per-day availability computation.
func (r *SpotRepo) CountActiveForLake(ctx context.Context, lakeID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM spots WHERE lake_id = ? AND is_active = 1`, lakeID).Scan(&n)
	return n, err
}

// Create inserts a spot and populates its ID.
func (r *SpotRepo) Create(ctx context.Context, s *model.Spot) error {
	const q = `INSERT INTO spots (lake_id, name, description, latitude, longitude, gps_link, is_active) VALUES (?,?,?,?,?,?,?)`
	var desc any
	if s.Description != "" {
		desc = s.Description
	}
	res, err := r.DB.ExecContext(ctx, q, s.LakeID, s.Name, desc, s.Latitude, s.Longitude, s.GPSLink, s.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// Update rewrites the editable spot fields, including is_active so admins
// can deactivate a spot without touching its reservations.
func (r *SpotRepo) Update(ctx context.Context, s *model.Spot) error {
	const q = `UPDATE spots SET name=?, description=?, latitude=?, longitude=?, gps_link=?, is_active=? WHERE id=?`
	var desc any
	if s.Description != "" {
		desc = s.Description
	}
	res, err := r.DB.ExecContext(ctx, q, s.Name, desc, s.Latitude, s.Longitude, s.GPSLink, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a spot. The caller must have verified there are no live
// reservations against it.
func (r *SpotRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM spots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSpotNotFound
	}
	return nil
}

// Count returns the total number of spots.
func (r *SpotRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM spots`).Scan(&n)
	return n, err
}

func (r *SpotRepo) listSpots(ctx context.Context, q string, args ...any) ([]model.Spot, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	spots := make([]model.Spot, 0)
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, err
		}
		spots = append(spots, *s)
	}
	return spots, rows.Err()
}
