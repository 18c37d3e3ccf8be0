package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
)

// LakeRepo persists lakes. Lakes are the browse entry point of the site
// and the scope for availability aggregation; they are written only by
// admins.
type LakeRepo struct{ DB *sql.DB }

func NewLakeRepo(db *sql.DB) *LakeRepo { return &LakeRepo{DB: db} }

const lakeColumns = `id, name, description, location, image_url, google_maps_url, created_by, created_at, updated_at`

func scanLake(row interface{ Scan(...any) error }) (*model.Lake, error) {
	var (
		l        model.Lake
		imageURL sql.NullString
		mapsURL  sql.NullString
	)
	err := row.Scan(&l.ID, &l.Name, &l.Description, &l.Location,
		&imageURL, &mapsURL, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if imageURL.Valid {
		l.ImageURL = &imageURL.String
	}
	if mapsURL.Valid {
		l.GoogleMapsURL = &mapsURL.String
	}
	return &l, nil
}

// List returns all lakes, newest first.
func (r *LakeRepo) List(ctx context.Context) ([]model.Lake, error) {
	const q = `SELECT ` + lakeColumns + ` FROM lakes ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	lakes := make([]model.Lake, 0)
	for rows.Next() {
		l, err := scanLake(rows)
		if err != nil {
			return nil, err
		}
		lakes = append(lakes, *l)
	}
	return lakes, rows.Err()
}

// GetByID fetches one lake, returning ErrLakeNotFound when absent.
func (r *LakeRepo) GetByID(ctx context.Context, id uint64) (*model.Lake, error) {
	const q = `SELECT ` + lakeColumns + ` FROM lakes WHERE id = ?`
	l, err := scanLake(r.DB.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrLakeNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Create inserts a lake and populates its ID. A duplicate name is reported
// as ErrDuplicateLakeName via the unique key on lakes.name.
func (r *LakeRepo) Create(ctx context.Context, l *model.Lake) error {
	const q = `INSERT INTO lakes (name, description, location, image_url, google_maps_url, created_by) VALUES (?,?,?,?,?,?)`
	res, err := r.DB.ExecContext(ctx, q, l.Name, l.Description, l.Location, l.ImageURL, l.GoogleMapsURL, l.CreatedBy)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateLakeName
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// Update rewrites the editable lake fields. Returns ErrLakeNotFound when
// the row does not exist and ErrDuplicateLakeName on a name collision.
func (r *LakeRepo) Update(ctx context.Context, l *model.Lake) error {
	const q = `UPDATE lakes SET name=?, description=?, location=?, image_url=?, google_maps_url=? WHERE id=?`
	res, err := r.DB.ExecContext(ctx, q, l.Name, l.Description, l.Location, l.ImageURL, l.GoogleMapsURL, l.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateLakeName
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either missing or unchanged; distinguish by existence.
		if _, err := r.GetByID(ctx, l.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a lake. The caller must have verified there are no live
// reservations against its spots.
func (r *LakeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM lakes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLakeNotFound
	}
	return nil
}

// Count returns the total number of lakes.
func (r *LakeRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM lakes`).Scan(&n)
	return n, err
}
