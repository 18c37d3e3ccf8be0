package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
)

// ReviewRepo persists lake reviews. One review per (user, lake), enforced
// with a unique key the same way the reservation slot is.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

const reviewColumns = `id, user_id, lake_id, rating, comment, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (*model.Review, error) {
	var rv model.Review
	err := row.Scan(&rv.ID, &rv.UserID, &rv.LakeID, &rv.Rating, &rv.Comment,
		&rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// GetByID fetches one review, returning ErrReviewNotFound when absent.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
	rv, err := scanReview(r.DB.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return rv, nil
}

// ListByLake returns a lake's reviews, newest first.
func (r *ReviewRepo) ListByLake(ctx context.Context, lakeID uint64) ([]model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE lake_id = ? ORDER BY created_at DESC, id DESC`
	return r.listReviews(ctx, q, lakeID)
}

// ListByUser returns a user's reviews, newest first.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	return r.listReviews(ctx, q, userID)
}

// ListAll returns every review, used by the admin console.
func (r *ReviewRepo) ListAll(ctx context.Context) ([]model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC, id DESC`
	return r.listReviews(ctx, q)
}

// AverageForLake returns the average rating and review count for a lake.
// Lakes with no reviews yield (0, 0).
func (r *ReviewRepo) AverageForLake(ctx context.Context, lakeID uint64) (float64, int64, error) {
	const q = `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE lake_id = ?`
	var (
		avg   float64
		total int64
	)
	err := r.DB.QueryRowContext(ctx, q, lakeID).Scan(&avg, &total)
	return avg, total, err
}

// Create inserts a review and populates its ID. A second review for the
// same lake by the same user is reported as ErrDuplicateReview.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	const q = `INSERT INTO reviews (user_id, lake_id, rating, comment) VALUES (?,?,?,?)`
	res, err := r.DB.ExecContext(ctx, q, rv.UserID, rv.LakeID, rv.Rating, rv.Comment)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateReview
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return nil
}

// Update rewrites rating and comment.
func (r *ReviewRepo) Update(ctx context.Context, rv *model.Review) error {
	const q = `UPDATE reviews SET rating=?, comment=? WHERE id=?`
	_, err := r.DB.ExecContext(ctx, q, rv.Rating, rv.Comment, rv.ID)
	return err
}

// Delete removes a review.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// Count returns the total number of reviews.
func (r *ReviewRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&n)
	return n, err
}

func (r *ReviewRepo) listReviews(ctx context.Context, q string, args ...any) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reviews := make([]model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}
