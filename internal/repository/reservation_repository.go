package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
)

// ReservationRepo provides persistence for reservations, the only entity
// with a hard correctness requirement in this service. Writes run inside
// caller-owned transactions; the caller must commit or roll back. Reads
// for listing run directly against the pool. All dates are stored at day
// granularity (DATE column, UTC) and travel as model.Day.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, user_id, spot_id, lake_id, reserved_on, status, notes, created_at, updated_at`

// scanReservation reads one row in reservationColumns order.
func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var (
		res      model.Reservation
		reserved sql.NullTime
		notes    sql.NullString
	)
	err := row.Scan(&res.ID, &res.UserID, &res.SpotID, &res.LakeID,
		&reserved, &res.Status, &notes, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if reserved.Valid {
		res.Date = model.NewDay(reserved.Time)
	}
	if notes.Valid {
		res.Notes = notes.String
	}
	return &res, nil
}

// IsSpotFreeTx reports whether the (spot, day) slot holds no non-cancelled
// reservation. This is the friendly pre-check only: the unique index over
// (spot_id, reserved_on, active_slot) is what actually serializes racing
// creates, and CreateTx maps its violation to ErrSlotTaken.
func (r *ReservationRepo) IsSpotFreeTx(ctx context.Context, tx *sql.Tx, spotID uint64, day model.Day) (bool, error) {
	const q = `SELECT 1 FROM reservations
	           WHERE spot_id = ? AND reserved_on = ? AND status <> 'CANCELLED'
	           LIMIT 1`
	var one int
	err := tx.QueryRowContext(ctx, q, spotID, day.Time()).Scan(&one)
	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// CreateTx inserts a confirmed reservation within the given transaction and
// populates the generated ID and timestamps on the provided record. A
// duplicate-key violation on the slot index is returned as ErrSlotTaken.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (user_id, spot_id, lake_id, reserved_on, status, notes)
	           VALUES (?, ?, ?, ?, ?, ?)`
	var notes any
	if res.Notes != "" {
		notes = res.Notes
	}
	result, err := tx.ExecContext(ctx, q,
		res.UserID, res.SpotID, res.LakeID, res.Date.Time(), res.Status, notes)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlotTaken
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	full, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
	if err != nil {
		return err
	}
	*res = *full
	return nil
}

// GetForUpdateTx loads a reservation inside a transaction and locks the row
// so the status transition in MarkCancelledTx cannot race another cancel.
// Returns ErrReservationNotFound when no such row exists.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? FOR UPDATE`
	res, err := scanReservation(tx.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// MarkCancelledTx flips the reservation into CANCELLED and refreshes
// updated_at. The generated active_slot column becomes NULL with the same
// statement, which frees the (spot, day) slot for new reservations the
// moment the transaction commits.
func (r *ReservationRepo) MarkCancelledTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE reservations SET status = 'CANCELLED', updated_at = UTC_TIMESTAMP() WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, id)
	return err
}

// GetByID fetches a single reservation. Ownership and role checks belong
// to the handler; the repository only reports existence.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	res, err := scanReservation(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ListByUser returns the user's reservations ordered by date ascending.
// status filters on an exact status when non-empty; from keeps only
// reservations on or after that day when non-zero (the "upcoming" filter).
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64, status string, from model.Day) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = ?`
	args := []any{userID}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	if !from.IsZero() {
		q += ` AND reserved_on >= ?`
		args = append(args, from.Time())
	}
	q += ` ORDER BY reserved_on ASC, id ASC`
	return r.list(ctx, q, args...)
}

// AdminListFilter narrows the admin-wide reservation listing. Zero values
// mean "no filter"; Start and End may be set independently for open-ended
// ranges.
type AdminListFilter struct {
	Status string
	LakeID uint64
	Start  model.Day
	End    model.Day
}

// ListAll returns reservations across all users ordered by date descending.
func (r *ReservationRepo) ListAll(ctx context.Context, f AdminListFilter) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations`
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		conds = append(conds, `status = ?`)
		args = append(args, f.Status)
	}
	if f.LakeID != 0 {
		conds = append(conds, `lake_id = ?`)
		args = append(args, f.LakeID)
	}
	if !f.Start.IsZero() {
		conds = append(conds, `reserved_on >= ?`)
		args = append(args, f.Start.Time())
	}
	if !f.End.IsZero() {
		conds = append(conds, `reserved_on <= ?`)
		args = append(args, f.End.Time())
	}
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	q += ` ORDER BY reserved_on DESC, id DESC`
	return r.list(ctx, q, args...)
}

// HasActiveForSpot reports whether a spot still has non-cancelled
// reservations. Used to refuse spot deletion.
func (r *ReservationRepo) HasActiveForSpot(ctx context.Context, spotID uint64) (bool, error) {
	const q = `SELECT 1 FROM reservations WHERE spot_id = ? AND status <> 'CANCELLED' LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, spotID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// HasActiveForLake reports whether any spot of a lake still has
// non-cancelled reservations. Used to refuse lake deletion.
func (r *ReservationRepo) HasActiveForLake(ctx context.Context, lakeID uint64) (bool, error) {
	const q = `SELECT 1 FROM reservations WHERE lake_id = ? AND status <> 'CANCELLED' LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, lakeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountByStatus returns reservation counts grouped by status, used by the
// admin stats endpoint.
func (r *ReservationRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	const q = `SELECT status, COUNT(*) FROM reservations GROUP BY status`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int64)
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *ReservationRepo) list(ctx context.Context, q string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *res)
	}
	return items, rows.Err()
}
