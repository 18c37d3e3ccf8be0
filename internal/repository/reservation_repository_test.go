package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
)

// These tests exercise the reservation invariants against a live MySQL
// instance carrying the migrations/schema.sql schema. They are skipped
// unless TEST_DATABASE_DSN is set, e.g.
//
//	TEST_DATABASE_DSN="root@tcp(localhost:3306)/fishing_test?parseTime=true&loc=UTC" go test ./...

type testEnv struct {
	db     *sql.DB
	res    *ReservationRepo
	avail  *AvailabilityRepo
	userID uint64
	lakeID uint64
	spotID uint64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Ping())

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())
	ctx := context.Background()

	userID, err := NewUserRepo(db).Create(ctx, "tester-"+suffix+"@example.com", "password123", "Tester", model.RoleUser, 4)
	require.NoError(t, err)

	lake := &model.Lake{Name: "Test Lake " + suffix, Description: "test", Location: "nowhere", CreatedBy: userID}
	require.NoError(t, NewLakeRepo(db).Create(ctx, lake))

	spot := &model.Spot{LakeID: lake.ID, Name: "Spot " + suffix, IsActive: true}
	require.NoError(t, NewSpotRepo(db).Create(ctx, spot))

	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM reservations WHERE lake_id = ?", lake.ID)
		_, _ = db.Exec("DELETE FROM spots WHERE id = ?", spot.ID)
		_, _ = db.Exec("DELETE FROM lakes WHERE id = ?", lake.ID)
		_, _ = db.Exec("DELETE FROM users WHERE id = ?", userID)
	})

	return &testEnv{
		db:     db,
		res:    NewReservationRepo(db),
		avail:  NewAvailabilityRepo(db),
		userID: userID,
		lakeID: lake.ID,
		spotID: spot.ID,
	}
}

func (e *testEnv) create(t *testing.T, day model.Day) (*model.Reservation, error) {
	t.Helper()
	ctx := context.Background()
	tx, err := e.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	res := &model.Reservation{
		UserID: e.userID,
		SpotID: e.spotID,
		LakeID: e.lakeID,
		Date:   day,
		Status: model.ReservationConfirmed,
	}
	if err := e.res.CreateTx(ctx, tx, res); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	require.NoError(t, tx.Commit())
	return res, nil
}

func (e *testEnv) cancel(t *testing.T, id uint64) {
	t.Helper()
	ctx := context.Background()
	tx, err := e.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = e.res.GetForUpdateTx(ctx, tx, id)
	require.NoError(t, err)
	require.NoError(t, e.res.MarkCancelledTx(ctx, tx, id))
	require.NoError(t, tx.Commit())
}

func mustDay(t *testing.T, s string) model.Day {
	t.Helper()
	d, err := model.ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestSlotExclusivity(t *testing.T) {
	env := newTestEnv(t)
	day := mustDay(t, "2030-06-15")

	first, err := env.create(t, day)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationConfirmed, first.Status)
	assert.Equal(t, day.String(), first.Date.String())
	assert.False(t, first.CreatedAt.IsZero())

	_, err = env.create(t, day)
	assert.ErrorIs(t, err, ErrSlotTaken)

	ctx := context.Background()
	tx, err := env.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	free, err := env.res.IsSpotFreeTx(ctx, tx, env.spotID, day)
	require.NoError(t, err)
	assert.False(t, free)
	_ = tx.Rollback()

	// A different day remains bookable.
	_, err = env.create(t, day.AddDays(1))
	assert.NoError(t, err)
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	env := newTestEnv(t)
	day := mustDay(t, "2030-07-01")

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		conflict int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := context.Background()
			tx, err := env.db.BeginTx(ctx, nil)
			if err != nil {
				return
			}
			res := &model.Reservation{
				UserID: env.userID,
				SpotID: env.spotID,
				LakeID: env.lakeID,
				Date:   day,
				Status: model.ReservationConfirmed,
			}
			err = env.res.CreateTx(ctx, tx, res)
			if err != nil {
				_ = tx.Rollback()
				mu.Lock()
				if err == ErrSlotTaken {
					conflict++
				}
				mu.Unlock()
				return
			}
			if err := tx.Commit(); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created, "exactly one concurrent create must win")
	assert.Equal(t, workers-1, conflict)
}

func TestCancelReopensSlot(t *testing.T) {
	env := newTestEnv(t)
	day := mustDay(t, "2030-08-10")

	first, err := env.create(t, day)
	require.NoError(t, err)
	env.cancel(t, first.ID)

	got, err := env.res.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, got.Status)
	assert.True(t, got.IsCancelled())

	// The slot is free again and a new reservation coexists with the
	// cancelled row.
	second, err := env.create(t, day)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestReservedDaysForSpotRangeBounds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, s := range []string{"2030-09-01", "2030-09-05", "2030-09-10"} {
		_, err := env.create(t, mustDay(t, s))
		require.NoError(t, err)
	}
	cancelled, err := env.create(t, mustDay(t, "2030-09-07"))
	require.NoError(t, err)
	env.cancel(t, cancelled.ID)

	// Both bounds inclusive; the cancelled day must not appear.
	days, err := env.avail.ReservedDaysForSpot(ctx, env.spotID, mustDay(t, "2030-09-01"), mustDay(t, "2030-09-10"))
	require.NoError(t, err)
	got := make([]string, 0, len(days))
	for _, d := range days {
		got = append(got, d.String())
	}
	assert.Equal(t, []string{"2030-09-01", "2030-09-05", "2030-09-10"}, got)

	days, err = env.avail.ReservedDaysForSpot(ctx, env.spotID, mustDay(t, "2030-09-02"), mustDay(t, "2030-09-09"))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2030-09-05", days[0].String())
}

func TestReservedCountsForLake(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	spotRepo := NewSpotRepo(env.db)
	second := &model.Spot{LakeID: env.lakeID, Name: fmt.Sprintf("Second %d", time.Now().UnixNano()), IsActive: true}
	require.NoError(t, spotRepo.Create(ctx, second))
	t.Cleanup(func() { _, _ = env.db.Exec("DELETE FROM spots WHERE id = ?", second.ID) })

	day := mustDay(t, "2030-10-01")
	_, err := env.create(t, day)
	require.NoError(t, err)

	tx, err := env.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	other := &model.Reservation{UserID: env.userID, SpotID: second.ID, LakeID: env.lakeID, Date: day, Status: model.ReservationConfirmed}
	require.NoError(t, env.res.CreateTx(ctx, tx, other))
	require.NoError(t, tx.Commit())

	_, err = env.create(t, day.AddDays(1))
	require.NoError(t, err)

	counts, err := env.avail.ReservedCountsForLake(ctx, env.lakeID, day, day.AddDays(2))
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, day.String(), counts[0].Day.String())
	assert.Equal(t, 2, counts[0].Count)
	assert.Equal(t, day.AddDays(1).String(), counts[1].Day.String())
	assert.Equal(t, 1, counts[1].Count)

	ids, err := env.avail.ReservedSpotIDsForLakeOnDay(ctx, env.lakeID, day)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{env.spotID, second.ID}, ids)
}

func TestListByUserFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	early, err := env.create(t, mustDay(t, "2030-11-01"))
	require.NoError(t, err)
	late, err := env.create(t, mustDay(t, "2030-11-20"))
	require.NoError(t, err)
	env.cancel(t, early.ID)

	all, err := env.res.ListByUser(ctx, env.userID, "", model.Day{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Ascending by date.
	assert.Equal(t, early.ID, all[0].ID)
	assert.Equal(t, late.ID, all[1].ID)

	confirmed, err := env.res.ListByUser(ctx, env.userID, model.ReservationConfirmed, model.Day{})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, late.ID, confirmed[0].ID)

	upcoming, err := env.res.ListByUser(ctx, env.userID, "", mustDay(t, "2030-11-10"))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, late.ID, upcoming[0].ID)
}
