package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
	"github.com/iliyamo/lake-fishing-reservation/internal/repository"
)

// These tests drive the reservation handler through echo contexts against a
// live MySQL instance, the same way the repository suite does. They are
// skipped unless TEST_DATABASE_DSN is set.

type handlerTestEnv struct {
	db      *sql.DB
	e       *echo.Echo
	h       *ReservationHandler
	ownerID uint64
	otherID uint64
	lakeID  uint64
	spotID  uint64
}

func newHandlerTestEnv(t *testing.T) *handlerTestEnv {
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
	users := repository.NewUserRepo(db)

	ownerID, err := users.Create(ctx, "owner-"+suffix+"@example.com", "password123", "Owner", model.RoleUser, 4)
	require.NoError(t, err)
	otherID, err := users.Create(ctx, "other-"+suffix+"@example.com", "password123", "Other", model.RoleUser, 4)
	require.NoError(t, err)

	lake := &model.Lake{Name: "Handler Lake " + suffix, Description: "test", Location: "nowhere", CreatedBy: ownerID}
	require.NoError(t, repository.NewLakeRepo(db).Create(ctx, lake))

	spot := &model.Spot{LakeID: lake.ID, Name: "Spot " + suffix, IsActive: true}
	require.NoError(t, repository.NewSpotRepo(db).Create(ctx, spot))

	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM reservations WHERE lake_id = ?", lake.ID)
		_, _ = db.Exec("DELETE FROM spots WHERE id = ?", spot.ID)
		_, _ = db.Exec("DELETE FROM lakes WHERE id = ?", lake.ID)
		_, _ = db.Exec("DELETE FROM users WHERE id IN (?, ?)", ownerID, otherID)
	})

	h := NewReservationHandler(
		repository.NewReservationRepo(db),
		repository.NewSpotRepo(db),
		repository.NewLakeRepo(db),
	)
	return &handlerTestEnv{
		db:      db,
		e:       echo.New(),
		h:       h,
		ownerID: ownerID,
		otherID: otherID,
		lakeID:  lake.ID,
		spotID:  spot.ID,
	}
}

// newContext builds an echo context carrying the claims the JWT middleware
// would have set. Numeric claims arrive as float64, so the fixture stores
// the user id the same way.
func (env *handlerTestEnv) newContext(method, target string, body any, userID uint64, role string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	c.Set("user_id", float64(userID))
	c.Set("role", role)
	return c, rec
}

func (env *handlerTestEnv) createReservation(t *testing.T, day model.Day) *model.Reservation {
	t.Helper()
	c, rec := env.newContext(http.MethodPost, "/v1/reservations", echo.Map{
		"spot_id": env.spotID,
		"lake_id": env.lakeID,
		"date":    day.String(),
	}, env.ownerID, model.RoleUser)
	require.NoError(t, env.h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Reservation model.Reservation `json:"reservation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.Reservation.ID)
	return &resp.Reservation
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestCreateRejectsPastDate(t *testing.T) {
	env := newHandlerTestEnv(t)

	c, rec := env.newContext(http.MethodPost, "/v1/reservations", echo.Map{
		"spot_id": env.spotID,
		"lake_id": env.lakeID,
		"date":    model.Today().AddDays(-1).String(),
	}, env.ownerID, model.RoleUser)
	require.NoError(t, env.h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cannot reserve a spot in the past", decodeError(t, rec))

	// Today itself is still bookable.
	res := env.createReservation(t, model.Today())
	assert.Equal(t, model.ReservationConfirmed, res.Status)
}

func TestReservationOwnership(t *testing.T) {
	env := newHandlerTestEnv(t)
	res := env.createReservation(t, model.Today().AddDays(30))
	idStr := fmt.Sprintf("%d", res.ID)

	// Another user may neither read nor cancel it.
	c, rec := env.newContext(http.MethodGet, "/v1/reservations/"+idStr, nil, env.otherID, model.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues(idStr)
	require.NoError(t, env.h.Get(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = env.newContext(http.MethodPut, "/v1/reservations/"+idStr+"/cancel", nil, env.otherID, model.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues(idStr)
	require.NoError(t, env.h.Cancel(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// An admin may read any reservation.
	c, rec = env.newContext(http.MethodGet, "/v1/reservations/"+idStr, nil, env.otherID, model.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues(idStr)
	require.NoError(t, env.h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The owner still can.
	c, rec = env.newContext(http.MethodGet, "/v1/reservations/"+idStr, nil, env.ownerID, model.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues(idStr)
	require.NoError(t, env.h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCancelTwiceConflicts(t *testing.T) {
	env := newHandlerTestEnv(t)
	res := env.createReservation(t, model.Today().AddDays(14))
	idStr := fmt.Sprintf("%d", res.ID)

	c, rec := env.newContext(http.MethodPut, "/v1/reservations/"+idStr+"/cancel", nil, env.ownerID, model.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues(idStr)
	require.NoError(t, env.h.Cancel(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Reservation model.Reservation `json:"reservation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ReservationCancelled, resp.Reservation.Status)

	// Cancellation is not idempotent; the second attempt conflicts.
	c, rec = env.newContext(http.MethodPut, "/v1/reservations/"+idStr+"/cancel", nil, env.ownerID, model.RoleUser)
	c.SetParamNames("id")
	c.SetParamValues(idStr)
	require.NoError(t, env.h.Cancel(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "reservation already cancelled", decodeError(t, rec))
}
