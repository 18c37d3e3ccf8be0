package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
	"github.com/iliyamo/lake-fishing-reservation/internal/queue"
	"github.com/iliyamo/lake-fishing-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/lake-fishing-reservation/internal/service"
)

// ReservationHandler implements the reservation lifecycle: create, cancel,
// fetch and the two listings. All methods assume JWT authentication has
// already run; role checks beyond the route middleware (owner-or-admin)
// happen here. Create and cancel run their storage work inside a single
// transaction so the availability pre-check and the write commit together.
type ReservationHandler struct {
	ReservationRepo *repository.ReservationRepo
	SpotRepo        *repository.SpotRepo
	LakeRepo        *repository.LakeRepo
}

func NewReservationHandler(resRepo *repository.ReservationRepo, spotRepo *repository.SpotRepo, lakeRepo *repository.LakeRepo) *ReservationHandler {
	return &ReservationHandler{ReservationRepo: resRepo, SpotRepo: spotRepo, LakeRepo: lakeRepo}
}

type createReservationReq struct {
	SpotID uint64    `json:"spot_id"`
	LakeID uint64    `json:"lake_id"`
	Date   model.Day `json:"date"`
	Notes  string    `json:"notes"`
}

// Create handles POST /v1/reservations. It validates the spot and lake,
// rejects past dates, and books the (spot, day) slot inside one
// transaction. The availability pre-check produces the friendly 409 before
// the insert; the unique index on (spot_id, reserved_on) is what actually
// decides the race when two users submit the same slot concurrently. The
// loser's insert fails with a duplicate key, surfaced as the same 409.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.SpotID == 0 || req.LakeID == 0 || req.Date.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "spot_id, lake_id and date are required"})
	}
	req.Notes = strings.TrimSpace(req.Notes)
	if len(req.Notes) > model.MaxReservationNotesLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "notes must be at most 500 characters"})
	}

	ctx := c.Request().Context()
	spot, err := h.SpotRepo.GetByID(ctx, req.SpotID)
	if err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !spot.IsActive {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "spot is currently inactive"})
	}
	lake, err := h.LakeRepo.GetByID(ctx, req.LakeID)
	if err != nil {
		if errors.Is(err, repository.ErrLakeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lake not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if spot.LakeID != lake.ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "spot does not belong to the given lake"})
	}
	if req.Date.Before(model.Today()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot reserve a spot in the past"})
	}

	tx, err := h.ReservationRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	free, err := h.ReservationRepo.IsSpotFreeTx(ctx, tx, spot.ID, req.Date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	if !free {
		return c.JSON(http.StatusConflict, echo.Map{"error": "spot already reserved for that day"})
	}
	res := &model.Reservation{
		UserID: userID,
		SpotID: spot.ID,
		LakeID: lake.ID,
		Date:   req.Date,
		Status: model.ReservationConfirmed,
		Notes:  req.Notes,
	}
	if err := h.ReservationRepo.CreateTx(ctx, tx, res); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			// Lost the race between the pre-check and the insert.
			return c.JSON(http.StatusConflict, echo.Map{"error": "spot already reserved for that day"})
		}
		log.Printf("reservation create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// Event delivery is best effort and must not delay or fail the request.
	go func(ev queue.ReservationConfirmedEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationConfirmed(ctx, ev)
	}(queue.ReservationConfirmedEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		SpotID:        spot.ID,
		SpotName:      spot.Name,
		LakeID:        lake.ID,
		LakeName:      lake.Name,
		Date:          res.Date.String(),
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{"reservation": res})
}

// Get handles GET /v1/reservations/:id. Only the owner or an admin may
// read a reservation.
func (h *ReservationHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	res, err := h.ReservationRepo.GetByID(c.Request().Context(), resID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	if res.UserID != userID && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// Cancel handles PUT /v1/reservations/:id/cancel. The owner or an admin
// may cancel; cancelling twice is a conflict by design so double-cancel
// attempts are visible to the caller. The row is locked for the duration
// of the status check so two racing cancels cannot both observe CONFIRMED.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	tx, err := h.ReservationRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	res, err := h.ReservationRepo.GetForUpdateTx(ctx, tx, resID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	if res.UserID != userID && !isAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if res.IsCancelled() {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already cancelled"})
	}
	if err := h.ReservationRepo.MarkCancelledTx(ctx, tx, res.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	res.Status = model.ReservationCancelled
	res.UpdatedAt = time.Now().UTC()

	go func(ev queue.ReservationCancelledEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationCancelled(ctx, ev)
	}(queue.ReservationCancelledEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		SpotID:        res.SpotID,
		LakeID:        res.LakeID,
		Date:          res.Date.String(),
		CancelledBy:   userID,
		CancelledAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "reservation cancelled",
		"reservation": res,
	})
}

// ListMine handles GET /v1/reservations/my?status&upcoming. Results are
// ordered by date ascending; upcoming=true keeps only reservations dated
// today or later.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status != "" && !model.ValidStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}
	var from model.Day
	if c.QueryParam("upcoming") == "true" {
		from = model.Today()
	}
	items, err := h.ReservationRepo.ListByUser(c.Request().Context(), userID, status, from)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(items),
		"reservations": items,
	})
}

// ListAll handles GET /v1/reservations/admin/all. The route is registered
// behind the ADMIN role middleware; filters are optional and the date
// range may be open on either end. Results are ordered by date descending.
func (h *ReservationHandler) ListAll(c echo.Context) error {
	var f repository.AdminListFilter
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if status != "" {
		if !model.ValidStatus(status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
		}
		f.Status = status
	}
	if raw := strings.TrimSpace(c.QueryParam("lakeId")); raw != "" {
		id, err := parseUint(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lakeId"})
		}
		f.LakeID = id
	}
	if raw := strings.TrimSpace(c.QueryParam("startDate")); raw != "" {
		d, err := model.ParseDay(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		f.Start = d
	}
	if raw := strings.TrimSpace(c.QueryParam("endDate")); raw != "" {
		d, err := model.ParseDay(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		f.End = d
	}
	if !f.Start.IsZero() && !f.End.IsZero() && f.Start.After(f.End) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "startDate must not be after endDate"})
	}
	items, err := h.ReservationRepo.ListAll(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":        len(items),
		"reservations": items,
	})
}
