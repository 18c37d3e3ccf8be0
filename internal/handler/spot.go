package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
	"github.com/iliyamo/lake-fishing-reservation/internal/repository"
)

// SpotHandler serves the public spot listing of a lake and the admin CRUD
// on spots.
type SpotHandler struct {
	SpotRepo        *repository.SpotRepo
	LakeRepo        *repository.LakeRepo
	ReservationRepo *repository.ReservationRepo
}

func NewSpotHandler(spotRepo *repository.SpotRepo, lakeRepo *repository.LakeRepo, resRepo *repository.ReservationRepo) *SpotHandler {
	return &SpotHandler{SpotRepo: spotRepo, LakeRepo: lakeRepo, ReservationRepo: resRepo}
}

type spotReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	GPSLink     *string  `json:"gps_link"`
	IsActive    *bool    `json:"is_active"`
}

func validCoords(lat, lon *float64) bool {
	if lat != nil && (*lat < -90 || *lat > 90) {
		return false
	}
	if lon != nil && (*lon < -180 || *lon > 180) {
		return false
	}
	return true
}

// ListByLake handles GET /v1/spots/lake/:lakeId. Public sees active spots
// only; an authenticated admin sees all of them.
func (h *SpotHandler) ListByLake(c echo.Context) error {
	lakeID, ok := parseIDParam(c, "lakeId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lake id"})
	}
	ctx := c.Request().Context()
	if _, err := h.LakeRepo.GetByID(ctx, lakeID); err != nil {
		if errors.Is(err, repository.ErrLakeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lake not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lake"})
	}
	spots, err := h.SpotRepo.ListByLake(ctx, lakeID, !isAdmin(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load spots"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"lake_id": lakeID,
		"count":   len(spots),
		"spots":   spots,
	})
}

// ListAllAdmin handles GET /v1/spots/admin/all, the management listing that
// ignores the active flag.
func (h *SpotHandler) ListAllAdmin(c echo.Context) error {
	spots, err := h.SpotRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load spots"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(spots),
		"spots": spots,
	})
}

// Get handles GET /v1/spots/:id. Public.
func (h *SpotHandler) Get(c echo.Context) error {
	spotID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid spot id"})
	}
	spot, err := h.SpotRepo.GetByID(c.Request().Context(), spotID)
	if err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load spot"})
	}
	return c.JSON(http.StatusOK, echo.Map{"spot": spot})
}

// Create handles POST /v1/lakes/:id/spots (admin). New spots default to
// active unless the body says otherwise.
func (h *SpotHandler) Create(c echo.Context) error {
	lakeID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lake id"})
	}
	var req spotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if !validCoords(req.Latitude, req.Longitude) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coordinates"})
	}
	ctx := c.Request().Context()
	if _, err := h.LakeRepo.GetByID(ctx, lakeID); err != nil {
		if errors.Is(err, repository.ErrLakeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lake not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lake"})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	spot := &model.Spot{
		LakeID:      lakeID,
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		GPSLink:     req.GPSLink,
		IsActive:    active,
	}
	if err := h.SpotRepo.Create(ctx, spot); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create spot"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"spot": spot})
}

// Update handles PUT /v1/spots/:id (admin). Deactivating a spot leaves its
// existing reservations untouched; it only blocks new ones.
func (h *SpotHandler) Update(c echo.Context) error {
	spotID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid spot id"})
	}
	var req spotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if !validCoords(req.Latitude, req.Longitude) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coordinates"})
	}
	ctx := c.Request().Context()
	spot, err := h.SpotRepo.GetByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load spot"})
	}
	spot.Name = req.Name
	spot.Description = strings.TrimSpace(req.Description)
	spot.Latitude = req.Latitude
	spot.Longitude = req.Longitude
	spot.GPSLink = req.GPSLink
	if req.IsActive != nil {
		spot.IsActive = *req.IsActive
	}
	if err := h.SpotRepo.Update(ctx, spot); err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update spot"})
	}
	return c.JSON(http.StatusOK, echo.Map{"spot": spot})
}

// Delete handles DELETE /v1/spots/:id (admin). A spot with non-cancelled
// reservations cannot be removed; deactivate it instead.
func (h *SpotHandler) Delete(c echo.Context) error {
	spotID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid spot id"})
	}
	ctx := c.Request().Context()
	if _, err := h.SpotRepo.GetByID(ctx, spotID); err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load spot"})
	}
	busy, err := h.ReservationRepo.HasActiveForSpot(ctx, spotID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check reservations"})
	}
	if busy {
		return c.JSON(http.StatusConflict, echo.Map{"error": "spot has active reservations"})
	}
	if err := h.SpotRepo.Delete(ctx, spotID); err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete spot"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "spot deleted"})
}
