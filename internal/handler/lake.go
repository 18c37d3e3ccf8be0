package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
	"github.com/iliyamo/lake-fishing-reservation/internal/repository"
)

// LakeHandler serves the public lake catalogue and the admin CRUD on it.
type LakeHandler struct {
	LakeRepo        *repository.LakeRepo
	SpotRepo        *repository.SpotRepo
	ReviewRepo      *repository.ReviewRepo
	ReservationRepo *repository.ReservationRepo
}

func NewLakeHandler(lakeRepo *repository.LakeRepo, spotRepo *repository.SpotRepo, reviewRepo *repository.ReviewRepo, resRepo *repository.ReservationRepo) *LakeHandler {
	return &LakeHandler{LakeRepo: lakeRepo, SpotRepo: spotRepo, ReviewRepo: reviewRepo, ReservationRepo: resRepo}
}

type lakeReq struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	ImageURL      *string `json:"image_url"`
	GoogleMapsURL *string `json:"google_maps_url"`
}

// List handles GET /v1/lakes. Public; newest lakes first.
func (h *LakeHandler) List(c echo.Context) error {
	lakes, err := h.LakeRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lakes"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(lakes),
		"lakes": lakes,
	})
}

// Get handles GET /v1/lakes/:id. Public; the response bundles the lake's
// active spots and its review summary so the detail page needs one call.
func (h *LakeHandler) Get(c echo.Context) error {
	lakeID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lake id"})
	}
	ctx := c.Request().Context()
	lake, err := h.LakeRepo.GetByID(ctx, lakeID)
	if err != nil {
		if errors.Is(err, repository.ErrLakeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lake not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lake"})
	}
	spots, err := h.SpotRepo.ListByLake(ctx, lakeID, true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load spots"})
	}
	avg, reviewCount, err := h.ReviewRepo.AverageForLake(ctx, lakeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"lake":           lake,
		"spots":          spots,
		"spot_count":     len(spots),
		"average_rating": avg,
		"review_count":   reviewCount,
	})
}

// Create handles POST /v1/lakes (admin).
func (h *LakeHandler) Create(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req lakeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if req.Name == "" || req.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and location required"})
	}
	lake := &model.Lake{
		Name:          req.Name,
		Description:   strings.TrimSpace(req.Description),
		Location:      req.Location,
		ImageURL:      req.ImageURL,
		GoogleMapsURL: req.GoogleMapsURL,
		CreatedBy:     adminID,
	}
	if err := h.LakeRepo.Create(c.Request().Context(), lake); err != nil {
		if errors.Is(err, repository.ErrDuplicateLakeName) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a lake with this name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create lake"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"lake": lake})
}

// Update handles PUT /v1/lakes/:id (admin).
func (h *LakeHandler) Update(c echo.Context) error {
	lakeID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lake id"})
	}
	var req lakeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	if req.Name == "" || req.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and location required"})
	}
	ctx := c.Request().Context()
	lake, err := h.LakeRepo.GetByID(ctx, lakeID)
	if err != nil {
		if errors.Is(err, repository.ErrLakeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lake not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lake"})
	}
	lake.Name = req.Name
	lake.Description = strings.TrimSpace(req.Description)
	lake.Location = req.Location
	lake.ImageURL = req.ImageURL
	lake.GoogleMapsURL = req.GoogleMapsURL
	if err := h.LakeRepo.Update(ctx, lake); err != nil {
		if errors.Is(err, repository.ErrDuplicateLakeName) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a lake with this name already exists"})
		}
		if errors.Is(err, repository.ErrLakeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lake not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update lake"})
	}
	return c.JSON(http.StatusOK, echo.Map{"lake": lake})
}

// Delete handles DELETE /v1/lakes/:id (admin). A lake whose spots still
// carry non-cancelled reservations cannot be removed.
func (h *LakeHandler) Delete(c echo.Context) error {
	lakeID, ok := parseIDParam(c, "id")
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
	busy, err := h.ReservationRepo.HasActiveForLake(ctx, lakeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check reservations"})
	}
	if busy {
		return c.JSON(http.StatusConflict, echo.Map{"error": "lake has active reservations"})
	}
	if err := h.LakeRepo.Delete(ctx, lakeID); err != nil {
		if errors.Is(err, repository.ErrLakeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lake not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete lake"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "lake deleted"})
}
