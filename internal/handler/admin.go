package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lake-fishing-reservation/internal/repository"
)

// AdminHandler serves the admin dashboard aggregates.
type AdminHandler struct {
	UserRepo        *repository.UserRepo
	LakeRepo        *repository.LakeRepo
	SpotRepo        *repository.SpotRepo
	ReservationRepo *repository.ReservationRepo
	ReviewRepo      *repository.ReviewRepo
}

func NewAdminHandler(userRepo *repository.UserRepo, lakeRepo *repository.LakeRepo, spotRepo *repository.SpotRepo, resRepo *repository.ReservationRepo, reviewRepo *repository.ReviewRepo) *AdminHandler {
	return &AdminHandler{
		UserRepo:        userRepo,
		LakeRepo:        lakeRepo,
		SpotRepo:        spotRepo,
		ReservationRepo: resRepo,
		ReviewRepo:      reviewRepo,
	}
}

// Stats handles GET /v1/admin/stats: platform-wide entity counts plus
// reservations broken down by status.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	users, err := h.UserRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
	}
	lakes, err := h.LakeRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
	}
	spots, err := h.SpotRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
	}
	reviews, err := h.ReviewRepo.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
	}
	byStatus, err := h.ReservationRepo.CountByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
	}
	var totalReservations int64
	for _, n := range byStatus {
		totalReservations += n
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users":                  users,
		"lakes":                  lakes,
		"spots":                  spots,
		"reviews":                reviews,
		"reservations":           totalReservations,
		"reservations_by_status": byStatus,
	})
}
