package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
	"github.com/iliyamo/lake-fishing-reservation/internal/repository"
)

// maxAvailabilityRangeDays bounds the per-day availability map so a single
// request cannot ask for years of data.
const maxAvailabilityRangeDays = 366

// AvailabilityHandler serves the read-only availability views: reserved
// dates of a spot, reserved spots of a lake on a day, and the per-day
// availability summary of a lake. The lake-scoped endpoints are public and
// sit behind the Redis response cache.
type AvailabilityHandler struct {
	AvailabilityRepo *repository.AvailabilityRepo
	SpotRepo         *repository.SpotRepo
	LakeRepo         *repository.LakeRepo
}

func NewAvailabilityHandler(availRepo *repository.AvailabilityRepo, spotRepo *repository.SpotRepo, lakeRepo *repository.LakeRepo) *AvailabilityHandler {
	return &AvailabilityHandler{AvailabilityRepo: availRepo, SpotRepo: spotRepo, LakeRepo: lakeRepo}
}

// ReservedDatesForSpot handles GET /v1/reservations/spot/:spotId/reserved-dates.
// It returns the days inside [startDate, endDate] on which the spot holds a
// non-cancelled reservation, ascending.
func (h *AvailabilityHandler) ReservedDatesForSpot(c echo.Context) error {
	spotID, ok := parseIDParam(c, "spotId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid spot id"})
	}
	start, end, errMsg := parseDayRangeQuery(c)
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errMsg})
	}
	ctx := c.Request().Context()
	if _, err := h.SpotRepo.GetByID(ctx, spotID); err != nil {
		if errors.Is(err, repository.ErrSpotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "spot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	days, err := h.AvailabilityRepo.ReservedDaysForSpot(ctx, spotID, start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reserved dates"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"spot_id":        spotID,
		"reserved_dates": days,
	})
}

// ReservedSpotsForDate handles GET /v1/reservations/lake/:lakeId/date/:date.
// It returns the ids of the lake's spots that are taken on the given day.
func (h *AvailabilityHandler) ReservedSpotsForDate(c echo.Context) error {
	lakeID, ok := parseIDParam(c, "lakeId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lake id"})
	}
	day, err := model.ParseDay(c.Param("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if _, err := h.LakeRepo.GetByID(ctx, lakeID); err != nil {
		if errors.Is(err, repository.ErrLakeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lake not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	ids, err := h.AvailabilityRepo.ReservedSpotIDsForLakeOnDay(ctx, lakeID, day)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reserved spots"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"lake_id":           lakeID,
		"date":              day,
		"reserved_spot_ids": ids,
	})
}

type dayAvailability struct {
	Reserved  int `json:"reserved"`
	Available int `json:"available"`
}

// LakeAvailability handles GET /v1/reservations/lake/:lakeId/availability.
// For every day in [startDate, endDate] it reports how many of the lake's
// active spots are reserved and how many remain free. A lake with no active
// spots answers with an empty map rather than an error.
func (h *AvailabilityHandler) LakeAvailability(c echo.Context) error {
	lakeID, ok := parseIDParam(c, "lakeId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lake id"})
	}
	start, end, errMsg := parseDayRangeQuery(c)
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errMsg})
	}
	if end.After(start.AddDays(maxAvailabilityRangeDays - 1)) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date range too large"})
	}
	ctx := c.Request().Context()
	if _, err := h.LakeRepo.GetByID(ctx, lakeID); err != nil {
		if errors.Is(err, repository.ErrLakeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "lake not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	total, err := h.SpotRepo.CountActiveForLake(ctx, lakeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if total == 0 {
		return c.JSON(http.StatusOK, echo.Map{
			"lake_id":      lakeID,
			"total_spots":  0,
			"availability": map[string]dayAvailability{},
		})
	}
	counts, err := h.AvailabilityRepo.ReservedCountsForLake(ctx, lakeID, start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load availability"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"lake_id":      lakeID,
		"total_spots":  total,
		"availability": buildAvailability(start, end, total, counts),
	})
}

// buildAvailability expands the sparse per-day reserved counts into a dense
// map covering every day of the range. Reserved counts above the active
// total can occur when spots were deactivated after being booked; available
// is clamped at zero so the summary never goes negative.
func buildAvailability(start, end model.Day, total int, counts []repository.DayCount) map[string]dayAvailability {
	reserved := make(map[string]int, len(counts))
	for _, dc := range counts {
		reserved[dc.Day.String()] = dc.Count
	}
	out := make(map[string]dayAvailability)
	for d := start; !d.After(end); d = d.AddDays(1) {
		n := reserved[d.String()]
		avail := total - n
		if avail < 0 {
			avail = 0
		}
		out[d.String()] = dayAvailability{Reserved: n, Available: avail}
	}
	return out
}
