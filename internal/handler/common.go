package handler // handler defines http handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lake-fishing-reservation/internal/model"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
// JWT numeric claims arrive as float64; older tokens may carry strings.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole returns the role claim stored by the JWT middleware, or "" when
// the request is unauthenticated.
func getRole(c echo.Context) string {
	if v, ok := c.Get("role").(string); ok {
		return v
	}
	return ""
}

// isAdmin reports whether the current request carries the ADMIN role.
func isAdmin(c echo.Context) bool { return getRole(c) == model.RoleAdmin }

// parseUint parses a positive decimal identifier.
func parseUint(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}

// parseIDParam parses a positive numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parseDayRangeQuery reads the startDate/endDate query parameters. Both are
// required and must form a non-inverted range; the error string is suitable
// for returning to the client as-is.
func parseDayRangeQuery(c echo.Context) (start, end model.Day, errMsg string) {
	rawStart := strings.TrimSpace(c.QueryParam("startDate"))
	rawEnd := strings.TrimSpace(c.QueryParam("endDate"))
	if rawStart == "" || rawEnd == "" {
		return model.Day{}, model.Day{}, "startDate and endDate are required"
	}
	start, err := model.ParseDay(rawStart)
	if err != nil {
		return model.Day{}, model.Day{}, err.Error()
	}
	end, err = model.ParseDay(rawEnd)
	if err != nil {
		return model.Day{}, model.Day{}, err.Error()
	}
	if start.After(end) {
		return model.Day{}, model.Day{}, "startDate must not be after endDate"
	}
	return start, end, ""
}
