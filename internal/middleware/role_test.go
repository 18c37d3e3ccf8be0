package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithRole(t *testing.T, role any, allowed ...string) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := RequireRole(allowed...)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	return rec.Code
}

func TestRequireRoleAllowed(t *testing.T) {
	assert.Equal(t, http.StatusOK, runWithRole(t, "ADMIN", "ADMIN"))
	assert.Equal(t, http.StatusOK, runWithRole(t, "USER", "USER", "ADMIN"))
}

func TestRequireRoleDenied(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, runWithRole(t, "USER", "ADMIN"))
}

func TestRequireRoleMissingOrWrongType(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, runWithRole(t, nil, "USER"))
	assert.Equal(t, http.StatusForbidden, runWithRole(t, 12, "USER"))
}
