package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctxWithQuery(q url.Values) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+q.Encode(), nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetUserIDTypes(t *testing.T) {
	e := echo.New()
	for _, tc := range []struct {
		name string
		val  any
		want uint64
	}{
		{"uint64", uint64(9), 9},
		{"int", 9, 9},
		{"int64", int64(9), 9},
		{"float64 from jwt claims", float64(9), 9},
		{"numeric string", "9", 9},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			c.Set("user_id", tc.val)
			got, err := getUserID(c)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetUserIDInvalid(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, err := getUserID(c)
	assert.Error(t, err)

	c.Set("user_id", "not-a-number")
	_, err = getUserID(c)
	assert.Error(t, err)
}

func TestParseDayRangeQuery(t *testing.T) {
	c := ctxWithQuery(url.Values{"startDate": {"2026-06-01"}, "endDate": {"2026-06-10"}})
	start, end, msg := parseDayRangeQuery(c)
	require.Empty(t, msg)
	assert.Equal(t, "2026-06-01", start.String())
	assert.Equal(t, "2026-06-10", end.String())
}

func TestParseDayRangeQueryErrors(t *testing.T) {
	_, _, msg := parseDayRangeQuery(ctxWithQuery(url.Values{"startDate": {"2026-06-01"}}))
	assert.Equal(t, "startDate and endDate are required", msg)

	_, _, msg = parseDayRangeQuery(ctxWithQuery(url.Values{"startDate": {"06/01/2026"}, "endDate": {"2026-06-10"}}))
	assert.NotEmpty(t, msg)

	_, _, msg = parseDayRangeQuery(ctxWithQuery(url.Values{"startDate": {"2026-06-10"}, "endDate": {"2026-06-01"}}))
	assert.Equal(t, "startDate must not be after endDate", msg)
}

func TestParseIDParam(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("15")
	id, ok := parseIDParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint64(15), id)

	c.SetParamValues("0")
	_, ok = parseIDParam(c, "id")
	assert.False(t, ok)

	c.SetParamValues("abc")
	_, ok = parseIDParam(c, "id")
	assert.False(t, ok)
}
