package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lake-fishing-reservation/internal/handler"
)

// RegisterPublic registers the unauthenticated browse endpoints: the lake
// catalogue, spot listings, reviews and the availability views. cacheMW is
// the Redis response cache applied to the two availability endpoints; pass
// nil to serve them uncached.
func RegisterPublic(e *echo.Echo, l *handler.LakeHandler, s *handler.SpotHandler, rv *handler.ReviewHandler, av *handler.AvailabilityHandler, cacheMW echo.MiddlewareFunc) {
	e.GET("/v1/lakes", l.List)
	e.GET("/v1/lakes/:id", l.Get)
	e.GET("/v1/spots/lake/:lakeId", s.ListByLake)
	e.GET("/v1/spots/:id", s.Get)
	e.GET("/v1/reviews/lake/:lakeId", rv.ListByLake)

	availability := []echo.MiddlewareFunc{}
	if cacheMW != nil {
		availability = append(availability, cacheMW)
	}
	e.GET("/v1/reservations/lake/:lakeId/date/:date", av.ReservedSpotsForDate, availability...)
	e.GET("/v1/reservations/lake/:lakeId/availability", av.LakeAvailability, availability...)
}
