package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lake-fishing-reservation/internal/handler"
	"github.com/iliyamo/lake-fishing-reservation/internal/middleware"
	"github.com/iliyamo/lake-fishing-reservation/internal/model"
)

// RegisterUser registers the authenticated reservation and review endpoints
// under /v1. Admins pass the role check too so they can act on any
// reservation through the same routes; per-resource ownership is enforced
// in the handlers.
func RegisterUser(e *echo.Echo, r *handler.ReservationHandler, av *handler.AvailabilityHandler, rv *handler.ReviewHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleUser, model.RoleAdmin),
	)

	g.POST("/reservations", r.Create)
	g.GET("/reservations/my", r.ListMine)
	g.GET("/reservations/spot/:spotId/reserved-dates", av.ReservedDatesForSpot)
	g.GET("/reservations/:id", r.Get)
	g.PUT("/reservations/:id/cancel", r.Cancel)

	g.POST("/reviews", rv.Create)
	g.GET("/reviews/my", rv.ListMine)
	g.PUT("/reviews/:id", rv.Update)
	g.DELETE("/reviews/:id", rv.Delete)
}
