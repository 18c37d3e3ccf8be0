package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lake-fishing-reservation/internal/handler"
	"github.com/iliyamo/lake-fishing-reservation/internal/middleware"
	"github.com/iliyamo/lake-fishing-reservation/internal/model"
)

// RegisterAdmin registers the management endpoints. All routes require a
// valid JWT carrying the ADMIN role: lake and spot CRUD, the full
// reservation and review listings and the dashboard stats.
func RegisterAdmin(e *echo.Echo, l *handler.LakeHandler, s *handler.SpotHandler, r *handler.ReservationHandler, rv *handler.ReviewHandler, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	g.POST("/lakes", l.Create)
	g.PUT("/lakes/:id", l.Update)
	g.DELETE("/lakes/:id", l.Delete)

	g.POST("/lakes/:id/spots", s.Create)
	g.GET("/spots/admin/all", s.ListAllAdmin)
	g.PUT("/spots/:id", s.Update)
	g.DELETE("/spots/:id", s.Delete)

	g.GET("/reservations/admin/all", r.ListAll)
	g.GET("/reviews/admin/all", rv.ListAllAdmin)
	g.GET("/admin/stats", a.Stats)
}
