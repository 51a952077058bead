package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theatre-reservation/internal/handler"
	"github.com/iliyamo/theatre-reservation/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1.  All routes
// require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Theatres ----
	g.POST("/theatres", a.CreateTheatre)
	// Listing all theatres is public; admins get their own under /admin.
	g.GET("/admin/theatres", a.ListTheatres)
	g.PUT("/theatres/:id", a.UpdateTheatre)
	g.PATCH("/theatres/:id", a.UpdateTheatre)
	g.DELETE("/theatres/:id", a.DeleteTheatre)

	// ---- Screens ----
	g.POST("/screens", a.CreateScreen)
	g.PUT("/screens/:id", a.UpdateScreen)
	g.PATCH("/screens/:id", a.UpdateScreen)
	g.DELETE("/screens/:id", a.DeleteScreen)
	// Bulk layout generation replaces the screen's seats in one call.
	g.POST("/screens/:id/layout", a.GenerateLayout)

	// ---- Seats ----
	g.POST("/seats", a.CreateSeat)
	g.PUT("/seats/:id", a.UpdateSeat)
	g.PATCH("/seats/:id", a.UpdateSeat)
	g.DELETE("/seats/:id", a.DeleteSeat)

	// ---- Showings ----
	g.POST("/showings", a.CreateShowing)
	g.PATCH("/showings/:id/status", a.UpdateShowingStatus)
	g.DELETE("/showings/:id", a.DeleteShowing)
}
