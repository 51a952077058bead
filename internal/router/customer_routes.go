package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theatre-reservation/internal/handler"
	"github.com/iliyamo/theatre-reservation/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT and the CUSTOMER role.  Seat availability for
// a showing is served by the public router so guests can browse before
// signing in; everything from selection onward starts here.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string, middlewares ...echo.MiddlewareFunc) {
	mw := append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	}, middlewares...)
	g := e.Group("/v1", mw...)

	g.POST("/showings/:id/reservations", h.CreateReservation)
	g.POST("/reservations/:id/pay", h.PayReservation)
	g.GET("/my-reservations", h.ListReservations)
	g.GET("/reservations/:id", h.GetReservation)
	g.DELETE("/reservations/:id", h.CancelReservation)
}
