// Package router registers the HTTP routes for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theatre-reservation/internal/handler"
	"github.com/iliyamo/theatre-reservation/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication at all.
// Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token, /refresh-access does not.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout takes a refresh token in the body and needs no JWT.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// Authenticated logout without a body revokes every session.
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints.  The
// middlewares parameter carries the response cache and rate limiter; both
// degrade to pass-through when Redis is unavailable.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, middlewares ...echo.MiddlewareFunc) {
	g := e.Group("/v1", middlewares...)
	g.GET("/theatres", p.ListTheatres)
	g.GET("/theatres/:id/screens", p.ListScreensByTheatre)
	g.GET("/screens/:id/showings", p.ListShowingsByScreen)
	g.GET("/showings/:id", p.GetShowing)
	// Rendered seat grid of a screen: dense rows, header row of column
	// numbers first, then rows top-down.
	g.GET("/screens/:id/grid", p.GetScreenGrid)
	// Per-showing seat availability and prices for the selection UI.
	g.GET("/showings/:id/seats", p.GetShowingSeats)
}
