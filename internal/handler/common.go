// Package handler exposes the HTTP handlers: authentication, admin-scoped
// venue management, public browsing and customer reservations.
package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theatre-reservation/internal/repository"
)

// AdminHandler bundles the repositories admins need to manage theatres,
// screens, seat layouts and showings.
type AdminHandler struct {
	TheatreRepo *repository.TheatreRepo
	ScreenRepo  *repository.ScreenRepo
	SeatRepo    *repository.SeatRepo
	ShowingRepo *repository.ShowingRepo
	SeatMapRepo *repository.SeatMapRepo
}

// NewAdminHandler constructs an AdminHandler and panics if any dependency
// is nil; wiring bugs should fail at startup, not on the first request.
func NewAdminHandler(theatreRepo *repository.TheatreRepo, screenRepo *repository.ScreenRepo, seatRepo *repository.SeatRepo, showingRepo *repository.ShowingRepo, seatMapRepo *repository.SeatMapRepo) *AdminHandler {
	if theatreRepo == nil || screenRepo == nil || seatRepo == nil || showingRepo == nil || seatMapRepo == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		TheatreRepo: theatreRepo,
		ScreenRepo:  screenRepo,
		SeatRepo:    seatRepo,
		ShowingRepo: showingRepo,
		SeatMapRepo: seatMapRepo,
	}
}

// getUserID extracts the authenticated user's id from the echo context.
// JWT numeric claims arrive as float64; older tokens may carry strings.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
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

// indexToRowLabel converts a zero-based row index to the alphabetical label
// printed on tickets: 0 -> A, 25 -> Z, 26 -> AA.
func indexToRowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var res []rune
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}
