package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theatre-reservation/internal/repository"
)

// CreateShowing handles POST /v1/showings.  Scheduling a showing also
// materializes its seat maps: one sale record per bookable seat of the
// screen, priced from the base price and the seat's multiplier.
func (h *AdminHandler) CreateShowing(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		ScreenID       uint64 `json:"screen_id"`
		Title          string `json:"title"`
		StartsAt       string `json:"starts_at"`
		EndsAt         string `json:"ends_at"`
		BasePriceCents uint32 `json:"base_price_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	title := strings.TrimSpace(body.Title)
	if body.ScreenID == 0 || title == "" || body.BasePriceCents == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "screen_id, title and base_price_cents are required"})
	}
	startsAt, err := time.Parse(time.RFC3339, body.StartsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be RFC3339"})
	}
	endsAt, err := time.Parse(time.RFC3339, body.EndsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_at must be RFC3339"})
	}
	if !endsAt.After(startsAt) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_at must be after starts_at"})
	}

	ctx := c.Request().Context()
	if _, err := h.ScreenRepo.GetByIDAndOwner(ctx, body.ScreenID, ownerID); err != nil {
		if err == repository.ErrScreenNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	seats, err := h.SeatRepo.GetByScreen(ctx, body.ScreenID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if len(seats) == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "screen has no seat layout"})
	}

	showing := &repository.Showing{
		ScreenID:       body.ScreenID,
		Title:          title,
		StartsAt:       startsAt.UTC(),
		EndsAt:         endsAt.UTC(),
		BasePriceCents: body.BasePriceCents,
	}
	if err := h.ShowingRepo.Create(ctx, showing); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create showing"})
	}
	if err := h.SeatMapRepo.CreateForShowing(ctx, showing, seats); err != nil {
		// The showing exists without seat maps; surface the failure so the
		// admin can retry via delete + recreate.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create seat maps"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":               showing.ID,
		"screen_id":        showing.ScreenID,
		"title":            showing.Title,
		"starts_at":        showing.StartsAt,
		"ends_at":          showing.EndsAt,
		"base_price_cents": showing.BasePriceCents,
		"status":           showing.Status,
	})
}

// UpdateShowingStatus handles PATCH /v1/showings/:id/status with a body of
// {"status": "CANCELLED" | "FINISHED"}.
func (h *AdminHandler) UpdateShowingStatus(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := strings.ToUpper(strings.TrimSpace(body.Status))
	if status != "CANCELLED" && status != "FINISHED" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be CANCELLED or FINISHED"})
	}
	if err := h.ShowingRepo.UpdateStatus(c.Request().Context(), id, ownerID, status); err != nil {
		if err == repository.ErrShowingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}

// DeleteShowing handles DELETE /v1/showings/:id.  Showings with existing
// reservations cannot be removed; cancel them instead.
func (h *AdminHandler) DeleteShowing(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.ShowingRepo.DeleteByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		switch err {
		case repository.ErrShowingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showing not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "showing has reservations"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
