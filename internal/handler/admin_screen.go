package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theatre-reservation/internal/repository"
	"github.com/iliyamo/theatre-reservation/internal/seating"
)

// CreateScreen handles POST /v1/screens.  The screen starts without a seat
// layout; seats are added individually or generated in bulk afterwards.
func (h *AdminHandler) CreateScreen(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		TheatreID uint64 `json:"theatre_id"`
		Name      string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" || body.TheatreID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "theatre_id and name are required"})
	}
	// The theatre must exist and belong to the caller.
	if _, err := h.TheatreRepo.GetByIDAndOwner(c.Request().Context(), body.TheatreID, ownerID); err != nil {
		if err == repository.ErrTheatreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	s := &repository.Screen{TheatreID: body.TheatreID, OwnerID: ownerID, Name: name}
	if err := h.ScreenRepo.Create(c.Request().Context(), s); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "screen name already exists in theatre"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create screen"})
	}
	return c.JSON(http.StatusCreated, screenResp(s))
}

// UpdateScreen handles PUT/PATCH /v1/screens/:id.  Name and the active
// flag are the only mutable fields; layout changes go through the seat
// endpoints or GenerateLayout.
func (h *AdminHandler) UpdateScreen(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	existing, err := h.ScreenRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrScreenNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var body struct {
		Name     string `json:"name"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		name = existing.Name
	}
	isActive := existing.IsActive
	if body.IsActive != nil {
		isActive = *body.IsActive
	}
	if err := h.ScreenRepo.UpdateByIDAndOwner(c.Request().Context(), id, ownerID, name, isActive); err != nil {
		switch err {
		case repository.ErrScreenNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "screen name already exists in theatre"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	updated, err := h.ScreenRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, screenResp(updated))
}

// layoutReq describes a bulk layout generation request.  Every cell of the
// rows x cols grid becomes a layout entry: columns listed in aisle_columns
// become walkway entries, everything else a bookable seat.  Rows listed in
// vip_rows are priced with vip_multiplier.
type layoutReq struct {
	Rows          uint32   `json:"rows"`
	Cols          uint32   `json:"cols"`
	AisleColumns  []uint32 `json:"aisle_columns"`
	VIPRows       []uint32 `json:"vip_rows"`
	VIPMultiplier float64  `json:"vip_multiplier"`
}

// GenerateLayout handles POST /v1/screens/:id/layout.  It replaces the
// screen's seats with a generated rows x cols grid and records the grid
// dimensions on the screen.  Seat numbers count bookable seats only, so an
// aisle between seats 4 and 5 does not leave a gap in the numbering.
func (h *AdminHandler) GenerateLayout(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	screenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || screenID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body layoutReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Rows < 1 || body.Rows > 100 || body.Cols < 1 || body.Cols > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rows and cols must be between 1 and 100"})
	}
	if body.VIPMultiplier <= 0 {
		body.VIPMultiplier = 1.5
	}
	if _, err := h.ScreenRepo.GetByIDAndOwner(c.Request().Context(), screenID, ownerID); err != nil {
		if err == repository.ErrScreenNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	aisles := make(map[uint32]bool, len(body.AisleColumns))
	for _, x := range body.AisleColumns {
		aisles[x] = true
	}
	vipRows := make(map[uint32]bool, len(body.VIPRows))
	for _, y := range body.VIPRows {
		vipRows[y] = true
	}

	seats := make([]repository.Seat, 0, int(body.Rows)*int(body.Cols))
	seatCount := 0
	for y := uint32(1); y <= body.Rows; y++ {
		label := indexToRowLabel(int(y) - 1)
		num := uint32(0)
		for x := uint32(1); x <= body.Cols; x++ {
			s := repository.Seat{
				ScreenID:        screenID,
				RowLabel:        label,
				X:               x,
				Y:               y,
				LayoutType:      string(seating.LayoutAisle),
				IsAvailable:     false,
				PriceMultiplier: 1.0,
			}
			if !aisles[x] {
				num++
				s.LayoutType = string(seating.LayoutSeat)
				s.SeatNumber = sql.NullInt32{Int32: int32(num), Valid: true}
				s.SeatLabel = sql.NullString{String: label + strconv.FormatUint(uint64(num), 10), Valid: true}
				s.SeatType = sql.NullString{String: "STANDARD", Valid: true}
				s.IsAvailable = true
				if vipRows[y] {
					s.SeatType = sql.NullString{String: "VIP", Valid: true}
					s.PriceMultiplier = body.VIPMultiplier
				}
				seatCount++
			}
			seats = append(seats, s)
		}
	}

	ctx := c.Request().Context()
	if err := h.SeatRepo.DeleteByScreen(ctx, screenID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not clear existing layout"})
	}
	if err := h.SeatRepo.CreateBulk(ctx, seats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create seats"})
	}
	if err := h.ScreenRepo.UpdateGrid(ctx, screenID, body.Rows, body.Cols); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not record grid size"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"screen_id":   screenID,
		"rows":        body.Rows,
		"cols":        body.Cols,
		"cells":       len(seats),
		"seats":       seatCount,
		"aisle_cells": len(seats) - seatCount,
	})
}

// DeleteScreen handles DELETE /v1/screens/:id.  Screens with scheduled
// showings cannot be deleted.
func (h *AdminHandler) DeleteScreen(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.ScreenRepo.DeleteByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		switch err {
		case repository.ErrScreenNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "screen has scheduled showings"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func screenResp(s *repository.Screen) echo.Map {
	m := echo.Map{
		"id":         s.ID,
		"theatre_id": s.TheatreID,
		"name":       s.Name,
		"is_active":  s.IsActive,
		"created_at": s.CreatedAt,
		"updated_at": s.UpdatedAt,
	}
	if s.GridRows.Valid {
		m["grid_rows"] = s.GridRows.Int32
	}
	if s.GridCols.Valid {
		m["grid_cols"] = s.GridCols.Int32
	}
	return m
}
