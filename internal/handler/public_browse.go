// This file defines the public browsing API.  Guests can list theatres,
// screens and showings, inspect a screen's rendered seat grid and check
// per-showing seat availability without authenticating.  Sensitive fields
// (owner ids, internal timestamps) are filtered from responses.

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theatre-reservation/internal/repository"
	"github.com/iliyamo/theatre-reservation/internal/seating"
)

// PublicHandler aggregates the repositories needed for unauthenticated
// browsing.
type PublicHandler struct {
	TheatreRepo *repository.TheatreRepo
	ScreenRepo  *repository.ScreenRepo
	SeatRepo    *repository.SeatRepo
	ShowingRepo *repository.ShowingRepo
	SeatMapRepo *repository.SeatMapRepo
}

// PublicTheatre is a theatre stripped down to guest-safe fields.
type PublicTheatre struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

// PublicScreen is a screen stripped down to guest-safe fields.
type PublicScreen struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	GridRows *uint32 `json:"grid_rows,omitempty"`
	GridCols *uint32 `json:"grid_cols,omitempty"`
}

// PublicShowing is a showing in list and detail responses.
type PublicShowing struct {
	ID             uint64    `json:"id"`
	Title          string    `json:"title"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	BasePriceCents uint32    `json:"base_price_cents"`
	Status         string    `json:"status"`
}

// ListTheatres handles GET /v1/theatres.
func (h *PublicHandler) ListTheatres(c echo.Context) error {
	theatres, err := h.TheatreRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicTheatre, 0, len(theatres))
	for _, t := range theatres {
		pt := PublicTheatre{ID: t.ID, Name: t.Name}
		if t.City.Valid {
			pt.City = t.City.String
		}
		out = append(out, pt)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListScreensByTheatre handles GET /v1/theatres/:id/screens.
func (h *PublicHandler) ListScreensByTheatre(c echo.Context) error {
	ctx := c.Request().Context()
	theatreID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || theatreID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	screens, err := h.ScreenRepo.ListByTheatre(ctx, theatreID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicScreen, 0, len(screens))
	for _, s := range screens {
		if !s.IsActive {
			continue
		}
		ps := PublicScreen{ID: s.ID, Name: s.Name}
		if s.GridRows.Valid {
			v := uint32(s.GridRows.Int32)
			ps.GridRows = &v
		}
		if s.GridCols.Valid {
			v := uint32(s.GridCols.Int32)
			ps.GridCols = &v
		}
		out = append(out, ps)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListShowingsByScreen handles GET /v1/screens/:id/showings.
func (h *PublicHandler) ListShowingsByScreen(c echo.Context) error {
	ctx := c.Request().Context()
	screenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || screenID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.ScreenRepo.GetByID(ctx, screenID); err != nil {
		if err == repository.ErrScreenNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	showings, err := h.ShowingRepo.ListByScreen(ctx, screenID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]PublicShowing, 0, len(showings))
	for _, s := range showings {
		out = append(out, publicShowing(&s))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetShowing handles GET /v1/showings/:id.
func (h *PublicHandler) GetShowing(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	s, err := h.ShowingRepo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrShowingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	resp := echo.Map{"showing": publicShowing(s)}
	if screen, err := h.ScreenRepo.GetByID(ctx, s.ScreenID); err == nil {
		resp["screen"] = PublicScreen{ID: screen.ID, Name: screen.Name}
	}
	return c.JSON(http.StatusOK, resp)
}

// gridCell is the JSON shape of one rendered grid cell.  Empty cells carry
// only their kind; column cells carry the column number; seat cells carry
// the layout entry.
type gridCell struct {
	Kind       string `json:"kind"` // empty | column | seat | aisle | stair
	Column     int    `json:"column,omitempty"`
	SeatID     uint64 `json:"seat_id,omitempty"`
	RowLabel   string `json:"row_label,omitempty"`
	SeatNumber uint32 `json:"seat_number,omitempty"`
	SeatType   string `json:"seat_type,omitempty"`
	SeatLabel  string `json:"seat_label,omitempty"`
	Available  bool   `json:"available,omitempty"`
}

// gridRow is one row of the rendered grid.  Key 0 is the synthesized
// column-header row; seat rows keep their 1-based y key.
type gridRow struct {
	Key   int        `json:"key"`
	Cells []gridCell `json:"cells"`
}

// GetScreenGrid handles GET /v1/screens/:id/grid.  It loads the screen's
// sparse seat list and returns the dense grid, rows ordered header first
// and then top row down to row 1.
func (h *PublicHandler) GetScreenGrid(c echo.Context) error {
	ctx := c.Request().Context()
	screenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || screenID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.ScreenRepo.GetByID(ctx, screenID); err != nil {
		if err == repository.ErrScreenNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rows, err := h.SeatRepo.GetByScreen(ctx, screenID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	seats := make([]seating.Seat, 0, len(rows))
	for _, r := range rows {
		seats = append(seats, r.Domain())
	}
	grid := seating.BuildGrid(seats)

	out := make([]gridRow, 0, len(grid.Rows))
	for _, key := range grid.RowOrder() {
		cells := make([]gridCell, 0, grid.MaxX)
		for _, cell := range grid.Rows[key] {
			cells = append(cells, renderCell(cell))
		}
		out = append(out, gridRow{Key: key, Cells: cells})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"screen_id": screenID,
		"max_x":     grid.MaxX,
		"max_y":     grid.MaxY,
		"rows":      out,
	})
}

// GetShowingSeats handles GET /v1/showings/:id/seats and returns every
// seat-map record of a showing with its current status and price, so the
// client can render what is still selectable.
func (h *PublicHandler) GetShowingSeats(c echo.Context) error {
	ctx := c.Request().Context()
	showingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || showingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.ShowingRepo.GetByID(ctx, showingID); err != nil {
		if err == repository.ErrShowingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	maps, err := h.SeatMapRepo.GetByShowing(ctx, showingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	type seatOut struct {
		SeatMapID  uint64 `json:"seat_map_id"`
		SeatLabel  string `json:"seat_label"`
		RowLabel   string `json:"row_label"`
		X          uint32 `json:"x"`
		Y          uint32 `json:"y"`
		SeatType   string `json:"seat_type"`
		Status     string `json:"status"`
		PriceCents uint32 `json:"price_cents"`
		Selectable bool   `json:"selectable"`
	}
	out := make([]seatOut, 0, len(maps))
	for _, m := range maps {
		rec := m.Domain()
		so := seatOut{
			SeatMapID:  m.ID,
			Status:     m.Status,
			PriceCents: m.PriceCents,
			Selectable: rec.Selectable(),
		}
		if seat, ok := rec.Seat.Resolve(); ok {
			so.SeatLabel = seat.SeatLabel
			so.RowLabel = seat.Row
			so.X = seat.X
			so.Y = seat.Y
			so.SeatType = seat.SeatType
		}
		out = append(out, so)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"showing_id": showingID,
		"items":      out,
	})
}

func publicShowing(s *repository.Showing) PublicShowing {
	return PublicShowing{
		ID:             s.ID,
		Title:          s.Title,
		StartsAt:       s.StartsAt,
		EndsAt:         s.EndsAt,
		BasePriceCents: s.BasePriceCents,
		Status:         s.Status,
	}
}

func renderCell(cell seating.Cell) gridCell {
	switch cell.Kind {
	case seating.CellColumn:
		return gridCell{Kind: "column", Column: cell.Column}
	case seating.CellSeat:
		s := cell.Seat
		out := gridCell{
			RowLabel:  s.Row,
			Available: s.IsAvailable,
		}
		switch s.LayoutType {
		case seating.LayoutAisle:
			out.Kind = "aisle"
		case seating.LayoutStair:
			out.Kind = "stair"
		default:
			out.Kind = "seat"
			out.SeatID = s.ID
			out.SeatNumber = s.SeatNumber
			out.SeatType = s.SeatType
			out.SeatLabel = s.SeatLabel
		}
		return out
	default:
		return gridCell{Kind: "empty"}
	}
}
