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

// seatReq carries a single layout entry.  LayoutType defaults to SEAT;
// AISLE and STAIR entries occupy a coordinate without being bookable, so
// their seat-specific fields are ignored.
type seatReq struct {
	ScreenID        uint64  `json:"screen_id"`
	RowLabel        string  `json:"row_label"`
	X               uint32  `json:"x"`
	Y               uint32  `json:"y"`
	LayoutType      string  `json:"layout_type"`
	SeatNumber      uint32  `json:"seat_number"`
	SeatType        string  `json:"seat_type"`
	SeatLabel       string  `json:"seat_label"`
	IsAvailable     *bool   `json:"is_available"`
	PriceMultiplier float64 `json:"price_multiplier"`
}

func (b *seatReq) toRow(screenID uint64) (repository.Seat, string) {
	lt := strings.ToUpper(strings.TrimSpace(b.LayoutType))
	if lt == "" {
		lt = string(seating.LayoutSeat)
	}
	switch seating.LayoutType(lt) {
	case seating.LayoutSeat, seating.LayoutAisle, seating.LayoutStair:
	default:
		return repository.Seat{}, "layout_type must be SEAT, AISLE or STAIR"
	}
	if b.X == 0 || b.Y == 0 {
		return repository.Seat{}, "x and y must be positive"
	}
	s := repository.Seat{
		ScreenID:        screenID,
		RowLabel:        strings.ToUpper(strings.TrimSpace(b.RowLabel)),
		X:               b.X,
		Y:               b.Y,
		LayoutType:      lt,
		PriceMultiplier: 1.0,
	}
	if s.RowLabel == "" {
		return repository.Seat{}, "row_label is required"
	}
	if lt == string(seating.LayoutSeat) {
		if b.SeatNumber == 0 {
			return repository.Seat{}, "seat_number is required for seats"
		}
		s.SeatNumber = sql.NullInt32{Int32: int32(b.SeatNumber), Valid: true}
		st := strings.ToUpper(strings.TrimSpace(b.SeatType))
		if st == "" {
			st = "STANDARD"
		}
		s.SeatType = sql.NullString{String: st, Valid: true}
		lbl := strings.TrimSpace(b.SeatLabel)
		if lbl == "" {
			lbl = s.RowLabel + strconv.FormatUint(uint64(b.SeatNumber), 10)
		}
		s.SeatLabel = sql.NullString{String: lbl, Valid: true}
		s.IsAvailable = true
		if b.IsAvailable != nil {
			s.IsAvailable = *b.IsAvailable
		}
		if b.PriceMultiplier > 0 {
			s.PriceMultiplier = b.PriceMultiplier
		}
	}
	return s, ""
}

// CreateSeat handles POST /v1/seats and adds one layout entry to a screen.
func (h *AdminHandler) CreateSeat(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body seatReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ScreenID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "screen_id is required"})
	}
	if _, err := h.ScreenRepo.GetByIDAndOwner(c.Request().Context(), body.ScreenID, ownerID); err != nil {
		if err == repository.ErrScreenNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "screen not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	s, msg := body.toRow(body.ScreenID)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.SeatRepo.Create(c.Request().Context(), &s); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "coordinate already occupied"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create seat"})
	}
	return c.JSON(http.StatusCreated, seatRowResp(&s))
}

// UpdateSeat handles PUT/PATCH /v1/seats/:id.
func (h *AdminHandler) UpdateSeat(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	existing, err := h.SeatRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrSeatNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var body seatReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	s, msg := body.toRow(existing.ScreenID)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.SeatRepo.UpdateByIDAndOwner(c.Request().Context(), id, ownerID, &s); err != nil {
		switch err {
		case repository.ErrSeatNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "coordinate already occupied"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	s.ID = id
	return c.JSON(http.StatusOK, seatRowResp(&s))
}

// DeleteSeat handles DELETE /v1/seats/:id.
func (h *AdminHandler) DeleteSeat(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.SeatRepo.DeleteByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		if err == repository.ErrSeatNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func seatRowResp(s *repository.Seat) echo.Map {
	m := echo.Map{
		"id":               s.ID,
		"screen_id":        s.ScreenID,
		"row_label":        s.RowLabel,
		"x":                s.X,
		"y":                s.Y,
		"layout_type":      s.LayoutType,
		"is_available":     s.IsAvailable,
		"price_multiplier": s.PriceMultiplier,
	}
	if s.SeatNumber.Valid {
		m["seat_number"] = s.SeatNumber.Int32
	}
	if s.SeatType.Valid {
		m["seat_type"] = s.SeatType.String
	}
	if s.SeatLabel.Valid {
		m["seat_label"] = s.SeatLabel.String
	}
	return m
}
