package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theatre-reservation/internal/repository"
)

type theatreReq struct {
	Name string `json:"name"`
	City string `json:"city"`
}

// CreateTheatre handles POST /v1/theatres.
func (h *AdminHandler) CreateTheatre(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body theatreReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	t := &repository.Theatre{OwnerID: ownerID, Name: name}
	if city := strings.TrimSpace(body.City); city != "" {
		t.City = sql.NullString{String: city, Valid: true}
	}
	if err := h.TheatreRepo.Create(c.Request().Context(), t); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "theatre name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create theatre"})
	}
	return c.JSON(http.StatusCreated, theatreResp(t))
}

// ListTheatres handles GET /v1/admin/theatres and returns the caller's
// theatres only.
func (h *AdminHandler) ListTheatres(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.TheatreRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]echo.Map, 0, len(items))
	for i := range items {
		out = append(out, theatreResp(&items[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// UpdateTheatre handles PUT/PATCH /v1/theatres/:id.
func (h *AdminHandler) UpdateTheatre(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body theatreReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	var city sql.NullString
	if v := strings.TrimSpace(body.City); v != "" {
		city = sql.NullString{String: v, Valid: true}
	}
	if err := h.TheatreRepo.UpdateByIDAndOwner(c.Request().Context(), id, ownerID, name, city); err != nil {
		if err == repository.ErrTheatreNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.TheatreRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, theatreResp(updated))
}

// DeleteTheatre handles DELETE /v1/theatres/:id.  Theatres that still hold
// screens cannot be deleted.
func (h *AdminHandler) DeleteTheatre(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.TheatreRepo.DeleteByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		switch err {
		case repository.ErrTheatreNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theatre not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "theatre still has screens"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// theatreResp shapes a theatre row for JSON output, hiding NULL handling
// from clients.
func theatreResp(t *repository.Theatre) echo.Map {
	m := echo.Map{
		"id":         t.ID,
		"name":       t.Name,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
	if t.City.Valid {
		m["city"] = t.City.String
	}
	return m
}
