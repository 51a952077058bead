package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/theatre-reservation/internal/seating"
)

// Showing mirrors the showings table: a scheduled screening of a movie on
// a screen.  BasePriceCents is the default seat price before per-seat
// multipliers are applied at seat-map generation time.
type Showing struct {
	ID             uint64
	ScreenID       uint64
	Title          string
	StartsAt       time.Time
	EndsAt         time.Time
	BasePriceCents uint32
	Status         string // SCHEDULED | CANCELLED | FINISHED
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Domain converts the row into the engine's showing shape.
func (s Showing) Domain() seating.Showing {
	return seating.Showing{
		ID:       s.ID,
		ScreenID: s.ScreenID,
		Title:    s.Title,
		StartsAt: s.StartsAt,
		EndsAt:   s.EndsAt,
		Status:   s.Status,
	}
}

// ShowingRepo provides persistence for showings.
type ShowingRepo struct {
	db *sql.DB
}

// NewShowingRepo constructs a ShowingRepo with the given DB handle.
func NewShowingRepo(db *sql.DB) *ShowingRepo {
	return &ShowingRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions that
// span multiple repositories.
func (r *ShowingRepo) DB() *sql.DB { return r.db }

// Create inserts a showing and reads the row back to populate defaults.
func (r *ShowingRepo) Create(ctx context.Context, s *Showing) error {
	const q = `INSERT INTO showings (screen_id, title, starts_at, ends_at, base_price_cents, status)
	           VALUES (?, ?, ?, ?, ?, 'SCHEDULED')`
	res, err := r.db.ExecContext(ctx, q, s.ScreenID, s.Title, s.StartsAt, s.EndsAt, s.BasePriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT status, created_at, updated_at FROM showings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(&s.Status, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a showing by id.
func (r *ShowingRepo) GetByID(ctx context.Context, id uint64) (*Showing, error) {
	const q = `SELECT id, screen_id, title, starts_at, ends_at, base_price_cents, status, created_at, updated_at
	           FROM showings WHERE id = ?`
	var s Showing
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.ScreenID, &s.Title, &s.StartsAt, &s.EndsAt,
		&s.BasePriceCents, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowingNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByIDAndOwner retrieves a showing while enforcing screen ownership.
func (r *ShowingRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*Showing, error) {
	const q = `SELECT sh.id, sh.screen_id, sh.title, sh.starts_at, sh.ends_at, sh.base_price_cents, sh.status, sh.created_at, sh.updated_at
	           FROM showings sh
	           JOIN screens sc ON sc.id = sh.screen_id
	           WHERE sh.id = ? AND sc.owner_id = ?`
	var s Showing
	err := r.db.QueryRowContext(ctx, q, id, ownerID).Scan(
		&s.ID, &s.ScreenID, &s.Title, &s.StartsAt, &s.EndsAt,
		&s.BasePriceCents, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowingNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByScreen returns upcoming showings of a screen ordered by start time.
func (r *ShowingRepo) ListByScreen(ctx context.Context, screenID uint64) ([]Showing, error) {
	const q = `SELECT id, screen_id, title, starts_at, ends_at, base_price_cents, status, created_at, updated_at
	           FROM showings WHERE screen_id = ? ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, q, screenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Showing
	for rows.Next() {
		var s Showing
		if err := rows.Scan(
			&s.ID, &s.ScreenID, &s.Title, &s.StartsAt, &s.EndsAt,
			&s.BasePriceCents, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// UpdateStatus transitions a showing's status (SCHEDULED -> CANCELLED or
// FINISHED).  Ownership is enforced via the screens join.
func (r *ShowingRepo) UpdateStatus(ctx context.Context, id, ownerID uint64, status string) error {
	const q = `UPDATE showings sh
	           JOIN screens sc ON sc.id = sh.screen_id
	           SET sh.status = ?, sh.updated_at = CURRENT_TIMESTAMP
	           WHERE sh.id = ? AND sc.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, status, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowingNotFound
	}
	return nil
}

// DeleteByIDAndOwner removes a showing that has no reservations yet.
func (r *ShowingRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	var count int
	const check = `SELECT COUNT(*) FROM reservations WHERE showing_id = ?`
	if err := r.db.QueryRowContext(ctx, check, id).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	const q = `DELETE sh FROM showings sh
	           JOIN screens sc ON sc.id = sh.screen_id
	           WHERE sh.id = ? AND sc.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowingNotFound
	}
	return nil
}
