package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Screen represents an individual auditorium within a theatre.  GridRows
// and GridCols describe the layout grid the screen's seats are placed on;
// they may be NULL for screens whose layout has not been generated yet.
type Screen struct {
	ID        uint64
	TheatreID uint64
	OwnerID   uint64
	Name      string
	GridRows  sql.NullInt32
	GridCols  sql.NullInt32
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScreenRepo provides persistence for screens.
type ScreenRepo struct {
	db *sql.DB
}

// NewScreenRepo constructs a ScreenRepo with the given DB handle.
func NewScreenRepo(db *sql.DB) *ScreenRepo {
	return &ScreenRepo{db: db}
}

// Create inserts a screen and reads the row back to populate defaults.
func (r *ScreenRepo) Create(ctx context.Context, s *Screen) error {
	const q = `INSERT INTO screens (theatre_id, owner_id, name, grid_rows, grid_cols)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.TheatreID, s.OwnerID, s.Name, s.GridRows, s.GridCols)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT is_active, created_at, updated_at FROM screens WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a screen regardless of owner.
func (r *ScreenRepo) GetByID(ctx context.Context, id uint64) (*Screen, error) {
	const q = `SELECT id, theatre_id, owner_id, name, grid_rows, grid_cols, is_active, created_at, updated_at
	           FROM screens WHERE id = ?`
	var s Screen
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.TheatreID, &s.OwnerID, &s.Name, &s.GridRows, &s.GridCols, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreenNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByIDAndOwner retrieves a screen while enforcing ownership.
func (r *ScreenRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*Screen, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.OwnerID != ownerID {
		return nil, ErrScreenNotFound
	}
	return s, nil
}

// ListByTheatre returns all screens of a theatre.
func (r *ScreenRepo) ListByTheatre(ctx context.Context, theatreID uint64) ([]Screen, error) {
	const q = `SELECT id, theatre_id, owner_id, name, grid_rows, grid_cols, is_active, created_at, updated_at
	           FROM screens WHERE theatre_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, theatreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Screen
	for rows.Next() {
		var s Screen
		if err := rows.Scan(&s.ID, &s.TheatreID, &s.OwnerID, &s.Name, &s.GridRows, &s.GridCols, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// UpdateByIDAndOwner renames a screen and toggles its active flag.
func (r *ScreenRepo) UpdateByIDAndOwner(ctx context.Context, id, ownerID uint64, name string, isActive bool) error {
	const q = `UPDATE screens SET name = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, name, isActive, id, ownerID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreenNotFound
	}
	return nil
}

// UpdateGrid records the layout dimensions after seats are generated.
func (r *ScreenRepo) UpdateGrid(ctx context.Context, id uint64, gridRows, gridCols uint32) error {
	const q = `UPDATE screens SET grid_rows = ?, grid_cols = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, gridRows, gridCols, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreenNotFound
	}
	return nil
}

// DeleteByIDAndOwner removes a screen.  Showings scheduled against the
// screen block deletion and are reported as ErrConflict.
func (r *ScreenRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	const q = `DELETE FROM screens WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1451") {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreenNotFound
	}
	return nil
}
