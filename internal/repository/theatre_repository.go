package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Theatre represents a venue owned by an administrator.  A theatre
// contains multiple screens.
type Theatre struct {
	ID        uint64
	OwnerID   uint64
	Name      string
	City      sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TheatreRepo provides persistence for theatres.
type TheatreRepo struct {
	db *sql.DB
}

// NewTheatreRepo constructs a TheatreRepo with the given DB handle.
func NewTheatreRepo(db *sql.DB) *TheatreRepo {
	return &TheatreRepo{db: db}
}

// Create inserts a theatre and populates its ID and timestamps.
func (r *TheatreRepo) Create(ctx context.Context, t *Theatre) error {
	const q = `INSERT INTO theatres (owner_id, name, city) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.OwnerID, t.Name, t.City)
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
	t.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM theatres WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, t.ID).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// GetByIDAndOwner retrieves a theatre while enforcing ownership.
func (r *TheatreRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*Theatre, error) {
	const q = `SELECT id, owner_id, name, city, created_at, updated_at
	           FROM theatres WHERE id = ? AND owner_id = ?`
	var t Theatre
	err := r.db.QueryRowContext(ctx, q, id, ownerID).
		Scan(&t.ID, &t.OwnerID, &t.Name, &t.City, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTheatreNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByOwner returns all theatres belonging to an owner, newest first.
func (r *TheatreRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]Theatre, error) {
	const q = `SELECT id, owner_id, name, city, created_at, updated_at
	           FROM theatres WHERE owner_id = ? ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Theatre
	for rows.Next() {
		var t Theatre
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.City, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// ListAll returns every theatre for public browsing.
func (r *TheatreRepo) ListAll(ctx context.Context) ([]Theatre, error) {
	const q = `SELECT id, owner_id, name, city, created_at, updated_at FROM theatres ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Theatre
	for rows.Next() {
		var t Theatre
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.City, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// UpdateByIDAndOwner renames a theatre.  Returns ErrTheatreNotFound when the
// row does not exist or belongs to another owner.
func (r *TheatreRepo) UpdateByIDAndOwner(ctx context.Context, id, ownerID uint64, name string, city sql.NullString) error {
	const q = `UPDATE theatres SET name = ?, city = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, name, city, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTheatreNotFound
	}
	return nil
}

// DeleteByIDAndOwner removes a theatre.  Screens must be deleted first;
// a foreign key violation is reported as ErrConflict.
func (r *TheatreRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	const q = `DELETE FROM theatres WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1451") { // FK constraint
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTheatreNotFound
	}
	return nil
}
