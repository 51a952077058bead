package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/theatre-reservation/internal/seating"
)

// Seat mirrors the seats table.  X and Y are 1-based grid coordinates;
// LayoutType distinguishes bookable seats from aisle and stair
// placeholders.  Seat-specific columns are NULL for non-SEAT rows.
type Seat struct {
	ID              uint64
	ScreenID        uint64
	RowLabel        string
	X               uint32
	Y               uint32
	LayoutType      string // SEAT | AISLE | STAIR
	SeatNumber      sql.NullInt32
	SeatType        sql.NullString // STANDARD | VIP | ACCESSIBLE
	SeatLabel       sql.NullString
	IsAvailable     bool
	PriceMultiplier float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Domain converts the row into the engine's seat shape.  NULL seat columns
// collapse to zero values, which is exactly what the engine expects for
// aisle and stair entries.
func (s Seat) Domain() seating.Seat {
	d := seating.Seat{
		ID:              s.ID,
		Row:             s.RowLabel,
		X:               s.X,
		Y:               s.Y,
		LayoutType:      seating.LayoutType(s.LayoutType),
		IsAvailable:     s.IsAvailable,
		PriceMultiplier: s.PriceMultiplier,
	}
	if s.SeatNumber.Valid {
		d.SeatNumber = uint32(s.SeatNumber.Int32)
	}
	if s.SeatType.Valid {
		d.SeatType = s.SeatType.String
	}
	if s.SeatLabel.Valid {
		d.SeatLabel = s.SeatLabel.String
	}
	return d
}

// SeatRepo provides methods to work with seats in the database.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// Create inserts a single seat record.  On success the seat's ID is populated.
func (r *SeatRepo) Create(ctx context.Context, s *Seat) error {
	const q = `INSERT INTO seats (screen_id, row_label, x, y, layout_type, seat_number, seat_type, seat_label, is_available, price_multiplier)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		s.ScreenID, s.RowLabel, s.X, s.Y, s.LayoutType,
		s.SeatNumber, s.SeatType, s.SeatLabel, s.IsAvailable, s.PriceMultiplier)
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
	return nil
}

// CreateBulk inserts multiple seats in a single statement.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (screen_id, row_label, x, y, layout_type, seat_number, seat_type, seat_label, is_available, price_multiplier) VALUES `
	args := make([]interface{}, 0, len(seats)*10)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args,
			s.ScreenID, s.RowLabel, s.X, s.Y, s.LayoutType,
			s.SeatNumber, s.SeatType, s.SeatLabel, s.IsAvailable, s.PriceMultiplier)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetByScreen retrieves all seats of a screen ordered by y then x.
func (r *SeatRepo) GetByScreen(ctx context.Context, screenID uint64) ([]Seat, error) {
	const q = `SELECT id, screen_id, row_label, x, y, layout_type, seat_number, seat_type, seat_label, is_available, price_multiplier, created_at, updated_at
	           FROM seats
	           WHERE screen_id = ?
	           ORDER BY y, x`
	rows, err := r.db.QueryContext(ctx, q, screenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Seat
	for rows.Next() {
		var s Seat
		if err := rows.Scan(
			&s.ID, &s.ScreenID, &s.RowLabel, &s.X, &s.Y, &s.LayoutType,
			&s.SeatNumber, &s.SeatType, &s.SeatLabel, &s.IsAvailable, &s.PriceMultiplier,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetByIDAndOwner retrieves a seat by id while enforcing ownership via screens.
func (r *SeatRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*Seat, error) {
	const q = `SELECT s.id, s.screen_id, s.row_label, s.x, s.y, s.layout_type, s.seat_number, s.seat_type, s.seat_label, s.is_available, s.price_multiplier, s.created_at, s.updated_at
	           FROM seats s
	           JOIN screens sc ON sc.id = s.screen_id
	           WHERE s.id = ? AND sc.owner_id = ?`
	var s Seat
	err := r.db.QueryRowContext(ctx, q, id, ownerID).Scan(
		&s.ID, &s.ScreenID, &s.RowLabel, &s.X, &s.Y, &s.LayoutType,
		&s.SeatNumber, &s.SeatType, &s.SeatLabel, &s.IsAvailable, &s.PriceMultiplier,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateByIDAndOwner updates a seat's position, classification and
// availability.  Returns ErrSeatNotFound when the row does not exist or the
// screen belongs to another owner.
func (r *SeatRepo) UpdateByIDAndOwner(ctx context.Context, id, ownerID uint64, upd *Seat) error {
	const q = `UPDATE seats s
	           JOIN screens sc ON sc.id = s.screen_id
	           SET s.row_label = ?, s.x = ?, s.y = ?, s.layout_type = ?, s.seat_number = ?, s.seat_type = ?, s.seat_label = ?, s.is_available = ?, s.price_multiplier = ?, s.updated_at = CURRENT_TIMESTAMP
	           WHERE s.id = ? AND sc.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q,
		upd.RowLabel, upd.X, upd.Y, upd.LayoutType, upd.SeatNumber, upd.SeatType,
		upd.SeatLabel, upd.IsAvailable, upd.PriceMultiplier, id, ownerID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// DeleteByIDAndOwner deletes a seat while ensuring the screen belongs to
// the owner.
func (r *SeatRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	const q = `DELETE s FROM seats s
	           JOIN screens sc ON sc.id = s.screen_id
	           WHERE s.id = ? AND sc.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// DeleteByScreen removes all seats of a screen.  Used when a screen's
// layout is regenerated; callers must verify ownership first.
func (r *SeatRepo) DeleteByScreen(ctx context.Context, screenID uint64) error {
	const q = `DELETE FROM seats WHERE screen_id = ?`
	_, err := r.db.ExecContext(ctx, q, screenID)
	return err
}
