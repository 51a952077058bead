package repository

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/iliyamo/theatre-reservation/internal/seating"
)

// SeatMap mirrors the seat_maps table: the sale record binding one seat to
// one showing.  One row exists for every layout entry of the screen when a
// showing is scheduled; only SEAT rows are ever sellable.
type SeatMap struct {
	ID         uint64
	ShowingID  uint64
	SeatID     uint64
	Status     string // AVAILABLE | RESERVED | BLOCKED
	PriceCents uint32
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Seat is populated by the joined queries so the engine receives an
	// expanded seat reference instead of a bare id.
	Seat *Seat
}

// Domain converts the row into the engine's seat-map shape.  The
// availability flags are derived from Status here, at the boundary, so the
// engine never re-interprets raw status strings.
func (m SeatMap) Domain() seating.SeatMapRecord {
	rec := seating.SeatMapRecord{
		ID:          m.ID,
		PriceCents:  m.PriceCents,
		Status:      seating.SeatMapStatus(m.Status),
		IsAvailable: m.Status == string(seating.SeatMapAvailable),
		IsReserved:  m.Status == string(seating.SeatMapReserved),
		Showing:     seating.ShowingID(m.ShowingID),
	}
	if m.Seat != nil {
		rec.Seat = seating.ExpandedSeat(m.Seat.Domain())
	} else {
		rec.Seat = seating.SeatID(m.SeatID)
	}
	return rec
}

// SeatMapRepo encapsulates database operations for seat_maps.
type SeatMapRepo struct {
	db *sql.DB
}

// NewSeatMapRepo constructs a SeatMapRepo given a DB handle.
func NewSeatMapRepo(db *sql.DB) *SeatMapRepo {
	return &SeatMapRepo{db: db}
}

// salePriceCents applies a seat's multiplier to the showing's base price,
// rounded to whole cents.  A multiplier that rounds the price down to zero
// makes the seat unsellable; the base price is returned instead so the row
// never carries a zero price.
func salePriceCents(baseCents uint32, multiplier float64) (price uint32, sellable bool) {
	price = uint32(math.Round(float64(baseCents) * multiplier))
	if price == 0 {
		return baseCents, false
	}
	return price, true
}

// CreateForShowing inserts one seat-map row per bookable seat of the
// showing's screen in a single statement.  The sale price is the showing's
// base price with the seat's multiplier applied, rounded to whole cents.
// Aisle and stair layout entries get no sale record.  Administratively
// unavailable seats, and seats whose multiplier yields no chargeable price,
// are created as BLOCKED so the row still exists for display.
func (r *SeatMapRepo) CreateForShowing(ctx context.Context, showing *Showing, seats []Seat) error {
	query := `INSERT INTO seat_maps (showing_id, seat_id, status, price_cents) VALUES `
	args := make([]interface{}, 0, len(seats)*4)
	n := 0
	for _, s := range seats {
		if s.LayoutType != string(seating.LayoutSeat) {
			continue
		}
		status := string(seating.SeatMapAvailable)
		if !s.IsAvailable {
			status = string(seating.SeatMapBlocked)
		}
		price, sellable := salePriceCents(showing.BasePriceCents, s.PriceMultiplier)
		if !sellable {
			status = string(seating.SeatMapBlocked)
		}
		if n > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, showing.ID, s.ID, status, price)
		n++
	}
	if n == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetByShowing returns all seat-map rows of a showing with their seats
// expanded, ordered by the seat's grid coordinates.
func (r *SeatMapRepo) GetByShowing(ctx context.Context, showingID uint64) ([]SeatMap, error) {
	const q = `SELECT m.id, m.showing_id, m.seat_id, m.status, m.price_cents, m.created_at, m.updated_at,
	                  s.id, s.screen_id, s.row_label, s.x, s.y, s.layout_type, s.seat_number, s.seat_type, s.seat_label, s.is_available, s.price_multiplier, s.created_at, s.updated_at
	           FROM seat_maps m
	           JOIN seats s ON s.id = m.seat_id
	           WHERE m.showing_id = ?
	           ORDER BY s.y, s.x`
	rows, err := r.db.QueryContext(ctx, q, showingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SeatMap
	for rows.Next() {
		var m SeatMap
		var s Seat
		if err := rows.Scan(
			&m.ID, &m.ShowingID, &m.SeatID, &m.Status, &m.PriceCents, &m.CreatedAt, &m.UpdatedAt,
			&s.ID, &s.ScreenID, &s.RowLabel, &s.X, &s.Y, &s.LayoutType,
			&s.SeatNumber, &s.SeatType, &s.SeatLabel, &s.IsAvailable, &s.PriceMultiplier,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		m.Seat = &s
		result = append(result, m)
	}
	return result, rows.Err()
}

// DomainByShowing is GetByShowing converted to engine records.
func (r *SeatMapRepo) DomainByShowing(ctx context.Context, showingID uint64) ([]seating.SeatMapRecord, error) {
	rows, err := r.GetByShowing(ctx, showingID)
	if err != nil {
		return nil, err
	}
	records := make([]seating.SeatMapRecord, 0, len(rows))
	for _, m := range rows {
		records = append(records, m.Domain())
	}
	return records, nil
}

// BulkUpdateStatusTx sets the status of the given seat-map rows within a
// transaction.  Passing an empty id list is a no-op.
func (r *SeatMapRepo) BulkUpdateStatusTx(ctx context.Context, tx *sql.Tx, showingID uint64, ids []uint64, status string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE seat_maps SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE showing_id = ? AND id IN (`
	args := make([]interface{}, 0, len(ids)+2)
	args = append(args, status, showingID)
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// LockForUpdateTx re-reads the given seat-map rows with FOR UPDATE so a
// reservation can re-check availability inside its transaction before
// flipping statuses.
func (r *SeatMapRepo) LockForUpdateTx(ctx context.Context, tx *sql.Tx, showingID uint64, ids []uint64) ([]SeatMap, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, showing_id, seat_id, status, price_cents, created_at, updated_at
	          FROM seat_maps WHERE showing_id = ? AND id IN (`
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, showingID)
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ") FOR UPDATE"
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SeatMap
	for rows.Next() {
		var m SeatMap
		if err := rows.Scan(&m.ID, &m.ShowingID, &m.SeatID, &m.Status, &m.PriceCents, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}
