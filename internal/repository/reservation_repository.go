package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/theatre-reservation/internal/seating"
)

// ReservationRepo provides CRUD operations for reservations and the
// seat-map rows they hold.  All timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Reservation mirrors the reservations table.  The four lifecycle
// timestamps record when the reservation entered the matching status; the
// seating engine enforces that the one required by Status is present.
type Reservation struct {
	ID               uint64
	UserID           uint64
	ShowingID        uint64
	Status           string
	ReservationType  string
	TicketCount      uint32
	TotalAmountCents uint32
	DatePaid         sql.NullTime
	DateCancelled    sql.NullTime
	DateRefunded     sql.NullTime
	DateExpired      sql.NullTime
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Domain converts the row into the engine's reservation shape, selected
// seating included when it has been loaded.
func (r Reservation) Domain(selected []uint64) seating.Reservation {
	d := seating.Reservation{
		ID:              r.ID,
		Status:          seating.ReservationStatus(r.Status),
		ReservationType: r.ReservationType,
		TicketCount:     r.TicketCount,
		SelectedSeating: selected,
	}
	if r.DatePaid.Valid {
		t := r.DatePaid.Time
		d.DatePaid = &t
	}
	if r.DateCancelled.Valid {
		t := r.DateCancelled.Time
		d.DateCancelled = &t
	}
	if r.DateRefunded.Valid {
		t := r.DateRefunded.Time
		d.DateRefunded = &t
	}
	if r.DateExpired.Valid {
		t := r.DateExpired.Time
		d.DateExpired = &t
	}
	return d
}

// CreateTx inserts a new reservation within an existing transaction and
// populates the generated ID and timestamps.  The caller commits or rolls
// back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *Reservation) error {
	const q = `INSERT INTO reservations (user_id, showing_id, status, reservation_type, ticket_count, total_amount_cents)
	           VALUES (?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.UserID, res.ShowingID, res.Status, res.ReservationType, res.TicketCount, res.TotalAmountCents)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// AttachSeatsTx inserts the reservation_seats rows linking a reservation to
// its seat-map records, in one statement.
func (r *ReservationRepo) AttachSeatsTx(ctx context.Context, tx *sql.Tx, reservationID uint64, seatMaps []SeatMap) error {
	if len(seatMaps) == 0 {
		return nil
	}
	query := `INSERT INTO reservation_seats (reservation_id, seat_map_id, price_cents) VALUES `
	args := make([]interface{}, 0, len(seatMaps)*3)
	for i, m := range seatMaps {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, reservationID, m.ID, m.PriceCents)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetByIDForUser loads a reservation and its selected seat-map ids,
// enforcing that it belongs to the given user.  A row owned by another user
// is reported as ErrForbidden so handlers can answer 403 rather than 404.
func (r *ReservationRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*Reservation, []uint64, error) {
	const q = `SELECT id, user_id, showing_id, status, reservation_type, ticket_count, total_amount_cents,
	                  date_paid, date_cancelled, date_refunded, date_expired, created_at, updated_at
	           FROM reservations WHERE id = ?`
	var res Reservation
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.UserID, &res.ShowingID, &res.Status, &res.ReservationType,
		&res.TicketCount, &res.TotalAmountCents,
		&res.DatePaid, &res.DateCancelled, &res.DateRefunded, &res.DateExpired,
		&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrReservationNotFound
		}
		return nil, nil, err
	}
	if res.UserID != userID {
		return nil, nil, ErrForbidden
	}
	seatMapIDs, err := r.seatMapIDs(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &res, seatMapIDs, nil
}

// ListByUser returns all reservations of a user, newest first, each with
// its selected seat-map ids.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]Reservation, map[uint64][]uint64, error) {
	const q = `SELECT id, user_id, showing_id, status, reservation_type, ticket_count, total_amount_cents,
	                  date_paid, date_cancelled, date_refunded, date_expired, created_at, updated_at
	           FROM reservations WHERE user_id = ? ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var result []Reservation
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(
			&res.ID, &res.UserID, &res.ShowingID, &res.Status, &res.ReservationType,
			&res.TicketCount, &res.TotalAmountCents,
			&res.DatePaid, &res.DateCancelled, &res.DateRefunded, &res.DateExpired,
			&res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, nil, err
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	seats := make(map[uint64][]uint64, len(result))
	for _, res := range result {
		ids, err := r.seatMapIDs(ctx, res.ID)
		if err != nil {
			return nil, nil, err
		}
		seats[res.ID] = ids
	}
	return result, seats, nil
}

// MarkCancelledTx moves a reservation to CANCELLED and stamps
// date_cancelled, within a transaction.  The lifecycle rule that CANCELLED
// requires its timestamp is honoured by writing both in one statement.
func (r *ReservationRepo) MarkCancelledTx(ctx context.Context, tx *sql.Tx, id uint64, at time.Time) error {
	const q = `UPDATE reservations
	           SET status = ?, date_cancelled = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, string(seating.StatusCancelled), at, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// MarkPaid moves a PENDING reservation to PAID and stamps date_paid in one
// statement.  Rows already out of PENDING are left untouched and reported
// as ErrConflict.
func (r *ReservationRepo) MarkPaid(ctx context.Context, id uint64, at time.Time) error {
	const q = `UPDATE reservations
	           SET status = ?, date_paid = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, string(seating.StatusPaid), at, id, string(seating.StatusPending))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}

// seatMapIDs returns the seat-map ids held by a reservation.
func (r *ReservationRepo) seatMapIDs(ctx context.Context, reservationID uint64) ([]uint64, error) {
	const q = `SELECT seat_map_id FROM reservation_seats WHERE reservation_id = ? ORDER BY seat_map_id`
	rows, err := r.db.QueryContext(ctx, q, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SeatMapIDsTx is seatMapIDs inside a transaction, used by cancellation to
// release the right rows.
func (r *ReservationRepo) SeatMapIDsTx(ctx context.Context, tx *sql.Tx, reservationID uint64) ([]uint64, error) {
	const q = `SELECT seat_map_id FROM reservation_seats WHERE reservation_id = ? ORDER BY seat_map_id`
	rows, err := tx.QueryContext(ctx, q, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
