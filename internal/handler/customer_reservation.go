package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theatre-reservation/internal/config"
	"github.com/iliyamo/theatre-reservation/internal/queue"
	"github.com/iliyamo/theatre-reservation/internal/repository"
	"github.com/iliyamo/theatre-reservation/internal/seating"
	publisher "github.com/iliyamo/theatre-reservation/internal/service"
)

// CustomerHandler groups everything needed to create, pay, list and cancel
// reservations on behalf of customers.  All methods assume JWT and role
// middleware ran earlier.  Creation and cancellation run their critical
// database operations inside a transaction so seat statuses and
// reservation rows never diverge.
type CustomerHandler struct {
	Cfg             config.Config
	ShowingRepo     *repository.ShowingRepo
	SeatMapRepo     *repository.SeatMapRepo
	ReservationRepo *repository.ReservationRepo
}

// NewCustomerHandler constructs a CustomerHandler.  All dependencies must
// be non-nil.
func NewCustomerHandler(cfg config.Config, showingRepo *repository.ShowingRepo, seatMapRepo *repository.SeatMapRepo, reservationRepo *repository.ReservationRepo) *CustomerHandler {
	if showingRepo == nil || seatMapRepo == nil || reservationRepo == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{
		Cfg:             cfg,
		ShowingRepo:     showingRepo,
		SeatMapRepo:     seatMapRepo,
		ReservationRepo: reservationRepo,
	}
}

// CreateReservation handles POST /v1/showings/:id/reservations.  The
// selection is evaluated against the showing's current seat maps before
// anything is written: every picked seat-map id must exist and be
// selectable, and the pick count must equal the ticket count.  Reservation
// types configured as open seating may omit the selection entirely.  The
// selected rows are then re-checked under a row lock inside the
// transaction, so two customers racing for the same seat cannot both win.
func (h *CustomerHandler) CreateReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || showingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showing id"})
	}
	var body struct {
		SeatMapIDs      []uint64 `json:"seat_map_ids"`
		ReservationType string   `json:"reservation_type"`
		TicketCount     uint32   `json:"ticket_count"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.TicketCount == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticket_count must be positive"})
	}
	resType := strings.ToUpper(strings.TrimSpace(body.ReservationType))
	if resType == "" {
		resType = "STANDARD"
	}

	ctx := c.Request().Context()
	showing, err := h.ShowingRepo.GetByID(ctx, showingID)
	if err != nil {
		if err == repository.ErrShowingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if showing.Status != "SCHEDULED" {
		return c.JSON(http.StatusConflict, echo.Map{"error": "showing is not open for reservations"})
	}
	if !showing.StartsAt.After(time.Now().UTC()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "showing already started"})
	}

	records, err := h.SeatMapRepo.DomainByShowing(ctx, showingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seat maps"})
	}

	sel := seating.EvaluateSelection(seating.SelectionParams{
		SeatMaps:         records,
		SelectedIDs:      body.SeatMapIDs,
		ReservationType:  resType,
		TicketCount:      body.TicketCount,
		OpenSeatingTypes: h.Cfg.OpenSeatingTypes,
	})
	if !sel.OK {
		resp := echo.Map{"error": "selection rejected", "reason": sel.Reason}
		if len(sel.InvalidIDs) > 0 {
			resp["invalid_seat_map_ids"] = sel.InvalidIDs
		}
		return c.JSON(http.StatusBadRequest, resp)
	}

	// The reservation is born PENDING; run it through the lifecycle rules
	// anyway so a future change to the initial status cannot slip past them.
	if v := seating.ValidateLifecycle(seating.Reservation{
		Status:          seating.StatusPending,
		ReservationType: resType,
		TicketCount:     body.TicketCount,
		SelectedSeating: body.SeatMapIDs,
	}); !v.Valid() {
		return c.JSON(http.StatusUnprocessableEntity, v)
	}

	tx, err := h.ShowingRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Re-check the picked rows under FOR UPDATE; the pre-transaction read
	// may be stale by now.
	locked, err := h.SeatMapRepo.LockForUpdateTx(ctx, tx, showingID, body.SeatMapIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to lock seats"})
	}
	// Comparing row counts detects vanished ids only because
	// EvaluateSelection already rejected duplicates in the request.
	if len(locked) != len(body.SeatMapIDs) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "some seats no longer exist"})
	}
	var taken []uint64
	for _, m := range locked {
		if m.Status != string(seating.SeatMapAvailable) {
			taken = append(taken, m.ID)
		}
	}
	if len(taken) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":                "some seats were taken in the meantime",
			"invalid_seat_map_ids": taken,
		})
	}

	resRec := &repository.Reservation{
		UserID:           userID,
		ShowingID:        showingID,
		Status:           string(seating.StatusPending),
		ReservationType:  resType,
		TicketCount:      body.TicketCount,
		TotalAmountCents: sel.TotalPriceCents,
	}
	if err := h.ReservationRepo.CreateTx(ctx, tx, resRec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	if err := h.ReservationRepo.AttachSeatsTx(ctx, tx, resRec.ID, locked); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to attach seats"})
	}
	if err := h.SeatMapRepo.BulkUpdateStatusTx(ctx, tx, showingID, body.SeatMapIDs, string(seating.SeatMapReserved)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update seat status"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// Fire the confirmation event off the request path; a broker outage
	// must not fail the reservation.
	go h.publishConfirmed(resRec, showing, records, body.SeatMapIDs)

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation_id":     resRec.ID,
		"status":             resRec.Status,
		"reservation_type":   resRec.ReservationType,
		"ticket_count":       resRec.TicketCount,
		"total_amount_cents": resRec.TotalAmountCents,
		"seat_map_ids":       body.SeatMapIDs,
	})
}

// PayReservation handles POST /v1/reservations/:id/pay.  Payment capture is
// out of scope; the endpoint records the transition to PAID.  The lifecycle
// rules gate the write: PAID without a paid timestamp never reaches the
// database.
func (h *CustomerHandler) PayReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	rec, seatMapIDs, err := h.ReservationRepo.GetByIDForUser(ctx, resID, userID)
	if err != nil {
		return reservationLookupError(c, err)
	}
	if rec.Status != string(seating.StatusPending) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not pending"})
	}

	now := time.Now().UTC()
	next := rec.Domain(seatMapIDs)
	next.Status = seating.StatusPaid
	next.DatePaid = &now
	if v := seating.ValidateLifecycle(next); !v.Valid() {
		return c.JSON(http.StatusUnprocessableEntity, v)
	}

	if err := h.ReservationRepo.MarkPaid(ctx, resID, now); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not pending"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reservation_id": resID,
		"status":         seating.StatusPaid,
		"date_paid":      now,
	})
}

// ListReservations handles GET /v1/my-reservations.
func (h *CustomerHandler) ListReservations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, seats, err := h.ReservationRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	out := make([]echo.Map, 0, len(items))
	for i := range items {
		out = append(out, reservationResp(&items[i], seats[items[i].ID]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetReservation handles GET /v1/reservations/:id.
func (h *CustomerHandler) GetReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	rec, seatMapIDs, err := h.ReservationRepo.GetByIDForUser(c.Request().Context(), resID, userID)
	if err != nil {
		return reservationLookupError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": reservationResp(rec, seatMapIDs)})
}

// CancelReservation handles DELETE /v1/reservations/:id.  The reservation
// moves to CANCELLED — rows are kept for history rather than deleted — and
// its seats return to the pool, provided the showing has not started yet.
func (h *CustomerHandler) CancelReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	rec, seatMapIDs, err := h.ReservationRepo.GetByIDForUser(ctx, resID, userID)
	if err != nil {
		return reservationLookupError(c, err)
	}
	switch rec.Status {
	case string(seating.StatusCancelled), string(seating.StatusRefunded), string(seating.StatusExpired):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already closed"})
	}
	showing, err := h.ShowingRepo.GetByID(ctx, rec.ShowingID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load showing"})
	}
	if !showing.StartsAt.After(time.Now().UTC()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "showing already started"})
	}

	now := time.Now().UTC()
	next := rec.Domain(seatMapIDs)
	next.Status = seating.StatusCancelled
	next.DateCancelled = &now
	if v := seating.ValidateLifecycle(next); !v.Valid() {
		return c.JSON(http.StatusUnprocessableEntity, v)
	}

	tx, err := h.ShowingRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.ReservationRepo.MarkCancelledTx(ctx, tx, resID, now); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel reservation"})
	}
	held, err := h.ReservationRepo.SeatMapIDsTx(ctx, tx, resID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load held seats"})
	}
	if err := h.SeatMapRepo.BulkUpdateStatusTx(ctx, tx, rec.ShowingID, held, string(seating.SeatMapAvailable)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to release seats"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{
		"reservation_id": resID,
		"status":         seating.StatusCancelled,
		"date_cancelled": now,
		"released_seats": len(held),
	})
}

// publishConfirmed builds and publishes the confirmation event.  Seat
// labels are resolved from the records already loaded for selection.
func (h *CustomerHandler) publishConfirmed(rec *repository.Reservation, showing *repository.Showing, records []seating.SeatMapRecord, selected []uint64) {
	byID := make(map[uint64]seating.SeatMapRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	labels := make([]string, 0, len(selected))
	for _, id := range selected {
		if r, ok := byID[id]; ok {
			if seat, ok := r.Seat.Resolve(); ok && seat.SeatLabel != "" {
				labels = append(labels, seat.SeatLabel)
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = publisher.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
		ReservationID:    rec.ID,
		UserID:           rec.UserID,
		ShowingID:        showing.ID,
		ScreenID:         showing.ScreenID,
		MovieTitle:       showing.Title,
		StartsAt:         showing.StartsAt.Format(time.RFC3339),
		ReservationType:  rec.ReservationType,
		TicketCount:      rec.TicketCount,
		SeatLabels:       labels,
		TotalAmountCents: rec.TotalAmountCents,
		ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
	})
}

// reservationLookupError maps repository lookup failures to HTTP answers:
// missing rows are 404, rows owned by someone else are 403.
func reservationLookupError(c echo.Context, err error) error {
	switch err {
	case repository.ErrReservationNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
}

func reservationResp(r *repository.Reservation, seatMapIDs []uint64) echo.Map {
	m := echo.Map{
		"id":                 r.ID,
		"showing_id":         r.ShowingID,
		"status":             r.Status,
		"reservation_type":   r.ReservationType,
		"ticket_count":       r.TicketCount,
		"total_amount_cents": r.TotalAmountCents,
		"seat_map_ids":       seatMapIDs,
		"created_at":         r.CreatedAt,
	}
	if r.DatePaid.Valid {
		m["date_paid"] = r.DatePaid.Time
	}
	if r.DateCancelled.Valid {
		m["date_cancelled"] = r.DateCancelled.Time
	}
	if r.DateRefunded.Valid {
		m["date_refunded"] = r.DateRefunded.Time
	}
	if r.DateExpired.Valid {
		m["date_expired"] = r.DateExpired.Time
	}
	return m
}
