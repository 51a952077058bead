// Package seating contains the pure seating and reservation domain rules:
// building a renderable seat grid from a flat seat list, validating a
// reservation's lifecycle timestamps against its status, and deciding
// whether a set of selected seats is acceptable for a reservation.
//
// Nothing in this package performs I/O.  All functions take plain values,
// return plain values and never mutate their inputs, so they are safe to
// call concurrently from handlers and middleware.
package seating

import "time"

// LayoutType classifies a grid position.  Only LayoutSeat positions are
// bookable; aisles and stairs occupy a coordinate so that the rendered grid
// keeps its shape, but carry no seat attributes.
type LayoutType string

const (
	LayoutSeat  LayoutType = "SEAT"  // a bookable seat
	LayoutAisle LayoutType = "AISLE" // walkway placeholder
	LayoutStair LayoutType = "STAIR" // step placeholder
)

// Seat describes one position in a screen's layout.  X and Y are 1-based
// grid coordinates; Row is the human-facing row label (A, B, AA...).
//
// The seat-specific fields (SeatNumber, SeatType, SeatLabel, IsAvailable,
// PriceMultiplier) are only meaningful when LayoutType is LayoutSeat and
// are left at their zero values for aisle and stair entries.
type Seat struct {
	ID              uint64
	Row             string     // row label
	X               uint32     // 1-based column coordinate
	Y               uint32     // 1-based row coordinate
	LayoutType      LayoutType // SEAT | AISLE | STAIR
	SeatNumber      uint32     // seat position within the row
	SeatType        string     // STANDARD | VIP | ACCESSIBLE
	SeatLabel       string     // optional display override, e.g. "A12"
	IsAvailable     bool       // administrative availability flag
	PriceMultiplier float64    // non-negative, applied server-side at pricing time
}

// Showing is the scheduled screening a seat-map record belongs to.  The
// engine never schedules showings itself; it only needs enough shape to
// resolve seat-map references.
type Showing struct {
	ID       uint64
	ScreenID uint64
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
	Status   string // SCHEDULED | CANCELLED | FINISHED
}

// SeatMapStatus is the sale state of one seat for one showing.
type SeatMapStatus string

const (
	SeatMapAvailable SeatMapStatus = "AVAILABLE"
	SeatMapReserved  SeatMapStatus = "RESERVED"
	SeatMapBlocked   SeatMapStatus = "BLOCKED"
)

// SeatMapRecord binds a seat to a showing and carries its sale state.
// Seat and Showing are reference-or-expansion unions: depending on how the
// record was loaded they hold either a bare id or the resolved object.
type SeatMapRecord struct {
	ID          uint64
	PriceCents  uint32 // persisted sale price, multiplier already applied
	Status      SeatMapStatus
	IsAvailable bool
	IsReserved  bool
	Seat        SeatRef
	Showing     ShowingRef
}

// Selectable reports whether this record may be added to a reservation.
func (r SeatMapRecord) Selectable() bool {
	return r.IsAvailable && !r.IsReserved
}

// ReservationStatus is the lifecycle state of a reservation.  PENDING is
// the initial state; PAID may transition to CANCELLED or REFUNDED;
// CANCELLED, REFUNDED and EXPIRED are terminal.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusPaid      ReservationStatus = "PAID"
	StatusCancelled ReservationStatus = "CANCELLED"
	StatusRefunded  ReservationStatus = "REFUNDED"
	StatusExpired   ReservationStatus = "EXPIRED"
)

// Reservation is a ticket purchase in progress or completed.  Each
// lifecycle timestamp records when the reservation entered the matching
// status; ValidateLifecycle enforces that the timestamp required by the
// current status is present.
type Reservation struct {
	ID              uint64
	Status          ReservationStatus
	DatePaid        *time.Time
	DateCancelled   *time.Time
	DateRefunded    *time.Time
	DateExpired     *time.Time
	ReservationType string
	TicketCount     uint32
	SelectedSeating []uint64 // seat-map record ids
}
