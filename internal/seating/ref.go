package seating

// This file models the reference-or-expansion unions used by seat-map
// records.  A record fetched from a list endpoint typically carries bare
// ids, while a record fetched with its relations expanded carries the full
// seat and showing objects.  Modelling the two cases as a tagged value with
// explicit constructors keeps the rest of the engine working on a single
// resolved shape instead of inspecting types at runtime.

// SeatRef is either a bare seat id or a fully expanded Seat.
type SeatRef struct {
	id   uint64
	seat *Seat
}

// SeatID builds a reference that carries only the seat's id.
func SeatID(id uint64) SeatRef {
	return SeatRef{id: id}
}

// ExpandedSeat builds a reference that carries the resolved seat.
func ExpandedSeat(s Seat) SeatRef {
	return SeatRef{id: s.ID, seat: &s}
}

// ID returns the referenced seat's id regardless of expansion.
func (r SeatRef) ID() uint64 {
	return r.id
}

// Resolve returns the expanded seat when available.  The boolean is false
// for bare-id references; callers needing the full seat must fetch it.
func (r SeatRef) Resolve() (Seat, bool) {
	if r.seat == nil {
		return Seat{}, false
	}
	return *r.seat, true
}

// ShowingRef is either a bare showing id or a fully expanded Showing.
type ShowingRef struct {
	id      uint64
	showing *Showing
}

// ShowingID builds a reference that carries only the showing's id.
func ShowingID(id uint64) ShowingRef {
	return ShowingRef{id: id}
}

// ExpandedShowing builds a reference that carries the resolved showing.
func ExpandedShowing(s Showing) ShowingRef {
	return ShowingRef{id: s.ID, showing: &s}
}

// ID returns the referenced showing's id regardless of expansion.
func (r ShowingRef) ID() uint64 {
	return r.id
}

// Resolve returns the expanded showing when available.
func (r ShowingRef) Resolve() (Showing, bool) {
	if r.showing == nil {
		return Showing{}, false
	}
	return *r.showing, true
}
