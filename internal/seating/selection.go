package seating

// SelectionReason is the typed failure of a seat-selection evaluation.
type SelectionReason string

const (
	// InvalidSelection means a selected id does not exist in the candidate
	// set, is not selectable, or appears more than once.
	InvalidSelection SelectionReason = "INVALID_SELECTION"
	// SelectionCountMismatch means the number of selected seats disagrees
	// with the ticket count.
	SelectionCountMismatch SelectionReason = "SELECTION_COUNT_MISMATCH"
)

// SelectionParams carries everything EvaluateSelection needs: the candidate
// seat-map records for the showing, the user's current selection, and the
// reservation's type and ticket count.
//
// OpenSeatingTypes lists reservation types that may be submitted without
// choosing seats (general admission and the like).  The permitted set is
// external configuration injected by the caller, not knowledge of this
// package.
type SelectionParams struct {
	SeatMaps         []SeatMapRecord
	SelectedIDs      []uint64
	ReservationType  string
	TicketCount      uint32
	OpenSeatingTypes map[string]bool
}

// SelectionResult is the outcome of evaluating a selection.  On failure,
// Reason is set and InvalidIDs names the offending seat-map ids when the
// failure is id-scoped, so the UI can highlight or deselect exactly those
// seats.  TotalPriceCents is only meaningful when OK is true.
type SelectionResult struct {
	OK              bool
	Reason          SelectionReason
	InvalidIDs      []uint64
	TotalPriceCents uint32
}

// EvaluateSelection applies the seat-selection rules for a reservation:
//
//   - every selected id must reference a known, selectable seat-map record
//     (available and not reserved), exactly once;
//   - the selection size must equal the ticket count, each ticket mapping
//     1:1 to a seat;
//   - reservation types in OpenSeatingTypes may skip seat selection
//     entirely, in which case an empty selection passes with a zero total.
//
// Id validity is checked before the count so that a reserved or unknown id
// is reported as InvalidSelection even when the count happens to match.
// The total is the sum of the selected records' persisted prices; seat-type
// multipliers are already baked into those prices and are not reapplied.
func EvaluateSelection(p SelectionParams) SelectionResult {
	if len(p.SelectedIDs) == 0 && p.OpenSeatingTypes[p.ReservationType] {
		return SelectionResult{OK: true}
	}

	byID := make(map[uint64]SeatMapRecord, len(p.SeatMaps))
	for _, sm := range p.SeatMaps {
		byID[sm.ID] = sm
	}

	var invalid []uint64
	seen := make(map[uint64]struct{}, len(p.SelectedIDs))
	total := uint32(0)
	for _, id := range p.SelectedIDs {
		if _, dup := seen[id]; dup {
			invalid = append(invalid, id)
			continue
		}
		seen[id] = struct{}{}
		sm, ok := byID[id]
		if !ok || !sm.Selectable() {
			invalid = append(invalid, id)
			continue
		}
		total += sm.PriceCents
	}
	if len(invalid) > 0 {
		return SelectionResult{Reason: InvalidSelection, InvalidIDs: invalid}
	}

	if uint32(len(p.SelectedIDs)) != p.TicketCount {
		return SelectionResult{Reason: SelectionCountMismatch}
	}

	return SelectionResult{OK: true, TotalPriceCents: total}
}
