package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id uint64, price uint32, available, reserved bool) SeatMapRecord {
	status := SeatMapAvailable
	if reserved {
		status = SeatMapReserved
	}
	return SeatMapRecord{
		ID:          id,
		PriceCents:  price,
		Status:      status,
		IsAvailable: available,
		IsReserved:  reserved,
		Seat:        SeatID(id),
		Showing:     ShowingID(1),
	}
}

func TestEvaluateSelectionExactCountPasses(t *testing.T) {
	res := EvaluateSelection(SelectionParams{
		SeatMaps:        []SeatMapRecord{record(1, 1200, true, false), record(2, 1500, true, false)},
		SelectedIDs:     []uint64{1, 2},
		ReservationType: "SEATED",
		TicketCount:     2,
	})
	require.True(t, res.OK)
	assert.Equal(t, uint32(2700), res.TotalPriceCents)
}

func TestEvaluateSelectionCountMismatch(t *testing.T) {
	maps := []SeatMapRecord{record(1, 1000, true, false), record(2, 1000, true, false), record(3, 1000, true, false)}

	under := EvaluateSelection(SelectionParams{SeatMaps: maps, SelectedIDs: []uint64{1}, TicketCount: 2})
	require.False(t, under.OK)
	assert.Equal(t, SelectionCountMismatch, under.Reason)

	over := EvaluateSelection(SelectionParams{SeatMaps: maps, SelectedIDs: []uint64{1, 2, 3}, TicketCount: 2})
	require.False(t, over.OK)
	assert.Equal(t, SelectionCountMismatch, over.Reason)
}

func TestEvaluateSelectionReservedSeatInvalidEvenWhenCountMatches(t *testing.T) {
	res := EvaluateSelection(SelectionParams{
		SeatMaps:    []SeatMapRecord{record(1, 1000, true, false), record(2, 1000, true, true)},
		SelectedIDs: []uint64{1, 2},
		TicketCount: 2,
	})
	require.False(t, res.OK)
	assert.Equal(t, InvalidSelection, res.Reason)
	assert.Equal(t, []uint64{2}, res.InvalidIDs)
}

func TestEvaluateSelectionUnknownIDInvalid(t *testing.T) {
	res := EvaluateSelection(SelectionParams{
		SeatMaps:    []SeatMapRecord{record(1, 1000, true, false)},
		SelectedIDs: []uint64{42},
		TicketCount: 1,
	})
	require.False(t, res.OK)
	assert.Equal(t, InvalidSelection, res.Reason)
	assert.Equal(t, []uint64{42}, res.InvalidIDs)
}

func TestEvaluateSelectionUnavailableSeatInvalid(t *testing.T) {
	res := EvaluateSelection(SelectionParams{
		SeatMaps:    []SeatMapRecord{record(1, 1000, false, false)},
		SelectedIDs: []uint64{1},
		TicketCount: 1,
	})
	require.False(t, res.OK)
	assert.Equal(t, InvalidSelection, res.Reason)
}

func TestEvaluateSelectionDuplicateIDInvalid(t *testing.T) {
	res := EvaluateSelection(SelectionParams{
		SeatMaps:    []SeatMapRecord{record(1, 1000, true, false), record(2, 1000, true, false)},
		SelectedIDs: []uint64{1, 1},
		TicketCount: 2,
	})
	require.False(t, res.OK)
	assert.Equal(t, InvalidSelection, res.Reason)
	assert.Equal(t, []uint64{1}, res.InvalidIDs)
}

func TestEvaluateSelectionOpenSeatingTypeMaySkipSeats(t *testing.T) {
	open := map[string]bool{"GENERAL_ADMISSION": true}

	res := EvaluateSelection(SelectionParams{
		SeatMaps:         []SeatMapRecord{record(1, 1000, true, false)},
		SelectedIDs:      nil,
		ReservationType:  "GENERAL_ADMISSION",
		TicketCount:      3,
		OpenSeatingTypes: open,
	})
	require.True(t, res.OK)
	assert.Equal(t, uint32(0), res.TotalPriceCents)

	// a seated type with no selection still mismatches
	seated := EvaluateSelection(SelectionParams{
		SeatMaps:         []SeatMapRecord{record(1, 1000, true, false)},
		SelectedIDs:      nil,
		ReservationType:  "SEATED",
		TicketCount:      3,
		OpenSeatingTypes: open,
	})
	require.False(t, seated.OK)
	assert.Equal(t, SelectionCountMismatch, seated.Reason)
}

func TestEvaluateSelectionOpenSeatingTypeWithSeatsFollowsNormalRules(t *testing.T) {
	open := map[string]bool{"GENERAL_ADMISSION": true}
	res := EvaluateSelection(SelectionParams{
		SeatMaps:         []SeatMapRecord{record(1, 1000, true, false)},
		SelectedIDs:      []uint64{1},
		ReservationType:  "GENERAL_ADMISSION",
		TicketCount:      2,
		OpenSeatingTypes: open,
	})
	require.False(t, res.OK)
	assert.Equal(t, SelectionCountMismatch, res.Reason)
}

func TestSeatRefResolution(t *testing.T) {
	bare := SeatID(5)
	assert.Equal(t, uint64(5), bare.ID())
	_, ok := bare.Resolve()
	assert.False(t, ok)

	seat := Seat{ID: 5, Row: "A", X: 1, Y: 1, LayoutType: LayoutSeat}
	full := ExpandedSeat(seat)
	assert.Equal(t, uint64(5), full.ID())
	got, ok := full.Resolve()
	require.True(t, ok)
	assert.Equal(t, seat, got)
}
