package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatAt(x, y uint32) Seat {
	return Seat{
		ID:         uint64(y)*100 + uint64(x),
		Row:        "A",
		X:          x,
		Y:          y,
		LayoutType: LayoutSeat,
		SeatNumber: x,
		SeatType:   "STANDARD",
	}
}

func TestBuildGridEmptyInput(t *testing.T) {
	g := BuildGrid(nil)
	assert.Equal(t, 0, g.MaxX)
	assert.Equal(t, 0, g.MaxY)
	assert.Empty(t, g.Rows)
	assert.Nil(t, g.RowOrder())
}

func TestBuildGridPlacesEverySeat(t *testing.T) {
	seats := []Seat{seatAt(1, 1), seatAt(2, 1), seatAt(1, 2)}
	g := BuildGrid(seats)

	assert.Equal(t, 2, g.MaxX)
	assert.Equal(t, 2, g.MaxY)
	require.Len(t, g.Rows, 3) // header plus rows 1..2

	// row 1 is fully occupied
	require.Len(t, g.Rows[1], 2)
	assert.Equal(t, CellSeat, g.Rows[1][0].Kind)
	assert.Equal(t, uint32(1), g.Rows[1][0].Seat.X)
	assert.Equal(t, CellSeat, g.Rows[1][1].Kind)
	assert.Equal(t, uint32(2), g.Rows[1][1].Seat.X)

	// row 2 has a seat at x=1 and an empty cell at x=2
	require.Len(t, g.Rows[2], 2)
	assert.Equal(t, CellSeat, g.Rows[2][0].Kind)
	assert.Equal(t, CellEmpty, g.Rows[2][1].Kind)
	assert.Nil(t, g.Rows[2][1].Seat)
}

func TestBuildGridHeaderRow(t *testing.T) {
	g := BuildGrid([]Seat{seatAt(3, 1), seatAt(1, 2)})
	header := g.Rows[0]
	require.Len(t, header, 3)
	for i, cell := range header {
		assert.Equal(t, CellColumn, cell.Kind)
		assert.Equal(t, i+1, cell.Column)
	}
}

func TestBuildGridRowsWithoutSeatsStayDense(t *testing.T) {
	// only row 3 has a seat; rows 1 and 2 must still exist, all empty
	g := BuildGrid([]Seat{seatAt(2, 3)})
	assert.Equal(t, 2, g.MaxX)
	assert.Equal(t, 3, g.MaxY)
	require.Len(t, g.Rows, 4)
	for y := 1; y <= 2; y++ {
		require.Len(t, g.Rows[y], 2)
		for _, cell := range g.Rows[y] {
			assert.Equal(t, CellEmpty, cell.Kind)
		}
	}
	assert.Equal(t, CellSeat, g.Rows[3][1].Kind)
}

func TestBuildGridDeterministicUnderReordering(t *testing.T) {
	a := []Seat{seatAt(1, 1), seatAt(2, 1), seatAt(1, 2), seatAt(3, 2)}
	b := []Seat{seatAt(3, 2), seatAt(1, 2), seatAt(2, 1), seatAt(1, 1)}
	assert.Equal(t, BuildGrid(a), BuildGrid(b))
}

func TestBuildGridKeepsAislesAndStairs(t *testing.T) {
	aisle := Seat{ID: 7, Row: "A", X: 2, Y: 1, LayoutType: LayoutAisle}
	stair := Seat{ID: 8, Row: "B", X: 1, Y: 2, LayoutType: LayoutStair}
	g := BuildGrid([]Seat{seatAt(1, 1), aisle, stair})

	require.Equal(t, CellSeat, g.Rows[1][1].Kind)
	assert.Equal(t, LayoutAisle, g.Rows[1][1].Seat.LayoutType)
	require.Equal(t, CellSeat, g.Rows[2][0].Kind)
	assert.Equal(t, LayoutStair, g.Rows[2][0].Seat.LayoutType)
}

func TestBuildGridDuplicateCoordinateLastWriteWins(t *testing.T) {
	first := seatAt(1, 1)
	second := seatAt(1, 1)
	second.ID = 999
	g := BuildGrid([]Seat{first, second})
	require.Equal(t, CellSeat, g.Rows[1][0].Kind)
	assert.Equal(t, uint64(999), g.Rows[1][0].Seat.ID)
}

func TestRowOrderDescendingWithHeaderFirst(t *testing.T) {
	g := BuildGrid([]Seat{seatAt(1, 1), seatAt(1, 2), seatAt(1, 3)})
	assert.Equal(t, []int{0, 3, 2, 1}, g.RowOrder())
}
