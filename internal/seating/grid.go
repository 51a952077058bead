package seating

// CellKind tags the content of a grid cell.
type CellKind uint8

const (
	CellEmpty  CellKind = iota // no seat occupies the coordinate
	CellSeat                   // a seat, aisle or stair entry
	CellColumn                 // a synthesized column number in the header row
)

// Cell is one slot in the rendered seat grid.  Seat is set when Kind is
// CellSeat; Column is set when Kind is CellColumn.  The zero value is an
// empty cell.
type Cell struct {
	Kind   CellKind
	Seat   *Seat
	Column int
}

// SeatGrid is a dense, addressable view of a screen's layout.  Rows maps a
// row key to a slice of exactly MaxX cells.  Key 0 is a synthesized header
// row holding the column numbers 1..MaxX; keys 1..MaxY are seat rows, every
// one of them present even when it holds no seats, so that columns stay
// aligned across rows.
type SeatGrid struct {
	Rows map[int][]Cell
	MaxX int
	MaxY int
}

// BuildGrid converts an unordered, sparse list of seats into a dense grid.
// Seats carry 1-based X/Y coordinates; aisle and stair entries occupy their
// coordinate exactly like bookable seats.  The result is independent of the
// input order.  An empty input yields an empty grid with MaxX = MaxY = 0.
//
// BuildGrid is total over well-formed input.  Coordinates are expected to
// be unique per (X, Y) pair; when they are not, the last seat written wins.
func BuildGrid(seats []Seat) SeatGrid {
	g := SeatGrid{Rows: make(map[int][]Cell)}
	if len(seats) == 0 {
		return g
	}

	for _, s := range seats {
		if int(s.X) > g.MaxX {
			g.MaxX = int(s.X)
		}
		if int(s.Y) > g.MaxY {
			g.MaxY = int(s.Y)
		}
	}

	// Bucket seats per row before materializing so each row is filled in
	// one pass.
	byRow := make(map[int][]Seat, g.MaxY)
	for _, s := range seats {
		byRow[int(s.Y)] = append(byRow[int(s.Y)], s)
	}

	for y := 1; y <= g.MaxY; y++ {
		row := make([]Cell, g.MaxX)
		for _, s := range byRow[y] {
			seat := s
			row[int(s.X)-1] = Cell{Kind: CellSeat, Seat: &seat}
		}
		g.Rows[y] = row
	}

	// Header row at key 0: column numbers 1..MaxX so renderers do not have
	// to derive the labels themselves.
	header := make([]Cell, g.MaxX)
	for x := 1; x <= g.MaxX; x++ {
		header[x-1] = Cell{Kind: CellColumn, Column: x}
	}
	g.Rows[0] = header

	return g
}

// RowOrder returns the row keys in presentation order: the header first,
// then seat rows by descending Y so that row 1 — conventionally nearest
// the screen — renders last at the bottom.
func (g SeatGrid) RowOrder() []int {
	if len(g.Rows) == 0 {
		return nil
	}
	order := make([]int, 0, g.MaxY+1)
	order = append(order, 0)
	for y := g.MaxY; y >= 1; y-- {
		order = append(order, y)
	}
	return order
}
