package grid

import (
	"errors"
	"fmt"
)

// Kind enumerates the cell kinds a grid can hold.
type Kind uint8

const (
	Open Kind = iota
	Wall
)

// ErrInvalidGrid is matched by every InvalidGridError via errors.Is.
var ErrInvalidGrid = errors.New("invalid grid")

// InvalidGridError reports malformed construction input.
type InvalidGridError struct {
	Reason string
}

func (e *InvalidGridError) Error() string { return "invalid grid: " + e.Reason }

// Is lets errors.Is(err, ErrInvalidGrid) match.
func (e *InvalidGridError) Is(target error) bool { return target == ErrInvalidGrid }

func invalid(format string, args ...any) error {
	return &InvalidGridError{Reason: fmt.Sprintf(format, args...)}
}

// Cell is a (row, col) coordinate. Row grows downwards.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string { return fmt.Sprintf("(%d, %d)", c.Row, c.Col) }

// Grid is an immutable rectangular wall/open map stored in row-major order.
type Grid struct {
	h, w int
	data []Kind
	open []Cell
}

// New copies rows into a Grid. Rows must be non-empty and equally long.
func New(rows [][]Kind) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, invalid("grid cannot be empty")
	}
	w := len(rows[0])
	g := &Grid{h: len(rows), w: w, data: make([]Kind, 0, len(rows)*w)}
	for r, row := range rows {
		if len(row) != w {
			return nil, invalid("inconsistent row lengths: row 0 has %d columns, but row %d has %d", w, r, len(row))
		}
		for c, k := range row {
			if k != Open && k != Wall {
				return nil, invalid("unknown cell kind %d at row %d, col %d", k, r, c)
			}
			if k == Open {
				g.open = append(g.open, Cell{Row: r, Col: c})
			}
		}
		g.data = append(g.data, row...)
	}
	return g, nil
}

// Empty builds a height x width room walled on the perimeter with an open
// interior. Both dimensions must be at least 3.
func Empty(height, width int) (*Grid, error) {
	if height < 3 || width < 3 {
		return nil, invalid("room must be at least 3x3 to have an interior, got %dx%d", height, width)
	}
	rows := make([][]Kind, height)
	for r := range rows {
		rows[r] = make([]Kind, width)
		for c := range rows[r] {
			if r == 0 || r == height-1 || c == 0 || c == width-1 {
				rows[r][c] = Wall
			}
		}
	}
	return New(rows)
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.h && col >= 0 && col < g.w
}

// Kind returns the stored kind. Out-of-bounds coordinates are walls.
func (g *Grid) Kind(row, col int) Kind {
	if !g.InBounds(row, col) {
		return Wall
	}
	return g.data[row*g.w+col]
}

// IsWall reports whether (row, col) is a wall or lies outside the grid.
func (g *Grid) IsWall(row, col int) bool { return g.Kind(row, col) == Wall }

// IsOpen is the negation of IsWall.
func (g *Grid) IsOpen(row, col int) bool { return !g.IsWall(row, col) }

// CountOpen returns the number of open cells.
func (g *Grid) CountOpen() int { return len(g.open) }

// OpenCells lists open cells top-to-bottom, left-to-right. The returned slice
// is a copy.
func (g *Grid) OpenCells() []Cell {
	return append([]Cell(nil), g.open...)
}
