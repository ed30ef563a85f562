// Package board holds the Connect Four grid and the four-in-a-row scan.
package board

import (
	"fmt"

	"connectfour-local/types"
)

// Standard Connect Four dimensions.
const (
	Width  = 7
	Height = 6
)

// Board is a fixed-size grid of cells indexed as cells[row][column].
// Row 0 is the top row; pieces settle towards row height-1.
type Board struct {
	width  int
	height int
	cells  [][]types.Player
	filled int
}

// New creates an empty board. Both dimensions must be positive.
func New(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("board: invalid dimensions %dx%d", width, height))
	}
	cells := make([][]types.Player, height)
	for i := range cells {
		cells[i] = make([]types.Player, width)
	}
	return &Board{width: width, height: height, cells: cells}
}

// NewStandard creates an empty 7x6 board.
func NewStandard() *Board {
	return New(Width, Height)
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// InBounds reports whether (row, column) lies on the board.
func (b *Board) InBounds(row, column int) bool {
	return row >= 0 && row < b.height && column >= 0 && column < b.width
}

// LowestEmptyRow returns the row a piece dropped into column would land on.
// ok is false when the column is full. An out-of-range column panics.
func (b *Board) LowestEmptyRow(column int) (row int, ok bool) {
	b.mustColumn(column)
	for r := b.height - 1; r >= 0; r-- {
		if b.cells[r][column] == types.NoPlayer {
			return r, true
		}
	}
	return -1, false
}

// Place marks the cell as occupied by p. The cell must be empty; callers get
// the row from LowestEmptyRow.
func (b *Board) Place(row, column int, p types.Player) {
	if !b.InBounds(row, column) {
		panic(fmt.Sprintf("board: cell (%d, %d) out of range", row, column))
	}
	if !p.Valid() {
		panic(fmt.Sprintf("board: cannot place %v", p))
	}
	if b.cells[row][column] != types.NoPlayer {
		panic(fmt.Sprintf("board: cell (%d, %d) already taken by %s", row, column, b.cells[row][column]))
	}
	b.cells[row][column] = p
	b.filled++
}

// IsFull reports whether every cell is occupied.
func (b *Board) IsFull() bool {
	return b.filled >= b.width*b.height
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int { return b.filled }

// CellAt returns the occupant of a cell, or NoPlayer.
func (b *Board) CellAt(row, column int) types.Player {
	return b.cells[row][column]
}

// Snapshot returns a deep copy of the cells.
func (b *Board) Snapshot() [][]types.Player {
	out := make([][]types.Player, b.height)
	for i := range out {
		out[i] = make([]types.Player, b.width)
		copy(out[i], b.cells[i])
	}
	return out
}

func (b *Board) mustColumn(column int) {
	if column < 0 || column >= b.width {
		panic(fmt.Sprintf("board: column %d out of range [0, %d)", column, b.width))
	}
}
