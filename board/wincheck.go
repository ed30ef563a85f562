package board

import "connectfour-local/types"

// RunLength is the number of aligned pieces needed to win.
const RunLength = 4

// directions scanned from every cell: right, down, down-right, down-left.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// HasWon reports whether p has RunLength pieces in an unbroken horizontal,
// vertical or diagonal line.
func HasWon(b *Board, p types.Player) bool {
	_, ok := FindWin(b, p)
	return ok
}

// FindWin scans every cell and returns the first winning run for p.
// Runs that leave the board are skipped.
func FindWin(b *Board, p types.Player) ([]types.Position, bool) {
	if !p.Valid() {
		return nil, false
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			for _, d := range directions {
				if run, ok := runFrom(b, p, y, x, d[0], d[1]); ok {
					return run, true
				}
			}
		}
	}
	return nil, false
}

// runFrom checks the RunLength cells starting at (y, x) stepping by (dy, dx).
func runFrom(b *Board, p types.Player, y, x, dy, dx int) ([]types.Position, bool) {
	run := make([]types.Position, 0, RunLength)
	for i := 0; i < RunLength; i++ {
		r, c := y+dy*i, x+dx*i
		if !b.InBounds(r, c) || b.cells[r][c] != p {
			return nil, false
		}
		run = append(run, types.Position{Row: r, Column: c})
	}
	return run, true
}
