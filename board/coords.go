package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Display coordinate system:
// - Columns: A-G (left to right)
// - Rows: 1-6 (from the bottom of the board)
// - Example: D1 is the bottom cell of the middle column
//
// Internal coordinate system:
// - Column: 0-6 (left to right)
// - Row: 0-5 (top to bottom)
// - Example: (5, 3) for D1 on a 7x6 board

// ColumnLabel returns the letter for a 0-indexed column.
func ColumnLabel(column int) string {
	return string(rune('A' + column))
}

// CellName converts internal coordinates to display notation.
// For a 6-row board: (5, 0) -> A1, (0, 6) -> G6.
func CellName(row, column, height int) string {
	return fmt.Sprintf("%s%d", ColumnLabel(column), height-row)
}

// ParseColumn accepts a column letter ("d", "D") or a 1-based number ("4")
// and returns the 0-indexed column.
func ParseColumn(s string, width int) (int, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, fmt.Errorf("empty column")
	}

	var col int
	if n, err := strconv.Atoi(s); err == nil {
		col = n - 1
	} else if len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
		col = int(s[0] - 'A')
	} else {
		return 0, fmt.Errorf("invalid column: %s", s)
	}

	if col < 0 || col >= width {
		return 0, fmt.Errorf("column out of bounds: %s", s)
	}
	return col, nil
}
