package board

import (
	"fmt"
	"strings"

	"connectfour-local/types"
)

// Diagram runes. Rows are written top to bottom, one line per row.
const (
	emptyRune   = '.'
	player1Rune = 'X'
	player2Rune = 'O'
)

// String renders the board as a diagram, e.g.
//
//	.......
//	...X...
//	..OXO..
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.height; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.width; c++ {
			sb.WriteRune(cellRune(b.cells[r][c]))
		}
	}
	return sb.String()
}

// ParseDiagram builds a board from a diagram in the format written by String.
// Blank lines and surrounding whitespace are ignored. Pieces are placed as
// drawn; gravity is not checked.
func ParseDiagram(diagram string) (*Board, error) {
	var rows []string
	for _, line := range strings.Split(diagram, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty diagram")
	}

	width := len([]rune(rows[0]))
	b := New(width, len(rows))
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r+1, len(runes), width)
		}
		for c, ch := range runes {
			p, err := runePlayer(ch)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", r+1, c+1, err)
			}
			if p != types.NoPlayer {
				b.Place(r, c, p)
			}
		}
	}
	return b, nil
}

func cellRune(p types.Player) rune {
	switch p {
	case types.Player1:
		return player1Rune
	case types.Player2:
		return player2Rune
	}
	return emptyRune
}

func runePlayer(ch rune) (types.Player, error) {
	switch ch {
	case emptyRune:
		return types.NoPlayer, nil
	case player1Rune, 'x', '1':
		return types.Player1, nil
	case player2Rune, 'o', '2':
		return types.Player2, nil
	}
	return types.NoPlayer, fmt.Errorf("unknown cell %q", ch)
}
