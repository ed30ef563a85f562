package board

import (
	"testing"

	"connectfour-local/types"
)

func mustParse(t *testing.T, diagram string) *Board {
	t.Helper()
	b, err := ParseDiagram(diagram)
	if err != nil {
		t.Fatalf("ParseDiagram: %v", err)
	}
	return b
}

func TestHasWonDetectsEveryDirection(t *testing.T) {
	tests := []struct {
		name    string
		diagram string
		line    []types.Position
	}{
		{
			name: "horizontal bottom row",
			diagram: `
				.......
				.......
				.......
				.......
				OOO....
				XXXX...`,
			line: []types.Position{{Row: 5, Column: 0}, {Row: 5, Column: 1}, {Row: 5, Column: 2}, {Row: 5, Column: 3}},
		},
		{
			name: "horizontal right edge",
			diagram: `
				.......
				.......
				.......
				...XXXX
				...OOOX
				..OXOOX`,
			line: []types.Position{{Row: 3, Column: 3}, {Row: 3, Column: 4}, {Row: 3, Column: 5}, {Row: 3, Column: 6}},
		},
		{
			name: "vertical",
			diagram: `
				.......
				.......
				......X
				......X
				O.....X
				OO....X`,
			line: []types.Position{{Row: 2, Column: 6}, {Row: 3, Column: 6}, {Row: 4, Column: 6}, {Row: 5, Column: 6}},
		},
		{
			name: "vertical touching top",
			diagram: `
				X......
				X......
				X......
				X......
				O......
				OO.O...`,
			line: []types.Position{{Row: 0, Column: 0}, {Row: 1, Column: 0}, {Row: 2, Column: 0}, {Row: 3, Column: 0}},
		},
		{
			name: "diagonal down-right",
			diagram: `
				.......
				.......
				X......
				OX.....
				OOX....
				OOOX...`,
			line: []types.Position{{Row: 2, Column: 0}, {Row: 3, Column: 1}, {Row: 4, Column: 2}, {Row: 5, Column: 3}},
		},
		{
			name: "diagonal down-left",
			diagram: `
				.......
				.......
				......X
				.....XO
				....XOO
				...XOOO`,
			line: []types.Position{{Row: 2, Column: 6}, {Row: 3, Column: 5}, {Row: 4, Column: 4}, {Row: 5, Column: 3}},
		},
	}
	for _, tt := range tests {
		b := mustParse(t, tt.diagram)
		if !HasWon(b, types.Player1) {
			t.Errorf("%s: expected Player 1 to have won", tt.name)
			continue
		}
		line, _ := FindWin(b, types.Player1)
		if len(line) != len(tt.line) {
			t.Errorf("%s: line = %v, want %v", tt.name, line, tt.line)
			continue
		}
		for i := range line {
			if line[i] != tt.line[i] {
				t.Errorf("%s: line = %v, want %v", tt.name, line, tt.line)
				break
			}
		}
		if HasWon(b, types.Player2) {
			t.Errorf("%s: Player 2 should not have won", tt.name)
		}
	}
}

func TestHasWonRejectsBrokenLines(t *testing.T) {
	tests := []struct {
		name    string
		diagram string
	}{
		{
			name: "empty board",
			diagram: `
				.......
				.......
				.......
				.......
				.......
				.......`,
		},
		{
			name: "three in a row with gap",
			diagram: `
				.......
				.......
				.......
				.......
				OOO....
				XXX.X..`,
		},
		{
			name: "horizontal broken by opponent",
			diagram: `
				.......
				.......
				.......
				.......
				...O...
				XXXOXXX`,
		},
		{
			name: "vertical of three capped",
			diagram: `
				.......
				.......
				O......
				X......
				X......
				X......`,
		},
		{
			name: "diagonal broken",
			diagram: `
				.......
				.......
				X......
				OX.....
				OOO....
				OOOX...`,
		},
		{
			name: "row does not wrap",
			diagram: `
				.......
				.......
				.......
				X......
				XO...XX
				OO...XX`,
		},
	}
	for _, tt := range tests {
		b := mustParse(t, tt.diagram)
		if HasWon(b, types.Player1) {
			t.Errorf("%s: unexpected win for Player 1", tt.name)
		}
	}
}

func TestHasWonIgnoresOtherPlayer(t *testing.T) {
	b := mustParse(t, `
		.......
		.......
		.......
		.......
		XXX....
		OOOO...`)
	if HasWon(b, types.Player1) {
		t.Fatal("Player 1 should not win on Player 2's line")
	}
	if !HasWon(b, types.Player2) {
		t.Fatal("Player 2 should win")
	}
	if HasWon(b, types.NoPlayer) {
		t.Fatal("empty cells never form a winning line")
	}
}

func TestHasWonOnNonSquareBoard(t *testing.T) {
	// A vertical run in the last column of a wide board must be found; this
	// is where swapped width/height bounds would go wrong.
	b := mustParse(t, `
		.........X
		.........X
		.........X
		.........X`)
	if !HasWon(b, types.Player1) {
		t.Fatal("vertical run in last column not detected")
	}
}
