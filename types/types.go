// Package types contains shared data structures for connectfour-local.
package types

import "fmt"

// Player identifies the occupant of a cell. NoPlayer marks an empty cell.
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

// Other returns the opponent of p. NoPlayer has no opponent.
func (p Player) Other() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return NoPlayer
}

// Valid reports whether p is one of the two playing sides.
func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}

func (p Player) String() string {
	if !p.Valid() {
		return "nobody"
	}
	return fmt.Sprintf("Player %d", int(p))
}

// PhaseKind is the coarse state of a game.
type PhaseKind int

const (
	InProgress PhaseKind = iota
	Won
	Tied
)

var phaseNames = map[PhaseKind]string{
	InProgress: "in_progress",
	Won:        "won",
	Tied:       "tied",
}

func (k PhaseKind) String() string {
	if s, ok := phaseNames[k]; ok {
		return s
	}
	return fmt.Sprintf("phase(%d)", int(k))
}

// MarshalText encodes the kind as its lower-case name.
func (k PhaseKind) MarshalText() ([]byte, error) {
	s, ok := phaseNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown phase kind %d", int(k))
	}
	return []byte(s), nil
}

// UnmarshalText is the inverse of MarshalText.
func (k *PhaseKind) UnmarshalText(text []byte) error {
	for kind, name := range phaseNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown phase kind %q", string(text))
}

// Phase is the lifecycle state of a game. Winner is only set when Kind is Won.
type Phase struct {
	Kind   PhaseKind `json:"kind"`
	Winner Player    `json:"winner,omitempty"`
}

// Terminal reports whether no further moves are accepted.
func (p Phase) Terminal() bool {
	return p.Kind == Won || p.Kind == Tied
}

// Message is the line shown to the players when the game ends.
func (p Phase) Message() string {
	switch p.Kind {
	case Won:
		return fmt.Sprintf("🏆  %s wins!  🏆", p.Winner)
	case Tied:
		return "It's a Tie!"
	}
	return ""
}

func (p Phase) String() string {
	if p.Kind == Won {
		return fmt.Sprintf("won(%s)", p.Winner)
	}
	return p.Kind.String()
}

// Position is a cell on the board. Row 0 is the top row.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// NoPosition is used when there is no last move yet.
var NoPosition = Position{Row: -1, Column: -1}

// Valid reports whether the position points at a cell.
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Column >= 0
}

// Placement describes a piece that was just dropped.
type Placement struct {
	Position
	Player Player `json:"player"`
}

// MoveOutcome is the result of a successful move.
type MoveOutcome struct {
	Position Position `json:"position"`
	Player   Player   `json:"player"`
	Phase    Phase    `json:"phase"`
}

// BoardState is a snapshot of a game for rendering.
// Board is indexed as Board[row][column] with row 0 at the top.
type BoardState struct {
	MoveNumber    int        `json:"move_number"`
	CurrentPlayer Player     `json:"current_player"`
	Phase         Phase      `json:"phase"`
	Board         [][]Player `json:"board"`
	LastMove      Position   `json:"last_move"`
	WinningLine   []Position `json:"winning_line,omitempty"`
}

// Finished returns true if the game is over.
func (b *BoardState) Finished() bool {
	return b.Phase.Terminal()
}

// Height returns the board height.
func (b *BoardState) Height() int {
	return len(b.Board)
}

// Width returns the board width.
func (b *BoardState) Width() int {
	if b.Height() == 0 {
		return 0
	}
	return len(b.Board[0])
}

// InWinningLine reports whether the cell is part of the winning run.
func (b *BoardState) InWinningLine(row, column int) bool {
	for _, p := range b.WinningLine {
		if p.Row == row && p.Column == column {
			return true
		}
	}
	return false
}

// NewBoardState creates an empty snapshot of the given size with Player1 to move.
func NewBoardState(width, height int) *BoardState {
	board := make([][]Player, height)
	for i := range board {
		board[i] = make([]Player, width)
	}
	return &BoardState{
		CurrentPlayer: Player1,
		Phase:         Phase{Kind: InProgress},
		Board:         board,
		LastMove:      NoPosition,
	}
}
