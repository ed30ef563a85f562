// Package engine defines the interface for game engines.
package engine

import (
	"errors"
	"fmt"

	"connectfour-local/types"
)

// GameEngine is the single entry point a presentation adapter drives.
// Implementations are not safe for concurrent use; adapters serialize calls.
type GameEngine interface {
	// AttemptMove drops the current player's piece into column.
	// Returns an error matching ErrInvalidMove if the game is over or the column is full.
	AttemptMove(column int) (types.MoveOutcome, error)

	// PreviewLandingRow returns the row a piece dropped into column would land on.
	PreviewLandingRow(column int) (row int, ok bool)

	// Reset discards the current game and starts a fresh one with Player1 to move.
	Reset()

	// CurrentState returns a copy of the board state for rendering.
	CurrentState() *types.BoardState

	// Config returns the configuration the engine was created with.
	Config() GameConfig

	// OnPiecePlaced registers a callback for every successful drop.
	OnPiecePlaced(func(types.Placement))

	// OnGameWon registers a callback for when a player completes a line.
	// It always fires after the OnPiecePlaced callback for the winning move.
	OnGameWon(func(winner types.Player))

	// OnGameTied registers a callback for when the board fills without a winner.
	OnGameTied(func())

	// OnTurnChanged registers a callback for when play passes to the other player.
	OnTurnChanged(func(next types.Player))

	// OnReset registers a callback for when the game is reset.
	// boardState is passed directly so the adapter can redraw without calling back in.
	OnReset(func(boardState *types.BoardState))
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Player1Name string
	Player2Name string
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Player1Name: "Player 1",
		Player2Name: "Player 2",
	}
}

// Name returns the display name for p.
func (c GameConfig) Name(p types.Player) string {
	switch p {
	case types.Player1:
		if c.Player1Name != "" {
			return c.Player1Name
		}
	case types.Player2:
		if c.Player2Name != "" {
			return c.Player2Name
		}
	}
	return p.String()
}

// ErrInvalidMove is matched by every rejected move.
var ErrInvalidMove = errors.New("invalid move")

// Reasons a move is rejected.
const (
	ReasonColumnFull = "column full"
	ReasonGameOver   = "game over"
)

// InvalidMoveError describes a rejected move. The game state is unchanged.
type InvalidMoveError struct {
	Column int
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move in column %d: %s", e.Column, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidMove) hold.
func (e *InvalidMoveError) Is(target error) bool {
	return target == ErrInvalidMove
}
