// Package local implements the GameEngine interface in-process.
package local

import (
	"fmt"

	"github.com/rs/zerolog"

	"connectfour-local/board"
	"connectfour-local/engine"
	"connectfour-local/types"
)

// game is everything that Reset replaces.
type game struct {
	board       *board.Board
	current     types.Player
	phase       types.Phase
	moveNumber  int
	lastMove    types.Position
	winningLine []types.Position
}

func newGame() *game {
	return &game{
		board:    board.NewStandard(),
		current:  types.Player1,
		phase:    types.Phase{Kind: types.InProgress},
		lastMove: types.NoPosition,
	}
}

// Engine plays hot-seat Connect Four for two local players.
type Engine struct {
	config engine.GameConfig
	game   *game
	log    zerolog.Logger

	placedCallback func(types.Placement)
	wonCallback    func(types.Player)
	tiedCallback   func()
	turnCallback   func(types.Player)
	resetCallback  func(*types.BoardState)
}

var _ engine.GameEngine = (*Engine)(nil)

// NewEngine creates an engine with an empty board and Player1 to move.
func NewEngine(cfg engine.GameConfig, log zerolog.Logger) *Engine {
	return &Engine{
		config: cfg,
		game:   newGame(),
		log:    log.With().Str("component", "engine").Logger(),
	}
}

// Config returns the configuration the engine was created with.
func (e *Engine) Config() engine.GameConfig {
	return e.config
}

// AttemptMove drops the current player's piece into column.
// A column outside the board panics.
func (e *Engine) AttemptMove(column int) (types.MoveOutcome, error) {
	g := e.game
	if column < 0 || column >= g.board.Width() {
		panic(fmt.Sprintf("engine: column %d out of range [0, %d)", column, g.board.Width()))
	}

	if g.phase.Terminal() {
		return e.reject(column, engine.ReasonGameOver)
	}
	row, ok := g.board.LowestEmptyRow(column)
	if !ok {
		return e.reject(column, engine.ReasonColumnFull)
	}

	mover := g.current
	g.board.Place(row, column, mover)
	g.moveNumber++
	g.lastMove = types.Position{Row: row, Column: column}
	e.log.Debug().
		Int("move", g.moveNumber).
		Str("player", mover.String()).
		Str("cell", board.CellName(row, column, g.board.Height())).
		Msg("piece placed")

	if e.placedCallback != nil {
		e.placedCallback(types.Placement{Position: g.lastMove, Player: mover})
	}

	outcome := types.MoveOutcome{Position: g.lastMove, Player: mover}

	if line, won := board.FindWin(g.board, mover); won {
		g.phase = types.Phase{Kind: types.Won, Winner: mover}
		g.winningLine = line
		outcome.Phase = g.phase
		e.log.Debug().Str("winner", mover.String()).Int("moves", g.moveNumber).Msg("game won")
		if e.wonCallback != nil {
			e.wonCallback(mover)
		}
		return outcome, nil
	}

	if g.board.IsFull() {
		g.phase = types.Phase{Kind: types.Tied}
		outcome.Phase = g.phase
		e.log.Debug().Int("moves", g.moveNumber).Msg("game tied")
		if e.tiedCallback != nil {
			e.tiedCallback()
		}
		return outcome, nil
	}

	g.current = mover.Other()
	outcome.Phase = g.phase
	if e.turnCallback != nil {
		e.turnCallback(g.current)
	}
	return outcome, nil
}

func (e *Engine) reject(column int, reason string) (types.MoveOutcome, error) {
	e.log.Info().Int("column", column).Str("reason", reason).Msg("move rejected")
	return types.MoveOutcome{}, &engine.InvalidMoveError{Column: column, Reason: reason}
}

// PreviewLandingRow returns the row a piece dropped into column would land
// on, or ok=false when the column is full. It never changes state.
func (e *Engine) PreviewLandingRow(column int) (int, bool) {
	return e.game.board.LowestEmptyRow(column)
}

// Reset replaces the whole game with a fresh one.
func (e *Engine) Reset() {
	e.game = newGame()
	e.log.Debug().Msg("game reset")
	if e.resetCallback != nil {
		e.resetCallback(e.CurrentState())
	}
}

// CurrentState returns a deep copy of the current game.
func (e *Engine) CurrentState() *types.BoardState {
	g := e.game
	var line []types.Position
	if len(g.winningLine) > 0 {
		line = make([]types.Position, len(g.winningLine))
		copy(line, g.winningLine)
	}
	return &types.BoardState{
		MoveNumber:    g.moveNumber,
		CurrentPlayer: g.current,
		Phase:         g.phase,
		Board:         g.board.Snapshot(),
		LastMove:      g.lastMove,
		WinningLine:   line,
	}
}

// OnPiecePlaced registers a callback for every successful drop.
func (e *Engine) OnPiecePlaced(callback func(types.Placement)) {
	e.placedCallback = callback
}

// OnGameWon registers a callback for when a player wins.
func (e *Engine) OnGameWon(callback func(types.Player)) {
	e.wonCallback = callback
}

// OnGameTied registers a callback for when the board fills without a winner.
func (e *Engine) OnGameTied(callback func()) {
	e.tiedCallback = callback
}

// OnTurnChanged registers a callback for when play passes to the other player.
func (e *Engine) OnTurnChanged(callback func(types.Player)) {
	e.turnCallback = callback
}

// OnReset registers a callback for when the game is reset.
func (e *Engine) OnReset(callback func(*types.BoardState)) {
	e.resetCallback = callback
}
