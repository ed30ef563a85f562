// Package ui specifies custom controls for tview to play Connect Four in the terminal.
package ui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"connectfour-local/board"
	"connectfour-local/config"
	"connectfour-local/engine"
	"connectfour-local/types"
)

// Board layout in screen cells.
const (
	cellWidth  = 3
	leftMargin = 3 // row numbers
	topMargin  = 1 // cursor row
)

// Indices into BoardUI.styles.
const (
	styleBoard = iota
	styleEmpty
	stylePlayer1
	stylePlayer2
	styleCursor
	styleGhost
	styleWinning
	styleLabel
)

type BoardUI struct {
	Box        *tview.Box
	BoardState *types.BoardState
	hint       *tview.TextView
	cfg        *config.Config
	cursor     int
	app        *tview.Application
	eng        engine.GameEngine
	styles     []tcell.Color
	infoPanel  *GameInfoPanel
	onGameOver func(types.Phase)
	log        zerolog.Logger

	// top-left of the grid as last drawn, for mouse hit-testing
	originX int
	originY int
}

func NewBoard(app *tview.Application, c *config.Config, hint *tview.TextView, log zerolog.Logger) *BoardUI {
	b := &BoardUI{
		Box:        tview.NewBox(),
		BoardState: types.NewBoardState(board.Width, board.Height),
		hint:       hint,
		app:        app,
		cursor:     board.Width / 2,
		log:        log.With().Str("component", "tui").Logger(),
	}
	b.SetConfig(c)
	b.Box.SetDrawFunc(b.draw)
	b.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		col, ok := b.columnAt(event.Position())
		if !ok {
			return action, event
		}
		switch action {
		case tview.MouseMove:
			b.SetCursor(col)
			return action, nil
		case tview.MouseLeftClick:
			b.SetCursor(col)
			b.Drop(col)
			return action, nil
		}
		return action, event
	})
	return b
}

func (g *BoardUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	s := g.BoardState
	if s == nil || s.Width() == 0 {
		return x, y, width, height
	}
	g.originX, g.originY = x+leftMargin, y+topMargin

	ghostRow := -1
	if !s.Finished() {
		cursorStyle := tcell.StyleDefault.Foreground(g.playerColor(s.CurrentPlayer))
		drawCell(screen, cursorStyle, g.cfg.Theme.Symbols.Cursor, g.originX+g.cursor*cellWidth, y)
		if g.cfg.Theme.DrawGhostPiece && g.eng != nil {
			if row, ok := g.eng.PreviewLandingRow(g.cursor); ok {
				ghostRow = row
			}
		}
	}

	for row := 0; row < s.Height(); row++ {
		for col := 0; col < s.Width(); col++ {
			bg := g.styles[styleBoard]
			fg := g.styles[styleEmpty]
			r := g.cfg.Theme.Symbols.EmptySlot

			switch p := s.Board[row][col]; {
			case p != types.NoPlayer:
				r = g.cfg.Theme.Symbols.Piece
				fg = g.playerColor(p)
				if g.cfg.Theme.HighlightWinningLine && s.InWinningLine(row, col) {
					bg = g.styles[styleWinning]
				}
			case row == ghostRow && col == g.cursor:
				r = g.cfg.Theme.Symbols.GhostPiece
				fg = g.playerColor(s.CurrentPlayer)
				if g.cfg.Theme.DrawGhostBackground {
					bg = g.styles[styleGhost]
				}
			}
			drawCell(screen, tcell.StyleDefault.Background(bg).Foreground(fg), r, g.originX+col*cellWidth, g.originY+row)
		}
	}
	drawCoordinates(screen, x, g.originY, g)
	return x, y, s.Width()*cellWidth + leftMargin, s.Height() + topMargin + 1
}

// columnAt maps a screen position to a board column. The cursor row and the
// label row count as part of their column.
func (g *BoardUI) columnAt(mx, my int) (int, bool) {
	if g.BoardState == nil {
		return 0, false
	}
	w, h := g.BoardState.Width(), g.BoardState.Height()
	if mx < g.originX || mx >= g.originX+w*cellWidth {
		return 0, false
	}
	if my < g.originY-topMargin || my > g.originY+h {
		return 0, false
	}
	return (mx - g.originX) / cellWidth, true
}

// ConnectEngine connects the board to a game engine.
func (g *BoardUI) ConnectEngine(e engine.GameEngine) {
	g.eng = e
	g.cursor = board.Width / 2

	update := func() {
		g.BoardState = e.CurrentState()
		g.refreshHint()
	}
	e.OnPiecePlaced(func(p types.Placement) {
		g.log.Debug().Str("player", p.Player.String()).Int("row", p.Row).Int("column", p.Column).Msg("piece placed")
		update()
	})
	e.OnTurnChanged(func(types.Player) {
		update()
	})
	e.OnGameWon(func(types.Player) {
		update()
		g.gameOver()
	})
	e.OnGameTied(func() {
		update()
		g.gameOver()
	})
	e.OnReset(func(boardState *types.BoardState) {
		g.BoardState = boardState
		g.cursor = board.Width / 2
		g.refreshHint()
	})

	g.BoardState = e.CurrentState()
	g.refreshHint()
}

func (g *BoardUI) gameOver() {
	if g.onGameOver != nil {
		g.onGameOver(g.BoardState.Phase)
	}
}

// SetGameOverFunc sets the function called once a game is won or tied.
func (g *BoardUI) SetGameOverFunc(f func(types.Phase)) {
	g.onGameOver = f
}

// Cursor returns the selected column.
func (g *BoardUI) Cursor() int {
	return g.cursor
}

// MoveCursor moves the column cursor, stopping at the edges.
func (g *BoardUI) MoveCursor(delta int) {
	g.SetCursor(g.cursor + delta)
}

// SetCursor selects a column. Out-of-range columns are ignored.
func (g *BoardUI) SetCursor(col int) {
	if col < 0 || col >= g.BoardState.Width() {
		return
	}
	g.cursor = col
}

// DropAtCursor drops the current player's piece in the selected column.
func (g *BoardUI) DropAtCursor() {
	g.Drop(g.cursor)
}

// Drop drops the current player's piece in col. Full columns and finished
// games are ignored.
func (g *BoardUI) Drop(col int) {
	if g.eng == nil || g.BoardState.Finished() {
		return
	}
	if col < 0 || col >= g.BoardState.Width() {
		return
	}
	if _, err := g.eng.AttemptMove(col); err != nil {
		if !errors.Is(err, engine.ErrInvalidMove) {
			g.log.Error().Err(err).Int("column", col).Msg("move failed")
		}
		return
	}
}

// NewGame resets the connected engine.
func (g *BoardUI) NewGame() {
	if g.eng == nil {
		return
	}
	g.eng.Reset()
}

// Close disconnects the engine.
func (g *BoardUI) Close() {
	g.eng = nil
}

func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),     // 0
		tcell.PaletteColor(c.Theme.Colors.EmptyColor),     // 1
		tcell.PaletteColor(c.Theme.Colors.Player1Color),   // 2
		tcell.PaletteColor(c.Theme.Colors.Player2Color),   // 3
		tcell.PaletteColor(c.Theme.Colors.CursorColor),    // 4
		tcell.PaletteColor(c.Theme.Colors.GhostColorBG),   // 5
		tcell.PaletteColor(c.Theme.Colors.WinningColorBG), // 6
		tcell.PaletteColor(c.Theme.Colors.LabelColor),     // 7
	}
	g.cfg = c
	if g.infoPanel != nil {
		g.infoPanel.SetColors(g.styles[stylePlayer1], g.styles[stylePlayer2])
	}
}

func (g *BoardUI) playerColor(p types.Player) tcell.Color {
	switch p {
	case types.Player1:
		return g.styles[stylePlayer1]
	case types.Player2:
		return g.styles[stylePlayer2]
	}
	return g.styles[styleEmpty]
}

// Names returns the player names of the connected engine.
func (g *BoardUI) Names() engine.GameConfig {
	if g.eng == nil {
		return engine.DefaultConfig()
	}
	return g.eng.Config()
}

func (g *BoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetNames(g.Names())
		g.infoPanel.SetBoardState(g.BoardState)
	}
	g.hint.SetText(statusText(g.BoardState, g.Names(), g.playerColor(g.BoardState.CurrentPlayer)))
}

// statusText is the two-line status bar below the board.
func statusText(s *types.BoardState, names engine.GameConfig, turnColor tcell.Color) string {
	if s.Finished() {
		var result string
		switch s.Phase.Kind {
		case types.Won:
			result = fmt.Sprintf("🏆  %s wins!  🏆", tview.Escape(names.Name(s.Phase.Winner)))
		default:
			result = s.Phase.Message()
		}
		return fmt.Sprintf("  %s\n  n · new game   q · return to menu", result)
	}
	return fmt.Sprintf("  [#%06x]●[-] %s to move\n  ←→/hl move   ⏎/␣/↓ drop   1-7 column   n new   q menu",
		turnColor.Hex(), tview.Escape(names.Name(s.CurrentPlayer)))
}

// IsFinished returns true if the game is over.
func (g *BoardUI) IsFinished() bool {
	return g.BoardState.Finished()
}

// drawCell draws one slot, cellWidth characters wide with the rune centered.
func drawCell(s tcell.Screen, c tcell.Style, r rune, l, t int) {
	s.SetContent(l, t, ' ', nil, c)
	s.SetContent(l+1, t, r, nil, c)
	s.SetContent(l+2, t, ' ', nil, c)
}

func drawCoordinates(s tcell.Screen, x, top int, ui *BoardUI) {
	w, h := ui.BoardState.Width(), ui.BoardState.Height()

	style := tcell.StyleDefault.Foreground(ui.styles[styleLabel])
	highlight := tcell.StyleDefault.Foreground(ui.styles[styleCursor]).Bold(true)

	for ix := 0; ix < w; ix++ {
		_style := style
		if ix == ui.cursor && !ui.BoardState.Finished() {
			_style = highlight
		}
		drawCell(s, _style, rune(board.ColumnLabel(ix)[0]), ui.originX+ix*cellWidth, top+h)
	}

	for iy := 0; iy < h; iy++ {
		// Rows are numbered from the bottom.
		displayNum := h - iy
		_style := style
		if iy == ui.BoardState.LastMove.Row {
			_style = highlight
		}
		s.SetContent(x+1, top+iy, rune('0'+displayNum%10), nil, _style)
	}
}
