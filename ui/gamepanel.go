package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"connectfour-local/board"
	"connectfour-local/engine"
	"connectfour-local/types"
)

// GameInfoPanel displays the players and game progress alongside the board.
type GameInfoPanel struct {
	box        *tview.TextView
	boardState *types.BoardState
	names      engine.GameConfig
	colors     [2]tcell.Color
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box:   tview.NewTextView(),
		names: engine.DefaultConfig(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetBoardState updates the panel with current board state.
func (p *GameInfoPanel) SetBoardState(state *types.BoardState) {
	p.boardState = state
	p.refresh()
}

// SetNames sets the player names for display.
func (p *GameInfoPanel) SetNames(names engine.GameConfig) {
	p.names = names
}

// SetColors sets the piece colors used for the player list.
func (p *GameInfoPanel) SetColors(player1, player2 tcell.Color) {
	p.colors = [2]tcell.Color{player1, player2}
	p.refresh()
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	if p.boardState == nil {
		p.box.SetText("")
		return
	}
	s := p.boardState

	var text string

	text += "[white::b]Players[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	for i, player := range []types.Player{types.Player1, types.Player2} {
		marker := " "
		if !s.Finished() && s.CurrentPlayer == player {
			marker = "[white]>[-]"
		}
		text += fmt.Sprintf("%s[#%06x]●[-] %s\n", marker, p.colors[i].Hex(), tview.Escape(p.names.Name(player)))
	}

	text += "\n[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]Move:[-:-:-] %d\n", s.MoveNumber)

	last := "—"
	if s.LastMove.Valid() {
		last = board.CellName(s.LastMove.Row, s.LastMove.Column, s.Height())
	}
	text += fmt.Sprintf("[white]Last:[-:-:-] %s\n", last)

	switch s.Phase.Kind {
	case types.Won:
		text += fmt.Sprintf("\n[yellow::b]%s wins[-:-:-]\n", tview.Escape(p.names.Name(s.Phase.Winner)))
	case types.Tied:
		text += "\n[yellow::b]Tie game[-:-:-]\n"
	}

	p.box.SetText(text)
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(b *BoardUI, hint *tview.TextView) *tview.Flex {
	infoPanel := NewGameInfoPanel()
	infoPanel.SetColors(b.styles[stylePlayer1], b.styles[stylePlayer2])

	// Store panel reference in board for updates
	b.infoPanel = infoPanel
	if b.BoardState != nil {
		infoPanel.SetBoardState(b.BoardState)
	}

	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(b.Box, 0, 1, true)             // Board (flexible, takes remaining space)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false) // Info panel (fixed width)

	// Main vertical flex: board area on top, status bar at bottom
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 4, 0, false)

	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// NewGameOverModal builds the end-of-game dialog.
func NewGameOverModal(message string, onNewGame, onMenu func()) *tview.Modal {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"New Game", "Menu"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			switch buttonLabel {
			case "New Game":
				onNewGame()
			default:
				onMenu()
			}
		})
	modal.SetBackgroundColor(MenuColors.CardBG)
	modal.SetButtonBackgroundColor(MenuColors.ButtonBG)
	modal.SetButtonTextColor(MenuColors.ButtonText)
	return modal
}
