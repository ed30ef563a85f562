// Package ui provides terminal UI components for connectfour-local.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"connectfour-local/board"
	"connectfour-local/config"
	"connectfour-local/types"
)

// ColorConfigUI provides a piece color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()
	log       zerolog.Logger

	// Current selection
	selected [2]int
	editing  types.Player
}

// Piece colors to choose from.
var pieceColors = []struct {
	code int
	name string
}{
	{196, "Red"},
	{160, "Dark Red"},
	{202, "Orange"},
	{214, "Orange Gold"},
	{226, "Yellow"},
	{220, "Gold"},
	{46, "Green"},
	{34, "Forest Green"},
	{51, "Cyan"},
	{39, "Sky Blue"},
	{201, "Magenta"},
	{129, "Purple"},
	{255, "White"},
	{244, "Gray"},
}

// previewPieces is a mid-game position drawn on the preview board.
var previewPieces = map[types.Position]types.Player{
	{Row: 5, Column: 2}: types.Player1,
	{Row: 5, Column: 3}: types.Player2,
	{Row: 4, Column: 3}: types.Player1,
	{Row: 5, Column: 4}: types.Player2,
	{Row: 4, Column: 2}: types.Player2,
	{Row: 3, Column: 3}: types.Player1,
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, log zerolog.Logger, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:      cfg,
		onDone:   onDone,
		log:      log.With().Str("component", "colors").Logger(),
		selected: [2]int{cfg.Theme.Colors.Player1Color, cfg.Theme.Colors.Player2Color},
		editing:  types.Player1,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.SetBorderColor(MenuColors.Border)
	cc.colorList.ShowSecondaryText(false)

	cc.populateColorList()

	// Handle selection change (preview)
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index >= 0 && index < len(pieceColors) {
			cc.selected[cc.editing-1] = pieceColors[index].code
		}
	})

	// Handle selection confirm (apply)
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(pieceColors) {
			return
		}
		cc.apply()
		if cc.editing == types.Player1 {
			// Move on to the second player's color
			cc.editing = types.Player2
			cc.populateColorList()
			return
		}
		cc.editing = types.Player1
		cc.populateColorList()
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetBorderColor(MenuColors.Border)
	cc.preview.SetTitle(" Preview ")
	cc.preview.SetTitleColor(MenuColors.Title)
	cc.preview.SetDrawFunc(cc.drawPreview)

	// Layout: list on left, preview on right
	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 34, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

// apply stores both selected colors and persists the config.
func (cc *ColorConfigUI) apply() {
	cc.cfg.Theme.Colors.Player1Color = cc.selected[0]
	cc.cfg.Theme.Colors.Player2Color = cc.selected[1]
	if err := cc.cfg.Save(); err != nil {
		cc.log.Warn().Err(err).Msg("could not save config")
	}
}

// populateColorList fills the list for the player being edited.
func (cc *ColorConfigUI) populateColorList() {
	// Adding items fires the changed func, so remember the selection first.
	want := cc.selected[cc.editing-1]
	cc.colorList.Clear()

	other := types.Player2
	if cc.editing == types.Player2 {
		other = types.Player1
	}
	cc.colorList.SetTitle(fmt.Sprintf(" %s Color (Tab: %s) ", cc.editing, other))
	for i, c := range pieceColors {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]●●●[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range pieceColors {
		if c.code == want {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
	cc.selected[cc.editing-1] = want
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if width < board.Width*cellWidth+4 || height < board.Height+3 {
		return x, y, width, height
	}

	boardColor := tcell.PaletteColor(cc.cfg.Theme.Colors.BoardColor)
	colors := map[types.Player]tcell.Color{
		types.NoPlayer: MenuColors.PreviewSlot,
		types.Player1:  tcell.PaletteColor(cc.selected[0]),
		types.Player2:  tcell.PaletteColor(cc.selected[1]),
	}

	startX := x + 2
	startY := y + 1
	for row := 0; row < board.Height; row++ {
		for col := 0; col < board.Width; col++ {
			p := previewPieces[types.Position{Row: row, Column: col}]
			r := cc.cfg.Theme.Symbols.EmptySlot
			if p != types.NoPlayer {
				r = cc.cfg.Theme.Symbols.Piece
			}
			style := tcell.StyleDefault.Background(boardColor).Foreground(colors[p])
			drawCell(screen, style, r, startX+col*cellWidth, startY+row)
		}
	}

	info := fmt.Sprintf("Player 1: %d  Player 2: %d", cc.selected[0], cc.selected[1])
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+board.Height+1, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between editing Player 1 and Player 2.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editing = cc.editing.Other()
	cc.populateColorList()
}
