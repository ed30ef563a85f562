// Package ui provides terminal UI components for connectfour-local.
package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"connectfour-local/engine"
)

// maxNameLength bounds player names so they fit the info panel.
const maxNameLength = 20

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()

	player1 string
	player2 string
}

// NewGameSetup creates a new game setup form prefilled with defaults.
func NewGameSetup(defaults engine.GameConfig, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:  onStart,
		onCancel: onCancel,
		onColors: onColors,
		player1:  defaults.Player1Name,
		player2:  defaults.Player2Name,
	}

	form := tview.NewForm()

	form.AddInputField("Player 1 (first)", setup.player1, maxNameLength, acceptNameRune, func(text string) {
		setup.player1 = text
	})
	form.AddInputField("Player 2", setup.player2, maxNameLength, acceptNameRune, func(text string) {
		setup.player2 = text
	})

	form.AddButton("Start Game", func() {
		onStart(setup.GameConfig())
	})

	form.AddButton("Colors", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetFieldBackgroundColor(MenuColors.CardBG)
	form.SetLabelColor(MenuColors.Label)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// GameConfig returns the configuration entered so far. Blank names fall back
// to the defaults.
func (s *GameSetupUI) GameConfig() engine.GameConfig {
	cfg := engine.DefaultConfig()
	if name := strings.TrimSpace(s.player1); name != "" {
		cfg.Player1Name = name
	}
	if name := strings.TrimSpace(s.player2); name != "" {
		cfg.Player2Name = name
	}
	return cfg
}

// acceptNameRune keeps tview color tags out of player names.
func acceptNameRune(text string, lastChar rune) bool {
	return lastChar != '[' && lastChar != ']' && len([]rune(text)) <= maxNameLength
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
