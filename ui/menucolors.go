package ui

import "github.com/gdamore/tcell/v2"

// MenuColors defines the palette for the setup, color and end-of-game screens.
var MenuColors = struct {
	Border      tcell.Color
	CardBG      tcell.Color
	Title       tcell.Color
	Label       tcell.Color
	Hint        tcell.Color
	ButtonBG    tcell.Color
	ButtonText  tcell.Color
	PreviewSlot tcell.Color
}{
	Border:      tcell.PaletteColor(60),  // Muted blue-gray
	CardBG:      tcell.PaletteColor(236), // Dark gray
	Title:       tcell.PaletteColor(255), // Bright white
	Label:       tcell.PaletteColor(250), // Light gray
	Hint:        tcell.PaletteColor(245), // Dim gray
	ButtonBG:    tcell.PaletteColor(60),  // Nord blue
	ButtonText:  tcell.PaletteColor(255), // White
	PreviewSlot: tcell.PaletteColor(17),  // Navy
}
