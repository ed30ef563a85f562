package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawGhostPiece:       true,
		DrawGhostBackground:  false,
		HighlightWinningLine: true,
		Colors: ConfigColors{
			BoardColor:     19,
			EmptyColor:     17,
			Player1Color:   196,
			Player2Color:   226,
			CursorColor:    255,
			GhostColorBG:   18,
			WinningColorBG: 34,
			LabelColor:     250,
		},
		Symbols: ConfigSymbols{
			Piece:      '●',
			EmptySlot:  '○',
			GhostPiece: '◌',
			Cursor:     '▼',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Players: PlayersConfig{
			Player1Name: "Player 1",
			Player2Name: "Player 2",
		},
		Web: WebConfig{
			Addr: "127.0.0.1:8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
