package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "connectfour-local/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// ConfigColors are 256-color palette indices.
type ConfigColors struct {
	BoardColor     int `json:"board"`
	EmptyColor     int `json:"empty"`
	Player1Color   int `json:"player1"`
	Player2Color   int `json:"player2"`
	CursorColor    int `json:"cursor"`
	GhostColorBG   int `json:"ghost_bg"`
	WinningColorBG int `json:"winning_bg"`
	LabelColor     int `json:"label"`
}

type ConfigSymbols struct {
	Piece      rune `json:"piece"`
	EmptySlot  rune `json:"empty"`
	GhostPiece rune `json:"ghost"`
	Cursor     rune `json:"cursor"`
}

type Theme struct {
	DrawGhostPiece       bool          `json:"draw_ghost"`
	DrawGhostBackground  bool          `json:"draw_ghost_bg"`
	HighlightWinningLine bool          `json:"highlight_winning_line"`
	Colors               ConfigColors  `json:"colors"`
	Symbols              ConfigSymbols `json:"symbols"`
}

// PlayersConfig holds the display names used in the status line and info panel.
type PlayersConfig struct {
	Player1Name string `json:"player1"`
	Player2Name string `json:"player2"`
}

// WebConfig holds settings for the browser front end.
type WebConfig struct {
	Addr           string   `json:"addr"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// LogConfig holds logging settings. An empty File means the default location.
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Config struct {
	Theme   Theme         `json:"theme"`
	Players PlayersConfig `json:"players"`
	Web     WebConfig     `json:"web"`
	Log     LogConfig     `json:"log"`
}

func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, fmt.Errorf("reading %s: %w", absPath, err)
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads a config file from an explicit path on top of the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.Piece, c.Theme.Symbols.EmptySlot, c.Theme.Symbols.GhostPiece, c.Theme.Symbols.Cursor} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	for _, col := range []int{c.Theme.Colors.BoardColor, c.Theme.Colors.EmptyColor, c.Theme.Colors.Player1Color,
		c.Theme.Colors.Player2Color, c.Theme.Colors.CursorColor, c.Theme.Colors.GhostColorBG,
		c.Theme.Colors.WinningColorBG, c.Theme.Colors.LabelColor} {
		if col < 0 || col > 255 {
			return &InvalidConfig{fmt.Sprintf("color %d is outside the 256-color palette", col)}
		}
	}
	for _, name := range []string{c.Players.Player1Name, c.Players.Player2Name} {
		if strings.ContainsAny(name, "[]") {
			return &InvalidConfig{fmt.Sprintf("player name %q may not contain brackets", name)}
		}
	}
	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Log.Level)}
		}
	}
	if c.Web.Addr == "" {
		return &InvalidConfig{"web address must not be empty"}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(configReader, a)
}
