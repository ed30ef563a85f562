// connectfour-local is a two-player Connect Four game for the terminal or the browser.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"connectfour-local/board"
	"connectfour-local/config"
	"connectfour-local/engine"
	"connectfour-local/engine/local"
	"connectfour-local/logging"
	"connectfour-local/types"
	"connectfour-local/ui"
	"connectfour-local/web"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagWeb        = flag.Bool("web", false, "Serve the game to a browser instead of the terminal")
	flagAddr       = flag.String("addr", "", "Listen address for -web (default from config)")
	flagPlayer1    = flag.String("p1", "", "Name of Player 1")
	flagPlayer2    = flag.String("p2", "", "Name of Player 2")
	flagQuickStart = flag.Bool("play", false, "Start game immediately, skipping the setup screen")
	flagConfig     = flag.String("config", "", "Path to a config file (default: XDG config dir)")
	flagLogLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var logger zerolog.Logger

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("connectfour-local %s\n", Version)
		return
	}

	var err error
	if *flagConfig != "" {
		cfg, err = config.Load(*flagConfig)
	} else {
		cfg, err = config.InitConfig()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlags(cfg)

	if *flagWeb {
		if err := runWeb(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	var closer io.Closer
	logger, closer, err = logging.File(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := runTerminal(); err != nil {
		logger.Error().Err(err).Msg("terminal UI failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyFlags overrides config values given on the command line.
func applyFlags(c *config.Config) {
	if *flagAddr != "" {
		c.Web.Addr = *flagAddr
	}
	if *flagPlayer1 != "" {
		c.Players.Player1Name = *flagPlayer1
	}
	if *flagPlayer2 != "" {
		c.Players.Player2Name = *flagPlayer2
	}
	if *flagLogLevel != "" {
		c.Log.Level = *flagLogLevel
	}
}

func playerNames() engine.GameConfig {
	return engine.GameConfig{
		Player1Name: cfg.Players.Player1Name,
		Player2Name: cfg.Players.Player2Name,
	}
}

func runWeb() error {
	var err error
	logger, err = logging.Console(cfg.Log.Level)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Connect Four on http://%s\n", cfg.Web.Addr)
	return web.NewServer(cfg.Web, playerNames(), logger).Run(ctx)
}

func runTerminal() error {
	app = tview.NewApplication()
	app.EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ● connect four ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetDynamicColors(true)
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(app, cfg, gameHint, logger)
	gameBoard.SetGameOverFunc(showGameOver)

	// Create game layout with board and side panel
	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	// Game board input handling
	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft:
			gameBoard.MoveCursor(-1)
		case tcell.KeyRight:
			gameBoard.MoveCursor(1)
		case tcell.KeyEnter, tcell.KeyDown:
			gameBoard.DropAtCursor()
		case tcell.KeyRune:
			switch r := event.Rune(); {
			case r == 'q':
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
				return nil
			case r == 'h':
				gameBoard.MoveCursor(-1)
			case r == 'l':
				gameBoard.MoveCursor(1)
			case r == 'j' || r == ' ':
				gameBoard.DropAtCursor()
			case r == 'n':
				gameBoard.NewGame()
			case r >= '1' && r < '1'+board.Width:
				col := int(r - '1')
				gameBoard.SetCursor(col)
				gameBoard.Drop(col)
			}
		}
		return event
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(
		playerNames(),
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, logger, func() {
		// Refresh the game board with new colors
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	// Add pages - start on setup by default, or gameview if quick start
	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !*flagQuickStart)
	rootPage.AddPage("gameview", gameFrame, true, *flagQuickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if *flagQuickStart {
		startGame(setupUI.GameConfig())
	}

	return app.SetRoot(rootPage, true).Run()
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	logger.Info().Str("player1", gameCfg.Player1Name).Str("player2", gameCfg.Player2Name).Msg("starting game")
	eng := local.NewEngine(gameCfg, logger)
	gameBoard.ConnectEngine(eng)
	rootPage.SwitchToPage("gameview")
	app.SetFocus(gameBoard.Box)
}

// showGameOver opens the end-of-game dialog over the board.
func showGameOver(phase types.Phase) {
	message := phase.Message()
	if phase.Kind == types.Won {
		message = fmt.Sprintf("🏆  %s wins!  🏆", gameBoard.Names().Name(phase.Winner))
	}
	modal := ui.NewGameOverModal(message,
		func() {
			rootPage.RemovePage("gameover")
			gameBoard.NewGame()
			app.SetFocus(gameBoard.Box)
		},
		func() {
			rootPage.RemovePage("gameover")
			gameBoard.Close()
			rootPage.SwitchToPage("setup")
		},
	)
	rootPage.AddPage("gameover", modal, true, true)
}
