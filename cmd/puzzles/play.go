package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/platform/tui"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game> [variant]",
	Short: "Play a game",
	Long: `Start playing the specified game.

The optional variant is a difficulty for SameGame (easy, medium, hard)
or a level ID for Sokoban. Run 'puzzles list' to see them.

Controls:
  Arrows/WASD/hjkl - Move cursor or player
  Enter/Space      - Remove group (SameGame), next level (Sokoban)
  U/Backspace      - Undo
  ?                - Show hint (SameGame)
  R                - Restart
  P                - Pause
  Ctrl+S           - Save screenshot
  Esc              - Back
  Q/Ctrl+C         - Quit

Examples:
  puzzles play samegame
  puzzles play samegame hard --seed 42
  puzzles play sokoban medium`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	game := mustCreate(args[0])

	cfg := runtimeConfig()
	if len(args) > 1 {
		cfg.Variant = args[1]
	}

	// Open score storage
	store, err := storage.Open(dbPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// mustCreate returns a fresh game or exits with a hint.
func mustCreate(gameID string) registry.Game {
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'puzzles list' to see available games.")
		os.Exit(1)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	return game
}

// runtimeConfig sizes the screen to the terminal, 80x24 when unknown.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}
