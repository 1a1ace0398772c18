package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzles/internal/platform/tui"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a game, left/right to pick a difficulty
or level. Leaving a game with Esc returns to the menu.

Controls:
  Up/Down/j/k     - Navigate games
  Left/Right/h/l  - Change difficulty or level
  Enter/Space     - Play
  Tab             - Scoreboard
  Q               - Quit

Examples:
  puzzles menu
  puzzles menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(dbPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, menuResult.Config.ScreenW, menuResult.Config.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				cfg.ScreenW, cfg.ScreenH = menuResult.Config.ScreenW, menuResult.Config.ScreenH
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}
		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		gameCfg := menuResult.Config
		gameCfg.Seed = flagSeed
		back, err := tui.Run(game, store, gameCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !back {
			break
		}
		cfg.ScreenW, cfg.ScreenH = gameCfg.ScreenW, gameCfg.ScreenH
	}

	if store != nil {
		store.Close()
	}
}
