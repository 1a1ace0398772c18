package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/platform/console"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

var consoleCmd = &cobra.Command{
	Use:   "console <game> [variant]",
	Short: "Play a game by typing commands",
	Long: `Play without the full-screen interface. The board is printed after
every move and commands are read line by line from stdin.

Commands:
  select <row> <col>   - Remove a group (SameGame)
  move <dir>           - Move the player (Sokoban); up/down/left/right also work
  undo, hint, pause, new, board, help, quit

Examples:
  puzzles console samegame easy --seed 7
  puzzles console sokoban hard
  echo "move left" | puzzles console sokoban easy`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConsole,
}

func runConsole(cmd *cobra.Command, args []string) error {
	game := mustCreate(args[0])

	cfg := core.DefaultConfig()
	cfg.Seed = flagSeed
	if len(args) > 1 {
		cfg.Variant = args[1]
	}
	if err := game.Reset(cfg); err != nil {
		return fmt.Errorf("start %s: %w", game.ID(), err)
	}

	logger := log.Default()
	store, err := storage.Open(dbPath())
	if err != nil {
		logger.Warn("scores disabled", "err", err)
	} else {
		defer store.Close()
		rec := storage.NewRecorder(store, game.ID(), game.ScoreOrder(), logger)
		defer rec.Attach(game.Session(), game.State().Variant)()
		defer func() {
			if res, ok := rec.Last(); ok && res.HighScore {
				fmt.Printf("New high score: %d\n", res.Score)
			}
		}()
	}

	err = console.New(game, os.Stdout, logger).Run(cmd.Context(), os.Stdin)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
