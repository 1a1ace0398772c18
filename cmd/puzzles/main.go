// puzzles is a collection of grid puzzle games for the terminal.
//
// Usage:
//
//	puzzles list                       - List available games and their levels
//	puzzles play <game> [variant]      - Play a game
//	puzzles menu                       - Start menu to pick games interactively
//	puzzles console <game> [variant]   - Play with typed commands
//	puzzles serve                      - Start SSH server for remote play
//	puzzles scores <game> [variant]    - Show high scores for a game
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path
//	--log-file <path>    - Write logs to a file (logs are discarded otherwise)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/games/samegame"
	"github.com/vovakirdan/tui-puzzles/internal/games/sokoban"
)

var (
	// Global flags
	flagSeed           int64
	flagDBPath         string
	flagLogFile        string
	flagLogLevel       string
	flagSameGameConfig string
	flagSokobanConfig  string
	flagLevelsDir      string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	closeLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "puzzles",
	Short: "Grid puzzles in your terminal",
	Long: `Puzzles is a terminal collection of grid puzzle games:
SameGame (remove groups of same-colored tiles) and Sokoban
(push every box onto a target).

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  console  - Play by typing commands
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  puzzles list
  puzzles play samegame hard
  puzzles play sokoban medium
  puzzles console samegame
  puzzles serve --ssh :2222
  puzzles scores sokoban`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd.Name() == "serve"); err != nil {
			return err
		}
		return loadGameConfigs()
	},
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagSameGameConfig, "samegame-config", "", "Path to a custom SameGame config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSokobanConfig, "sokoban-config", "", "Path to a custom Sokoban config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra Sokoban level files")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// dbPath returns --db or the default database location. The default is
// resolved on first use since it creates the data directory.
func dbPath() string {
	if flagDBPath == "" {
		flagDBPath = config.DefaultDBPath()
	}
	return flagDBPath
}

// loadGameConfigs reads both game configs and installs them before any
// game is created.
func loadGameConfigs() error {
	sg, err := config.LoadSameGame(flagSameGameConfig)
	if err != nil {
		return fmt.Errorf("samegame config: %w", err)
	}
	samegame.SetConfig(sg)

	sk, err := config.LoadSokoban(flagSokobanConfig)
	if err != nil {
		return fmt.Errorf("sokoban config: %w", err)
	}
	if flagLevelsDir != "" {
		sk.LevelsDir = flagLevelsDir
	}
	sokoban.SetConfig(sk)
	return nil
}
