package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game> [variant]",
	Short: "Show high scores for a game",
	Long: `Display the top 10 scores for the specified game. Without a variant,
every difficulty or level with recorded scores is listed.

SameGame ranks higher scores first, Sokoban ranks fewer moves first.

Examples:
  puzzles scores samegame
  puzzles scores sokoban hard`,
	Args: cobra.RangeArgs(1, 2),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	game := mustCreate(args[0])
	gameID := game.ID()
	order := game.ScoreOrder()

	store, err := storage.Open(dbPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	variants := args[1:]
	if len(variants) == 0 {
		variants, err = store.Variants(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(variants) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'puzzles play %s' to set the first high score!\n", gameID)
		return
	}

	label := "Score"
	if order == core.LowerIsBetter {
		label = "Moves"
	}

	for _, variant := range variants {
		scores, err := store.TopScores(gameID, variant, order, storage.TopN)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("[%s]\n", variant)
		if len(scores) == 0 {
			fmt.Println("  No scores recorded yet.")
			fmt.Println()
			continue
		}

		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", label, "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
		}

		if best, ok, err := store.BestScore(gameID, variant, order); err == nil && ok {
			fmt.Printf("  Best: %d\n", best)
		}
		fmt.Println()
	}
}
