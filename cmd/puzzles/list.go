package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzles/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game with its difficulties or levels.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Title", "Variants")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "-----", "--------")

	for _, info := range games {
		variants := ""
		if g, err := registry.Create(info.ID); err == nil {
			variants = strings.Join(g.Variants(), ", ")
		}
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, info.ID, info.Title, variants)
	}

	fmt.Println()
	fmt.Println("Run 'puzzles play <id> [variant]' to play a game.")
}
