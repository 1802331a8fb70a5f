package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breaker/internal/registry"
	"github.com/vovakirdan/breaker/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all control styles",
	Long:  `Shows every registered breaker variant. Each keeps its own high scores.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Play counts are optional; the list still prints without a database.
	var stats map[string]*storage.GameStats
	if store := openStore(); store != nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}

	fmt.Println("Available styles:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-20s  %-6s  %s\n", maxIDLen, "ID", "Title", "Rounds", "Aliases")
	fmt.Printf("  %-*s  %-20s  %-6s  %s\n", maxIDLen, "--", "-----", "------", "-------")
	for _, g := range games {
		rounds := 0
		if s, ok := stats[g.ID]; ok {
			rounds = s.GamesCount
		}
		fmt.Printf("  %-*s  %-20s  %-6d  %s\n", maxIDLen, g.ID, g.Title, rounds, strings.Join(g.Aliases, ", "))
	}

	fmt.Println()
	fmt.Println("Run 'breaker play <id|alias>' to play.")
}
