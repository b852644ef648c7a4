package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackmatch/internal/levels"
	"github.com/vovakirdan/stackmatch/internal/platform/tui"
	"github.com/vovakirdan/stackmatch/internal/registry"
	"github.com/vovakirdan/stackmatch/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagScoresClear bool
	flagScoresMine  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top scores for a mode (campaign by default).

Examples:
  stackmatch scores
  stackmatch scores daily
  stackmatch scores --tui
  stackmatch scores --mine
  stackmatch scores campaign --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse all modes in the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every score recorded for the mode")
	scoresCmd.Flags().BoolVar(&flagScoresMine, "mine", false, "Show the current player's latest results across modes")
}

func runScores(_ *cobra.Command, args []string) {
	logger := newLogger("stackmatch")
	loadConfig(logger)

	store := mustOpenStore()
	defer store.Close()

	if flagScoresTUI {
		rc := runtimeConfig()
		if err := tui.RunScoreboard(store, playerName(), rc.ScreenW, rc.ScreenH); err != nil {
			fail("%v", err)
		}
		return
	}

	if flagScoresMine {
		showPlayerScores(store, playerName())
		return
	}

	modeID := levels.ModeCampaign
	if len(args) == 1 {
		modeID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'stackmatch levels' to see available modes.")
		os.Exit(1)
	}
	mode, err := registry.Create(modeID)
	if err != nil {
		fail("%v", err)
	}

	if flagScoresClear {
		if err := store.ClearScores(modeID); err != nil {
			fail("clearing scores: %v", err)
		}
		fmt.Printf("Scores for %s cleared.\n", mode.Title())
		return
	}

	scores, err := store.TopScores(modeID, flagScoresLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", mode.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'stackmatch play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-5s  %-8s  %-6s  %s\n", "Rank", "Player", "Level", "Score", "Result", "Date")
	fmt.Printf("  %-4s  %-16s  %-5s  %-8s  %-6s  %s\n", "----", "------", "-----", "-----", "------", "----")

	for i, entry := range scores {
		result := "lost"
		if entry.Won {
			result = "won"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-5d  %-8d  %-6s  %s\n", i+1, entry.Player, entry.Level, entry.Score, result, dateStr)
	}

	// Show high score
	fmt.Println()
	if highScore, err := store.HighScore(modeID); err == nil {
		fmt.Printf("Best: %d", highScore)
	}
	if stats, err := store.GetModeStats(modeID); err == nil {
		fmt.Printf("   Games: %d   Won: %.0f%%", stats.GamesCount, 100*stats.WinRate())
	}
	fmt.Println()
}

func showPlayerScores(store *storage.Store, player string) {
	scores, err := store.PlayerScores(player, flagScoresLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("Latest results - %s\n", player)
	fmt.Println()
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	fmt.Printf("  %-10s  %-5s  %-8s  %-6s  %s\n", "Mode", "Level", "Score", "Result", "Date")
	fmt.Printf("  %-10s  %-5s  %-8s  %-6s  %s\n", "----", "-----", "-----", "------", "----")
	for _, entry := range scores {
		result := "lost"
		if entry.Won {
			result = "won"
		}
		fmt.Printf("  %-10s  %-5d  %-8d  %-6s  %s\n", entry.Mode, entry.Level, entry.Score, result, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
}
