// stackmatch is a stacked-tile match-3 puzzle for the terminal.
//
// Usage:
//
//	stackmatch play [level]   - Play a campaign level (or open the menu)
//	stackmatch daily          - Play today's daily challenge
//	stackmatch menu           - Pick modes and levels interactively
//	stackmatch levels         - List levels or validate a level pack
//	stackmatch scores [mode]  - Show high scores
//	stackmatch progress       - Show coins, unlocks and power-ups
//	stackmatch serve          - Start the SSH server for remote play
//	stackmatch http           - Start the HTTP+JSON API
//	stackmatch analyze        - Estimate level difficulty with a bot
//
// Global flags:
//
//	--seed <value>       - Board RNG seed for reproducible games
//	--db <path>          - Database path (default: ~/.stackmatch/stackmatch.db)
//	--config <path>      - Config file
//	--difficulty <name>  - Rule preset: relaxed, standard, strict
//	--player <name>      - Profile name (default: $USER)
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers the campaign and daily modes.
	_ "github.com/vovakirdan/stackmatch/internal/levels"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stackmatch",
	Short: "Stackmatch - a layered tile-matching puzzle in your terminal",
	Long: `Stackmatch deals icon tiles in overlapping layers. Pick uncovered tiles
into a seven-slot tray; three of a kind clear. Clear the board to win,
fill the tray and you lose.

Available commands:
  play      - Play a campaign level
  daily     - Play today's daily challenge
  menu      - Interactive mode and level picker
  levels    - List levels or validate a level pack
  scores    - View high scores
  progress  - Show coins, unlocked levels and power-ups
  serve     - Start SSH server for remote play
  http      - Start the HTTP+JSON API
  analyze   - Estimate level difficulty

Examples:
  stackmatch play
  stackmatch play 3 --difficulty relaxed
  stackmatch daily
  stackmatch serve --ssh :2222
  stackmatch http --addr :8080
  stackmatch analyze --from 1 --to 10 --samples 200`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 4, "UI refresh rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stackmatch/stackmatch.db", "Path to the progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Rule preset: relaxed, standard, strict")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Profile name (default: $USER)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(httpCmd)
	rootCmd.AddCommand(analyzeCmd)
}
