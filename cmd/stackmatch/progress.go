package main

import (
	"errors"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/stackmatch/internal/engine"
	"github.com/vovakirdan/stackmatch/internal/storage"
)

var flagRecent int

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show a player's coins, unlocks and power-ups",
	Long: `Show the profile of the current player (--player, default $USER):
coin balance, highest unlocked campaign level, power-up stock, daily
streak, best results per mode and the latest attempts.

Examples:
  stackmatch progress
  stackmatch progress --player alice --recent 10`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent attempts to show")
}

func runProgress(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	player := playerName()
	p := message.NewPrinter(language.English)

	profile, err := store.Profile(player)
	if errors.Is(err, storage.ErrNoProfile) {
		p.Printf("No progress recorded for %s yet.\n\nRun 'stackmatch play' to start.\n", player)
		return
	}
	if err != nil {
		fail("%v", err)
	}

	p.Printf("Player      %s\n", profile.Player)
	p.Printf("Coins       %d\n", profile.Coins)
	p.Printf("Unlocked    level %d\n", profile.MaxLevel)

	today := time.Now()
	if streak, err := store.DailyStreak(player, today); err == nil {
		p.Printf("Daily       %d day streak\n", streak)
	}
	p.Printf("Since       %s\n\n", profile.CreatedAt.Format("2006-01-02"))

	inv, err := store.Inventory(player)
	if err != nil {
		fail("%v", err)
	}
	p.Printf("Power-ups\n")
	for _, info := range engine.PowerUps() {
		p.Printf("  %-8s %3d  %s\n", info.Name, inv[info.Key], info.Description)
	}

	if stats, err := store.GetAllModesStats(); err == nil && len(stats) > 0 {
		modes := make([]string, 0, len(stats))
		for m := range stats {
			modes = append(modes, m)
		}
		sort.Strings(modes)

		p.Printf("\nAll players, by mode\n")
		p.Printf("  %-10s  %7s  %6s  %10s  %10s  %s\n", "Mode", "Games", "Won %", "Best", "Average", "Last played")
		for _, m := range modes {
			s := stats[m]
			p.Printf("  %-10s  %7d  %6.1f  %10d  %10.0f  %s\n",
				m, s.GamesCount, 100*s.WinRate(), s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02"))
		}
	}

	counts, err := store.AttemptCounts(player)
	if err == nil && len(counts) > 0 {
		p.Printf("\nAttempts    %d won, %d lost, %d unfinished\n",
			counts["won"], counts["lost"], counts["playing"])
	}

	attempts, err := store.RecentAttempts(player, flagRecent)
	if err != nil {
		fail("%v", err)
	}
	if len(attempts) == 0 {
		return
	}
	p.Printf("\nRecent\n")
	for _, a := range attempts {
		p.Printf("  %s  %-8s  level %-3d  %-8s  %7d pts  %+d coins\n",
			a.StartedAt.Format("2006-01-02 15:04"), a.Mode, a.Level, a.Status, a.Score, a.Reward)
	}
}
