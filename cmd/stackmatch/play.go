package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackmatch/internal/levels"
	"github.com/vovakirdan/stackmatch/internal/platform/tui"
	"github.com/vovakirdan/stackmatch/internal/registry"
	"github.com/vovakirdan/stackmatch/internal/session"
)

var flagMode string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing a level. Without a level number the mode and level
picker opens.

Controls:
  Arrows/hjkl  - Move between uncovered tiles
  Enter/Space  - Pick the tile into the tray
  1            - Shuffle the board
  2/U          - Undo the last move
  3            - Clear the first three tray slots
  4            - Hint a matchable group
  R            - Restart the level
  N            - Next level (after a win)
  Esc/Q        - Quit

Campaign levels unlock one at a time. Power-ups come out of your
inventory, which grows as you win.

Examples:
  stackmatch play
  stackmatch play 3
  stackmatch play 2 --mode pack
  stackmatch play 1 --seed 42 --difficulty strict`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Play today's daily challenge",
	Long: `Play the daily challenge. Everyone gets the same board on the same
date; the coin reward is paid for the first win of the day only.`,
	Args: cobra.NoArgs,
	Run:  runDaily,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", levels.ModeCampaign, "Mode to play: campaign or pack")
}

func runPlay(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		runMenu(nil, nil)
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fail("invalid level %q", args[0])
	}
	playLevel(flagMode, n)
}

func runDaily(_ *cobra.Command, _ []string) {
	playLevel(levels.ModeDaily, 1)
}

// playLevel starts mode level n in the single-game UI.
func playLevel(modeID string, n int) {
	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'stackmatch levels' to see available modes.")
		os.Exit(1)
	}
	mode, err := registry.Create(modeID)
	if err != nil {
		fail("%v", err)
	}

	logger := newLogger("stackmatch")
	cfg := loadConfig(logger)
	store := openStore(logger)
	sess := newSession(store, cfg, logger)

	if err := sess.Start(mode, n); err != nil {
		if store != nil {
			store.Close()
		}
		if errors.Is(err, session.ErrLocked) {
			fail("level %d is locked; win the previous level first", n)
		}
		fail("%v", err)
	}

	runErr := tui.Run(sess, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
