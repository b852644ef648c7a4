package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackmatch/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the mode and level picker",
	Long: `Start stackmatch in interactive menu mode.

Use Tab or Left/Right to switch modes, Up/Down to pick a level and
Enter to play. After a game, Esc returns to the menu.

Controls:
  Tab/Left/Right  - Switch mode
  Up/Down/j/k     - Navigate levels
  Enter/Space     - Play level
  T               - Scoreboard
  Q               - Quit

Examples:
  stackmatch menu
  stackmatch menu --player alice
  stackmatch menu --db ./stackmatch.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger := newLogger("stackmatch")
	cfg := loadConfig(logger)
	store := openStore(logger)
	sess := newSession(store, cfg, logger)

	runErr := tui.RunApp(store, sess, runtimeConfig())

	// Cleanup
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("%v", runErr)
	}
}
