package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackmatch/internal/levels"
	"github.com/vovakirdan/stackmatch/internal/registry"
)

var (
	flagValidateDir string
	flagListCount   int
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List modes and levels",
	Long: `Shows every registered mode with its levels. The campaign is endless;
only its first levels are listed.

With --validate, checks every level file in a directory instead and
reports the ones the game would have to repair.

Examples:
  stackmatch levels
  stackmatch levels --count 20
  stackmatch levels --validate ./my-pack`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagValidateDir, "validate", "", "Validate the level files in this directory")
	levelsCmd.Flags().IntVar(&flagListCount, "count", 10, "Campaign levels to list")
}

func runLevels(_ *cobra.Command, _ []string) {
	if flagValidateDir != "" {
		runValidate(flagValidateDir)
		return
	}

	logger := newLogger("stackmatch")
	loadConfig(logger) // registers the level pack, if any

	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	now := time.Now()
	for _, info := range modes {
		mode, err := registry.Create(info.ID)
		if err != nil {
			continue
		}
		count := mode.Count()
		listed := count
		if listed == 0 {
			listed = max(flagListCount, 1)
		}

		fmt.Printf("%s (%s)\n", mode.Title(), mode.ID())
		fmt.Printf("  %-5s  %-28s  %6s  %5s  %5s  %6s\n", "Level", "Name", "Layers", "Tiles", "Icons", "Reward")
		fmt.Printf("  %-5s  %-28s  %6s  %5s  %5s  %6s\n", "-----", "----", "------", "-----", "-----", "------")
		for n := 1; n <= listed; n++ {
			lvl, err := mode.Level(n, now)
			if err != nil {
				break
			}
			spec := lvl.Spec
			fmt.Printf("  %-5d  %-28s  %6d  %5d  %5d  %6d\n",
				lvl.Number, spec.Name, len(spec.TilesPerLayer), spec.TotalTiles(), spec.IconCount, spec.Reward)
		}
		if count == 0 {
			fmt.Println("  ... and more")
		}
		fmt.Println()
	}

	fmt.Println("Run 'stackmatch play <level>' or 'stackmatch daily' to play.")
}

func runValidate(dir string) {
	loaded, err := levels.NewLoader(dir).LoadAll()
	if err != nil {
		fail("%v", err)
	}
	if len(loaded) == 0 {
		fail("no level files found in %s", dir)
	}

	bad := 0
	for _, lvl := range loaded {
		if err := levels.Validate(lvl.Spec); err != nil {
			bad++
			fmt.Printf("  FAIL  %-4d %s: %v\n", lvl.Spec.ID, lvl.FilePath, err)
			continue
		}
		fmt.Printf("  ok    %-4d %s\n", lvl.Spec.ID, lvl.FilePath)
	}

	fmt.Println()
	fmt.Printf("%d level(s), %d with problems\n", len(loaded), bad)
	if bad > 0 {
		os.Exit(1)
	}
}
