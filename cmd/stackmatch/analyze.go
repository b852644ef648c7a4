package main

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackmatch/internal/analysis"
	"github.com/vovakirdan/stackmatch/internal/levels"
)

var (
	flagFrom    int
	flagTo      int
	flagSamples int
	flagWorkers int
	flagQuiet   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Estimate campaign difficulty with a greedy bot",
	Long: `Play many seeded boards of each campaign level with a greedy bot and
report the win rate, score and tiles left per level. The bot uses no
power-ups, so win rates are a lower bound for a human player.

The current config and --difficulty apply, so presets can be compared.

Examples:
  stackmatch analyze
  stackmatch analyze --from 1 --to 10 --samples 200
  stackmatch analyze --to 20 --difficulty relaxed --seed 7`,
	Args: cobra.NoArgs,
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&flagFrom, "from", 1, "First level")
	analyzeCmd.Flags().IntVar(&flagTo, "to", 10, "Last level")
	analyzeCmd.Flags().IntVar(&flagSamples, "samples", 100, "Boards per level")
	analyzeCmd.Flags().IntVar(&flagWorkers, "workers", runtime.NumCPU(), "Parallel workers")
	analyzeCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Hide the progress bar")
}

func runAnalyze(_ *cobra.Command, _ []string) {
	logger := newLogger("stackmatch")
	cfg := loadConfig(logger)

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}
	run := analysis.Config{
		From:     flagFrom,
		To:       flagTo,
		Samples:  flagSamples,
		Seed:     seed,
		Workers:  flagWorkers,
		Rules:    cfg.EngineRules(),
		Geometry: cfg.Geometry(),
		Spec:     levels.ForLevel,
		Progress: os.Stderr,
	}
	if flagQuiet {
		run.Progress = nil
	}

	report, err := analysis.Run(run)
	if err != nil {
		fail("%v", err)
	}
	if _, err := report.WriteTo(os.Stdout); err != nil {
		fail("%v", err)
	}
}
