package analysis

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/stackmatch/internal/engine"
)

// Config controls a sampling run.
type Config struct {
	From, To int   // inclusive level range
	Samples  int   // boards per level
	Seed     int64 // base seed; board i of level n uses Seed + n*Samples + i
	Workers  int
	Rules    engine.Rules
	Geometry engine.Geometry
	// Spec resolves a level number.
	Spec func(n int) engine.LevelSpec
	// Progress receives the progress bar. Nil hides it.
	Progress io.Writer
}

// Sample is the outcome of one bot game.
type Sample struct {
	Level     int
	Seed      int64
	Status    engine.Status
	Score     int
	Moves     int
	Remaining int // tiles left on the board
	Open      int // tiles selectable on the fresh board
}

// LevelStats summarises the samples of one level.
type LevelStats struct {
	Level         int
	Name          string
	Tiles         int
	Icons         int
	Samples       int
	Wins          int
	WinRate       float64
	MeanScore     float64
	StdScore      float64
	MeanRemaining float64
	StdRemaining  float64
	MeanOpen      float64
}

// Report is the result of a sampling run.
type Report struct {
	Levels  []LevelStats
	Games   int
	Elapsed time.Duration
}

// Run plays cfg.Samples boards for every level in range with the greedy
// bot, spread over cfg.Workers goroutines, and summarises them.
func Run(cfg Config) (*Report, error) {
	if cfg.Spec == nil {
		return nil, errors.New("analysis: no level source")
	}
	if cfg.From < 1 || cfg.To < cfg.From {
		return nil, errors.New("analysis: invalid level range")
	}
	if cfg.Samples < 1 {
		return nil, errors.New("analysis: samples must be > 0")
	}
	workers := max(cfg.Workers, 1)

	type job struct {
		level int
		spec  engine.LevelSpec
		seed  int64
		slot  int
	}
	levels := cfg.To - cfg.From + 1
	total := levels * cfg.Samples
	specs := make([]engine.LevelSpec, levels)
	for i := range specs {
		specs[i] = cfg.Spec(cfg.From + i)
	}

	bar := pb.StartNew(total)
	if cfg.Progress == nil {
		bar.SetWriter(io.Discard)
	} else {
		bar.SetWriter(cfg.Progress)
	}

	results := make([]Sample, total)
	jobs := make(chan job, workers*2)
	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.slot] = playOne(cfg, j.level, j.spec, j.seed)
				bar.Increment()
			}
		}()
	}

	slot := 0
	for i, spec := range specs {
		n := cfg.From + i
		for k := range cfg.Samples {
			jobs <- job{level: n, spec: spec, seed: cfg.Seed + int64(n*cfg.Samples+k), slot: slot}
			slot++
		}
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(bar.StartTime())
	bar.Finish()

	report := &Report{Games: total, Elapsed: elapsed}
	for i, spec := range specs {
		report.Levels = append(report.Levels, Summarize(spec, results[i*cfg.Samples:(i+1)*cfg.Samples]))
	}
	return report, nil
}

func playOne(cfg Config, level int, spec engine.LevelSpec, seed int64) Sample {
	g := engine.NewGame(
		engine.WithSeed(seed),
		engine.WithRules(cfg.Rules),
		engine.WithGeometry(cfg.Geometry),
	)
	start := g.Init(spec)
	moves := Play(g)
	end := g.State()
	return Sample{
		Level:     level,
		Seed:      seed,
		Status:    end.Status,
		Score:     end.Score,
		Moves:     moves,
		Remaining: end.VisibleCount(),
		Open:      len(start.Selectable()),
	}
}

// Summarize reduces samples of spec to LevelStats.
func Summarize(spec engine.LevelSpec, samples []Sample) LevelStats {
	st := LevelStats{
		Level:   spec.ID,
		Name:    spec.Name,
		Tiles:   spec.TotalTiles(),
		Icons:   spec.IconCount,
		Samples: len(samples),
	}
	if len(samples) == 0 {
		return st
	}
	st.Level = samples[0].Level

	scores := make([]float64, len(samples))
	remaining := make([]float64, len(samples))
	open := make([]float64, len(samples))
	for i, s := range samples {
		if s.Status == engine.StatusWon {
			st.Wins++
		}
		scores[i] = float64(s.Score)
		remaining[i] = float64(s.Remaining)
		open[i] = float64(s.Open)
	}
	st.WinRate = float64(st.Wins) / float64(len(samples))
	st.MeanScore, st.StdScore = stat.PopMeanStdDev(scores, nil)
	st.MeanRemaining, st.StdRemaining = stat.PopMeanStdDev(remaining, nil)
	st.MeanOpen = stat.Mean(open, nil)
	return st
}
