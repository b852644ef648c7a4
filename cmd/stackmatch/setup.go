package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/stackmatch/internal/config"
	"github.com/vovakirdan/stackmatch/internal/core"
	"github.com/vovakirdan/stackmatch/internal/levels"
	"github.com/vovakirdan/stackmatch/internal/session"
	"github.com/vovakirdan/stackmatch/internal/storage"
)

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the stderr logger at --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q", flagLogLevel)
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig reads the config file and applies --difficulty.
func loadConfig(logger *log.Logger) config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	config.ApplyPreset(&cfg, preset)

	if cfg.Levels.PackDir != "" {
		n, err := levels.RegisterPack(cfg.Levels.PackDir)
		if err != nil {
			logger.Warn("cannot load level pack", "dir", cfg.Levels.PackDir, "error", err)
		} else {
			logger.Info("level pack loaded", "dir", cfg.Levels.PackDir, "levels", n)
		}
	}
	return cfg
}

// openStore opens the database. Play surfaces keep working without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		logger.Debug("storage disabled", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// mustOpenStore opens the database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("cannot open progress database: %v", err)
	}
	return store
}

// playerName resolves --player, then $USER.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

// sessionOptions builds the session template from cfg.
func sessionOptions(cfg config.Config, logger *log.Logger) session.Options {
	return session.Options{
		Player:   playerName(),
		Rules:    cfg.EngineRules(),
		Geometry: cfg.Geometry(),
		Starter:  cfg.StartingInventory(),
		Seed:     flagSeed,
		Logger:   logger,
	}
}

// newSession creates a local session, tolerating a nil store.
func newSession(store *storage.Store, cfg config.Config, logger *log.Logger) *session.Session {
	var st session.Store
	if store != nil {
		st = store
	}
	sess, err := session.New(st, sessionOptions(cfg, logger))
	if err != nil {
		fail("cannot start session: %v", err)
	}
	return sess
}

// runtimeConfig sizes the UI to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
