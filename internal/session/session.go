// Package session ties one player's play-through of a mode to the engine and
// the progression store. It awards coins once per won attempt, unlocks the
// next campaign level, records daily completions and charges power-up
// inventory only for power-ups the engine accepted.
package session

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/stackmatch/internal/engine"
	"github.com/vovakirdan/stackmatch/internal/registry"
	"github.com/vovakirdan/stackmatch/internal/storage"
)

var (
	// ErrNoInventory is returned when the player owns none of a power-up.
	ErrNoInventory = errors.New("session: no power-ups of that kind left")
	// ErrRejected is returned when the engine refused a power-up.
	ErrRejected = errors.New("session: power-up had no effect")
	// ErrNotFinished is returned by Next before the current level is won.
	ErrNotFinished = errors.New("session: current level is not won")
	// ErrLocked is returned when starting a progressive level not yet unlocked.
	ErrLocked = errors.New("session: level is locked")
	// ErrNoMoreLevels is returned by Next after the last level of a bounded mode.
	ErrNoMoreLevels = errors.New("session: no more levels in this mode")
	// ErrNotStarted is returned by operations that need a started level.
	ErrNotStarted = errors.New("session: no level started")
)

// Store is the progression backend. *storage.Store implements it.
type Store interface {
	EnsureProfile(player string, starter map[string]int) (storage.Profile, error)
	Profile(player string) (storage.Profile, error)
	AddCoins(player string, delta int) (int, error)
	UnlockLevel(player string, level int) (int, error)
	Inventory(player string) (map[string]int, error)
	AdjustInventory(player, kind string, delta int) (int, error)
	SaveScore(player, mode string, level, score int, won bool) (int64, error)
	MarkDailyCompleted(player, day string, score int) (bool, error)
	StartAttempt(a storage.Attempt) error
	FinishAttempt(id, status string, score, reward int) error
}

// Options configures a Session.
type Options struct {
	Player   string
	Rules    engine.Rules
	Geometry engine.Geometry
	Starter  map[string]int // inventory granted to new profiles
	Seed     int64          // base seed; 0 seeds from the clock
	Clock    func() time.Time
	Logger   *log.Logger
}

// Result describes how a finished attempt was recorded.
type Result struct {
	Outcome    engine.Outcome
	Coins      int  // coins credited for this attempt
	Unlocked   int  // highest unlocked level after the attempt, 0 if unchanged
	DailyFirst bool // first completion of the daily challenge
	Err        error
}

// Session plays levels of one mode for one player.
type Session struct {
	opts   Options
	store  Store
	logger *log.Logger

	mode      registry.Mode
	level     registry.Level
	game      *engine.Game
	attemptID string
	started   int
	result    *Result
	matches   []engine.MatchEvent
}

// New creates a session. A nil store plays without persistence and with
// unlimited power-ups.
func New(store Store, opts Options) (*Session, error) {
	if opts.Player == "" {
		opts.Player = "local"
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "session",
		})
	}

	s := &Session{opts: opts, store: store, logger: logger}
	if store != nil {
		if _, err := store.EnsureProfile(opts.Player, opts.Starter); err != nil {
			return nil, fmt.Errorf("session: cannot load profile: %w", err)
		}
	}
	return s, nil
}

// Player returns the player name.
func (s *Session) Player() string {
	return s.opts.Player
}

// Start resolves level n of mode and deals a fresh board.
func (s *Session) Start(mode registry.Mode, n int) error {
	now := s.opts.Clock()
	lvl, err := mode.Level(n, now)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if mode.Progressive() && s.store != nil {
		p, err := s.store.Profile(s.opts.Player)
		if err != nil {
			return fmt.Errorf("session: cannot load profile: %w", err)
		}
		if lvl.Number > p.MaxLevel {
			return fmt.Errorf("%w: level %d (unlocked up to %d)", ErrLocked, lvl.Number, p.MaxLevel)
		}
	}

	seed := lvl.Seed
	if seed == 0 {
		seed = s.opts.Seed
		if seed == 0 {
			seed = now.UnixNano()
		} else {
			seed += int64(s.started)
		}
	}
	s.started++

	game := engine.NewGame(
		engine.WithSeed(seed),
		engine.WithClock(s.opts.Clock),
		engine.WithRules(s.opts.Rules),
		engine.WithGeometry(s.opts.Geometry),
	)
	game.OnMatch(func(ev engine.MatchEvent) {
		s.matches = append(s.matches, ev)
	})
	game.OnFinish(s.finish)

	s.mode = mode
	s.level = lvl
	s.game = game
	s.result = nil
	s.matches = nil
	s.attemptID = uuid.NewString()
	game.Init(lvl.Spec)

	if s.store != nil {
		err := s.store.StartAttempt(storage.Attempt{
			ID:     s.attemptID,
			Player: s.opts.Player,
			Mode:   mode.ID(),
			Level:  lvl.Number,
			Seed:   seed,
		})
		if err != nil {
			s.logger.Warn("could not record attempt", "error", err)
		}
	}
	s.logger.Debug("level started",
		"player", s.opts.Player,
		"mode", mode.ID(),
		"level", lvl.Number,
		"tiles", lvl.Spec.TotalTiles(),
		"seed", seed,
	)
	return nil
}

// Restart deals a new attempt at the current level.
func (s *Session) Restart() error {
	if s.game == nil {
		return ErrNotStarted
	}
	return s.Start(s.mode, s.level.Number)
}

// Next starts the level after a won one.
func (s *Session) Next() error {
	if s.game == nil {
		return ErrNotStarted
	}
	if s.game.Status() != engine.StatusWon {
		return ErrNotFinished
	}
	n := s.level.Number + 1
	if c := s.mode.Count(); c > 0 && n > c {
		return ErrNoMoreLevels
	}
	return s.Start(s.mode, n)
}

// HasNext reports whether Next can succeed.
func (s *Session) HasNext() bool {
	if s.game == nil || s.game.Status() != engine.StatusWon {
		return false
	}
	c := s.mode.Count()
	return c == 0 || s.level.Number < c
}

// Select picks a tile in the current game.
func (s *Session) Select(id engine.TileID) engine.SelectResult {
	if s.game == nil {
		return engine.SelectResult{TileID: id}
	}
	return s.game.Select(id)
}

// UsePowerUp spends one unit of p if the player owns one and the engine
// accepts it. Nothing is spent on ErrNoInventory or ErrRejected.
//
// The unit is reserved before the engine runs and refunded if the engine
// rejects p, so a concurrent spend by another session of the same player
// cannot leave the board changed without payment.
func (s *Session) UsePowerUp(p engine.PowerUp) error {
	if s.game == nil {
		return ErrNotStarted
	}
	key := p.String()
	if s.store != nil {
		if _, err := s.store.AdjustInventory(s.opts.Player, key, -1); err != nil {
			if errors.Is(err, storage.ErrInsufficient) {
				return fmt.Errorf("%w: %s", ErrNoInventory, key)
			}
			return fmt.Errorf("session: %w", err)
		}
	}

	if !s.game.Apply(p) {
		if s.store != nil {
			if _, err := s.store.AdjustInventory(s.opts.Player, key, 1); err != nil {
				s.logger.Warn("could not refund power-up", "kind", key, "error", err)
			}
		}
		return fmt.Errorf("%w: %s", ErrRejected, key)
	}

	s.logger.Debug("power-up used", "player", s.opts.Player, "kind", key)
	return nil
}

// Inventory returns the player's power-up stock. It is nil without a store,
// meaning power-ups are unlimited.
func (s *Session) Inventory() map[string]int {
	if s.store == nil {
		return nil
	}
	inv, err := s.store.Inventory(s.opts.Player)
	if err != nil {
		s.logger.Warn("could not read inventory", "error", err)
		return map[string]int{}
	}
	return inv
}

// Profile returns the player's stored progress.
func (s *Session) Profile() (storage.Profile, error) {
	if s.store == nil {
		return storage.Profile{Player: s.opts.Player, MaxLevel: 1}, nil
	}
	return s.store.Profile(s.opts.Player)
}

// Game returns the engine of the current attempt, or nil before Start.
func (s *Session) Game() *engine.Game {
	return s.game
}

// Mode returns the mode being played.
func (s *Session) Mode() registry.Mode {
	return s.mode
}

// Level returns the level being played.
func (s *Session) Level() registry.Level {
	return s.level
}

// AttemptID returns the identifier of the current attempt.
func (s *Session) AttemptID() string {
	return s.attemptID
}

// Matches returns the matches made in the current attempt.
func (s *Session) Matches() []engine.MatchEvent {
	out := make([]engine.MatchEvent, len(s.matches))
	copy(out, s.matches)
	return out
}

// Result returns how the current attempt was recorded once it finished.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// finish runs once per attempt from the engine's OnFinish hook.
func (s *Session) finish(out engine.Outcome) {
	res := Result{Outcome: out}
	won := out.Status == engine.StatusWon
	defer func() {
		s.result = &res
		s.logger.Info("level finished",
			"player", s.opts.Player,
			"mode", s.mode.ID(),
			"level", s.level.Number,
			"status", out.Status,
			"score", out.Score,
			"coins", res.Coins,
		)
	}()

	if s.store == nil {
		if won {
			res.Coins = out.Reward
		}
		return
	}

	keep := func(err error) {
		if err != nil {
			s.logger.Warn("could not record result", "error", err)
			res.Err = errors.Join(res.Err, err)
		}
	}

	_, err := s.store.SaveScore(s.opts.Player, s.mode.ID(), s.level.Number, out.Score, won)
	keep(err)

	if won {
		coins := out.Reward
		if s.level.Day != "" {
			first, err := s.store.MarkDailyCompleted(s.opts.Player, s.level.Day, out.Score)
			keep(err)
			res.DailyFirst = first
			if !first {
				coins = 0
			}
		}
		if coins > 0 {
			_, err := s.store.AddCoins(s.opts.Player, coins)
			keep(err)
			if err == nil {
				res.Coins = coins
			}
		}
		if s.mode.Progressive() {
			unlocked, err := s.store.UnlockLevel(s.opts.Player, s.level.Number+1)
			keep(err)
			if err == nil && unlocked == s.level.Number+1 {
				res.Unlocked = unlocked
			}
		}
	}

	keep(s.store.FinishAttempt(s.attemptID, out.Status.String(), out.Score, res.Coins))
}
