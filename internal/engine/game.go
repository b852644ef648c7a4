package engine

import (
	"time"
)

// MatchEvent is delivered to OnMatch listeners after each match.
type MatchEvent struct {
	Match
	Score int // total score after the match
}

// Outcome is delivered to OnFinish listeners when a game ends.
type Outcome struct {
	Spec   LevelSpec
	Status Status
	Score  int
	Reward int // Spec.Reward on a win, 0 on a loss
}

// Game is a stateful wrapper around State that owns the RNG and clock,
// expires hints and fires listeners. It is not safe for concurrent use.
type Game struct {
	state    State
	rules    Rules
	geo      Geometry
	rng      RNG
	now      func() time.Time
	finished bool

	onMatch  []func(MatchEvent)
	onFinish []func(Outcome)
}

// Option configures a Game.
type Option func(*Game)

// WithRNG sets the random source used for generation and shuffling.
func WithRNG(rng RNG) Option {
	return func(g *Game) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithSeed seeds a deterministic RNG.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.rng = NewRNG(seed)
	}
}

// WithClock sets the time source used for hint expiry.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		if now != nil {
			g.now = now
		}
	}
}

// WithRules overrides the default rules.
func WithRules(r Rules) Option {
	return func(g *Game) {
		g.rules = r.normalized()
	}
}

// WithGeometry overrides the default board geometry.
func WithGeometry(geo Geometry) Option {
	return func(g *Game) {
		g.geo = geo.normalized()
	}
}

// NewGame creates a Game. Call Init before playing.
func NewGame(opts ...Option) *Game {
	g := &Game{
		rules: DefaultRules(),
		geo:   DefaultGeometry(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewRNG(time.Now().UnixNano())
	}
	// Until Init the game has no tiles and never finishes.
	g.state = State{Rules: g.rules, History: NewHistory(g.rules.HistoryDepth)}
	g.finished = true
	return g
}

// Init generates a fresh board for spec and resets score, tray, hints and
// history. Listeners are kept.
func (g *Game) Init(spec LevelSpec) State {
	g.state = NewState(GenerateBoard(spec, g.rng, g.geo), g.rules)
	g.finished = false
	return g.State()
}

// Restart re-generates the current level with the next boards from the RNG.
func (g *Game) Restart() State {
	return g.Init(g.state.Spec)
}

// OnMatch registers a listener called once per match.
func (g *Game) OnMatch(fn func(MatchEvent)) {
	g.onMatch = append(g.onMatch, fn)
}

// OnFinish registers a listener called exactly once when a game started
// by Init reaches a terminal status.
func (g *Game) OnFinish(fn func(Outcome)) {
	g.onFinish = append(g.onFinish, fn)
}

// State returns a copy of the current state with expired hints cleared.
func (g *Game) State() State {
	g.expire()
	return g.state.Clone()
}

// Status returns the current status.
func (g *Game) Status() Status {
	return g.state.Status
}

// Rules returns the rules in effect.
func (g *Game) Rules() Rules {
	return g.rules
}

// Hinted returns the currently highlighted tile IDs.
func (g *Game) Hinted() []TileID {
	return g.state.HintedAt(g.now())
}

// Tick expires hints and reports whether anything changed.
func (g *Game) Tick() bool {
	return g.expire()
}

func (g *Game) expire() bool {
	before := len(g.state.Hints.IDs)
	g.state = g.state.ExpireHints(g.now())
	return len(g.state.Hints.IDs) != before
}

// Select picks tile id. See State.Select.
func (g *Game) Select(id TileID) SelectResult {
	g.expire()
	next, res := g.state.Select(id)
	if !res.Accepted {
		return res
	}
	g.state = next
	for _, m := range res.Matches {
		ev := MatchEvent{Match: m, Score: next.Score}
		for _, fn := range g.onMatch {
			fn(ev)
		}
	}
	g.checkFinished()
	return res
}

// Shuffle applies the shuffle power-up.
func (g *Game) Shuffle() bool {
	g.expire()
	next, ok := g.state.Shuffle(g.rng)
	if ok {
		g.state = next
	}
	return ok
}

// Undo applies the undo power-up.
func (g *Game) Undo() bool {
	g.expire()
	next, ok := g.state.Undo()
	if ok {
		g.state = next
	}
	return ok
}

// DiscardThree applies the discard power-up and returns the removed tiles.
func (g *Game) DiscardThree() ([]TrayTile, bool) {
	g.expire()
	next, removed, ok := g.state.DiscardThree()
	if !ok {
		return nil, false
	}
	g.state = next
	g.checkFinished()
	return removed, true
}

// Hint applies the hint power-up.
func (g *Game) Hint() ([]TileID, bool) {
	g.expire()
	next, ids, ok := g.state.Hint(g.now())
	if ok {
		g.state = next
	}
	return ids, ok
}

// Apply dispatches a power-up by kind and reports whether it took effect.
func (g *Game) Apply(p PowerUp) bool {
	switch p {
	case PowerUpShuffle:
		return g.Shuffle()
	case PowerUpUndo:
		return g.Undo()
	case PowerUpDiscard:
		_, ok := g.DiscardThree()
		return ok
	case PowerUpHint:
		_, ok := g.Hint()
		return ok
	}
	return false
}

func (g *Game) checkFinished() {
	if g.finished || !g.state.Status.Terminal() {
		return
	}
	g.finished = true

	out := Outcome{
		Spec:   g.state.Spec.Clone(),
		Status: g.state.Status,
		Score:  g.state.Score,
	}
	if out.Status == StatusWon {
		out.Reward = out.Spec.Reward
	}
	for _, fn := range g.onFinish {
		fn(out)
	}
}
