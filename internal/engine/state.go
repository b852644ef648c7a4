package engine

import (
	"slices"
	"time"
)

// Status is the lifecycle state of a game.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the game has ended.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// HintSet is the set of highlighted tiles and the instant they expire.
type HintSet struct {
	IDs   []TileID
	Until time.Time
}

// Active reports whether the hint is still showing at now.
func (h HintSet) Active(now time.Time) bool {
	return len(h.IDs) > 0 && now.Before(h.Until)
}

// State is a complete, immutable-by-convention game position. Transition
// methods return the next State and leave the receiver untouched.
type State struct {
	Rules   Rules
	Spec    LevelSpec
	Tiles   []Tile
	Tray    []TrayTile
	Status  Status
	Score   int
	Hints   HintSet
	History History
}

// SelectResult describes the outcome of a selection.
type SelectResult struct {
	TileID   TileID
	Accepted bool
	Matches  []Match
	Status   Status
}

// Matched reports whether the selection completed at least one match.
func (r SelectResult) Matched() bool {
	return len(r.Matches) > 0
}

// Points returns the total points scored by the selection.
func (r SelectResult) Points() int {
	total := 0
	for _, m := range r.Matches {
		total += m.Points
	}
	return total
}

// NewState builds the initial state for board under rules.
func NewState(board Board, rules Rules) State {
	rules = rules.normalized()
	tiles := ComputeBlocked(board.Tiles, rules.OverlapThreshold)
	return State{
		Rules:   rules,
		Spec:    board.Spec.Clone(),
		Tiles:   tiles,
		Tray:    []TrayTile{},
		Status:  Evaluate(tiles, nil, rules.TrayCapacity),
		History: NewHistory(rules.HistoryDepth),
	}
}

// Clone returns a deep copy of s. History snapshots are never mutated
// and are shared.
func (s State) Clone() State {
	out := s
	out.Spec = s.Spec.Clone()
	out.Tiles = cloneTiles(s.Tiles)
	out.Tray = cloneTray(s.Tray)
	out.Hints.IDs = slices.Clone(s.Hints.IDs)
	return out
}

func (s State) snapshot() Snapshot {
	return Snapshot{
		Tiles: cloneTiles(s.Tiles),
		Tray:  cloneTray(s.Tray),
		Score: s.Score,
	}
}

// Tile returns the tile with id.
func (s State) Tile(id TileID) (Tile, bool) {
	if i := s.tileIndex(id); i >= 0 {
		return s.Tiles[i], true
	}
	return Tile{}, false
}

func (s State) tileIndex(id TileID) int {
	// IDs are sequential, so the fast path almost always hits.
	if i := int(id) - 1; i >= 0 && i < len(s.Tiles) && s.Tiles[i].ID == id {
		return i
	}
	for i, t := range s.Tiles {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// VisibleCount returns the number of tiles still on the board.
func (s State) VisibleCount() int {
	return visibleCount(s.Tiles)
}

// Selectable returns the tiles that can currently be picked, in board
// order.
func (s State) Selectable() []Tile {
	var out []Tile
	for _, t := range s.Tiles {
		if t.Selectable() {
			out = append(out, t)
		}
	}
	return out
}

// TrayFree returns the number of empty tray slots.
func (s State) TrayFree() int {
	return max(s.Rules.TrayCapacity-len(s.Tray), 0)
}

// Select moves tile id into the tray, resolves matches and re-evaluates
// the status. Selecting an unknown, invisible or blocked tile, or
// selecting after the game has ended, returns s unchanged with
// Accepted false.
func (s State) Select(id TileID) (State, SelectResult) {
	res := SelectResult{TileID: id, Status: s.Status}
	if s.Status != StatusPlaying {
		return s, res
	}
	idx := s.tileIndex(id)
	if idx < 0 || !s.Tiles[idx].Selectable() {
		return s, res
	}

	next := s.Clone()
	next.History = s.History.Push(s.snapshot())

	tile := next.Tiles[idx]
	next.Tiles[idx].Visible = false
	next.Tiles[idx].Blocked = false

	tray, matches := ResolveMatches(
		InsertGrouped(next.Tray, TrayTile{ID: tile.ID, Icon: tile.Icon}),
		next.Rules.MatchScore,
	)
	next.Tray = tray
	for _, m := range matches {
		next.Score += m.Points
	}

	next.Tiles = ComputeBlocked(next.Tiles, next.Rules.OverlapThreshold)
	next.Hints = HintSet{}
	next.Status = Evaluate(next.Tiles, next.Tray, next.Rules.TrayCapacity)

	res.Accepted = true
	res.Matches = matches
	res.Status = next.Status
	return next, res
}

// ExpireHints clears the hint set if it has expired at now.
func (s State) ExpireHints(now time.Time) State {
	if len(s.Hints.IDs) == 0 || s.Hints.Active(now) {
		return s
	}
	next := s.Clone()
	next.Hints = HintSet{}
	return next
}

// HintedAt returns the highlighted tile IDs at now.
func (s State) HintedAt(now time.Time) []TileID {
	if !s.Hints.Active(now) {
		return nil
	}
	return slices.Clone(s.Hints.IDs)
}
