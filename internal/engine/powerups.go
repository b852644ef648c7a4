package engine

import (
	"fmt"
	"strings"
	"time"
)

// PowerUp identifies a player-triggered state transformation.
type PowerUp int

const (
	PowerUpShuffle PowerUp = iota
	PowerUpUndo
	PowerUpDiscard
	PowerUpHint
)

// PowerUpInfo is display metadata for a power-up.
type PowerUpInfo struct {
	Kind        PowerUp
	Key         string // stable identifier used in storage and the API
	Name        string
	Glyph       string
	Description string
}

var powerUpInfo = []PowerUpInfo{
	{PowerUpShuffle, "shuffle", "Shuffle", "🔀", "Rearrange the tiles left on the board"},
	{PowerUpUndo, "undo", "Undo", "↩️", "Take back the last move"},
	{PowerUpDiscard, "remove_three", "Clear 3", "🗑️", "Clear the first three tray slots"},
	{PowerUpHint, "hint", "Hint", "💡", "Highlight a group you can match"},
}

// PowerUps returns metadata for every power-up in display order.
func PowerUps() []PowerUpInfo {
	out := make([]PowerUpInfo, len(powerUpInfo))
	copy(out, powerUpInfo)
	return out
}

// Info returns the metadata for p.
func (p PowerUp) Info() PowerUpInfo {
	if p < 0 || int(p) >= len(powerUpInfo) {
		return PowerUpInfo{Kind: p, Key: "unknown", Name: "Unknown"}
	}
	return powerUpInfo[p]
}

// String returns the stable key of p.
func (p PowerUp) String() string {
	return p.Info().Key
}

// ParsePowerUp resolves a key or display name, case-insensitively.
// "discard" is accepted as an alias of "remove_three".
func ParsePowerUp(s string) (PowerUp, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "discard" || key == "clear3" || key == "clear 3" {
		return PowerUpDiscard, nil
	}
	for _, info := range powerUpInfo {
		if key == info.Key || key == strings.ToLower(info.Name) {
			return info.Kind, nil
		}
	}
	return 0, fmt.Errorf("unknown power-up %q", s)
}

// Shuffle randomly permutes the positions and layers of all visible
// tiles among themselves and recomputes occlusion. Icons, the tray and the
// score are untouched and hints are cleared. It fails when the game has
// ended or no tile is visible.
func (s State) Shuffle(rng RNG) (State, bool) {
	if s.Status != StatusPlaying {
		return s, false
	}

	type slot struct {
		x, y  float64
		layer int
	}
	var idx []int
	var slots []slot
	for i, t := range s.Tiles {
		if t.Visible {
			idx = append(idx, i)
			slots = append(slots, slot{t.X, t.Y, t.Layer})
		}
	}
	if len(idx) == 0 {
		return s, false
	}
	shuffle(rng, slots)

	next := s.Clone()
	if !s.Rules.PermanentPowerUps {
		next.History = s.History.Push(s.snapshot())
	}
	for k, i := range idx {
		next.Tiles[i].X = slots[k].x
		next.Tiles[i].Y = slots[k].y
		next.Tiles[i].Layer = slots[k].layer
	}
	next.Tiles = ComputeBlocked(next.Tiles, next.Rules.OverlapThreshold)
	next.Hints = HintSet{}
	return next, true
}

// Undo restores the most recent snapshot exactly. It fails when the game
// has ended or the history is empty. Undo itself is not recorded.
func (s State) Undo() (State, bool) {
	if s.Status != StatusPlaying {
		return s, false
	}
	rest, snap, ok := s.History.Pop()
	if !ok {
		return s, false
	}

	next := s.Clone()
	next.History = rest
	next.Tiles = cloneTiles(snap.Tiles)
	next.Tray = cloneTray(snap.Tray)
	next.Score = snap.Score
	next.Hints = HintSet{}
	next.Status = Evaluate(next.Tiles, next.Tray, next.Rules.TrayCapacity)
	return next, true
}

// DiscardThree removes the first DiscardCount tray tiles (or all of them
// if fewer remain) without scoring. Removed tiles do not return to the
// board. It fails when the game has ended or the tray is empty. The
// status is re-evaluated, so discarding the last tray tiles of a cleared
// board wins.
func (s State) DiscardThree() (State, []TrayTile, bool) {
	if s.Status != StatusPlaying || len(s.Tray) == 0 {
		return s, nil, false
	}
	n := min(DiscardCount, len(s.Tray))

	next := s.Clone()
	if !s.Rules.PermanentPowerUps {
		next.History = s.History.Push(s.snapshot())
	}
	removed := cloneTray(next.Tray[:n])
	next.Tray = cloneTray(next.Tray[n:])
	next.Status = Evaluate(next.Tiles, next.Tray, next.Rules.TrayCapacity)
	return next, removed, true
}

// Hint highlights HintGroupSize selectable tiles of every icon that has
// at least that many selectable copies, until now plus the hint duration.
// When no such group exists it returns an empty result, ok false and an
// unchanged state.
func (s State) Hint(now time.Time) (State, []TileID, bool) {
	if s.Status != StatusPlaying {
		return s, nil, false
	}
	ids := HintCandidates(s.Tiles)
	if len(ids) == 0 {
		return s, []TileID{}, false
	}

	next := s.Clone()
	next.Hints = HintSet{IDs: ids, Until: now.Add(s.Rules.HintDuration)}
	return next, next.HintedAt(now), true
}

// HintCandidates returns the IDs a hint would highlight, grouped by icon
// in order of each icon's first selectable tile.
func HintCandidates(tiles []Tile) []TileID {
	var order []Icon
	groups := make(map[Icon][]TileID)
	for _, t := range tiles {
		if !t.Selectable() {
			continue
		}
		if _, seen := groups[t.Icon]; !seen {
			order = append(order, t.Icon)
		}
		groups[t.Icon] = append(groups[t.Icon], t.ID)
	}

	var ids []TileID
	for _, icon := range order {
		if g := groups[icon]; len(g) >= HintGroupSize {
			ids = append(ids, g[:HintGroupSize]...)
		}
	}
	return ids
}
