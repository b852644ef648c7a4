package engine

// Match is one group of MatchSize same-icon tiles removed from the tray.
type Match struct {
	Icon    Icon
	TileIDs []TileID
	Points  int
}

// InsertGrouped returns a new tray with t placed directly after the last
// tile of the same icon, or appended when the icon is not present. The
// input slice is not modified.
func InsertGrouped(tray []TrayTile, t TrayTile) []TrayTile {
	last := -1
	for i, existing := range tray {
		if existing.Icon == t.Icon {
			last = i
		}
	}

	out := make([]TrayTile, 0, len(tray)+1)
	if last < 0 {
		out = append(out, tray...)
		return append(out, t)
	}
	out = append(out, tray[:last+1]...)
	out = append(out, t)
	return append(out, tray[last+1:]...)
}

// ResolveMatches removes the first MatchSize tiles of every icon that
// occurs at least MatchSize times. Icons are processed in order of first
// appearance in the tray and each icon matches at most once per call.
// Each match is worth points. The input slice is not modified.
func ResolveMatches(tray []TrayTile, points int) ([]TrayTile, []Match) {
	var order []Icon
	counts := make(map[Icon]int)
	for _, t := range tray {
		if counts[t.Icon] == 0 {
			order = append(order, t.Icon)
		}
		counts[t.Icon]++
	}

	removed := make(map[TileID]bool)
	var matches []Match
	for _, icon := range order {
		if counts[icon] < MatchSize {
			continue
		}
		m := Match{Icon: icon, Points: points}
		for _, t := range tray {
			if t.Icon == icon && len(m.TileIDs) < MatchSize {
				m.TileIDs = append(m.TileIDs, t.ID)
				removed[t.ID] = true
			}
		}
		matches = append(matches, m)
	}

	out := make([]TrayTile, 0, len(tray)-len(removed))
	for _, t := range tray {
		if !removed[t.ID] {
			out = append(out, t)
		}
	}
	return out, matches
}

// Evaluate derives the game status. A cleared board with an empty tray
// wins, and that check runs before the full-tray loss.
func Evaluate(tiles []Tile, tray []TrayTile, capacity int) Status {
	if visibleCount(tiles) == 0 && len(tray) == 0 {
		return StatusWon
	}
	if len(tray) >= capacity {
		return StatusLost
	}
	return StatusPlaying
}
