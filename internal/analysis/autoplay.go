// Package analysis measures level difficulty by letting a greedy bot play
// many seeded boards and summarising the outcomes.
package analysis

import (
	"github.com/vovakirdan/stackmatch/internal/engine"
)

// Pick chooses the next tile for the greedy bot, or false when nothing
// is selectable. In order of preference it completes a group already in
// the tray, adds to the icon most represented between tray and open
// board, and otherwise opens the tile that uncovers the most.
// It avoids an icon that would fill the tray without matching while any
// safer choice exists.
func Pick(s engine.State) (engine.TileID, bool) {
	open := s.Selectable()
	if len(open) == 0 || s.Status != engine.StatusPlaying {
		return 0, false
	}

	inTray := make(map[engine.Icon]int, len(s.Tray))
	for _, t := range s.Tray {
		inTray[t.Icon]++
	}
	onBoard := make(map[engine.Icon]int, len(open))
	for _, t := range open {
		onBoard[t.Icon]++
	}
	free := s.TrayFree()

	best, bestScore := engine.TileID(0), -1<<31
	for _, t := range open {
		score := 0
		held := inTray[t.Icon]
		switch {
		case held == engine.MatchSize-1:
			score = 1000
		case free <= 1:
			// Filling the last slot without a match loses.
			score = -1000
		default:
			score = 100*held + 10*min(onBoard[t.Icon], engine.MatchSize-held)
			if held+onBoard[t.Icon] < engine.MatchSize && free <= engine.MatchSize {
				score -= 50
			}
		}
		score += covers(s.Tiles, t, s.Rules.OverlapThreshold)
		if score > bestScore {
			best, bestScore = t.ID, score
		}
	}
	return best, true
}

// covers counts the blocked tiles that t sits on.
func covers(tiles []engine.Tile, t engine.Tile, threshold float64) int {
	n := 0
	for _, o := range tiles {
		if o.Visible && o.Blocked && o.ID != t.ID && engine.Occludes(t, o, threshold) {
			n++
		}
	}
	return n
}

// Play runs the greedy bot on g until the game ends or no tile can be
// picked. It returns the number of accepted selections.
func Play(g *engine.Game) int {
	moves := 0
	for !g.Status().Terminal() {
		id, ok := Pick(g.State())
		if !ok {
			break
		}
		if !g.Select(id).Accepted {
			break
		}
		moves++
	}
	return moves
}
