package engine

// Occludes reports whether upper covers lower: upper is visible, sits on a
// strictly higher layer and is within threshold on both axes.
func Occludes(upper, lower Tile, threshold float64) bool {
	return upper.Visible &&
		upper.Layer > lower.Layer &&
		upper.Pos().Near(lower.Pos(), threshold)
}

// ComputeBlocked returns a copy of tiles with every Blocked flag
// recomputed. Invisible tiles are never blocked.
func ComputeBlocked(tiles []Tile, threshold float64) []Tile {
	out := cloneTiles(tiles)
	for i := range out {
		out[i].Blocked = false
		if !out[i].Visible {
			continue
		}
		for j := range out {
			if i != j && Occludes(out[j], out[i], threshold) {
				out[i].Blocked = true
				break
			}
		}
	}
	return out
}
