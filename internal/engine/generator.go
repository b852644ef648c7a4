package engine

import "math"

// Board is a freshly generated set of tiles together with the effective
// spec that produced it.
type Board struct {
	Spec  LevelSpec
	Tiles []Tile
}

// GenerateBoard builds the tiles for spec. The spec is normalized first.
// Every icon appears a multiple of MatchSize times, icons are assigned to
// positions in shuffled order and each layer is laid out on a centered
// square grid, offset diagonally by LayerSpacing per layer and jittered by
// up to PositionJitter/2 on each axis. All tiles start visible; occlusion
// is left to ComputeBlocked.
func GenerateBoard(spec LevelSpec, rng RNG, geo Geometry) Board {
	eff := spec.Normalize()
	geo = geo.normalized()
	icons := dealIcons(eff, rng)

	tiles := make([]Tile, 0, len(icons))
	fan := float64(eff.LayerCount-1) * eff.LayerSpacing

	for layer, count := range eff.TilesPerLayer {
		if count == 0 {
			continue
		}
		cols := int(math.Ceil(math.Sqrt(float64(count))))
		rows := (count + cols - 1) / cols
		originX := (geo.BoardWidth - gridExtent(cols, geo) - fan) / 2
		originY := (geo.BoardHeight - gridExtent(rows, geo) - fan) / 2
		stagger := float64(layer) * eff.LayerSpacing

		for i := 0; i < count; i++ {
			row, col := i/cols, i%cols
			n := len(tiles)
			tiles = append(tiles, Tile{
				ID:      TileID(n + 1),
				Icon:    icons[n],
				Layer:   layer,
				X:       originX + float64(col)*geo.CellPitch + stagger + jitter(rng, eff.PositionJitter),
				Y:       originY + float64(row)*geo.CellPitch + stagger + jitter(rng, eff.PositionJitter),
				Visible: true,
			})
		}
	}

	return Board{Spec: eff, Tiles: tiles}
}

func gridExtent(slots int, geo Geometry) float64 {
	return float64(slots-1)*geo.CellPitch + geo.TileSize
}

// jitter returns an offset in [-magnitude/2, magnitude/2).
func jitter(rng RNG, magnitude float64) float64 {
	if magnitude == 0 {
		return 0
	}
	return (rng.Float64() - 0.5) * magnitude
}

// dealIcons returns a shuffled multiset of exactly spec.TotalTiles() icons
// in which every icon's count is a multiple of MatchSize. Each selected
// icon gets an equal base share; the remainder is filled with whole groups
// of randomly chosen icons.
func dealIcons(spec LevelSpec, rng RNG) []Icon {
	total := spec.TotalTiles()
	selected := Icons(spec.IconCount)
	perIcon := total / len(selected) / MatchSize * MatchSize

	icons := make([]Icon, 0, total)
	for _, icon := range selected {
		for range perIcon {
			icons = append(icons, icon)
		}
	}
	for len(icons) < total {
		icon := selected[rng.Intn(len(selected))]
		for range MatchSize {
			icons = append(icons, icon)
		}
	}

	shuffle(rng, icons)
	return icons
}
