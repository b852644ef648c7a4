package engine

import (
	"math"
	"slices"
)

// LevelSpec is the static description of a level.
type LevelSpec struct {
	ID             int
	Name           string
	Description    string
	LayerCount     int
	TilesPerLayer  []int // index 0 is the bottom layer
	IconCount      int
	PositionJitter float64 // maximum per-tile random offset in pixels
	LayerSpacing   float64 // diagonal offset added per layer in pixels
	Reward         int     // coins granted on a win
}

// FallbackSpec is the board used when a spec cannot produce a valid one:
// a single layer of six tiles using one icon.
func FallbackSpec() LevelSpec {
	return LevelSpec{
		LayerCount:    1,
		TilesPerLayer: []int{6},
		IconCount:     1,
	}
}

// Clone returns a deep copy of s.
func (s LevelSpec) Clone() LevelSpec {
	s.TilesPerLayer = slices.Clone(s.TilesPerLayer)
	return s
}

// TotalTiles returns the sum of TilesPerLayer, ignoring negative entries.
func (s LevelSpec) TotalTiles() int {
	total := 0
	for _, n := range s.TilesPerLayer {
		total += max(n, 0)
	}
	return total
}

// Normalize returns the spec the generator will actually build:
//   - TilesPerLayer is cut to LayerCount entries when LayerCount is
//     positive and smaller, and LayerCount is then set to its length
//   - negative layer sizes become 0
//   - a spec with no icons or fewer than MatchSize tiles becomes the
//     fallback board
//   - IconCount is clamped to the palette size
//   - the total is trimmed to a multiple of MatchSize from the top layer down
//   - negative jitter or reward become 0
func (s LevelSpec) Normalize() LevelSpec {
	out := s.Clone()

	if out.LayerCount > 0 && out.LayerCount < len(out.TilesPerLayer) {
		out.TilesPerLayer = out.TilesPerLayer[:out.LayerCount]
	}
	for i, n := range out.TilesPerLayer {
		if n < 0 {
			out.TilesPerLayer[i] = 0
		}
	}

	if out.IconCount < 1 || out.TotalTiles() < MatchSize {
		fb := FallbackSpec()
		out.TilesPerLayer = fb.TilesPerLayer
		out.IconCount = fb.IconCount
	}
	out.IconCount = min(out.IconCount, len(Palette))

	excess := out.TotalTiles() % MatchSize
	for i := len(out.TilesPerLayer) - 1; i >= 0 && excess > 0; i-- {
		take := min(excess, out.TilesPerLayer[i])
		out.TilesPerLayer[i] -= take
		excess -= take
	}

	out.LayerCount = len(out.TilesPerLayer)
	if out.PositionJitter < 0 || math.IsNaN(out.PositionJitter) {
		out.PositionJitter = 0
	}
	if math.IsNaN(out.LayerSpacing) {
		out.LayerSpacing = 0
	}
	out.Reward = max(out.Reward, 0)
	return out
}
