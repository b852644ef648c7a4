package levels

import (
	"fmt"

	"github.com/vovakirdan/stackmatch/internal/engine"
)

// Procedural difficulty limits.
const (
	maxProceduralLayers = 8
	minLayerTiles       = 6
	baseLayerTiles      = 42
	layerShrink         = 6
	minLayerSpacing     = 6
	maxJitterBonus      = 20
)

// Procedural builds level n from a closed-form difficulty curve: layers
// grow with n up to eight, each layer shrinks by six tiles going up but
// every layer grows by 1.5 tiles per level, and icons, jitter and spacing
// tighten as n increases.
func Procedural(n int) engine.LevelSpec {
	n = max(n, 1)

	layers := min(3+n/2, maxProceduralLayers)
	tiles := make([]int, layers)
	for i := range tiles {
		base := max(minLayerTiles, baseLayerTiles-i*layerShrink+(n*3)/2)
		tiles[i] = base / engine.MatchSize * engine.MatchSize
	}

	return engine.LevelSpec{
		ID:             n,
		Name:           fmt.Sprintf("Level %d", n),
		Description:    fmt.Sprintf("Procedural challenge %d", n),
		LayerCount:     layers,
		TilesPerLayer:  tiles,
		IconCount:      min(len(engine.Palette), 6+n/2),
		PositionJitter: float64(15 + min(maxJitterBonus, n*2)),
		LayerSpacing:   float64(max(minLayerSpacing, 15-n/3)),
		Reward:         DefaultReward,
	}
}
