// Package levels provides the built-in level catalog, the procedural
// generator for levels past the catalog, the daily challenge and loading
// of user level packs.
package levels

import "github.com/vovakirdan/stackmatch/internal/engine"

// DefaultReward is the coin reward of every built-in level.
const DefaultReward = 100

// catalog holds the hand-tuned opening levels, in order.
var catalog = []engine.LevelSpec{
	{
		ID:             1,
		Name:           "Tutorial",
		Description:    "Learn the basics",
		LayerCount:     2,
		TilesPerLayer:  []int{9, 6},
		IconCount:      5,
		PositionJitter: 10,
		LayerSpacing:   20,
		Reward:         DefaultReward,
	},
	{
		ID:             2,
		Name:           "The Challenge",
		Description:    "Sheep a Sheep style!",
		LayerCount:     4,
		TilesPerLayer:  []int{24, 18, 12, 6},
		IconCount:      10,
		PositionJitter: 25,
		LayerSpacing:   12,
		Reward:         DefaultReward,
	},
	{
		ID:             3,
		Name:           "Deep Stack",
		Description:    "More layers, more fun",
		LayerCount:     5,
		TilesPerLayer:  []int{30, 24, 18, 12, 6},
		IconCount:      12,
		PositionJitter: 20,
		LayerSpacing:   10,
		Reward:         DefaultReward,
	},
	{
		ID:             4,
		Name:           "Icon Overload",
		Description:    "So many animals!",
		LayerCount:     4,
		TilesPerLayer:  []int{36, 27, 18, 9},
		IconCount:      14,
		PositionJitter: 15,
		LayerSpacing:   12,
		Reward:         DefaultReward,
	},
	{
		ID:             5,
		Name:           "The Gauntlet",
		Description:    "Only the brave survive",
		LayerCount:     6,
		TilesPerLayer:  []int{42, 36, 30, 24, 18, 12},
		IconCount:      16,
		PositionJitter: 30,
		LayerSpacing:   8,
		Reward:         DefaultReward,
	},
}

// Catalog returns copies of the built-in levels.
func Catalog() []engine.LevelSpec {
	out := make([]engine.LevelSpec, len(catalog))
	for i, spec := range catalog {
		out[i] = spec.Clone()
	}
	return out
}

// CatalogCount returns the number of built-in levels.
func CatalogCount() int {
	return len(catalog)
}

// Fixed returns built-in level n (1-based).
func Fixed(n int) (engine.LevelSpec, bool) {
	if n < 1 || n > len(catalog) {
		return engine.LevelSpec{}, false
	}
	return catalog[n-1].Clone(), true
}

// ForLevel returns the spec for level n: the built-in level when one
// exists, the procedural level otherwise. n below 1 is treated as 1.
func ForLevel(n int) engine.LevelSpec {
	n = max(n, 1)
	if spec, ok := Fixed(n); ok {
		return spec
	}
	return Procedural(n)
}
