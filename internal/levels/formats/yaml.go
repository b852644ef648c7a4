// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/stackmatch/internal/engine"
)

// YAMLLevel is the on-disk structure of a level file.
type YAMLLevel struct {
	ID             int     `yaml:"id"`
	Name           string  `yaml:"name"`
	Description    string  `yaml:"description,omitempty"`
	Layers         int     `yaml:"layers,omitempty"`
	TilesPerLayer  []int   `yaml:"tiles_per_layer"`
	IconCount      int     `yaml:"icon_count"`
	PositionJitter float64 `yaml:"position_jitter,omitempty"`
	LayerSpacing   float64 `yaml:"layer_spacing,omitempty"`
	Reward         *int    `yaml:"reward,omitempty"`
}

// DefaultReward is used when a level file omits reward.
const DefaultReward = 100

// ParseYAML parses a YAML level file. layers defaults to the number of
// tiles_per_layer entries.
func ParseYAML(data []byte) (engine.LevelSpec, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return engine.LevelSpec{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID <= 0 {
		return engine.LevelSpec{}, errors.New("missing or non-positive id")
	}

	layers := yl.Layers
	if layers == 0 {
		layers = len(yl.TilesPerLayer)
	}
	reward := DefaultReward
	if yl.Reward != nil {
		reward = *yl.Reward
	}

	return engine.LevelSpec{
		ID:             yl.ID,
		Name:           yl.Name,
		Description:    yl.Description,
		LayerCount:     layers,
		TilesPerLayer:  yl.TilesPerLayer,
		IconCount:      yl.IconCount,
		PositionJitter: yl.PositionJitter,
		LayerSpacing:   yl.LayerSpacing,
		Reward:         reward,
	}, nil
}

// MarshalYAML renders spec in the level file format.
func MarshalYAML(spec engine.LevelSpec) ([]byte, error) {
	reward := spec.Reward
	return yaml.Marshal(YAMLLevel{
		ID:             spec.ID,
		Name:           spec.Name,
		Description:    spec.Description,
		Layers:         spec.LayerCount,
		TilesPerLayer:  spec.TilesPerLayer,
		IconCount:      spec.IconCount,
		PositionJitter: spec.PositionJitter,
		LayerSpacing:   spec.LayerSpacing,
		Reward:         &reward,
	})
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
