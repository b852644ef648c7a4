package levels

import (
	"fmt"

	"github.com/vovakirdan/stackmatch/internal/engine"
)

// ValidationError contains details about a level that the engine would
// have to repair before generating it.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that spec generates exactly as written. It returns the
// first problem found, or nil. Invalid specs are still playable: the
// engine normalizes them, which may change the board.
func Validate(spec engine.LevelSpec) error {
	if len(spec.TilesPerLayer) == 0 {
		return ValidationError{Code: "NO_LAYERS", Message: "tiles_per_layer is empty"}
	}
	if spec.LayerCount != 0 && spec.LayerCount != len(spec.TilesPerLayer) {
		return ValidationError{
			Code:    "LAYER_COUNT",
			Message: fmt.Sprintf("layer count %d does not match %d layer sizes", spec.LayerCount, len(spec.TilesPerLayer)),
		}
	}
	for i, n := range spec.TilesPerLayer {
		if n < 0 {
			return ValidationError{
				Code:    "NEGATIVE_LAYER",
				Message: fmt.Sprintf("layer %d has %d tiles", i, n),
			}
		}
	}
	if spec.IconCount < 1 {
		return ValidationError{Code: "NO_ICONS", Message: "icon_count must be at least 1"}
	}
	if spec.IconCount > len(engine.Palette) {
		return ValidationError{
			Code:    "TOO_MANY_ICONS",
			Message: fmt.Sprintf("icon_count %d exceeds the palette of %d", spec.IconCount, len(engine.Palette)),
		}
	}

	total := spec.TotalTiles()
	if total < engine.MatchSize {
		return ValidationError{
			Code:    "TOO_FEW_TILES",
			Message: fmt.Sprintf("%d tiles cannot form a match", total),
		}
	}
	if total%engine.MatchSize != 0 {
		return ValidationError{
			Code:    "NOT_DIVISIBLE",
			Message: fmt.Sprintf("%d tiles is not a multiple of %d", total, engine.MatchSize),
		}
	}
	if spec.PositionJitter < 0 {
		return ValidationError{Code: "NEGATIVE_JITTER", Message: "position_jitter must not be negative"}
	}
	if spec.Reward < 0 {
		return ValidationError{Code: "NEGATIVE_REWARD", Message: "reward must not be negative"}
	}
	return nil
}
