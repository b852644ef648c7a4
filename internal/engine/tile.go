// Package engine implements the rules of a stacked-layer match-3 puzzle:
// board generation, occlusion, the grouped tray, power-ups and undo history.
//
// The package is UI-agnostic and deterministic. Randomness comes from an
// injected RNG and time from an injected clock, so a seed fully determines
// a board and every transition is a pure function of the previous State.
package engine

import (
	"slices"

	"github.com/vovakirdan/stackmatch/internal/core"
)

// TileID identifies a tile within a single board. IDs are assigned
// sequentially from 1 in generation order.
type TileID int

// Icon is the matching key of a tile.
type Icon string

// Tile is one piece on the board.
type Tile struct {
	ID      TileID
	Icon    Icon
	Layer   int // 0 is the bottom layer
	X, Y    float64
	Visible bool // false once the tile has been moved to the tray
	Blocked bool // derived: a visible tile on a higher layer covers it
}

// Pos returns the tile's board position.
func (t Tile) Pos() core.Vec {
	return core.Vec{X: t.X, Y: t.Y}
}

// Selectable reports whether the tile can be moved to the tray.
func (t Tile) Selectable() bool {
	return t.Visible && !t.Blocked
}

// TrayTile is a tile that has been moved off the board.
type TrayTile struct {
	ID   TileID
	Icon Icon
}

func cloneTiles(tiles []Tile) []Tile {
	if tiles == nil {
		return nil
	}
	return slices.Clone(tiles)
}

func cloneTray(tray []TrayTile) []TrayTile {
	if tray == nil {
		return nil
	}
	return slices.Clone(tray)
}

func visibleCount(tiles []Tile) int {
	n := 0
	for _, t := range tiles {
		if t.Visible {
			n++
		}
	}
	return n
}
