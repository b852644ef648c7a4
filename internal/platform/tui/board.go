package tui

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/vovakirdan/stackmatch/internal/core"
	"github.com/vovakirdan/stackmatch/internal/engine"
)

// Tile boxes are drawn tileW x tileH cells. Board pixels are scaled by
// pxPerCol and pxPerRow, so a 56px tile on a 70px pitch leaves a one-cell
// gap between neighbours on the same layer.
const (
	tileW    = 6
	tileH    = 3
	pxPerCol = 10.0
	pxPerRow = 20.0
)

// glyphs are single-cell stand-ins for the palette emoji, which many
// terminals render two cells wide.
var glyphs = []rune("SCPHNRFBUOAGKZVT")

// iconGlyph returns the display letter for icon.
func iconGlyph(icon engine.Icon) rune {
	i := engine.IconIndex(icon)
	if i < 0 {
		return '?'
	}
	return glyphs[i%len(glyphs)]
}

// iconColor returns the display color for icon.
func iconColor(icon engine.Icon) core.Color {
	return core.IconColor(engine.IconIndex(icon))
}

// boardLayout maps board pixels to screen cells.
type boardLayout struct {
	origin core.Vec // board point drawn at (left, top)
	left   int
	top    int
	cols   int
	rows   int
}

// newBoardLayout centers the bounding box of tiles horizontally in width,
// starting at row top.
func newBoardLayout(tiles []engine.Tile, width, top int) boardLayout {
	var b core.Bounds
	for _, t := range tiles {
		b = b.Extend(t.Pos())
	}
	if b.Empty() {
		return boardLayout{top: top}
	}
	w, h := b.Size()
	cols := int(math.Round(w/pxPerCol)) + tileW
	rows := int(math.Round(h/pxPerRow)) + tileH
	return boardLayout{
		origin: b.Min,
		left:   max(0, (width-cols)/2),
		top:    top,
		cols:   cols,
		rows:   rows,
	}
}

// rect returns the screen rectangle of t.
func (l boardLayout) rect(t engine.Tile) core.Rect {
	d := t.Pos().Sub(l.origin)
	return core.NewRect(
		l.left+int(math.Round(d.X/pxPerCol)),
		l.top+int(math.Round(d.Y/pxPerRow)),
		tileW, tileH,
	)
}

// tileMarks carries per-frame highlights for drawBoard.
type tileMarks struct {
	cursor engine.TileID
	hinted []engine.TileID
}

// drawBoard draws visible tiles bottom layer first so upper tiles cover
// lower ones.
func drawBoard(s *core.Screen, l boardLayout, tiles []engine.Tile, marks tileMarks) {
	order := make([]engine.Tile, 0, len(tiles))
	for _, t := range tiles {
		if t.Visible {
			order = append(order, t)
		}
	}
	slices.SortStableFunc(order, func(a, b engine.Tile) int {
		return cmp.Compare(a.Layer, b.Layer)
	})

	view := core.NewRect(0, 0, s.Width(), s.Height())
	for _, t := range order {
		r := l.rect(t)
		if !r.Intersects(view) {
			continue
		}
		border := core.ColorWhite
		glyph := iconColor(t.Icon)
		switch {
		case t.ID == marks.cursor:
			border = core.ColorBrightGreen
		case slices.Contains(marks.hinted, t.ID):
			border = core.ColorBrightYellow
		case t.Blocked:
			border = core.ColorGray
		}
		if t.Blocked {
			glyph = core.ColorGray
		}

		s.FillRect(r, ' ', core.ColorDefault)
		s.DrawBox(r, border)
		s.SetCell(r.X+r.W/2-1, r.Y+1, iconGlyph(t.Icon), glyph)
		if t.ID == marks.cursor {
			s.SetCell(r.X+1, r.Y+1, '>', core.ColorBrightGreen)
			s.SetCell(r.Right()-2, r.Y+1, '<', core.ColorBrightGreen)
		}
	}
}

// drawTray draws the tray slots centered on row y.
func drawTray(s *core.Screen, y int, tray []engine.TrayTile, capacity int) {
	const slot = 4
	x := (s.Width() - (capacity*slot + 1)) / 2
	s.FillRect(core.NewRect(x, y, capacity*slot+1, 3), ' ', core.ColorDefault)
	for i := range capacity {
		r := core.NewRect(x+i*slot, y, slot+1, 3)
		color := core.ColorGray
		if capacity-len(tray) <= 1 {
			color = core.ColorRed
		}
		s.DrawBox(r, color)
		if i < len(tray) {
			s.SetCell(r.X+2, y+1, iconGlyph(tray[i].Icon), iconColor(tray[i].Icon))
		}
	}
}

// powerUpBar formats the power-up hotkeys with the player's stock. A nil
// inventory means unlimited.
func powerUpBar(inv map[string]int) string {
	parts := make([]string, 0, len(engine.PowerUps()))
	for i, info := range engine.PowerUps() {
		stock := "∞"
		if inv != nil {
			stock = fmt.Sprintf("%d", inv[info.Key])
		}
		parts = append(parts, fmt.Sprintf("[%d] %s x%s", i+1, info.Name, stock))
	}
	return strings.Join(parts, "  ")
}

// nextTile returns the selectable tile nearest to from in direction
// (dx, dy). Tiles off the axis are penalised so movement feels straight.
// ok is false when nothing lies in that direction.
func nextTile(tiles []engine.Tile, from core.Vec, dx, dy int) (engine.Tile, bool) {
	var best engine.Tile
	bestScore := math.Inf(1)
	found := false
	for _, t := range tiles {
		if !t.Selectable() {
			continue
		}
		d := t.Pos().Sub(from)
		along := d.X*float64(dx) + d.Y*float64(dy)
		if along <= 0.5 {
			continue
		}
		across := math.Abs(d.X*float64(dy)) + math.Abs(d.Y*float64(dx))
		score := along + 2*across
		if score < bestScore {
			best, bestScore, found = t, score, true
		}
	}
	return best, found
}

// nearestTile returns the selectable tile closest to p, preferring upper
// layers on ties.
func nearestTile(tiles []engine.Tile, p core.Vec) (engine.Tile, bool) {
	var best engine.Tile
	bestDist := math.Inf(1)
	found := false
	for _, t := range tiles {
		if !t.Selectable() {
			continue
		}
		d := t.Pos().Sub(p)
		dist := math.Hypot(d.X, d.Y)
		if dist < bestDist || (dist == bestDist && t.Layer > best.Layer) {
			best, bestDist, found = t, dist, true
		}
	}
	return best, found
}
