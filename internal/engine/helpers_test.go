package engine

import "time"

// lay builds visible layer-0 tiles spaced far apart, one per icon, with
// sequential IDs starting at 1.
func lay(icons ...Icon) []Tile {
	tiles := make([]Tile, len(icons))
	for i, icon := range icons {
		tiles[i] = Tile{
			ID:      TileID(i + 1),
			Icon:    icon,
			X:       float64(i) * 100,
			Visible: true,
		}
	}
	return tiles
}

func newTestState(tiles []Tile) State {
	return NewState(Board{Spec: LevelSpec{Name: "test", Reward: 100}, Tiles: tiles}, DefaultRules())
}

func mustSelect(t interface {
	Helper()
	Fatalf(string, ...any)
}, s State, id TileID) State {
	t.Helper()
	next, res := s.Select(id)
	if !res.Accepted {
		t.Fatalf("Select(%d) was rejected", id)
	}
	return next
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

var (
	iconA = Palette[0]
	iconB = Palette[1]
	iconC = Palette[2]
	iconD = Palette[3]
	iconE = Palette[4]
)
