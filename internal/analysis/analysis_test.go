package analysis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/stackmatch/internal/engine"
)

func flatTiles(icons ...engine.Icon) []engine.Tile {
	tiles := make([]engine.Tile, len(icons))
	for i, icon := range icons {
		tiles[i] = engine.Tile{
			ID:      engine.TileID(i + 1),
			Icon:    icon,
			X:       float64(i) * 100,
			Visible: true,
		}
	}
	return tiles
}

func stateWith(tiles []engine.Tile, tray ...engine.Icon) engine.State {
	s := engine.State{Rules: engine.DefaultRules(), Tiles: tiles, Status: engine.StatusPlaying}
	for i, icon := range tray {
		s.Tray = append(s.Tray, engine.TrayTile{ID: engine.TileID(100 + i), Icon: icon})
	}
	return s
}

func TestPick(t *testing.T) {
	a, b, c := engine.Palette[0], engine.Palette[1], engine.Palette[2]
	tests := []struct {
		name  string
		state engine.State
		want  engine.TileID
	}{
		{
			name:  "completes a pair in the tray",
			state: stateWith(flatTiles(a, b, c), c, c),
			want:  3,
		},
		{
			name:  "extends the icon already held",
			state: stateWith(flatTiles(a, b, c), b),
			want:  2,
		},
		{
			name:  "prefers the most common open icon",
			state: stateWith(flatTiles(a, b, b, c)),
			want:  2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Pick(tt.state)
			if !ok || got != tt.want {
				t.Errorf("Pick = %d (%v), want %d", got, ok, tt.want)
			}
		})
	}
}

func TestPickAvoidsFillingTray(t *testing.T) {
	a, b, c, d := engine.Palette[0], engine.Palette[1], engine.Palette[2], engine.Palette[3]
	// Six in the tray, one slot left: only the pair completion is safe.
	s := stateWith(flatTiles(d, a), a, a, b, b, c, c)
	got, ok := Pick(s)
	if !ok || got != 2 {
		t.Errorf("Pick = %d, want the tile completing the pair", got)
	}
}

func TestPickNothingOpen(t *testing.T) {
	tiles := flatTiles(engine.Palette[0])
	tiles[0].Blocked = true
	if _, ok := Pick(stateWith(tiles)); ok {
		t.Error("Pick found a tile on a fully blocked board")
	}
	done := stateWith(flatTiles(engine.Palette[0]))
	done.Status = engine.StatusWon
	if _, ok := Pick(done); ok {
		t.Error("Pick played on a finished game")
	}
}

func TestPlayClearsFlatBoard(t *testing.T) {
	g := engine.NewGame(engine.WithSeed(3))
	g.Init(engine.LevelSpec{LayerCount: 1, TilesPerLayer: []int{12}, IconCount: 4, Reward: 1})
	moves := Play(g)
	if g.Status() != engine.StatusWon {
		t.Fatalf("status = %v after %d moves", g.Status(), moves)
	}
	if moves != 12 {
		t.Errorf("moves = %d, want 12", moves)
	}
}

func TestSummarize(t *testing.T) {
	spec := engine.LevelSpec{ID: 4, Name: "Four", TilesPerLayer: []int{6, 3}, IconCount: 3}
	samples := []Sample{
		{Level: 4, Status: engine.StatusWon, Score: 300, Remaining: 0, Open: 4},
		{Level: 4, Status: engine.StatusLost, Score: 100, Remaining: 4, Open: 6},
	}
	st := Summarize(spec, samples)
	if st.Wins != 1 || st.WinRate != 0.5 || st.Tiles != 9 {
		t.Errorf("stats = %+v", st)
	}
	if st.MeanScore != 200 || st.StdScore != 100 {
		t.Errorf("score mean/sd = %v/%v, want 200/100", st.MeanScore, st.StdScore)
	}
	if st.MeanRemaining != 2 || st.MeanOpen != 5 {
		t.Errorf("remaining %v open %v", st.MeanRemaining, st.MeanOpen)
	}

	empty := Summarize(spec, nil)
	if empty.Samples != 0 || empty.WinRate != 0 {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestRun(t *testing.T) {
	spec := func(n int) engine.LevelSpec {
		return engine.LevelSpec{
			ID:            n,
			Name:          "Flat",
			LayerCount:    1,
			TilesPerLayer: []int{9 * n},
			IconCount:     3,
		}
	}
	cfg := Config{From: 1, To: 2, Samples: 5, Seed: 10, Workers: 3, Rules: engine.DefaultRules(), Spec: spec}
	report, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if report.Games != 10 || len(report.Levels) != 2 {
		t.Fatalf("report = %+v", report)
	}
	for _, l := range report.Levels {
		if l.WinRate != 1 {
			t.Errorf("level %d win rate = %v on a flat board", l.Level, l.WinRate)
		}
	}
	if report.Levels[1].Level != 2 || report.Levels[1].Tiles != 18 {
		t.Errorf("second level = %+v", report.Levels[1])
	}

	again, _ := Run(cfg)
	if again.Levels[0].MeanScore != report.Levels[0].MeanScore {
		t.Error("same seed gave different results")
	}

	var buf bytes.Buffer
	if _, err := report.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Level", "Flat", "100.0", "10 games"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	spec := func(int) engine.LevelSpec { return engine.FallbackSpec() }
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no spec", Config{From: 1, To: 1, Samples: 1}},
		{"empty range", Config{From: 3, To: 2, Samples: 1, Spec: spec}},
		{"zero level", Config{From: 0, To: 2, Samples: 1, Spec: spec}},
		{"no samples", Config{From: 1, To: 1, Spec: spec}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Run(tt.cfg); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
