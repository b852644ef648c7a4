package engine

import (
	"reflect"
	"slices"
	"testing"
	"time"
)

func TestParsePowerUp(t *testing.T) {
	tests := []struct {
		in      string
		want    PowerUp
		wantErr bool
	}{
		{"shuffle", PowerUpShuffle, false},
		{"UNDO", PowerUpUndo, false},
		{"remove_three", PowerUpDiscard, false},
		{"discard", PowerUpDiscard, false},
		{"Clear 3", PowerUpDiscard, false},
		{" hint ", PowerUpHint, false},
		{"bomb", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePowerUp(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePowerUp(%q) error = %v", tt.in, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePowerUp(%q) = %v, expected %v", tt.in, got, tt.want)
			}
		})
	}

	for _, info := range PowerUps() {
		if info.Kind.String() != info.Key {
			t.Errorf("%v.String() = %q", info.Kind, info.Kind.String())
		}
	}
}

func TestUndoEmptyHistoryFails(t *testing.T) {
	s := newTestState(lay(iconA, iconA, iconA))

	next, ok := s.Undo()
	if ok {
		t.Error("Undo with empty history should fail")
	}
	if !reflect.DeepEqual(next, s) {
		t.Error("failed Undo changed the state")
	}
}

func TestUndoRestoresExactly(t *testing.T) {
	s := newTestState(lay(iconA, iconB, iconA, iconC, iconA))
	s = mustSelect(t, s, 1)
	before := s

	s = mustSelect(t, s, 3)
	s = mustSelect(t, s, 5) // matches
	if s.Score != 100 {
		t.Fatalf("score = %d", s.Score)
	}

	s, ok := s.Undo()
	if !ok {
		t.Fatal("Undo failed")
	}
	s, ok = s.Undo()
	if !ok {
		t.Fatal("Undo failed")
	}

	if !reflect.DeepEqual(s.Tiles, before.Tiles) || !reflect.DeepEqual(s.Tray, before.Tray) || s.Score != before.Score {
		t.Error("two undos did not restore the earlier position")
	}
	if s.History.Len() != 1 {
		t.Errorf("history len = %d, expected 1", s.History.Len())
	}
}

func TestUndoHistoryIsBounded(t *testing.T) {
	s := newTestState(lay(
		iconA, iconA, iconA, iconB, iconB, iconB,
		iconC, iconC, iconC, iconD, iconD, iconD,
		iconE, iconE, iconE,
	))

	var positions []State
	for id := TileID(1); id <= 12; id++ {
		positions = append(positions, s)
		s = mustSelect(t, s, id)
	}
	if s.History.Len() != DefaultHistoryDepth {
		t.Fatalf("history len = %d, expected %d", s.History.Len(), DefaultHistoryDepth)
	}

	for i := 0; i < DefaultHistoryDepth; i++ {
		var ok bool
		s, ok = s.Undo()
		if !ok {
			t.Fatalf("undo %d failed", i+1)
		}
	}
	if _, ok := s.Undo(); ok {
		t.Error("undo beyond the history depth should fail")
	}

	want := positions[2]
	if !reflect.DeepEqual(s.Tiles, want.Tiles) || !reflect.DeepEqual(s.Tray, want.Tray) || s.Score != want.Score {
		t.Error("ten undos should land on the position after two selections")
	}
}

func TestHistorySharingIsSafe(t *testing.T) {
	s := newTestState(lay(iconA, iconB, iconC, iconD))
	s = mustSelect(t, s, 1)

	left := mustSelect(t, s, 2)
	right := mustSelect(t, s, 3)

	left, _ = left.Undo()
	right, _ = right.Undo()
	if !reflect.DeepEqual(left.Tray, right.Tray) || len(left.Tray) != 1 {
		t.Errorf("branches diverged after undo: %v vs %v", left.Tray, right.Tray)
	}
}

func TestShuffle(t *testing.T) {
	board := GenerateBoard(tutorialSpec(), NewRNG(3), DefaultGeometry())
	s := NewState(board, DefaultRules())
	s = mustSelect(t, s, s.Selectable()[0].ID)
	s.Hints = HintSet{IDs: []TileID{1}, Until: time.Unix(100, 0)}

	next, ok := s.Shuffle(NewRNG(5))
	if !ok {
		t.Fatal("Shuffle failed")
	}

	type slot struct {
		x, y  float64
		layer int
	}
	slotsOf := func(st State) []slot {
		var out []slot
		for _, tile := range st.Tiles {
			if tile.Visible {
				out = append(out, slot{tile.X, tile.Y, tile.Layer})
			}
		}
		slices.SortFunc(out, func(a, b slot) int {
			if a.x != b.x {
				if a.x < b.x {
					return -1
				}
				return 1
			}
			if a.y < b.y {
				return -1
			}
			if a.y > b.y {
				return 1
			}
			return a.layer - b.layer
		})
		return out
	}

	if !reflect.DeepEqual(slotsOf(s), slotsOf(next)) {
		t.Error("shuffle should permute existing slots")
	}
	for i := range s.Tiles {
		if s.Tiles[i].Icon != next.Tiles[i].Icon || s.Tiles[i].Visible != next.Tiles[i].Visible {
			t.Errorf("tile %d changed icon or visibility", s.Tiles[i].ID)
		}
	}
	if !reflect.DeepEqual(next.Tray, s.Tray) || next.Score != s.Score {
		t.Error("shuffle changed tray or score")
	}
	if len(next.Hints.IDs) != 0 {
		t.Error("shuffle should clear hints")
	}
	if !reflect.DeepEqual(ComputeBlocked(next.Tiles, 50), next.Tiles) {
		t.Error("shuffle left stale blocked flags")
	}

	if next.History.Len() != s.History.Len()+1 {
		t.Error("undoable shuffle should record history")
	}
	undone, _ := next.Undo()
	if !reflect.DeepEqual(undone.Tiles, s.Tiles) {
		t.Error("undo after shuffle should restore positions")
	}
}

func TestShuffleNotUndoable(t *testing.T) {
	rules := DefaultRules()
	rules.PermanentPowerUps = true
	s := NewState(Board{Tiles: lay(iconA, iconB, iconC)}, rules)

	next, ok := s.Shuffle(NewRNG(1))
	if !ok || next.History.Len() != 0 {
		t.Errorf("ok = %v, history = %d", ok, next.History.Len())
	}
}

func TestDiscardThree(t *testing.T) {
	s := newTestState(lay(iconA, iconB, iconC, iconD, iconA))
	for id := TileID(1); id <= 4; id++ {
		s = mustSelect(t, s, id)
	}

	next, removed, ok := s.DiscardThree()
	if !ok {
		t.Fatal("DiscardThree failed")
	}
	if !reflect.DeepEqual(icons(removed), []Icon{iconA, iconB, iconC}) {
		t.Errorf("removed = %v", icons(removed))
	}
	if !reflect.DeepEqual(icons(next.Tray), []Icon{iconD}) {
		t.Errorf("tray = %v", icons(next.Tray))
	}
	if next.Score != s.Score {
		t.Error("discard should not score")
	}
	if tile, _ := next.Tile(1); tile.Visible {
		t.Error("discarded tiles do not return to the board")
	}
}

func TestDiscardFewerThanThree(t *testing.T) {
	s := newTestState(lay(iconA, iconB, iconC))
	s = mustSelect(t, s, 1)

	next, removed, ok := s.DiscardThree()
	if !ok || len(removed) != 1 || len(next.Tray) != 0 {
		t.Errorf("ok = %v removed = %d tray = %d", ok, len(removed), len(next.Tray))
	}

	if _, _, ok := next.DiscardThree(); ok {
		t.Error("discard on an empty tray should fail")
	}
}

func TestDiscardCanWin(t *testing.T) {
	s := newTestState(lay(iconA, iconB))
	s = mustSelect(t, s, 1)
	s = mustSelect(t, s, 2)
	if s.Status != StatusPlaying {
		t.Fatalf("status = %v", s.Status)
	}

	next, _, ok := s.DiscardThree()
	if !ok || next.Status != StatusWon {
		t.Errorf("ok = %v, status = %v, expected won", ok, next.Status)
	}
}

func TestHint(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestState(lay(iconB, iconA, iconB, iconA, iconB, iconA, iconA, iconC))

	next, ids, ok := s.Hint(now)
	if !ok {
		t.Fatal("Hint failed")
	}
	want := []TileID{1, 3, 5, 2, 4, 6}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("hint = %v, expected %v", ids, want)
	}
	if !reflect.DeepEqual(next.HintedAt(now.Add(2*time.Second)), want) {
		t.Error("hint should be active before the duration elapses")
	}
	if got := next.HintedAt(now.Add(3 * time.Second)); got != nil {
		t.Errorf("hint should expire after 3s, got %v", got)
	}
	if expired := next.ExpireHints(now.Add(3 * time.Second)); len(expired.Hints.IDs) != 0 {
		t.Error("ExpireHints should clear an expired hint")
	}
	if s.History.Len() != next.History.Len() {
		t.Error("hint should not record history")
	}
}

func TestHintNoGroup(t *testing.T) {
	s := newTestState(lay(iconA, iconA, iconB, iconB))
	s.Hints = HintSet{IDs: []TileID{1}, Until: time.Unix(2000, 0)}

	next, ids, ok := s.Hint(time.Unix(1000, 0))
	if ok || len(ids) != 0 {
		t.Errorf("ok = %v, ids = %v, expected empty", ok, ids)
	}
	if !reflect.DeepEqual(next.Hints, s.Hints) {
		t.Error("a hint with no group should leave existing hints alone")
	}
}

func TestSelectClearsHints(t *testing.T) {
	now := time.Unix(1000, 0)
	s := newTestState(lay(iconA, iconA, iconA))
	s, _, _ = s.Hint(now)

	s = mustSelect(t, s, 1)
	if len(s.Hints.IDs) != 0 {
		t.Error("selection should clear hints")
	}
}

func TestPowerUpsFailWhenFinished(t *testing.T) {
	s := newTestState(lay(iconA, iconA, iconA, iconB))
	s = mustSelect(t, s, 1)
	s.Status = StatusLost

	if _, ok := s.Shuffle(NewRNG(1)); ok {
		t.Error("shuffle after loss should fail")
	}
	if _, ok := s.Undo(); ok {
		t.Error("undo after loss should fail")
	}
	if _, _, ok := s.DiscardThree(); ok {
		t.Error("discard after loss should fail")
	}
	if _, _, ok := s.Hint(time.Now()); ok {
		t.Error("hint after loss should fail")
	}
}
