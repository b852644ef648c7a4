package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore("ann", "campaign", 1, 300, true); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("campaign")
	if err != nil || high != 300 {
		t.Errorf("HighScore() = %d, %v", high, err)
	}
}

func TestStoreScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct {
		player string
		mode   string
		score  int
		won    bool
	}{
		{"ann", "campaign", 100, false},
		{"bob", "campaign", 500, true},
		{"ann", "campaign", 300, true},
		{"ann", "daily", 900, true},
	} {
		if _, err := store.SaveScore(s.player, s.mode, 1, s.score, s.won); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	top, err := store.TopScores("campaign", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 2 || top[0].Score != 500 || top[1].Score != 300 {
		t.Fatalf("TopScores() = %+v", top)
	}
	if top[0].Player != "bob" || !top[0].Won || top[0].Mode != "campaign" {
		t.Errorf("top entry = %+v", top[0])
	}

	recent, err := store.PlayerScores("ann", 10)
	if err != nil || len(recent) != 3 || recent[0].Mode != "daily" {
		t.Errorf("PlayerScores() = %+v, %v", recent, err)
	}

	stats, err := store.GetModeStats("campaign")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Wins != 2 || stats.HighScore != 500 || stats.TotalScore != 900 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 300 {
		t.Errorf("AvgScore = %v, expected 300", stats.AvgScore)
	}

	all, err := store.GetAllModesStats()
	if err != nil || len(all) != 2 || all["daily"].HighScore != 900 {
		t.Errorf("GetAllModesStats() = %v, %v", all, err)
	}

	if err := store.ClearScores("campaign"); err != nil {
		t.Fatal(err)
	}
	if high, _ := store.HighScore("campaign"); high != 0 {
		t.Errorf("HighScore after clear = %d", high)
	}
	if high, _ := store.HighScore("daily"); high != 900 {
		t.Errorf("other modes should survive a clear, got %d", high)
	}
}

func TestStoreEmptyStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetModeStats("campaign")
	if err != nil {
		t.Fatalf("GetModeStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() || stats.WinRate() != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
}

func TestStoreProfile(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Profile("ann"); !errors.Is(err, ErrNoProfile) {
		t.Errorf("Profile() for unknown player = %v, expected ErrNoProfile", err)
	}

	starter := map[string]int{"shuffle": 2, "hint": 3, "undo": 0}
	p, err := store.EnsureProfile("ann", starter)
	if err != nil {
		t.Fatalf("EnsureProfile() failed: %v", err)
	}
	if p.Coins != 0 || p.MaxLevel != 1 {
		t.Errorf("new profile = %+v", p)
	}

	inv, err := store.Inventory("ann")
	if err != nil {
		t.Fatal(err)
	}
	if inv["shuffle"] != 2 || inv["hint"] != 3 || len(inv) != 2 {
		t.Errorf("starter inventory = %v", inv)
	}

	// A second call must not grant the starter pack again.
	if _, err := store.AdjustInventory("ann", "hint", -3); err != nil {
		t.Fatal(err)
	}
	if _, err := store.EnsureProfile("ann", starter); err != nil {
		t.Fatal(err)
	}
	inv, _ = store.Inventory("ann")
	if inv["hint"] != 0 {
		t.Errorf("hint = %d after re-ensure, expected 0", inv["hint"])
	}
}

func TestStoreCoinsAndLevels(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.EnsureProfile("ann", nil); err != nil {
		t.Fatal(err)
	}

	coins, err := store.AddCoins("ann", 100)
	if err != nil || coins != 100 {
		t.Errorf("AddCoins() = %d, %v", coins, err)
	}
	if _, err := store.AddCoins("ann", -150); !errors.Is(err, ErrInsufficient) {
		t.Errorf("overdraw error = %v, expected ErrInsufficient", err)
	}
	if _, err := store.AddCoins("nobody", 5); !errors.Is(err, ErrNoProfile) {
		t.Errorf("AddCoins for unknown player = %v", err)
	}

	level, err := store.UnlockLevel("ann", 3)
	if err != nil || level != 3 {
		t.Errorf("UnlockLevel(3) = %d, %v", level, err)
	}
	level, _ = store.UnlockLevel("ann", 2)
	if level != 3 {
		t.Errorf("UnlockLevel should never lower, got %d", level)
	}
}

func TestStoreAdjustInventory(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.EnsureProfile("ann", map[string]int{"undo": 1}); err != nil {
		t.Fatal(err)
	}

	qty, err := store.AdjustInventory("ann", "undo", -1)
	if err != nil || qty != 0 {
		t.Errorf("AdjustInventory() = %d, %v", qty, err)
	}
	if _, err := store.AdjustInventory("ann", "undo", -1); !errors.Is(err, ErrInsufficient) {
		t.Errorf("error = %v, expected ErrInsufficient", err)
	}
	qty, err = store.AdjustInventory("ann", "shuffle", 4)
	if err != nil || qty != 4 {
		t.Errorf("granting a new power-up = %d, %v", qty, err)
	}
}

func TestStoreDaily(t *testing.T) {
	store := openTestStore(t)

	first, err := store.MarkDailyCompleted("ann", "2026-10-17", 500)
	if err != nil || !first {
		t.Fatalf("first completion = %v, %v", first, err)
	}
	again, err := store.MarkDailyCompleted("ann", "2026-10-17", 900)
	if err != nil || again {
		t.Errorf("second completion = %v, %v", again, err)
	}
	if _, err := store.MarkDailyCompleted("ann", "2026-10-18", 100); err != nil {
		t.Fatal(err)
	}

	done, _ := store.DailyCompleted("ann", "2026-10-17")
	other, _ := store.DailyCompleted("bob", "2026-10-17")
	if !done || other {
		t.Errorf("DailyCompleted = %v / %v", done, other)
	}

	streak, err := store.DailyStreak("ann", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	if err != nil || streak != 2 {
		t.Errorf("DailyStreak() = %d, %v", streak, err)
	}
}

func TestStoreAttempts(t *testing.T) {
	store := openTestStore(t)

	a := Attempt{ID: "a-1", Player: "ann", Mode: "campaign", Level: 2, Seed: 42}
	if err := store.StartAttempt(a); err != nil {
		t.Fatalf("StartAttempt() failed: %v", err)
	}
	if err := store.StartAttempt(Attempt{ID: "a-2", Player: "ann", Mode: "daily", Level: 1, Seed: 7}); err != nil {
		t.Fatal(err)
	}
	if err := store.FinishAttempt("a-1", "won", 700, 100); err != nil {
		t.Fatalf("FinishAttempt() failed: %v", err)
	}
	if err := store.FinishAttempt("missing", "lost", 0, 0); !errors.Is(err, ErrNoAttempt) {
		t.Errorf("unknown attempt error = %v", err)
	}

	attempts, err := store.RecentAttempts("ann", 10)
	if err != nil || len(attempts) != 2 {
		t.Fatalf("RecentAttempts() = %+v, %v", attempts, err)
	}
	byID := map[string]Attempt{}
	for _, at := range attempts {
		byID[at.ID] = at
	}
	if got := byID["a-1"]; got.Status != "won" || got.Score != 700 || got.Reward != 100 || got.Seed != 42 {
		t.Errorf("finished attempt = %+v", got)
	}
	if got := byID["a-2"]; got.Status != "playing" || !got.FinishedAt.IsZero() {
		t.Errorf("open attempt = %+v", got)
	}

	counts, err := store.AttemptCounts("ann")
	if err != nil || counts["won"] != 1 || counts["playing"] != 1 {
		t.Errorf("AttemptCounts() = %v, %v", counts, err)
	}
}
