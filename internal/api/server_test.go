package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stackmatch/internal/engine"
	_ "github.com/vovakirdan/stackmatch/internal/levels"
	"github.com/vovakirdan/stackmatch/internal/session"
	"github.com/vovakirdan/stackmatch/internal/storage"
)

func newTestServer(t *testing.T, store *storage.Store) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(store, session.Options{
		Starter: map[string]int{"hint": 1, "undo": 1},
		Clock:   func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) },
	}, log.New(io.Discard))
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return srv, ts
}

func do(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func createGame(t *testing.T, base string, req CreateGameRequest) GameDTO {
	t.Helper()
	var g GameDTO
	if code := do(t, http.MethodPost, base+"/api/games", req, &g); code != http.StatusCreated {
		t.Fatalf("create game: status %d", code)
	}
	return g
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, nil)
	var body map[string]string
	if code := do(t, http.MethodGet, ts.URL+"/healthz", nil, &body); code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("healthz = %d %v", code, body)
	}
}

func TestCreateAndGetGame(t *testing.T) {
	srv, ts := newTestServer(t, nil)
	g := createGame(t, ts.URL, CreateGameRequest{Level: 1, Seed: 42})

	if g.ID == "" || g.Mode != "campaign" || g.Level != 1 || g.Name != "Tutorial" {
		t.Errorf("game = %+v", g)
	}
	if g.Status != "playing" || g.Remaining != 15 || len(g.Tiles) != 15 || g.TrayCapacity != 7 {
		t.Errorf("fresh game state = status %s remaining %d tiles %d", g.Status, g.Remaining, len(g.Tiles))
	}
	if g.Player != DefaultPlayer || g.Inventory != nil {
		t.Errorf("player %q inventory %v", g.Player, g.Inventory)
	}

	var got GameDTO
	if code := do(t, http.MethodGet, ts.URL+"/api/games/"+g.ID, nil, &got); code != http.StatusOK {
		t.Fatalf("get: %d", code)
	}
	if got.ID != g.ID || len(got.Tiles) != len(g.Tiles) {
		t.Errorf("get returned a different game")
	}

	// Same seed, same board.
	again := createGame(t, ts.URL, CreateGameRequest{Level: 1, Seed: 42})
	for i := range g.Tiles {
		if g.Tiles[i] != again.Tiles[i] {
			t.Fatalf("tile %d differs for the same seed", i)
		}
	}
	if srv.GameCount() != 2 {
		t.Errorf("game count = %d", srv.GameCount())
	}
}

func TestCreateGameErrors(t *testing.T) {
	_, ts := newTestServer(t, nil)
	tests := []struct {
		name string
		body any
		want int
	}{
		{"unknown mode", CreateGameRequest{Mode: "nope"}, http.StatusBadRequest},
		{"daily ignores level", CreateGameRequest{Mode: "daily", Level: 4}, http.StatusCreated},
		{"negative level", CreateGameRequest{Level: -3}, http.StatusBadRequest},
		{"bad json", "{", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s, ok := tt.body.(string); ok {
				req, _ := http.NewRequest(http.MethodPost, ts.URL+"/api/games", bytes.NewBufferString(s))
				resp, err := http.DefaultClient.Do(req)
				if err != nil {
					t.Fatal(err)
				}
				resp.Body.Close()
				if resp.StatusCode != tt.want {
					t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
				}
				return
			}
			if code := do(t, http.MethodPost, ts.URL+"/api/games", tt.body, nil); code != tt.want {
				t.Errorf("status = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestDailyGame(t *testing.T) {
	_, ts := newTestServer(t, nil)
	g := createGame(t, ts.URL, CreateGameRequest{Daily: true})
	if g.Mode != "daily" || g.Day != "2026-10-18" {
		t.Errorf("daily game = mode %q day %q", g.Mode, g.Day)
	}
	// The daily seed ignores the request seed.
	other := createGame(t, ts.URL, CreateGameRequest{Daily: true, Seed: 5})
	if len(g.Tiles) != len(other.Tiles) || g.Tiles[0] != other.Tiles[0] {
		t.Error("daily boards differ")
	}
}

func TestSelectFlow(t *testing.T) {
	_, ts := newTestServer(t, nil)
	g := createGame(t, ts.URL, CreateGameRequest{Level: 1, Seed: 7})

	var selectable TileDTO
	var blocked *TileDTO
	for i, tile := range g.Tiles {
		if tile.Selectable && selectable.ID == 0 {
			selectable = tile
		}
		if !tile.Selectable && blocked == nil {
			blocked = &g.Tiles[i]
		}
	}

	var res SelectResponse
	url := ts.URL + "/api/games/" + g.ID + "/select"
	if code := do(t, http.MethodPost, url, SelectRequest{TileID: selectable.ID}, &res); code != http.StatusOK {
		t.Fatalf("select: %d", code)
	}
	if !res.Accepted || len(res.Game.Tray) != 1 || res.Game.Remaining != 14 {
		t.Errorf("after select: %+v", res)
	}

	if blocked != nil {
		if code := do(t, http.MethodPost, url, SelectRequest{TileID: blocked.ID}, nil); code != http.StatusConflict {
			t.Errorf("blocked select = %d, want 409", code)
		}
	}
	if code := do(t, http.MethodPost, url, SelectRequest{TileID: 9999}, nil); code != http.StatusConflict {
		t.Errorf("unknown tile select = %d, want 409", code)
	}
	if code := do(t, http.MethodPost, ts.URL+"/api/games/nope/select", SelectRequest{TileID: 1}, nil); code != http.StatusNotFound {
		t.Errorf("unknown game = %d, want 404", code)
	}
}

func TestPowerUpEndpoint(t *testing.T) {
	_, ts := newTestServer(t, nil)
	g := createGame(t, ts.URL, CreateGameRequest{Level: 1, Seed: 3})
	base := ts.URL + "/api/games/" + g.ID + "/powerups/"

	if code := do(t, http.MethodPost, base+"undo", nil, nil); code != http.StatusConflict {
		t.Errorf("undo on fresh game = %d, want 409", code)
	}
	if code := do(t, http.MethodPost, base+"teleport", nil, nil); code != http.StatusBadRequest {
		t.Errorf("unknown power-up = %d, want 400", code)
	}
	var after GameDTO
	if code := do(t, http.MethodPost, base+"shuffle", nil, &after); code != http.StatusOK {
		t.Errorf("shuffle = %d", code)
	}
	if len(after.Tiles) != len(g.Tiles) {
		t.Error("shuffle changed the tile count")
	}
}

func TestPowerUpInventoryWithStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	_, ts := newTestServer(t, store)

	g := createGame(t, ts.URL, CreateGameRequest{Level: 1, Seed: 3, Player: "kim"})
	if g.Inventory["hint"] != 1 || g.Inventory["shuffle"] != 0 {
		t.Errorf("starting inventory = %v", g.Inventory)
	}
	base := ts.URL + "/api/games/" + g.ID + "/powerups/"
	if code := do(t, http.MethodPost, base+"shuffle", nil, nil); code != http.StatusConflict {
		t.Errorf("shuffle without stock = %d, want 409", code)
	}
	inv, _ := store.Inventory("kim")
	if inv["hint"] != 1 {
		t.Errorf("hint stock = %d before use", inv["hint"])
	}
}

func TestDeleteGame(t *testing.T) {
	srv, ts := newTestServer(t, nil)
	g := createGame(t, ts.URL, CreateGameRequest{})
	if code := do(t, http.MethodDelete, ts.URL+"/api/games/"+g.ID, nil, nil); code != http.StatusNoContent {
		t.Errorf("delete = %d", code)
	}
	if code := do(t, http.MethodDelete, ts.URL+"/api/games/"+g.ID, nil, nil); code != http.StatusNotFound {
		t.Errorf("second delete = %d", code)
	}
	if srv.GameCount() != 0 {
		t.Errorf("game count = %d", srv.GameCount())
	}
}

func TestEvictsOldestGame(t *testing.T) {
	srv, ts := newTestServer(t, nil)
	srv.maxGames = 2
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	srv.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	first := createGame(t, ts.URL, CreateGameRequest{})
	createGame(t, ts.URL, CreateGameRequest{})
	createGame(t, ts.URL, CreateGameRequest{})

	if srv.GameCount() != 2 {
		t.Errorf("game count = %d, want 2", srv.GameCount())
	}
	if code := do(t, http.MethodGet, ts.URL+"/api/games/"+first.ID, nil, nil); code != http.StatusNotFound {
		t.Errorf("oldest game still present: %d", code)
	}
}

func TestEvictsLeastRecentlyTouchedGame(t *testing.T) {
	srv, ts := newTestServer(t, nil)
	srv.maxGames = 2
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	srv.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	first := createGame(t, ts.URL, CreateGameRequest{})
	second := createGame(t, ts.URL, CreateGameRequest{})

	// Playing the first game makes the second one the idlest.
	if code := do(t, http.MethodGet, ts.URL+"/api/games/"+first.ID, nil, nil); code != http.StatusOK {
		t.Fatalf("get first: %d", code)
	}
	createGame(t, ts.URL, CreateGameRequest{})

	if code := do(t, http.MethodGet, ts.URL+"/api/games/"+first.ID, nil, nil); code != http.StatusOK {
		t.Errorf("recently played game was evicted: %d", code)
	}
	if code := do(t, http.MethodGet, ts.URL+"/api/games/"+second.ID, nil, nil); code != http.StatusNotFound {
		t.Errorf("idle game still present: %d", code)
	}
}

func TestListLevelsAndPowerUps(t *testing.T) {
	_, ts := newTestServer(t, nil)
	var modes []ModeDTO
	if code := do(t, http.MethodGet, ts.URL+"/api/levels", nil, &modes); code != http.StatusOK {
		t.Fatalf("levels: %d", code)
	}
	byID := make(map[string]ModeDTO)
	for _, m := range modes {
		byID[m.ID] = m
	}
	campaign, ok := byID["campaign"]
	if !ok || len(campaign.Levels) != listedCampaignLevels || !campaign.Progressive {
		t.Errorf("campaign listing = %+v", campaign)
	}
	if campaign.Levels[0].Tiles != 15 || campaign.Levels[0].Name != "Tutorial" {
		t.Errorf("level 1 = %+v", campaign.Levels[0])
	}
	if daily := byID["daily"]; len(daily.Levels) != 1 || daily.Levels[0].Day != "2026-10-18" {
		t.Errorf("daily listing = %+v", daily)
	}

	var pus []PowerUpDTO
	if code := do(t, http.MethodGet, ts.URL+"/api/powerups", nil, &pus); code != http.StatusOK {
		t.Fatalf("powerups: %d", code)
	}
	if len(pus) != len(engine.PowerUps()) || pus[2].Key != "remove_three" {
		t.Errorf("powerups = %+v", pus)
	}
}

func TestGzipResponses(t *testing.T) {
	_, ts := newTestServer(t, nil)
	g := createGame(t, ts.URL, CreateGameRequest{Level: 5, Seed: 1})

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/games/"+g.ID, nil)
	req.Header.Set("Accept-Encoding", "gzip")
	// A custom transport keeps the body compressed.
	client := &http.Client{Transport: &http.Transport{DisableCompression: true}}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("Content-Encoding") != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", resp.Header.Get("Content-Encoding"))
	}
}
