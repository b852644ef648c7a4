package api

import (
	"github.com/vovakirdan/stackmatch/internal/engine"
	"github.com/vovakirdan/stackmatch/internal/registry"
	"github.com/vovakirdan/stackmatch/internal/session"
)

// CreateGameRequest starts a game. Daily overrides Mode.
type CreateGameRequest struct {
	Mode   string `json:"mode,omitempty"`
	Level  int    `json:"level,omitempty"`
	Daily  bool   `json:"daily,omitempty"`
	Seed   int64  `json:"seed,omitempty"`
	Player string `json:"player,omitempty"`
}

// SelectRequest picks a tile.
type SelectRequest struct {
	TileID int `json:"tileId"`
}

// TileDTO is a board tile as seen by clients.
type TileDTO struct {
	ID         int     `json:"id"`
	Icon       string  `json:"icon"`
	Layer      int     `json:"layer"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Selectable bool    `json:"selectable"`
}

// TrayTileDTO is a tile in the tray.
type TrayTileDTO struct {
	ID   int    `json:"id"`
	Icon string `json:"icon"`
}

// MatchDTO describes one resolved match.
type MatchDTO struct {
	Icon    string `json:"icon"`
	TileIDs []int  `json:"tileIds"`
	Points  int    `json:"points"`
}

// ResultDTO describes how a finished game was recorded.
type ResultDTO struct {
	Coins      int    `json:"coins"`
	Unlocked   int    `json:"unlocked,omitempty"`
	DailyFirst bool   `json:"dailyFirst,omitempty"`
	Error      string `json:"error,omitempty"`
}

// GameDTO is the full client view of a game.
type GameDTO struct {
	ID           string         `json:"id"`
	Player       string         `json:"player"`
	Mode         string         `json:"mode"`
	Level        int            `json:"level"`
	Name         string         `json:"name"`
	Day          string         `json:"day,omitempty"`
	Status       string         `json:"status"`
	Score        int            `json:"score"`
	Remaining    int            `json:"remaining"`
	TrayCapacity int            `json:"trayCapacity"`
	Tiles        []TileDTO      `json:"tiles"`
	Tray         []TrayTileDTO  `json:"tray"`
	Hinted       []int          `json:"hinted"`
	Inventory    map[string]int `json:"inventory,omitempty"`
	Result       *ResultDTO     `json:"result,omitempty"`
}

// SelectResponse is returned by the select endpoint.
type SelectResponse struct {
	Accepted bool       `json:"accepted"`
	Matches  []MatchDTO `json:"matches"`
	Game     GameDTO    `json:"game"`
}

// LevelDTO summarises a level for listings.
type LevelDTO struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Layers      int    `json:"layers"`
	Tiles       int    `json:"tiles"`
	Icons       int    `json:"icons"`
	Reward      int    `json:"reward"`
	Day         string `json:"day,omitempty"`
}

// ModeDTO lists a mode and its levels.
type ModeDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Count       int        `json:"count"`
	Progressive bool       `json:"progressive"`
	Levels      []LevelDTO `json:"levels"`
}

// PowerUpDTO is power-up catalogue metadata.
type PowerUpDTO struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Glyph       string `json:"glyph"`
	Description string `json:"description"`
}

func toGameDTO(id string, sess *session.Session) GameDTO {
	game := sess.Game()
	state := game.State()
	lvl := sess.Level()

	dto := GameDTO{
		ID:           id,
		Player:       sess.Player(),
		Mode:         sess.Mode().ID(),
		Level:        lvl.Number,
		Name:         lvl.Spec.Name,
		Day:          lvl.Day,
		Status:       state.Status.String(),
		Score:        state.Score,
		Remaining:    state.VisibleCount(),
		TrayCapacity: state.Rules.TrayCapacity,
		Tiles:        make([]TileDTO, 0, len(state.Tiles)),
		Tray:         make([]TrayTileDTO, 0, len(state.Tray)),
		Hinted:       make([]int, 0),
		Inventory:    sess.Inventory(),
	}
	for _, t := range state.Tiles {
		if !t.Visible {
			continue
		}
		dto.Tiles = append(dto.Tiles, TileDTO{
			ID:         int(t.ID),
			Icon:       string(t.Icon),
			Layer:      t.Layer,
			X:          t.X,
			Y:          t.Y,
			Selectable: t.Selectable(),
		})
	}
	for _, t := range state.Tray {
		dto.Tray = append(dto.Tray, TrayTileDTO{ID: int(t.ID), Icon: string(t.Icon)})
	}
	for _, id := range game.Hinted() {
		dto.Hinted = append(dto.Hinted, int(id))
	}
	if res, ok := sess.Result(); ok {
		r := &ResultDTO{Coins: res.Coins, Unlocked: res.Unlocked, DailyFirst: res.DailyFirst}
		if res.Err != nil {
			r.Error = res.Err.Error()
		}
		dto.Result = r
	}
	return dto
}

func toMatchDTOs(matches []engine.Match) []MatchDTO {
	out := make([]MatchDTO, 0, len(matches))
	for _, m := range matches {
		ids := make([]int, len(m.TileIDs))
		for i, id := range m.TileIDs {
			ids[i] = int(id)
		}
		out = append(out, MatchDTO{Icon: string(m.Icon), TileIDs: ids, Points: m.Points})
	}
	return out
}

func toLevelDTO(lvl registry.Level) LevelDTO {
	return LevelDTO{
		Number:      lvl.Number,
		Name:        lvl.Spec.Name,
		Description: lvl.Spec.Description,
		Layers:      lvl.Spec.LayerCount,
		Tiles:       lvl.Spec.TotalTiles(),
		Icons:       lvl.Spec.IconCount,
		Reward:      lvl.Spec.Reward,
		Day:         lvl.Day,
	}
}
