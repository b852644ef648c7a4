// Package config provides YAML-based configuration loading and rule
// presets for stackmatch.
package config

import (
	"time"

	"github.com/vovakirdan/stackmatch/internal/engine"
)

// Config is the complete stackmatch configuration.
type Config struct {
	Rules    RulesConfig    `yaml:"rules"`
	Board    BoardConfig    `yaml:"board"`
	PowerUps PowerUpsConfig `yaml:"powerups"`
	Levels   LevelsConfig   `yaml:"levels"`
	Server   ServerConfig   `yaml:"server"`
}

// RulesConfig defines the tunable game rules.
type RulesConfig struct {
	TrayCapacity     int     `yaml:"tray_capacity"`
	MatchScore       int     `yaml:"match_score"`
	HistoryDepth     int     `yaml:"history_depth"`
	HintSeconds      float64 `yaml:"hint_seconds"`
	OverlapThreshold float64 `yaml:"overlap_threshold"` // pixels on each axis
	UndoablePowerUps bool    `yaml:"undoable_powerups"`
}

// BoardConfig defines the board surface in pixels.
type BoardConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	TileSize  float64 `yaml:"tile_size"`
	CellPitch float64 `yaml:"cell_pitch"`
}

// PowerUpsConfig defines the power-up stock granted to new players.
type PowerUpsConfig struct {
	StartingInventory map[string]int `yaml:"starting_inventory"`
}

// LevelsConfig points at an optional user level pack.
type LevelsConfig struct {
	PackDir string `yaml:"pack_dir"`
}

// ServerConfig holds defaults for the network front-ends.
type ServerConfig struct {
	SSHAddr     string `yaml:"ssh_addr"`
	HTTPAddr    string `yaml:"http_addr"`
	HostKeyPath string `yaml:"host_key_path"`
	IdleMinutes int    `yaml:"idle_minutes"`
}

// EngineRules converts the rules section into engine rules.
func (c Config) EngineRules() engine.Rules {
	return engine.Rules{
		TrayCapacity:      c.Rules.TrayCapacity,
		MatchScore:        c.Rules.MatchScore,
		HistoryDepth:      c.Rules.HistoryDepth,
		HintDuration:      time.Duration(c.Rules.HintSeconds * float64(time.Second)),
		OverlapThreshold:  c.Rules.OverlapThreshold,
		PermanentPowerUps: !c.Rules.UndoablePowerUps,
	}
}

// Geometry converts the board section into engine geometry.
func (c Config) Geometry() engine.Geometry {
	return engine.Geometry{
		BoardWidth:  c.Board.Width,
		BoardHeight: c.Board.Height,
		TileSize:    c.Board.TileSize,
		CellPitch:   c.Board.CellPitch,
	}
}

// StartingInventory returns the starting stock keyed by power-up key.
// Unknown keys are dropped and aliases are resolved.
func (c Config) StartingInventory() map[string]int {
	out := make(map[string]int, len(c.PowerUps.StartingInventory))
	for key, n := range c.PowerUps.StartingInventory {
		p, err := engine.ParsePowerUp(key)
		if err != nil || n < 0 {
			continue
		}
		out[p.String()] += n
	}
	return out
}

// IdleTimeout returns the SSH idle timeout.
func (c Config) IdleTimeout() time.Duration {
	if c.Server.IdleMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.Server.IdleMinutes) * time.Minute
}
