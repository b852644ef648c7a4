package config

import (
	_ "embed"
)

//go:embed defaults/stackmatch.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	return Config{
		Rules: RulesConfig{
			TrayCapacity:     7,
			MatchScore:       100,
			HistoryDepth:     10,
			HintSeconds:      3,
			OverlapThreshold: 50,
			UndoablePowerUps: true,
		},
		Board: BoardConfig{
			Width:     448,
			Height:    384,
			TileSize:  56,
			CellPitch: 70,
		},
		PowerUps: PowerUpsConfig{
			StartingInventory: map[string]int{
				"shuffle":      2,
				"undo":         3,
				"remove_three": 1,
				"hint":         3,
			},
		},
		Server: ServerConfig{
			SSHAddr:     ":23234",
			HTTPAddr:    ":8080",
			IdleMinutes: 30,
		},
	}
}
