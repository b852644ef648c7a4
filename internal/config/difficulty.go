package config

import "fmt"

// DifficultyPreset is a named rule adjustment applied on top of the
// loaded configuration.
type DifficultyPreset string

const (
	DifficultyRelaxed  DifficultyPreset = "relaxed"
	DifficultyStandard DifficultyPreset = "standard"
	DifficultyStrict   DifficultyPreset = "strict"
)

// ParseDifficulty resolves a preset name. The empty string is standard.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyStandard:
		return DifficultyStandard, nil
	case DifficultyRelaxed, DifficultyStrict:
		return DifficultyPreset(s), nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want relaxed, standard or strict)", s)
}

// ApplyPreset modifies cfg for preset. Standard leaves cfg untouched.
//
// Relaxed gives one extra tray slot, deeper undo and longer hints.
// Strict shortens hints and makes shuffle and discard permanent.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyRelaxed:
		cfg.Rules.TrayCapacity++
		cfg.Rules.HistoryDepth *= 2
		cfg.Rules.HintSeconds += 2
		cfg.Rules.UndoablePowerUps = true
	case DifficultyStrict:
		cfg.Rules.HintSeconds = max(1, cfg.Rules.HintSeconds-1)
		cfg.Rules.UndoablePowerUps = false
	}
}
