package core

import "time"

// RuntimeConfig contains front-end settings shared by the terminal and
// SSH play surfaces.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters
	ScreenH  int   // Terminal height in characters
	TickRate int   // UI refresh ticks per second, used for hint expiry
	Seed     int64 // Board RNG seed; 0 means derive from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 4,
		Seed:     0,
	}
}

// TickInterval returns the duration between UI ticks.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 4
	}
	return time.Second / time.Duration(c.TickRate)
}

// ResolveSeed returns c.Seed, or a clock-derived seed when it is zero.
func (c RuntimeConfig) ResolveSeed(now time.Time) int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return now.UnixNano()
}
