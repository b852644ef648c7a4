package engine

import "time"

// Fixed rule constants.
const (
	MatchSize     = 3 // tiles of one icon that form a match
	DiscardCount  = 3 // tray slots cleared by the discard power-up
	HintGroupSize = 3 // tiles highlighted per hinted icon
)

// Defaults for the tunable rules.
const (
	DefaultTrayCapacity     = 7
	DefaultMatchScore       = 100
	DefaultHistoryDepth     = 10
	DefaultHintDuration     = 3 * time.Second
	DefaultOverlapThreshold = 50.0
)

// Rules holds the tunable parameters of a game.
type Rules struct {
	TrayCapacity     int
	MatchScore       int
	HistoryDepth     int
	HintDuration     time.Duration
	OverlapThreshold float64
	// PermanentPowerUps stops Shuffle and DiscardThree from recording a
	// history snapshot, so Undo cannot revert them. The zero value keeps
	// them undoable.
	PermanentPowerUps bool
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		TrayCapacity:     DefaultTrayCapacity,
		MatchScore:       DefaultMatchScore,
		HistoryDepth:     DefaultHistoryDepth,
		HintDuration:     DefaultHintDuration,
		OverlapThreshold: DefaultOverlapThreshold,
	}
}

// normalized replaces non-positive values with defaults. A tray that
// cannot hold a full match would make every game unwinnable.
func (r Rules) normalized() Rules {
	d := DefaultRules()
	if r.TrayCapacity < MatchSize {
		r.TrayCapacity = d.TrayCapacity
	}
	if r.MatchScore < 0 {
		r.MatchScore = d.MatchScore
	}
	if r.HistoryDepth <= 0 {
		r.HistoryDepth = d.HistoryDepth
	}
	if r.HintDuration <= 0 {
		r.HintDuration = d.HintDuration
	}
	if r.OverlapThreshold <= 0 {
		r.OverlapThreshold = d.OverlapThreshold
	}
	return r
}

// Geometry describes the board surface used by the generator, in pixels.
type Geometry struct {
	BoardWidth  float64
	BoardHeight float64
	TileSize    float64
	CellPitch   float64 // distance between neighbouring grid slots
}

// DefaultGeometry returns the standard 448x384 board with 56px tiles on a
// 70px grid.
func DefaultGeometry() Geometry {
	return Geometry{
		BoardWidth:  448,
		BoardHeight: 384,
		TileSize:    56,
		CellPitch:   70,
	}
}

func (g Geometry) normalized() Geometry {
	d := DefaultGeometry()
	if g.BoardWidth <= 0 {
		g.BoardWidth = d.BoardWidth
	}
	if g.BoardHeight <= 0 {
		g.BoardHeight = d.BoardHeight
	}
	if g.TileSize <= 0 {
		g.TileSize = d.TileSize
	}
	if g.CellPitch <= 0 {
		g.CellPitch = d.CellPitch
	}
	return g
}
