package levels

import (
	"fmt"
	"time"

	"github.com/vovakirdan/stackmatch/internal/engine"
	"github.com/vovakirdan/stackmatch/internal/registry"
)

// Mode IDs.
const (
	ModeCampaign = "campaign"
	ModeDaily    = "daily"
	ModePack     = "pack"
)

func init() {
	registry.Register(ModeCampaign, func() registry.Mode { return CampaignMode{} })
	registry.Register(ModeDaily, func() registry.Mode { return DailyMode{} })
}

// CampaignMode is the endless level ladder: the catalog followed by
// procedural levels.
type CampaignMode struct{}

func (CampaignMode) ID() string        { return ModeCampaign }
func (CampaignMode) Title() string     { return "Campaign" }
func (CampaignMode) Count() int        { return 0 }
func (CampaignMode) Progressive() bool { return true }

func (CampaignMode) Level(n int, _ time.Time) (registry.Level, error) {
	if n < 1 {
		return registry.Level{}, fmt.Errorf("level %d out of range", n)
	}
	return registry.Level{Number: n, Spec: ForLevel(n)}, nil
}

// DailyMode offers one seeded board per calendar day.
type DailyMode struct{}

func (DailyMode) ID() string        { return ModeDaily }
func (DailyMode) Title() string     { return "Daily Challenge" }
func (DailyMode) Count() int        { return 1 }
func (DailyMode) Progressive() bool { return false }

// Level ignores n and returns the challenge for now's date.
func (DailyMode) Level(_ int, now time.Time) (registry.Level, error) {
	spec, seed := Daily(now)
	return registry.Level{Number: 1, Spec: spec, Seed: seed, Day: DayKey(now)}, nil
}

// PackMode plays levels loaded from a directory, in ID order.
type PackMode struct {
	title  string
	levels []engine.LevelSpec
}

// NewPackMode builds a pack mode from loaded levels.
func NewPackMode(title string, loaded []Level) *PackMode {
	specs := make([]engine.LevelSpec, len(loaded))
	for i, lvl := range loaded {
		specs[i] = lvl.Spec.Clone()
	}
	return &PackMode{title: title, levels: specs}
}

// RegisterPack loads dir and registers it as the "pack" mode.
// It returns the number of levels found.
func RegisterPack(dir string) (int, error) {
	loaded, err := NewLoader(dir).LoadAll()
	if err != nil {
		return 0, err
	}
	if len(loaded) == 0 {
		return 0, fmt.Errorf("no levels found in %s", dir)
	}
	if registry.Exists(ModePack) {
		return 0, fmt.Errorf("a level pack is already registered")
	}
	pack := NewPackMode("Level Pack", loaded)
	registry.Register(ModePack, func() registry.Mode { return pack })
	return len(loaded), nil
}

func (p *PackMode) ID() string        { return ModePack }
func (p *PackMode) Title() string     { return p.title }
func (p *PackMode) Count() int        { return len(p.levels) }
func (p *PackMode) Progressive() bool { return false }

func (p *PackMode) Level(n int, _ time.Time) (registry.Level, error) {
	if n < 1 || n > len(p.levels) {
		return registry.Level{}, fmt.Errorf("level %d out of range 1..%d", n, len(p.levels))
	}
	return registry.Level{Number: n, Spec: p.levels[n-1].Clone()}, nil
}
