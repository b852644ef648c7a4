package levels

import (
	"errors"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
	"time"

	"github.com/vovakirdan/stackmatch/internal/engine"
	"github.com/vovakirdan/stackmatch/internal/registry"
)

func testdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", "levels")
}

func TestCatalog(t *testing.T) {
	if CatalogCount() != 5 {
		t.Fatalf("CatalogCount() = %d, expected 5", CatalogCount())
	}

	names := []string{"Tutorial", "The Challenge", "Deep Stack", "Icon Overload", "The Gauntlet"}
	for i, spec := range Catalog() {
		if spec.ID != i+1 || spec.Name != names[i] {
			t.Errorf("level %d = %d %q", i+1, spec.ID, spec.Name)
		}
		if err := Validate(spec); err != nil {
			t.Errorf("built-in level %d is invalid: %v", spec.ID, err)
		}
	}

	tutorial, _ := Fixed(1)
	if !reflect.DeepEqual(tutorial.TilesPerLayer, []int{9, 6}) || tutorial.IconCount != 5 {
		t.Errorf("tutorial = %+v", tutorial)
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	spec, _ := Fixed(1)
	spec.TilesPerLayer[0] = 99

	again, _ := Fixed(1)
	if again.TilesPerLayer[0] != 9 {
		t.Error("Fixed should return an independent copy")
	}
}

func TestForLevel(t *testing.T) {
	if spec := ForLevel(3); spec.Name != "Deep Stack" {
		t.Errorf("ForLevel(3) = %q", spec.Name)
	}
	if spec := ForLevel(0); spec.ID != 1 {
		t.Errorf("ForLevel(0) should clamp to level 1, got %d", spec.ID)
	}
	if spec := ForLevel(6); spec.Name != "Level 6" {
		t.Errorf("ForLevel(6) = %q, expected procedural", spec.Name)
	}
}

func TestProcedural(t *testing.T) {
	tests := []struct {
		n       int
		tiles   []int
		icons   int
		jitter  float64
		spacing float64
	}{
		// layers 6, base 42+9=51
		{6, []int{51, 45, 39, 33, 27, 21}, 9, 27, 13},
		// layers 8 (capped), base 42+30=72
		{20, []int{72, 66, 60, 54, 48, 42, 36, 30}, 16, 35, 9},
		// small layers never drop below 6
		{1, []int{42, 36, 30}, 6, 17, 15},
	}

	for _, tt := range tests {
		spec := Procedural(tt.n)
		if !reflect.DeepEqual(spec.TilesPerLayer, tt.tiles) {
			t.Errorf("Procedural(%d) tiles = %v, expected %v", tt.n, spec.TilesPerLayer, tt.tiles)
		}
		if spec.LayerCount != len(tt.tiles) {
			t.Errorf("Procedural(%d) layers = %d", tt.n, spec.LayerCount)
		}
		if spec.IconCount != tt.icons || spec.PositionJitter != tt.jitter || spec.LayerSpacing != tt.spacing {
			t.Errorf("Procedural(%d) = icons %d jitter %v spacing %v", tt.n, spec.IconCount, spec.PositionJitter, spec.LayerSpacing)
		}
	}

	for n := 1; n <= 60; n++ {
		if err := Validate(Procedural(n)); err != nil {
			t.Errorf("Procedural(%d) is invalid: %v", n, err)
		}
	}
}

func TestDaily(t *testing.T) {
	day := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) // Sunday
	later := time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC)

	spec, seed := Daily(day)
	spec2, seed2 := Daily(later)
	if seed != seed2 || !reflect.DeepEqual(spec, spec2) {
		t.Error("same date should give the same daily challenge")
	}
	if seed <= 0 {
		t.Errorf("seed = %d, expected positive", seed)
	}
	if spec.Name != "Daily Challenge 2026-10-18" || spec.ID != 0 {
		t.Errorf("spec = %d %q", spec.ID, spec.Name)
	}
	if !reflect.DeepEqual(spec.TilesPerLayer, Procedural(5).TilesPerLayer) {
		t.Error("Sunday should use the base difficulty")
	}

	_, next := Daily(day.AddDate(0, 0, 1))
	if next == seed {
		t.Error("different dates should give different seeds")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		spec engine.LevelSpec
		code string
	}{
		{"valid", engine.LevelSpec{TilesPerLayer: []int{9, 6}, IconCount: 5}, ""},
		{"no layers", engine.LevelSpec{IconCount: 5}, "NO_LAYERS"},
		{"layer mismatch", engine.LevelSpec{LayerCount: 3, TilesPerLayer: []int{9, 6}, IconCount: 5}, "LAYER_COUNT"},
		{"negative layer", engine.LevelSpec{TilesPerLayer: []int{9, -3}, IconCount: 5}, "NEGATIVE_LAYER"},
		{"no icons", engine.LevelSpec{TilesPerLayer: []int{9}}, "NO_ICONS"},
		{"too many icons", engine.LevelSpec{TilesPerLayer: []int{9}, IconCount: 17}, "TOO_MANY_ICONS"},
		{"too few tiles", engine.LevelSpec{TilesPerLayer: []int{2}, IconCount: 1}, "TOO_FEW_TILES"},
		{"not divisible", engine.LevelSpec{TilesPerLayer: []int{10}, IconCount: 2}, "NOT_DIVISIBLE"},
		{"negative jitter", engine.LevelSpec{TilesPerLayer: []int{9}, IconCount: 2, PositionJitter: -1}, "NEGATIVE_JITTER"},
		{"negative reward", engine.LevelSpec{TilesPerLayer: []int{9}, IconCount: 2, Reward: -5}, "NEGATIVE_REWARD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.spec)
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, expected ValidationError", err)
			}
			if ve.Code != tt.code {
				t.Errorf("code = %s, expected %s", ve.Code, tt.code)
			}
		})
	}
}

func TestLoaderLoadAll(t *testing.T) {
	loader := NewLoader(testdataPath())

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) != 2 {
		t.Fatalf("expected 2 levels (broken file skipped), got %d", len(lvls))
	}
	if lvls[0].Spec.Name != "Warm-up" || lvls[1].Spec.Name != "Pyramid" {
		t.Errorf("levels not sorted by ID: %q, %q", lvls[0].Spec.Name, lvls[1].Spec.Name)
	}

	ids, err := loader.ListIDs()
	if err != nil || !reflect.DeepEqual(ids, []int{1, 2}) {
		t.Errorf("ListIDs() = %v, %v", ids, err)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	loader := NewLoader(testdataPath())

	lvl, err := loader.LoadByID(2)
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	spec := lvl.Spec
	if spec.LayerCount != 4 || spec.IconCount != 6 || spec.Reward != 150 {
		t.Errorf("pyramid = %+v", spec)
	}
	if spec.PositionJitter != 12 || spec.LayerSpacing != 14 {
		t.Errorf("geometry = %v/%v", spec.PositionJitter, spec.LayerSpacing)
	}
	if filepath.Base(lvl.FilePath) != "pyramid.yaml" {
		t.Errorf("FilePath = %s", lvl.FilePath)
	}

	warmup, err := loader.LoadByID(1)
	if err != nil {
		t.Fatalf("LoadByID(1) failed: %v", err)
	}
	if warmup.Spec.Reward != DefaultReward || warmup.Spec.LayerCount != 2 {
		t.Errorf("defaults not applied: %+v", warmup.Spec)
	}

	if _, err := loader.LoadByID(42); err == nil {
		t.Error("LoadByID should fail for a missing level")
	}
}

func TestLoaderMissingDir(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "nope")).LoadAll(); err == nil {
		t.Error("LoadAll should fail for a missing directory")
	}
}

func TestModes(t *testing.T) {
	now := time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC)

	campaign, err := registry.Create(ModeCampaign)
	if err != nil {
		t.Fatalf("campaign not registered: %v", err)
	}
	lvl, err := campaign.Level(2, now)
	if err != nil || lvl.Spec.Name != "The Challenge" || lvl.Seed != 0 {
		t.Errorf("campaign level 2 = %+v, %v", lvl, err)
	}
	if _, err := campaign.Level(0, now); err == nil {
		t.Error("campaign level 0 should be rejected")
	}
	if !campaign.Progressive() {
		t.Error("campaign should unlock levels")
	}

	daily, err := registry.Create(ModeDaily)
	if err != nil {
		t.Fatalf("daily not registered: %v", err)
	}
	lvl, _ = daily.Level(7, now)
	if lvl.Day != "2026-10-21" || lvl.Seed != DailySeed("2026-10-21") {
		t.Errorf("daily level = %+v", lvl)
	}
}

func TestPackMode(t *testing.T) {
	loaded, err := NewLoader(testdataPath()).LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	pack := NewPackMode("Fixtures", loaded)

	if pack.Count() != 2 || pack.Title() != "Fixtures" {
		t.Errorf("pack = %d %q", pack.Count(), pack.Title())
	}
	lvl, err := pack.Level(2, time.Now())
	if err != nil || lvl.Spec.Name != "Pyramid" {
		t.Errorf("pack level 2 = %+v, %v", lvl, err)
	}
	if _, err := pack.Level(3, time.Now()); err == nil {
		t.Error("out of range pack level should fail")
	}
}

func TestRegisterPack(t *testing.T) {
	n, err := RegisterPack(testdataPath())
	if err != nil {
		t.Fatalf("RegisterPack failed: %v", err)
	}
	if n != 2 || !registry.Exists(ModePack) {
		t.Errorf("registered %d levels, exists = %v", n, registry.Exists(ModePack))
	}
	if _, err := RegisterPack(testdataPath()); err == nil {
		t.Error("registering a second pack should fail")
	}
	if _, err := RegisterPack(t.TempDir()); err == nil {
		t.Error("an empty directory should fail")
	}
}

func TestPackLevelsValidate(t *testing.T) {
	loaded, _ := NewLoader(testdataPath()).LoadAll()
	for _, lvl := range loaded {
		if err := Validate(lvl.Spec); err != nil {
			t.Errorf("%s: %v", filepath.Base(lvl.FilePath), err)
		}
	}
}
