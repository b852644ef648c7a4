package levels

import (
	"hash/fnv"
	"time"

	"github.com/vovakirdan/stackmatch/internal/engine"
)

// DayFormat is the layout of daily challenge keys.
const DayFormat = "2006-01-02"

// dailyBase is the procedural level the daily challenge starts from on
// Sunday; each following weekday is one step harder.
const dailyBase = 5

// DayKey returns the YYYY-MM-DD key of t in its own location.
func DayKey(t time.Time) string {
	return t.Format(DayFormat)
}

// DailySeed derives the board seed for a day. Every player gets the same
// board on the same date.
func DailySeed(day string) int64 {
	h := fnv.New64a()
	h.Write([]byte("stackmatch-daily:" + day)) //nolint:errcheck
	return int64(h.Sum64() &^ (1 << 63))
}

// Daily returns the daily challenge for t and its seed.
func Daily(t time.Time) (engine.LevelSpec, int64) {
	day := DayKey(t)
	spec := Procedural(dailyBase + int(t.Weekday()))
	spec.ID = 0
	spec.Name = "Daily Challenge " + day
	spec.Description = "One board per day, same for everyone"
	spec.Reward = DefaultReward
	return spec, DailySeed(day)
}
