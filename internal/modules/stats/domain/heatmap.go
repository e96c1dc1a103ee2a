package domain

import "time"

// Intensity thresholds in minutes. Seconds per day map to levels 0..6.
var levelThresholdMinutes = [...]int64{15, 30, 60, 120, 180}

// Level maps a day's practice seconds to an intensity level. Zero stays
// level 0; any activity under 15 minutes is level 1; the remaining bands
// step up to level 6 at 180 minutes and beyond.
func Level(seconds int64) int {
	if seconds <= 0 {
		return 0
	}
	minutes := seconds / 60
	for i, threshold := range levelThresholdMinutes {
		if minutes < threshold {
			return i + 1
		}
	}
	return len(levelThresholdMinutes) + 1
}

type DayCell struct {
	Date    time.Time
	Seconds int64
	Level   int
}

// Heatmap is a weeks x 7 grid of UTC calendar days, oldest week first,
// each row running from the configured first weekday.
type Heatmap struct {
	Weeks []([7]DayCell)
}

// BuildHeatmap buckets session seconds per UTC calendar day over the last
// weeks*7 days ending today. A session counts toward the day it started.
// Empty history yields an all-zero grid.
func BuildHeatmap(sessions []SessionSpan, weeks int, now time.Time, weekStart time.Weekday) Heatmap {
	if weeks <= 0 {
		return Heatmap{}
	}
	today := now.UTC().Truncate(24 * time.Hour)

	// Last row ends on today's week, aligned to weekStart.
	offset := (int(today.Weekday()) - int(weekStart) + 7) % 7
	lastRowStart := today.AddDate(0, 0, -offset)
	gridStart := lastRowStart.AddDate(0, 0, -7*(weeks-1))

	perDay := map[string]int64{}
	for _, session := range sessions {
		day := session.StartedAt.UTC().Truncate(24 * time.Hour)
		if day.Before(gridStart) || day.After(today) {
			continue
		}
		perDay[day.Format("2006-01-02")] += session.EffectiveSeconds()
	}

	grid := make([]([7]DayCell), weeks)
	for w := 0; w < weeks; w++ {
		for d := 0; d < 7; d++ {
			date := gridStart.AddDate(0, 0, w*7+d)
			seconds := perDay[date.Format("2006-01-02")]
			grid[w][d] = DayCell{Date: date, Seconds: seconds, Level: Level(seconds)}
		}
	}
	return Heatmap{Weeks: grid}
}
