package dto

import "time"

type PaceOutput struct {
	SkillID           string
	SkillName         string
	HoursPerWeek      float64
	Confidence        string
	Trend             string
	UniqueDays        int
	SpanDays          int
	AtGoal            bool
	Years             int
	Months            int
	ProjectionDisplay string
}

type TargetOutput struct {
	SkillID            string
	SkillName          string
	TargetHoursPerWeek float64
	GapHoursPerWeek    float64
	ProjectionDisplay  string
}

type HeatmapCell struct {
	Date    time.Time
	Seconds int64
	Level   int
}

type HeatmapOutput struct {
	SkillID   string
	SkillName string
	// Weeks is oldest-first; each row holds seven days starting from the
	// configured first weekday.
	Weeks [][]HeatmapCell
}

type SummaryOutput struct {
	SkillID         string
	SkillName       string
	TotalSeconds    int64
	TotalHours      float64
	Progress        float64
	SessionCount    int
	LastPracticedAt time.Time
}
