package dto

import "time"

type CreateInput struct {
	Name       string
	PaletteID  string
	ColorIndex int
}

type RenameInput struct {
	SkillID string
	NewName string
}

type SetTargetInput struct {
	SkillID      string
	HoursPerWeek float64
}

type SetColorInput struct {
	SkillID    string
	PaletteID  string
	ColorIndex int
}

type SkillOutput struct {
	ID           string
	Name         string
	PaletteID    string
	ColorIndex   int
	TotalSeconds int64
	Progress     float64
	SessionCount int
	CreatedAt    time.Time
}

type SkillDetailOutput struct {
	ID                string
	Name              string
	PaletteID         string
	ColorIndex        int
	WeeklyTargetHours float64
	TotalSeconds      int64
	Progress          float64
	SessionCount      int
	LastPracticedAt   time.Time
	CreatedAt         time.Time
}
