package dto

import "time"

type StartInput struct {
	SkillID string
}

type StartOutput struct {
	SessionID string
	SkillID   string
	SkillName string
	StartedAt time.Time
	// StoppedSessionID is set when starting on one skill closed another
	// skill's open session first.
	StoppedSessionID string
}

type StatusOutput struct {
	State          string
	SessionID      string
	SkillID        string
	SkillName      string
	StartedAt      time.Time
	ElapsedSeconds int64
	PausedSeconds  int64
}

type StopOutput struct {
	Stopped        bool
	SessionID      string
	SkillID        string
	SkillName      string
	ElapsedSeconds int64
}

type LogInput struct {
	SkillID         string
	StartedAt       time.Time
	DurationSeconds int64
}

type SessionOutput struct {
	ID              string
	SkillID         string
	SkillName       string
	StartedAt       time.Time
	EndedAt         time.Time
	Open            bool
	PausedSeconds   int64
	DurationSeconds int64
}
