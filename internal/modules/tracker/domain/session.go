package domain

import "time"

const SchemaVersion = 1

// Session is one span of practice on a skill. EndedAt stays zero while the
// session is open.
type Session struct {
	ID            string
	SkillID       string
	SkillName     string
	StartedAt     time.Time
	EndedAt       time.Time
	PausedSeconds int64
}

func (s Session) Open() bool {
	return s.EndedAt.IsZero()
}

// DurationSeconds is (end or now) - start - paused, floored at zero and
// truncated to whole seconds.
func (s Session) DurationSeconds(now time.Time) int64 {
	end := s.EndedAt
	if s.Open() {
		end = now
	}
	d := clampSeconds(end.Sub(s.StartedAt)) - s.PausedSeconds
	if d < 0 {
		return 0
	}
	return d
}

// ActiveTracking is the persisted snapshot of the open session plus its
// timer bookkeeping, so tracking survives process restarts.
type ActiveTracking struct {
	SessionID      string     `json:"session_id"`
	SkillID        string     `json:"skill_id"`
	SkillName      string     `json:"skill_name"`
	StartedAt      time.Time  `json:"started_at"`
	State          TimerState `json:"state"`
	PauseStartedAt time.Time  `json:"pause_started_at"`
	PausedSeconds  int64      `json:"paused_seconds"`
}

// Timer reconstructs the state machine from the snapshot.
func (a ActiveTracking) Timer() Timer {
	return Timer{
		State:          a.State,
		StartedAt:      a.StartedAt,
		PauseStartedAt: a.PauseStartedAt,
		PausedSeconds:  a.PausedSeconds,
	}
}

// WithTimer copies the timer bookkeeping back into the snapshot.
func (a ActiveTracking) WithTimer(t Timer) ActiveTracking {
	a.State = t.State
	a.StartedAt = t.StartedAt
	a.PauseStartedAt = t.PauseStartedAt
	a.PausedSeconds = t.PausedSeconds
	return a
}

// Session converts the snapshot into its open session record.
func (a ActiveTracking) Session() Session {
	return Session{
		ID:            a.SessionID,
		SkillID:       a.SkillID,
		SkillName:     a.SkillName,
		StartedAt:     a.StartedAt,
		PausedSeconds: a.PausedSeconds,
	}
}
