package out

import (
	"context"
	"time"

	"tenk/internal/modules/stats/domain"
)

// SkillFacts is the slice of skill state the calculators need.
type SkillFacts struct {
	ID                string
	Name              string
	TotalSeconds      int64
	SessionCount      int
	LastPracticedAt   time.Time
	WeeklyTargetHours float64
	Progress          float64
}

type SkillSource interface {
	SkillFacts(ctx context.Context, skillID string) (SkillFacts, error)
}

type SessionSource interface {
	SkillSessions(ctx context.Context, skillID string) ([]domain.SessionSpan, error)
}
