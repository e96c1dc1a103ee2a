package out

import (
	"context"
	"time"

	"tenk/internal/modules/skill/domain"
)

type SkillStore interface {
	Save(ctx context.Context, skill domain.Skill) error
	FindByID(ctx context.Context, id string) (domain.Skill, error)
	List(ctx context.Context) ([]domain.Skill, error)
	Delete(ctx context.Context, id string) error
}

// SessionUsage exposes the per-skill session aggregates the registry needs
// without coupling it to the tracker's session model.
type SessionUsage interface {
	SkillTotals(ctx context.Context, skillID string) (totalSeconds int64, sessionCount int, lastStartedAt time.Time, err error)
	PurgeSkill(ctx context.Context, skillID string) error
}

// ActiveProbe reports which skill currently owns the open session, if any.
// An empty id means nothing is being tracked.
type ActiveProbe interface {
	ActiveSkillID(ctx context.Context) (string, error)
}
