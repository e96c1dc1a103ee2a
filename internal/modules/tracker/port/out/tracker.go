package out

import (
	"context"

	"tenk/internal/modules/tracker/domain"
)

type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	ListBySkill(ctx context.Context, skillID string) ([]domain.Session, error)
	Reset(ctx context.Context) error
}

type ActiveStore interface {
	SaveActive(ctx context.Context, active domain.ActiveTracking) error
	LoadActive(ctx context.Context) (domain.ActiveTracking, error)
	ClearActive(ctx context.Context) error
}

// JournalStore mirrors closed sessions as markdown notes and can replay
// them to rebuild the sqlite projection.
type JournalStore interface {
	Write(ctx context.Context, session domain.Session) (string, error)
	List(ctx context.Context) ([]domain.Session, error)
}
