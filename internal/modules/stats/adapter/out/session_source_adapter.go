package out

import (
	"context"
	"time"

	"tenk/internal/modules/stats/domain"
	statsout "tenk/internal/modules/stats/port/out"
	trackerin "tenk/internal/modules/tracker/port/in"
)

// SessionSourceAdapter feeds the calculators from the tracker's session
// history, including the in-progress session so stats move while tracking.
type SessionSourceAdapter struct {
	tracker trackerin.Usecase
}

func NewSessionSourceAdapter(tracker trackerin.Usecase) statsout.SessionSource {
	return &SessionSourceAdapter{tracker: tracker}
}

func (a *SessionSourceAdapter) SkillSessions(ctx context.Context, skillID string) ([]domain.SessionSpan, error) {
	sessions, err := a.tracker.ListSessions(ctx, skillID)
	if err != nil {
		return nil, err
	}
	spans := make([]domain.SessionSpan, 0, len(sessions))
	for _, session := range sessions {
		span := domain.SessionSpan{
			StartedAt:     session.StartedAt,
			EndedAt:       session.EndedAt,
			PausedSeconds: session.PausedSeconds,
		}
		if session.Open {
			// Synthesize an end so the span carries the elapsed-so-far
			// duration after the paused time is subtracted again.
			total := session.DurationSeconds + session.PausedSeconds
			span.EndedAt = session.StartedAt.Add(time.Duration(total) * time.Second)
		}
		spans = append(spans, span)
	}
	return spans, nil
}
