package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	skillin "tenk/internal/modules/skill/port/in"
	"tenk/internal/modules/tracker/domain"
	trackerdto "tenk/internal/modules/tracker/dto"
	trackerin "tenk/internal/modules/tracker/port/in"
	trackerout "tenk/internal/modules/tracker/port/out"
	"tenk/internal/modules/tracker/service"
	apperrors "tenk/internal/platform/errors"

	"go.uber.org/zap"
)

type Interactor struct {
	svc         *service.TrackingService
	skills      skillin.Usecase
	store       trackerout.SessionStore
	activeStore trackerout.ActiveStore
	journal     trackerout.JournalStore
	logger      *zap.Logger
}

func NewInteractor(
	svc *service.TrackingService,
	skills skillin.Usecase,
	store trackerout.SessionStore,
	activeStore trackerout.ActiveStore,
	journal trackerout.JournalStore,
	logger *zap.Logger,
) trackerin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, skills: skills, store: store, activeStore: activeStore, journal: journal, logger: logger}
}

// Start opens a session on the skill. At most one session may be open
// across all skills: an open session on another skill is stopped and
// persisted first; starting on the already-tracked skill is a no-op.
func (i *Interactor) Start(ctx context.Context, input trackerdto.StartInput) (trackerdto.StartOutput, error) {
	stoppedID := ""
	active, err := i.activeStore.LoadActive(ctx)
	switch {
	case err == nil:
		if active.SkillID == input.SkillID {
			return trackerdto.StartOutput{
				SessionID: active.SessionID,
				SkillID:   active.SkillID,
				SkillName: active.SkillName,
				StartedAt: active.StartedAt,
			}, nil
		}
		if _, err := i.closeActive(ctx, active); err != nil {
			return trackerdto.StartOutput{}, err
		}
		stoppedID = active.SessionID
	case errors.Is(err, apperrors.ErrNotTracking):
	default:
		return trackerdto.StartOutput{}, err
	}

	skill, err := i.skills.Get(ctx, input.SkillID)
	if err != nil {
		return trackerdto.StartOutput{}, err
	}
	next, err := i.svc.Start(ctx, skill.ID, skill.Name)
	if err != nil {
		return trackerdto.StartOutput{}, err
	}
	if err := i.activeStore.SaveActive(ctx, next); err != nil {
		return trackerdto.StartOutput{}, err
	}
	return trackerdto.StartOutput{
		SessionID:        next.SessionID,
		SkillID:          next.SkillID,
		SkillName:        next.SkillName,
		StartedAt:        next.StartedAt,
		StoppedSessionID: stoppedID,
	}, nil
}

// Pause is idempotent: pausing while already paused returns the current
// status unchanged.
func (i *Interactor) Pause(ctx context.Context) (trackerdto.StatusOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return trackerdto.StatusOutput{}, err
	}
	next, changed := i.svc.Pause(active)
	if changed {
		if err := i.activeStore.SaveActive(ctx, next); err != nil {
			return trackerdto.StatusOutput{}, err
		}
	}
	return i.status(next), nil
}

func (i *Interactor) Resume(ctx context.Context) (trackerdto.StatusOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return trackerdto.StatusOutput{}, err
	}
	next, changed := i.svc.Resume(active)
	if changed {
		if err := i.activeStore.SaveActive(ctx, next); err != nil {
			return trackerdto.StatusOutput{}, err
		}
	}
	return i.status(next), nil
}

// Stop closes and persists the open session. With nothing active it
// returns a zero result rather than an error.
func (i *Interactor) Stop(ctx context.Context) (trackerdto.StopOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNotTracking) {
		return trackerdto.StopOutput{}, nil
	}
	if err != nil {
		return trackerdto.StopOutput{}, err
	}
	elapsed, err := i.closeActive(ctx, active)
	if err != nil {
		return trackerdto.StopOutput{}, err
	}
	return trackerdto.StopOutput{
		Stopped:        true,
		SessionID:      active.SessionID,
		SkillID:        active.SkillID,
		SkillName:      active.SkillName,
		ElapsedSeconds: elapsed,
	}, nil
}

func (i *Interactor) Status(ctx context.Context) (trackerdto.StatusOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNotTracking) {
		return trackerdto.StatusOutput{State: string(domain.TimerIdle)}, nil
	}
	if err != nil {
		return trackerdto.StatusOutput{}, err
	}
	return i.status(active), nil
}

// Log backfills a closed session, e.g. practice that happened away from
// the machine.
func (i *Interactor) Log(ctx context.Context, input trackerdto.LogInput) (trackerdto.SessionOutput, error) {
	if input.DurationSeconds <= 0 {
		return trackerdto.SessionOutput{}, fmt.Errorf("%w: duration must be positive", apperrors.ErrInvalidInput)
	}
	if input.StartedAt.IsZero() {
		return trackerdto.SessionOutput{}, fmt.Errorf("%w: start time is required", apperrors.ErrInvalidInput)
	}
	skill, err := i.skills.Get(ctx, input.SkillID)
	if err != nil {
		return trackerdto.SessionOutput{}, err
	}
	session := domain.Session{
		ID:        i.svc.NewSessionID(),
		SkillID:   skill.ID,
		SkillName: skill.Name,
		StartedAt: input.StartedAt,
		EndedAt:   input.StartedAt.Add(time.Duration(input.DurationSeconds) * time.Second),
	}
	if err := i.persist(ctx, session); err != nil {
		return trackerdto.SessionOutput{}, err
	}
	return i.toOutput(session), nil
}

func (i *Interactor) ListSessions(ctx context.Context, skillID string) ([]trackerdto.SessionOutput, error) {
	sessions, err := i.store.ListBySkill(ctx, skillID)
	if err != nil {
		return nil, err
	}
	out := make([]trackerdto.SessionOutput, 0, len(sessions)+1)
	for _, session := range sessions {
		out = append(out, i.toOutput(session))
	}
	// Include the open session so derived stats see in-progress practice.
	active, err := i.activeStore.LoadActive(ctx)
	if err == nil && active.SkillID == skillID {
		session := active.Session()
		_, paused := i.svc.Snapshot(active)
		session.PausedSeconds = paused
		out = append(out, i.toOutput(session))
	} else if err != nil && !errors.Is(err, apperrors.ErrNotTracking) {
		return nil, err
	}
	return out, nil
}

// Reindex rebuilds the session projection from the markdown journal.
func (i *Interactor) Reindex(ctx context.Context) (int, error) {
	if i.journal == nil {
		return 0, fmt.Errorf("journal is not configured")
	}
	sessions, err := i.journal.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := i.store.Reset(ctx); err != nil {
		return 0, err
	}
	for _, session := range sessions {
		if err := i.store.Save(ctx, session); err != nil {
			return 0, err
		}
	}
	return len(sessions), nil
}

func (i *Interactor) closeActive(ctx context.Context, active domain.ActiveTracking) (int64, error) {
	session, elapsed := i.svc.Stop(active)
	if err := i.persist(ctx, session); err != nil {
		return 0, err
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return 0, err
	}
	return elapsed, nil
}

func (i *Interactor) persist(ctx context.Context, session domain.Session) error {
	if err := i.store.Save(ctx, session); err != nil {
		return err
	}
	if i.journal != nil {
		// Journal failures must not lose the session: the projection is
		// already saved, so log and continue.
		if _, err := i.journal.Write(ctx, session); err != nil {
			i.logger.Warn("journal write failed",
				zap.String("session_id", session.ID),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (i *Interactor) status(active domain.ActiveTracking) trackerdto.StatusOutput {
	elapsed, paused := i.svc.Snapshot(active)
	return trackerdto.StatusOutput{
		State:          string(active.State),
		SessionID:      active.SessionID,
		SkillID:        active.SkillID,
		SkillName:      active.SkillName,
		StartedAt:      active.StartedAt,
		ElapsedSeconds: elapsed,
		PausedSeconds:  paused,
	}
}

func (i *Interactor) toOutput(session domain.Session) trackerdto.SessionOutput {
	return trackerdto.SessionOutput{
		ID:              session.ID,
		SkillID:         session.SkillID,
		SkillName:       session.SkillName,
		StartedAt:       session.StartedAt,
		EndedAt:         session.EndedAt,
		Open:            session.Open(),
		PausedSeconds:   session.PausedSeconds,
		DurationSeconds: session.DurationSeconds(i.svc.Now()),
	}
}
