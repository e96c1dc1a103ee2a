package service

import (
	"context"
	"fmt"
	"time"

	"tenk/internal/modules/tracker/domain"
	"tenk/internal/platform/clock"
	"tenk/internal/platform/id"
)

// TrackingService owns the timer transitions over an ActiveTracking
// snapshot. Persistence and the single-open-session invariant live in the
// interactor.
type TrackingService struct {
	clock clock.Clock
	idGen id.Generator
}

func NewTrackingService(clock clock.Clock, idGen id.Generator) *TrackingService {
	return &TrackingService{clock: clock, idGen: idGen}
}

func (s *TrackingService) Start(_ context.Context, skillID, skillName string) (domain.ActiveTracking, error) {
	if skillID == "" {
		return domain.ActiveTracking{}, fmt.Errorf("skill id is required")
	}
	timer := domain.NewTimer()
	timer.Start(s.clock.Now())
	return domain.ActiveTracking{
		SessionID: s.idGen.New(),
		SkillID:   skillID,
		SkillName: skillName,
	}.WithTimer(timer), nil
}

// Pause suspends the active timer. The returned bool reports whether the
// snapshot changed; pausing an already paused timer is a no-op.
func (s *TrackingService) Pause(active domain.ActiveTracking) (domain.ActiveTracking, bool) {
	timer := active.Timer()
	changed := timer.Pause(s.clock.Now())
	return active.WithTimer(timer), changed
}

func (s *TrackingService) Resume(active domain.ActiveTracking) (domain.ActiveTracking, bool) {
	timer := active.Timer()
	changed := timer.Resume(s.clock.Now())
	return active.WithTimer(timer), changed
}

// Stop closes the snapshot into a finished session record and returns the
// final elapsed seconds.
func (s *TrackingService) Stop(active domain.ActiveTracking) (domain.Session, int64) {
	now := s.clock.Now()
	timer := active.Timer()
	paused := timer.TotalPausedSeconds(now)
	elapsed := timer.Stop(now)

	session := active.Session()
	session.EndedAt = now
	session.PausedSeconds = paused
	return session, elapsed
}

// Snapshot reads elapsed and paused totals without mutating anything.
func (s *TrackingService) Snapshot(active domain.ActiveTracking) (elapsed, paused int64) {
	now := s.clock.Now()
	timer := active.Timer()
	return timer.ElapsedSeconds(now), timer.TotalPausedSeconds(now)
}

func (s *TrackingService) Now() time.Time {
	return s.clock.Now()
}

func (s *TrackingService) NewSessionID() string {
	return s.idGen.New()
}
