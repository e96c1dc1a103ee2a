package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	skilldto "tenk/internal/modules/skill/dto"
	trackerout "tenk/internal/modules/tracker/adapter/out"
	trackerdto "tenk/internal/modules/tracker/dto"
	trackerin "tenk/internal/modules/tracker/port/in"
	trackerport "tenk/internal/modules/tracker/port/out"
	"tenk/internal/modules/tracker/service"
	"tenk/internal/modules/tracker/usecase"
	apperrors "tenk/internal/platform/errors"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type fakeID struct{ n int }

func (f *fakeID) New() string {
	f.n++
	return fmt.Sprintf("sess-%d", f.n)
}

type fakeSkills struct {
	skills map[string]string
}

func (f *fakeSkills) Create(context.Context, skilldto.CreateInput) (skilldto.SkillOutput, error) {
	return skilldto.SkillOutput{}, nil
}
func (f *fakeSkills) Rename(context.Context, skilldto.RenameInput) (skilldto.SkillOutput, error) {
	return skilldto.SkillOutput{}, nil
}
func (f *fakeSkills) SetTarget(context.Context, skilldto.SetTargetInput) (skilldto.SkillDetailOutput, error) {
	return skilldto.SkillDetailOutput{}, nil
}
func (f *fakeSkills) SetColor(context.Context, skilldto.SetColorInput) (skilldto.SkillDetailOutput, error) {
	return skilldto.SkillDetailOutput{}, nil
}
func (f *fakeSkills) List(context.Context) ([]skilldto.SkillOutput, error) { return nil, nil }
func (f *fakeSkills) Get(_ context.Context, skillID string) (skilldto.SkillDetailOutput, error) {
	name, ok := f.skills[skillID]
	if !ok {
		return skilldto.SkillDetailOutput{}, apperrors.ErrSkillNotFound
	}
	return skilldto.SkillDetailOutput{ID: skillID, Name: name}, nil
}
func (f *fakeSkills) Delete(context.Context, string) error { return nil }

func newTracker(t *testing.T, clk *fakeClock, journal bool) (*trackerout.MemorySessionStore, trackerin.Usecase, string) {
	t.Helper()
	dir := t.TempDir()
	store := trackerout.NewMemorySessionStore()
	var journalStore trackerport.JournalStore
	if journal {
		journalStore = trackerout.NewJournalStore(filepath.Join(dir, "journal"))
	}
	skills := &fakeSkills{skills: map[string]string{"skill-1": "Guitar", "skill-2": "Chess"}}
	svc := service.NewTrackingService(clk, &fakeID{})
	active := trackerout.NewFileActiveStore(filepath.Join(dir, "active.json"))
	return store, usecase.NewInteractor(svc, skills, store, active, journalStore, nil), dir
}

func TestStartStopPersistsSessionAndJournal(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{
		time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 11, 1, 1, 0, time.UTC),
	}}
	store, uc, dir := newTracker(t, clk, true)

	start, err := uc.Start(context.Background(), trackerdto.StartInput{SkillID: "skill-1"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if start.SkillName != "Guitar" || start.SessionID == "" {
		t.Fatalf("unexpected start output: %+v", start)
	}

	stop, err := uc.Stop(context.Background())
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !stop.Stopped || stop.ElapsedSeconds != 3661 {
		t.Fatalf("expected 3661 elapsed seconds, got %+v", stop)
	}

	sessions, err := store.ListBySkill(context.Background(), "skill-1")
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Open() {
		t.Fatalf("expected one closed session, got %+v", sessions)
	}

	notes, err := filepath.Glob(filepath.Join(dir, "journal", "2026", "03", "10", "*-*.md"))
	if err != nil || len(notes) != 1 {
		t.Fatalf("expected one journal note, got %v (err %v)", notes, err)
	}
	payload, err := os.ReadFile(notes[0])
	if err != nil {
		t.Fatalf("read journal note: %v", err)
	}
	if len(payload) == 0 {
		t.Fatalf("journal note is empty")
	}
	if _, err := os.Stat(filepath.Join(dir, "journal", "2026", "03", "10", "day.md")); err != nil {
		t.Fatalf("expected day digest note: %v", err)
	}
}

func TestStartOnTrackedSkillIsNoOp(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)}}
	_, uc, _ := newTracker(t, clk, false)

	first, err := uc.Start(context.Background(), trackerdto.StartInput{SkillID: "skill-1"})
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	second, err := uc.Start(context.Background(), trackerdto.StartInput{SkillID: "skill-1"})
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if second.SessionID != first.SessionID || second.StoppedSessionID != "" {
		t.Fatalf("same-skill start must keep the open session, got %+v", second)
	}
}

func TestStartOnOtherSkillClosesOpenSession(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{
		time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
	}}
	store, uc, _ := newTracker(t, clk, false)

	first, err := uc.Start(context.Background(), trackerdto.StartInput{SkillID: "skill-1"})
	if err != nil {
		t.Fatalf("start guitar: %v", err)
	}
	second, err := uc.Start(context.Background(), trackerdto.StartInput{SkillID: "skill-2"})
	if err != nil {
		t.Fatalf("start chess: %v", err)
	}
	if second.StoppedSessionID != first.SessionID {
		t.Fatalf("expected guitar session %s to be stopped, got %q", first.SessionID, second.StoppedSessionID)
	}

	closed, err := store.ListBySkill(context.Background(), "skill-1")
	if err != nil {
		t.Fatalf("list guitar sessions: %v", err)
	}
	if len(closed) != 1 || closed[0].DurationSeconds(time.Time{}) != 1800 {
		t.Fatalf("expected one 1800s guitar session, got %+v", closed)
	}

	status, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.SkillID != "skill-2" || status.State != "running" {
		t.Fatalf("expected chess running, got %+v", status)
	}
}

func TestStopWhenIdleReturnsZeroResult(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)}}
	_, uc, _ := newTracker(t, clk, false)

	stop, err := uc.Stop(context.Background())
	if err != nil {
		t.Fatalf("stop while idle: %v", err)
	}
	if stop.Stopped || stop.ElapsedSeconds != 0 {
		t.Fatalf("expected zero result, got %+v", stop)
	}

	status, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.State != "idle" {
		t.Fatalf("expected idle status, got %+v", status)
	}
}

func TestPauseResumeExcludesPausedTime(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{
		time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),  // start
		time.Date(2026, 3, 10, 10, 10, 0, 0, time.UTC), // pause
		time.Date(2026, 3, 10, 10, 10, 0, 0, time.UTC), // pause status
		time.Date(2026, 3, 10, 10, 15, 0, 0, time.UTC), // resume
		time.Date(2026, 3, 10, 10, 15, 0, 0, time.UTC), // resume status
		time.Date(2026, 3, 10, 10, 20, 0, 0, time.UTC), // final status
	}}
	_, uc, _ := newTracker(t, clk, false)

	if _, err := uc.Start(context.Background(), trackerdto.StartInput{SkillID: "skill-1"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	paused, err := uc.Pause(context.Background())
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if paused.State != "paused" || paused.ElapsedSeconds != 600 {
		t.Fatalf("expected paused at 600s, got %+v", paused)
	}
	resumed, err := uc.Resume(context.Background())
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed.State != "running" || resumed.ElapsedSeconds != 600 || resumed.PausedSeconds != 300 {
		t.Fatalf("expected 600s elapsed with 300s paused, got %+v", resumed)
	}
	status, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.ElapsedSeconds != 900 || status.PausedSeconds != 300 {
		t.Fatalf("expected 900s elapsed with 300s paused, got %+v", status)
	}
}

func TestPauseWhenIdleReturnsNotTracking(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)}}
	_, uc, _ := newTracker(t, clk, false)
	if _, err := uc.Pause(context.Background()); !errors.Is(err, apperrors.ErrNotTracking) {
		t.Fatalf("expected not tracking error, got %v", err)
	}
	if _, err := uc.Resume(context.Background()); !errors.Is(err, apperrors.ErrNotTracking) {
		t.Fatalf("expected not tracking error, got %v", err)
	}
}

func TestLogValidatesAndPersistsClosedSession(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}}
	store, uc, _ := newTracker(t, clk, false)

	startedAt := time.Date(2026, 3, 9, 19, 0, 0, 0, time.UTC)
	if _, err := uc.Log(context.Background(), trackerdto.LogInput{SkillID: "skill-1", StartedAt: startedAt}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("zero duration must be rejected, got %v", err)
	}
	if _, err := uc.Log(context.Background(), trackerdto.LogInput{SkillID: "skill-1", DurationSeconds: 60}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("zero start time must be rejected, got %v", err)
	}
	if _, err := uc.Log(context.Background(), trackerdto.LogInput{SkillID: "nope", StartedAt: startedAt, DurationSeconds: 60}); !errors.Is(err, apperrors.ErrSkillNotFound) {
		t.Fatalf("unknown skill must be rejected, got %v", err)
	}

	out, err := uc.Log(context.Background(), trackerdto.LogInput{SkillID: "skill-1", StartedAt: startedAt, DurationSeconds: 2700})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if out.DurationSeconds != 2700 || out.EndedAt != startedAt.Add(45*time.Minute) {
		t.Fatalf("unexpected logged session: %+v", out)
	}
	sessions, err := store.ListBySkill(context.Background(), "skill-1")
	if err != nil || len(sessions) != 1 {
		t.Fatalf("expected one persisted session, got %v (err %v)", sessions, err)
	}
}

func TestListSessionsIncludesOpenSession(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{
		time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
	}}
	_, uc, _ := newTracker(t, clk, false)

	if _, err := uc.Start(context.Background(), trackerdto.StartInput{SkillID: "skill-1"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	sessions, err := uc.ListSessions(context.Background(), "skill-1")
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 || !sessions[0].Open {
		t.Fatalf("expected the open session to be listed, got %+v", sessions)
	}
	if sessions[0].DurationSeconds != 1800 {
		t.Fatalf("expected 1800s so far, got %d", sessions[0].DurationSeconds)
	}
}

func TestReindexRebuildsProjectionFromJournal(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}}
	store, uc, _ := newTracker(t, clk, true)

	for day := 1; day <= 3; day++ {
		startedAt := time.Date(2026, 3, day, 9, 0, 0, 0, time.UTC)
		if _, err := uc.Log(context.Background(), trackerdto.LogInput{SkillID: "skill-1", StartedAt: startedAt, DurationSeconds: 1800}); err != nil {
			t.Fatalf("log day %d: %v", day, err)
		}
	}
	// Wreck the projection, then rebuild it from the notes.
	if err := store.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	count, err := uc.Reindex(context.Background())
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 reindexed sessions, got %d", count)
	}
	sessions, err := store.ListBySkill(context.Background(), "skill-1")
	if err != nil || len(sessions) != 3 {
		t.Fatalf("expected 3 sessions after reindex, got %v (err %v)", sessions, err)
	}
}

func TestReindexWithoutJournalFails(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}}
	_, uc, _ := newTracker(t, clk, false)
	if _, err := uc.Reindex(context.Background()); err == nil {
		t.Fatalf("reindex without a journal must fail")
	}
}
