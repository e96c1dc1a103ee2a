package out_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	skilladapter "tenk/internal/modules/skill/adapter/out"
	skilldto "tenk/internal/modules/skill/dto"
	skillservice "tenk/internal/modules/skill/service"
	skillusecase "tenk/internal/modules/skill/usecase"
	statsadapter "tenk/internal/modules/stats/adapter/out"
	statsdomain "tenk/internal/modules/stats/domain"
	statsservice "tenk/internal/modules/stats/service"
	statsusecase "tenk/internal/modules/stats/usecase"
	trackeradapter "tenk/internal/modules/tracker/adapter/out"
	trackerdto "tenk/internal/modules/tracker/dto"
	trackerservice "tenk/internal/modules/tracker/service"
	trackerusecase "tenk/internal/modules/tracker/usecase"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

type fakeID struct{ n int }

func (f *fakeID) New() string {
	f.n++
	return fmt.Sprintf("id-%d", f.n)
}

// Wires the skill, tracker, and stats modules through their real adapters
// and walks one practice flow end to end: tracked time must show up in the
// skill totals, the pace report, and the heatmap.
func TestPracticeFlowFeedsStats(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)}
	ids := &fakeID{}
	sessionStore := trackeradapter.NewMemorySessionStore()
	activeStore := trackeradapter.NewFileActiveStore(filepath.Join(t.TempDir(), "active.json"))

	skillUC := skillusecase.NewInteractor(
		skillservice.NewSkillService(clk, ids, skilladapter.NewMemorySkillStore()),
		sessionStore, activeStore,
	)
	trackerUC := trackerusecase.NewInteractor(
		trackerservice.NewTrackingService(clk, ids),
		skillUC, sessionStore, activeStore, nil, nil,
	)
	statsUC := statsusecase.NewInteractor(
		statsservice.NewStatsService(clk, time.Monday),
		statsadapter.NewSkillSourceAdapter(skillUC),
		statsadapter.NewSessionSourceAdapter(trackerUC),
	)
	ctx := context.Background()

	skill, err := skillUC.Create(ctx, skilldto.CreateInput{Name: "Guitar", PaletteID: "default"})
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}

	if _, err := trackerUC.Start(ctx, trackerdto.StartInput{SkillID: skill.ID}); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.now = time.Date(2026, 3, 10, 11, 1, 1, 0, time.UTC)
	stop, err := trackerUC.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stop.ElapsedSeconds != 3661 {
		t.Fatalf("expected 3661 elapsed seconds, got %d", stop.ElapsedSeconds)
	}

	for day := 8; day <= 9; day++ {
		_, err := trackerUC.Log(ctx, trackerdto.LogInput{
			SkillID:         skill.ID,
			StartedAt:       time.Date(2026, 3, day, 9, 0, 0, 0, time.UTC),
			DurationSeconds: 3600,
		})
		if err != nil {
			t.Fatalf("log day %d: %v", day, err)
		}
	}

	detail, err := skillUC.Get(ctx, skill.ID)
	if err != nil {
		t.Fatalf("get skill: %v", err)
	}
	if detail.TotalSeconds != 3661+2*3600 || detail.SessionCount != 3 {
		t.Fatalf("unexpected totals: %+v", detail)
	}

	clk.now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	pace, err := statsUC.Pace(ctx, skill.ID)
	if err != nil {
		t.Fatalf("pace: %v", err)
	}
	// Three unique practice days over a three-day span.
	if pace.Confidence != string(statsdomain.ConfidenceLow) {
		t.Fatalf("expected low confidence, got %s", pace.Confidence)
	}
	if pace.UniqueDays != 3 {
		t.Fatalf("expected 3 unique days, got %d", pace.UniqueDays)
	}

	heatmap, err := statsUC.Heatmap(ctx, skill.ID, 0)
	if err != nil {
		t.Fatalf("heatmap: %v", err)
	}
	lastWeek := heatmap.Weeks[len(heatmap.Weeks)-1]
	today := lastWeek[1] // Tuesday, Monday week start
	if !today.Date.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("grid misaligned, got %s", today.Date)
	}
	if today.Seconds != 3661 || today.Level != 4 {
		t.Fatalf("unexpected today cell: %+v", today)
	}

	summary, err := statsUC.Summary(ctx, skill.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.SessionCount != 3 || summary.TotalSeconds != 3661+2*3600 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
