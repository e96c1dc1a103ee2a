package usecase_test

import (
	"context"
	"testing"
	"time"

	"tenk/internal/modules/stats/domain"
	statsin "tenk/internal/modules/stats/port/in"
	statsout "tenk/internal/modules/stats/port/out"
	"tenk/internal/modules/stats/service"
	"tenk/internal/modules/stats/usecase"
	apperrors "tenk/internal/platform/errors"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeSkillSource struct{ facts statsout.SkillFacts }

func (f fakeSkillSource) SkillFacts(_ context.Context, skillID string) (statsout.SkillFacts, error) {
	if skillID != f.facts.ID {
		return statsout.SkillFacts{}, apperrors.ErrSkillNotFound
	}
	return f.facts, nil
}

type fakeSessionSource struct{ spans []domain.SessionSpan }

func (f fakeSessionSource) SkillSessions(context.Context, string) ([]domain.SessionSpan, error) {
	return f.spans, nil
}

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func weeklySpans(hoursPerWeek int) []domain.SessionSpan {
	windowStart := now.Add(-8 * 7 * 24 * time.Hour)
	spans := make([]domain.SessionSpan, 0, 8)
	for week := 0; week < 8; week++ {
		start := windowStart.Add(21 * time.Hour).AddDate(0, 0, week*7)
		spans = append(spans, domain.SessionSpan{
			StartedAt: start,
			EndedAt:   start.Add(time.Duration(hoursPerWeek) * time.Hour),
		})
	}
	return spans
}

func newStats(facts statsout.SkillFacts, spans []domain.SessionSpan) statsin.Usecase {
	svc := service.NewStatsService(fakeClock{now: now}, time.Monday)
	return usecase.NewInteractor(svc, fakeSkillSource{facts: facts}, fakeSessionSource{spans: spans})
}

func TestPaceOutputCarriesDisplayString(t *testing.T) {
	t.Parallel()
	facts := statsout.SkillFacts{ID: "skill-1", Name: "Guitar", TotalSeconds: 1000 * 3600}
	uc := newStats(facts, weeklySpans(7))

	out, err := uc.Pace(context.Background(), "skill-1")
	if err != nil {
		t.Fatalf("pace: %v", err)
	}
	if out.SkillName != "Guitar" || out.HoursPerWeek != 7 {
		t.Fatalf("unexpected pace output: %+v", out)
	}
	// 9000 h remaining at 7 h/week.
	if out.ProjectionDisplay != "24 years 8 months to go" {
		t.Fatalf("unexpected display: %s", out.ProjectionDisplay)
	}
}

func TestPaceInsufficientDisplaysEncouragement(t *testing.T) {
	t.Parallel()
	facts := statsout.SkillFacts{ID: "skill-1", Name: "Guitar"}
	uc := newStats(facts, weeklySpans(7)[:1])

	out, err := uc.Pace(context.Background(), "skill-1")
	if err != nil {
		t.Fatalf("pace: %v", err)
	}
	if out.Confidence != string(domain.ConfidenceInsufficient) {
		t.Fatalf("expected insufficient confidence, got %s", out.Confidence)
	}
	if out.ProjectionDisplay != "not enough practice days yet, keep going" {
		t.Fatalf("unexpected display: %s", out.ProjectionDisplay)
	}
}

func TestTargetWithoutWeeklyTarget(t *testing.T) {
	t.Parallel()
	facts := statsout.SkillFacts{ID: "skill-1", Name: "Guitar"}
	uc := newStats(facts, weeklySpans(7))

	out, err := uc.Target(context.Background(), "skill-1")
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	if out.TargetHoursPerWeek != 0 || out.ProjectionDisplay != "no weekly target set" {
		t.Fatalf("unexpected target output: %+v", out)
	}
}

func TestTargetReportsGapAgainstActualPace(t *testing.T) {
	t.Parallel()
	facts := statsout.SkillFacts{ID: "skill-1", Name: "Guitar", WeeklyTargetHours: 10}
	uc := newStats(facts, weeklySpans(7))

	out, err := uc.Target(context.Background(), "skill-1")
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	if out.TargetHoursPerWeek != 10 || out.GapHoursPerWeek != -3 {
		t.Fatalf("expected -3 h/week gap, got %+v", out)
	}
}

func TestHeatmapDefaultsToTwelveWeeks(t *testing.T) {
	t.Parallel()
	facts := statsout.SkillFacts{ID: "skill-1", Name: "Guitar"}
	uc := newStats(facts, nil)

	out, err := uc.Heatmap(context.Background(), "skill-1", 0)
	if err != nil {
		t.Fatalf("heatmap: %v", err)
	}
	if len(out.Weeks) != usecase.DefaultHeatmapWeeks {
		t.Fatalf("expected %d weeks, got %d", usecase.DefaultHeatmapWeeks, len(out.Weeks))
	}
	for _, week := range out.Weeks {
		if len(week) != 7 {
			t.Fatalf("expected 7 day rows, got %d", len(week))
		}
	}
}

func TestSummaryPassesThroughSkillFacts(t *testing.T) {
	t.Parallel()
	last := time.Date(2026, 3, 9, 19, 0, 0, 0, time.UTC)
	facts := statsout.SkillFacts{
		ID: "skill-1", Name: "Guitar",
		TotalSeconds: 250 * 3600, SessionCount: 12,
		Progress: 0.025, LastPracticedAt: last,
	}
	uc := newStats(facts, nil)

	out, err := uc.Summary(context.Background(), "skill-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if out.TotalHours != 250 || out.SessionCount != 12 || !out.LastPracticedAt.Equal(last) {
		t.Fatalf("unexpected summary: %+v", out)
	}

	if _, err := uc.Summary(context.Background(), "nope"); err == nil {
		t.Fatalf("unknown skill must fail")
	}
}
