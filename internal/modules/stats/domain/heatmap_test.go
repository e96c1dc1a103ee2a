package domain_test

import (
	"testing"
	"time"

	"tenk/internal/modules/stats/domain"
)

func TestLevelBoundaries(t *testing.T) {
	t.Parallel()
	cases := []struct {
		seconds int64
		level   int
	}{
		{0, 0},
		{-60, 0},
		{1, 1},
		{899, 1},
		{900, 2},
		{1799, 2},
		{1800, 3},
		{3599, 3},
		{3600, 4},
		{7199, 4},
		{7200, 5},
		{10799, 5},
		{10800, 6},
		{360000, 6},
	}
	for _, tc := range cases {
		if got := domain.Level(tc.seconds); got != tc.level {
			t.Fatalf("Level(%d) = %d, expected %d", tc.seconds, got, tc.level)
		}
	}
}

func TestHeatmapGridAlignsToWeekStart(t *testing.T) {
	t.Parallel()
	// 2026-03-10 is a Tuesday.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	hm := domain.BuildHeatmap(nil, 2, now, time.Monday)
	if len(hm.Weeks) != 2 {
		t.Fatalf("expected 2 week rows, got %d", len(hm.Weeks))
	}
	if !hm.Weeks[0][0].Date.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("grid must start Monday March 2, got %v", hm.Weeks[0][0].Date)
	}
	if !hm.Weeks[1][1].Date.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("today must sit in the last row, got %v", hm.Weeks[1][1].Date)
	}

	sunday := domain.BuildHeatmap(nil, 1, now, time.Sunday)
	if !sunday.Weeks[0][0].Date.Equal(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("sunday rows must start March 8, got %v", sunday.Weeks[0][0].Date)
	}
}

func TestHeatmapBucketsSecondsByStartDay(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []domain.SessionSpan{
		// Two quarter-hour halves on March 10: together level 2.
		{StartedAt: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), EndedAt: time.Date(2026, 3, 10, 8, 7, 30, 0, time.UTC)},
		{StartedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), EndedAt: time.Date(2026, 3, 10, 9, 7, 30, 0, time.UTC)},
		// Ten minutes on Monday March 2.
		{StartedAt: time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC), EndedAt: time.Date(2026, 3, 2, 19, 10, 0, 0, time.UTC)},
		// Before the grid: ignored.
		{StartedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), EndedAt: time.Date(2026, 2, 1, 14, 0, 0, 0, time.UTC)},
		// Pause swallows the whole span: contributes zero seconds.
		{StartedAt: time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC), EndedAt: time.Date(2026, 3, 9, 10, 10, 0, 0, time.UTC), PausedSeconds: 900},
	}
	hm := domain.BuildHeatmap(sessions, 2, now, time.Monday)

	today := hm.Weeks[1][1]
	if today.Seconds != 900 || today.Level != 2 {
		t.Fatalf("expected 900s level 2 today, got %+v", today)
	}
	monday := hm.Weeks[0][0]
	if monday.Seconds != 600 || monday.Level != 1 {
		t.Fatalf("expected 600s level 1 on March 2, got %+v", monday)
	}
	yesterday := hm.Weeks[1][0]
	if yesterday.Seconds != 0 || yesterday.Level != 0 {
		t.Fatalf("fully paused session must not register, got %+v", yesterday)
	}
}

func TestHeatmapEmptyHistoryYieldsZeroGrid(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	hm := domain.BuildHeatmap(nil, 12, now, time.Monday)
	if len(hm.Weeks) != 12 {
		t.Fatalf("expected 12 week rows, got %d", len(hm.Weeks))
	}
	for w, week := range hm.Weeks {
		for d, cell := range week {
			if cell.Seconds != 0 || cell.Level != 0 {
				t.Fatalf("cell [%d][%d] must be empty, got %+v", w, d, cell)
			}
			if cell.Date.IsZero() {
				t.Fatalf("cell [%d][%d] must carry its date", w, d)
			}
		}
	}
}
