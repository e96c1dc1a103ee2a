package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	out "tenk/internal/modules/tracker/adapter/out"
	"tenk/internal/modules/tracker/domain"
)

func TestJournalWriteAndListRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := out.NewJournalStore(dir)

	session := domain.Session{
		ID:            "sess-1",
		SkillID:       "skill-1",
		SkillName:     "Guitar Practice",
		StartedAt:     time.Date(2026, 3, 10, 19, 30, 0, 0, time.UTC),
		EndedAt:       time.Date(2026, 3, 10, 20, 31, 1, 0, time.UTC),
		PausedSeconds: 120,
	}
	path, err := store.Write(context.Background(), session)
	if err != nil {
		t.Fatalf("write note: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("2026", "03", "10", "193000-guitar-practice.md")) {
		t.Fatalf("unexpected note path: %s", path)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	note := string(payload)
	if !strings.Contains(note, "skill_name: Guitar Practice") || !strings.Contains(note, "duration_seconds: 3541") {
		t.Fatalf("note missing frontmatter fields:\n%s", note)
	}
	if !strings.Contains(note, "# Guitar Practice") {
		t.Fatalf("note missing heading:\n%s", note)
	}
	digest, err := os.ReadFile(filepath.Join(dir, "2026", "03", "10", "day.md"))
	if err != nil {
		t.Fatalf("read day digest: %v", err)
	}
	if !strings.Contains(string(digest), "- 19:30 Guitar Practice (59 min)") {
		t.Fatalf("digest missing session line:\n%s", digest)
	}
	if !strings.Contains(string(digest), "Total: 59 min") {
		t.Fatalf("digest missing total line:\n%s", digest)
	}

	sessions, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions))
	}
	got := sessions[0]
	if got.ID != session.ID || got.SkillID != session.SkillID || got.PausedSeconds != 120 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.StartedAt.Equal(session.StartedAt) || !got.EndedAt.Equal(session.EndedAt) {
		t.Fatalf("timestamps drifted: %+v", got)
	}
}

func TestJournalListSkipsUnparseableNotes(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := out.NewJournalStore(dir)

	session := domain.Session{
		ID:        "sess-1",
		SkillID:   "skill-1",
		SkillName: "Guitar",
		StartedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndedAt:   time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
	}
	if _, err := store.Write(context.Background(), session); err != nil {
		t.Fatalf("write note: %v", err)
	}
	junk := filepath.Join(dir, "2026", "03", "10", "junk.md")
	if err := os.WriteFile(junk, []byte("not a journal note"), 0o644); err != nil {
		t.Fatalf("write junk: %v", err)
	}

	sessions, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "sess-1" {
		t.Fatalf("junk note must be skipped, got %+v", sessions)
	}
}

func TestDayDigestPreservesUserTextAroundManagedBlock(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := out.NewJournalStore(dir)

	first := domain.Session{
		ID:        "sess-1",
		SkillID:   "skill-1",
		SkillName: "Guitar",
		StartedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		EndedAt:   time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
	}
	if _, err := store.Write(context.Background(), first); err != nil {
		t.Fatalf("write first note: %v", err)
	}

	dayPath := filepath.Join(dir, "2026", "03", "10", "day.md")
	payload, err := os.ReadFile(dayPath)
	if err != nil {
		t.Fatalf("read day digest: %v", err)
	}
	edited := "Felt good about the barre chords today.\n\n" + string(payload)
	if err := os.WriteFile(dayPath, []byte(edited), 0o644); err != nil {
		t.Fatalf("edit day digest: %v", err)
	}

	second := first
	second.ID = "sess-2"
	second.SkillName = "Chess"
	second.StartedAt = time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	second.EndedAt = time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)
	if _, err := store.Write(context.Background(), second); err != nil {
		t.Fatalf("write second note: %v", err)
	}

	payload, err = os.ReadFile(dayPath)
	if err != nil {
		t.Fatalf("reread day digest: %v", err)
	}
	digest := string(payload)
	if !strings.Contains(digest, "Felt good about the barre chords today.") {
		t.Fatalf("user text lost:\n%s", digest)
	}
	if !strings.Contains(digest, "- 09:00 Guitar (30 min)") || !strings.Contains(digest, "- 20:00 Chess (60 min)") {
		t.Fatalf("digest missing session lines:\n%s", digest)
	}
	if !strings.Contains(digest, "Total: 90 min") {
		t.Fatalf("digest total not refreshed:\n%s", digest)
	}
	if strings.Count(digest, "tenk:day:managed:start") != 1 {
		t.Fatalf("managed block duplicated:\n%s", digest)
	}
}

func TestJournalListToleratesMissingDir(t *testing.T) {
	t.Parallel()
	store := out.NewJournalStore(filepath.Join(t.TempDir(), "missing"))
	sessions, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("missing journal dir must not fail: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected empty replay, got %+v", sessions)
	}
}
