package out

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tenk/internal/modules/tracker/domain"
	"tenk/internal/platform/markdown"
	"tenk/internal/platform/slug"
)

const (
	dayManagedStart = "<!-- tenk:day:managed:start -->"
	dayManagedEnd   = "<!-- tenk:day:managed:end -->"
	dayNoteName     = "day.md"
)

// JournalStore writes one markdown note per closed session under
// <journal>/YYYY/MM/DD. The notes are plain files a user can read and
// sync; the sqlite projection is rebuilt from them on reindex. Each day
// directory also carries a day.md digest whose managed block is refreshed
// on every write, leaving user text around it untouched.
type JournalStore struct {
	dir string
}

func NewJournalStore(dir string) *JournalStore {
	return &JournalStore{dir: dir}
}

type journalMeta struct {
	SchemaVersion   int    `yaml:"schema_version"`
	ID              string `yaml:"id"`
	SkillID         string `yaml:"skill_id"`
	SkillName       string `yaml:"skill_name"`
	StartedAt       string `yaml:"started_at"`
	EndedAt         string `yaml:"ended_at"`
	PausedSeconds   int64  `yaml:"paused_seconds"`
	DurationSeconds int64  `yaml:"duration_seconds"`
}

func (s *JournalStore) Write(_ context.Context, session domain.Session) (string, error) {
	date := session.StartedAt
	dir := filepath.Join(s.dir, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(session.SkillName))
	path := filepath.Join(dir, name)

	duration := session.DurationSeconds(session.EndedAt)
	meta := journalMeta{
		SchemaVersion:   domain.SchemaVersion,
		ID:              session.ID,
		SkillID:         session.SkillID,
		SkillName:       session.SkillName,
		StartedAt:       session.StartedAt.UTC().Format(time.RFC3339),
		EndedAt:         session.EndedAt.UTC().Format(time.RFC3339),
		PausedSeconds:   session.PausedSeconds,
		DurationSeconds: duration,
	}
	body := fmt.Sprintf("# %s\n\n- Practiced for %d minutes\n- Paused for %d minutes\n",
		session.SkillName, duration/60, session.PausedSeconds/60)
	rendered, err := markdown.Render(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	if err := s.refreshDayNote(dir, date); err != nil {
		return "", err
	}
	return path, nil
}

func (s *JournalStore) refreshDayNote(dir string, date time.Time) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read day dir: %w", err)
	}
	sessions := []domain.Session{}
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == dayNoteName || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		if session, ok := readNote(filepath.Join(dir, entry.Name())); ok {
			sessions = append(sessions, session)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})

	var total int64
	lines := make([]string, 0, len(sessions)+1)
	for _, session := range sessions {
		duration := session.DurationSeconds(session.EndedAt)
		total += duration
		lines = append(lines, fmt.Sprintf("- %s %s (%d min)",
			session.StartedAt.UTC().Format("15:04"), session.SkillName, duration/60))
	}
	lines = append(lines, fmt.Sprintf("\nTotal: %d min", total/60))

	path := filepath.Join(dir, dayNoteName)
	body := fmt.Sprintf("# %s\n", date.Format("2006-01-02"))
	if existing, err := os.ReadFile(path); err == nil {
		body = string(existing)
	}
	body = markdown.ReplaceManagedBlock(body, dayManagedStart, dayManagedEnd, strings.Join(lines, "\n"))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write day note: %w", err)
	}
	return nil
}

// List replays every journal note back into session records. Notes that
// fail to parse are skipped rather than aborting the whole rebuild.
func (s *JournalStore) List(_ context.Context) ([]domain.Session, error) {
	out := []domain.Session{}
	err := filepath.WalkDir(s.dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if entry.IsDir() || entry.Name() == dayNoteName || !strings.HasSuffix(entry.Name(), ".md") {
			return nil
		}
		session, ok := readNote(path)
		if ok {
			out = append(out, session)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk journal: %w", err)
	}
	return out, nil
}

func readNote(path string) (domain.Session, bool) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return domain.Session{}, false
	}
	meta := journalMeta{}
	if _, err := markdown.Split(string(payload), &meta); err != nil {
		return domain.Session{}, false
	}
	if meta.ID == "" || meta.SkillID == "" {
		return domain.Session{}, false
	}
	startedAt, err := time.Parse(time.RFC3339, meta.StartedAt)
	if err != nil {
		return domain.Session{}, false
	}
	endedAt, err := time.Parse(time.RFC3339, meta.EndedAt)
	if err != nil {
		return domain.Session{}, false
	}
	return domain.Session{
		ID:            meta.ID,
		SkillID:       meta.SkillID,
		SkillName:     meta.SkillName,
		StartedAt:     startedAt,
		EndedAt:       endedAt,
		PausedSeconds: meta.PausedSeconds,
	}, true
}
