package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tenk/internal/modules/tracker/domain"

	_ "modernc.org/sqlite"
)

// SQLiteSessionStore is the queryable projection of closed sessions. The
// markdown journal stays the source of truth; this table can be rebuilt
// from it at any time.
type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(dbPath string) (*SQLiteSessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  skill_id TEXT NOT NULL REFERENCES skills(id) ON DELETE CASCADE,
  skill_name TEXT NOT NULL,
  started_at INTEGER NOT NULL,
  ended_at INTEGER NOT NULL,
  paused_seconds INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_skill_started ON sessions (skill_id, started_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Save(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, skill_id, skill_name, started_at, ended_at, paused_seconds)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  skill_id=excluded.skill_id,
  skill_name=excluded.skill_name,
  started_at=excluded.started_at,
  ended_at=excluded.ended_at,
  paused_seconds=excluded.paused_seconds;
`
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		session.SkillID,
		session.SkillName,
		session.StartedAt.Unix(),
		session.EndedAt.Unix(),
		session.PausedSeconds,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) ListBySkill(ctx context.Context, skillID string) ([]domain.Session, error) {
	const query = `
SELECT id, skill_id, skill_name, started_at, ended_at, paused_seconds
FROM sessions WHERE skill_id = ? ORDER BY started_at;
`
	rows, err := s.db.QueryContext(ctx, query, skillID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Session{}
	for rows.Next() {
		var session domain.Session
		var startedAt, endedAt int64
		if err := rows.Scan(&session.ID, &session.SkillID, &session.SkillName, &startedAt, &endedAt, &session.PausedSeconds); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.StartedAt = time.Unix(startedAt, 0).UTC()
		session.EndedAt = time.Unix(endedAt, 0).UTC()
		out = append(out, session)
	}
	return out, rows.Err()
}

func (s *SQLiteSessionStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions;`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

// SkillTotals aggregates closed practice for one skill. Durations are
// floored at zero per session so a long pause never subtracts from other
// sessions.
func (s *SQLiteSessionStore) SkillTotals(ctx context.Context, skillID string) (int64, int, time.Time, error) {
	const query = `
SELECT
  COALESCE(SUM(MAX(ended_at - started_at - paused_seconds, 0)), 0),
  COUNT(*),
  COALESCE(MAX(started_at), 0)
FROM sessions WHERE skill_id = ?;
`
	var totalSeconds, lastStarted int64
	var count int
	row := s.db.QueryRowContext(ctx, query, skillID)
	if err := row.Scan(&totalSeconds, &count, &lastStarted); err != nil {
		return 0, 0, time.Time{}, fmt.Errorf("skill totals: %w", err)
	}
	last := time.Time{}
	if lastStarted > 0 {
		last = time.Unix(lastStarted, 0).UTC()
	}
	return totalSeconds, count, last, nil
}

func (s *SQLiteSessionStore) PurgeSkill(ctx context.Context, skillID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE skill_id = ?;`, skillID); err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	return nil
}
