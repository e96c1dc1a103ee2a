package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tenk/internal/modules/skill/domain"
	skillout "tenk/internal/modules/skill/port/out"
	apperrors "tenk/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type SQLiteSkillStore struct {
	db *sql.DB
}

func NewSQLiteSkillStore(dbPath string) (skillout.SkillStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteSkillStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSkillStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS skills (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  palette_id TEXT NOT NULL,
  color_index INTEGER NOT NULL,
  weekly_target_hours REAL NOT NULL,
  created_at INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create skills table: %w", err)
	}
	return nil
}

func (s *SQLiteSkillStore) Save(ctx context.Context, skill domain.Skill) error {
	const stmt = `
INSERT INTO skills (id, name, palette_id, color_index, weekly_target_hours, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  palette_id=excluded.palette_id,
  color_index=excluded.color_index,
  weekly_target_hours=excluded.weekly_target_hours;
`
	_, err := s.db.ExecContext(ctx, stmt,
		skill.ID,
		skill.Name,
		skill.PaletteID,
		skill.ColorIndex,
		skill.WeeklyTargetHours,
		skill.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert skill: %w", err)
	}
	return nil
}

func (s *SQLiteSkillStore) FindByID(ctx context.Context, id string) (domain.Skill, error) {
	const query = `
SELECT id, name, palette_id, color_index, weekly_target_hours, created_at
FROM skills WHERE id = ?;
`
	row := s.db.QueryRowContext(ctx, query, id)
	skill, err := scanSkill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Skill{}, apperrors.ErrSkillNotFound
	}
	if err != nil {
		return domain.Skill{}, fmt.Errorf("find skill: %w", err)
	}
	return skill, nil
}

func (s *SQLiteSkillStore) List(ctx context.Context) ([]domain.Skill, error) {
	const query = `
SELECT id, name, palette_id, color_index, weekly_target_hours, created_at
FROM skills ORDER BY name COLLATE NOCASE;
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Skill{}
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		out = append(out, skill)
	}
	return out, rows.Err()
}

func (s *SQLiteSkillStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM skills WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSkill(row rowScanner) (domain.Skill, error) {
	var skill domain.Skill
	var createdAt int64
	if err := row.Scan(&skill.ID, &skill.Name, &skill.PaletteID, &skill.ColorIndex, &skill.WeeklyTargetHours, &createdAt); err != nil {
		return domain.Skill{}, err
	}
	skill.CreatedAt = time.Unix(createdAt, 0).UTC()
	return skill, nil
}
