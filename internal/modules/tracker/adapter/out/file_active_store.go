package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tenk/internal/modules/tracker/domain"
	apperrors "tenk/internal/platform/errors"
)

// FileActiveStore persists the open session snapshot as a JSON file so a
// running timer survives process restarts. It also answers the skill
// module's active probe during delete.
type FileActiveStore struct {
	path string
}

func NewFileActiveStore(path string) *FileActiveStore {
	return &FileActiveStore{path: path}
}

func (s *FileActiveStore) SaveActive(_ context.Context, active domain.ActiveTracking) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create tracking dir: %w", err)
	}
	payload, err := json.MarshalIndent(active, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active tracking: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write active tracking: %w", err)
	}
	return nil
}

func (s *FileActiveStore) LoadActive(_ context.Context) (domain.ActiveTracking, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ActiveTracking{}, apperrors.ErrNotTracking
		}
		return domain.ActiveTracking{}, fmt.Errorf("read active tracking: %w", err)
	}
	active := domain.ActiveTracking{}
	if err := json.Unmarshal(payload, &active); err != nil {
		return domain.ActiveTracking{}, fmt.Errorf("decode active tracking: %w", err)
	}
	if active.SessionID == "" {
		return domain.ActiveTracking{}, apperrors.ErrNotTracking
	}
	return active, nil
}

func (s *FileActiveStore) ClearActive(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear active tracking: %w", err)
	}
	return nil
}

// ActiveSkillID reports which skill is currently tracked, or "" when idle.
func (s *FileActiveStore) ActiveSkillID(ctx context.Context) (string, error) {
	active, err := s.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNotTracking) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return active.SkillID, nil
}
