package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tenk/internal/platform/config"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Journal {
		t.Fatalf("journal must default on")
	}
	if cfg.Theme != "catppuccin" || cfg.WeekStart != "monday" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.WeekStartDay() != time.Monday {
		t.Fatalf("expected monday week start")
	}
	if cfg.DBPath() != filepath.Join(dir, ".tenk", "tenk.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath())
	}
	if cfg.JournalDir() != filepath.Join(dir, "journal") {
		t.Fatalf("unexpected journal dir: %s", cfg.JournalDir())
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	raw := "journal: false\ntheme: plain\nweek_start: sunday\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Journal {
		t.Fatalf("journal must be off")
	}
	if cfg.Theme != "plain" || cfg.WeekStartDay() != time.Sunday {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestEnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	raw := "theme: plain\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TENK_THEME", "catppuccin")
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != "catppuccin" {
		t.Fatalf("env must win, got %s", cfg.Theme)
	}
}

func TestLoadRejectsInvalidWeekStart(t *testing.T) {
	dir := t.TempDir()
	raw := "week_start: wednesday\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(dir); err == nil {
		t.Fatalf("expected week_start error")
	}
}

func TestLoadRequiresDataDir(t *testing.T) {
	if _, err := config.Load("  "); err == nil {
		t.Fatalf("expected data dir error")
	}
}
