package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds process configuration for a single data directory.
type Config struct {
	// DataDir is the root under which the database, the active-tracking
	// snapshot, and the session journal live.
	DataDir string `koanf:"data_dir"`

	// Journal toggles writing closed sessions as markdown notes.
	Journal bool `koanf:"journal"`

	// Theme selects the UI palette set.
	Theme string `koanf:"theme"`

	// WeekStart is the first weekday of heatmap rows: "monday" or "sunday".
	WeekStart string `koanf:"week_start"`
}

// Load layers defaults, an optional <dataDir>/config.yaml, and TENK_* env
// overrides, lowest to highest precedence.
func Load(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:   dataDir,
		Journal:   true,
		Theme:     "catppuccin",
		WeekStart: "monday",
	}

	k := koanf.New(".")
	path := filepath.Join(dataDir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file: %w", err)
		}
	}
	envProvider := env.Provider("TENK_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "TENK_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load config env: %w", err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.WeekStart {
	case "monday", "sunday":
	default:
		return Config{}, fmt.Errorf("week_start must be monday or sunday, got %q", cfg.WeekStart)
	}
	cfg.DataDir = dataDir
	return cfg, nil
}

// DBPath is where the sqlite projection lives.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, ".tenk", "tenk.db")
}

// ActivePath is where the active-tracking snapshot lives.
func (c Config) ActivePath() string {
	return filepath.Join(c.DataDir, ".tenk", "active-tracking.json")
}

// JournalDir is the root of the markdown session journal.
func (c Config) JournalDir() string {
	return filepath.Join(c.DataDir, "journal")
}

// WeekStartDay maps the configured first weekday to time.Weekday.
func (c Config) WeekStartDay() time.Weekday {
	if c.WeekStart == "sunday" {
		return time.Sunday
	}
	return time.Monday
}
