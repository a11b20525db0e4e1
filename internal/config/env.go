package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds the process settings read from the environment.
type Env struct {
	// ScoringPath points at an optional YAML scoring table.
	ScoringPath string `env:"COMPASS_CONFIG"`
	// DataDir is where the report journal lives. Defaults to ~/.compass.
	DataDir string `env:"COMPASS_DATA_DIR"`
	// Journal enables the finished-report journal.
	Journal bool `env:"COMPASS_JOURNAL" envDefault:"true"`
	// MaxSessions caps concurrently open assessment sessions.
	MaxSessions int `env:"COMPASS_MAX_SESSIONS" envDefault:"64"`
	// SessionIdle is how long an untouched session is kept. Zero keeps
	// sessions until they are ended.
	SessionIdle time.Duration `env:"COMPASS_SESSION_IDLE" envDefault:"1h"`
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if e.DataDir == "" {
		home, _ := os.UserHomeDir()
		e.DataDir = filepath.Join(home, ".compass")
	}
	if e.MaxSessions <= 0 {
		return Env{}, fmt.Errorf("COMPASS_MAX_SESSIONS must be positive, got %d", e.MaxSessions)
	}
	if e.SessionIdle < 0 {
		return Env{}, fmt.Errorf("COMPASS_SESSION_IDLE must not be negative, got %s", e.SessionIdle)
	}
	return e, nil
}
