// Package journal keeps a local record of finished compass reports.
//
// Entries are written once a report is generated and are never read back
// into a live session: the journal is a log, not session storage.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DefaultLimit is how many entries Recent returns when limit <= 0.
const DefaultLimit = 10

// Entry is one journaled report.
type Entry struct {
	ID             int64     `json:"id"`
	SessionID      string    `json:"session_id"`
	TotalA         float64   `json:"total_a"`
	TotalB         float64   `json:"total_b"`
	Classification string    `json:"classification"`
	Quadrant       string    `json:"quadrant"`
	Events         int       `json:"events"`
	Markdown       string    `json:"markdown"`
	CreatedAt      time.Time `json:"created_at"`
}

// Config holds journal configuration.
type Config struct {
	DataDir string
}

// DefaultConfig returns the default configuration for the journal.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".compass")}
}

// Store is the report journal backed by SQLite.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates a Store. It creates the data directory if needed, opens
// SQLite with WAL mode and runs migrations.
func New(cfg Config) (*Store, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("journal: data dir is required")
	}
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("journal: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "journal.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("journal: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return filepath.Join(s.cfg.DataDir, "journal.db")
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS reports (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id     TEXT    NOT NULL,
			total_a        REAL    NOT NULL,
			total_b        REAL    NOT NULL,
			classification TEXT    NOT NULL,
			quadrant       TEXT    NOT NULL,
			events         INTEGER NOT NULL,
			markdown       TEXT    NOT NULL,
			created_at     TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_reports_session ON reports(session_id);
		CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save appends an entry and returns its id. A zero CreatedAt is stamped
// with the current time.
func (s *Store) Save(e Entry) (int64, error) {
	if e.SessionID == "" {
		return 0, fmt.Errorf("journal: session id is required")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = timeNow()
	}

	res, err := s.db.Exec(
		`INSERT INTO reports (session_id, total_a, total_b, classification, quadrant, events, markdown, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.TotalA, e.TotalB, e.Classification, e.Quadrant, e.Events, e.Markdown,
		e.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("journal: save report: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the newest entries first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, total_a, total_b, classification, quadrant, events, markdown, created_at
		 FROM reports ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.TotalA, &e.TotalB, &e.Classification,
			&e.Quadrant, &e.Events, &e.Markdown, &created); err != nil {
			return nil, err
		}
		e.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("journal: parse created_at %q: %w", created, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of journaled reports.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM reports").Scan(&n); err != nil {
		return 0, fmt.Errorf("journal: count reports: %w", err)
	}
	return n, nil
}
