// Package store persists profiles, check-ins, predictions, history
// events, and feedback in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite handle and exposes the repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies recommended
// pragmas, and runs schema migration.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id                 INTEGER PRIMARY KEY,
	age                     INTEGER,
	gender                  TEXT,
	occupation              TEXT,
	family_status           TEXT,
	sleep_hours             REAL,
	physical_activity       TEXT,
	diet_quality            TEXT,
	alcohol_intake          INTEGER,
	caffeine_intake         INTEGER,
	smoking_habits          TEXT,
	baseline_stress         INTEGER,
	family_anxiety_history  INTEGER,
	therapy_frequency       TEXT,
	recent_life_events      TEXT,
	medication_use          INTEGER,
	baseline_heart_rate     INTEGER,
	baseline_breathing_rate INTEGER,
	sweating_level          INTEGER,
	dizziness_frequency     TEXT,
	created_at              TEXT NOT NULL,
	updated_at              TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_checkins (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id         INTEGER NOT NULL,
	stress_level    INTEGER,
	sleep_hours     REAL,
	heart_rate      INTEGER,
	breathing_rate  INTEGER,
	caffeine_intake INTEGER,
	alcohol_intake  INTEGER,
	anxiety_level   INTEGER,
	mood_rating     INTEGER,
	energy_level    INTEGER,
	sweating_level  INTEGER,
	dizziness       INTEGER,
	notes           TEXT,
	is_extended     INTEGER NOT NULL DEFAULT 0,
	created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_daily_user_time ON daily_checkins(user_id, created_at);

CREATE TABLE IF NOT EXISTS weekly_checkins (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id             INTEGER NOT NULL,
	week_start          TEXT,
	week_end            TEXT,
	avg_stress_level    INTEGER,
	avg_sleep_hours     REAL,
	total_caffeine      INTEGER,
	total_alcohol       INTEGER,
	overall_week_rating INTEGER,
	significant_events  TEXT,
	therapy_attended    INTEGER,
	created_at          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_weekly_user_time ON weekly_checkins(user_id, created_at);

CREATE TABLE IF NOT EXISTS predictions (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id          INTEGER NOT NULL,
	severity_level   INTEGER NOT NULL,
	class_name       TEXT NOT NULL,
	confidence       REAL NOT NULL,
	advice           TEXT NOT NULL,
	category         TEXT NOT NULL,
	pipeline_version TEXT NOT NULL,
	daily_id         INTEGER REFERENCES daily_checkins(id),
	weekly_id        INTEGER REFERENCES weekly_checkins(id),
	created_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_predictions_user_time ON predictions(user_id, created_at);

CREATE TABLE IF NOT EXISTS events (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	event_id   TEXT NOT NULL UNIQUE,
	user_id    INTEGER NOT NULL,
	event_type TEXT NOT NULL,
	payload    TEXT NOT NULL DEFAULT '{}',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_user_time ON events(user_id, created_at);

CREATE TABLE IF NOT EXISTS feedback (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id       INTEGER NOT NULL,
	prediction_id INTEGER REFERENCES predictions(id),
	reaction      TEXT NOT NULL,
	comment       TEXT,
	created_at    TEXT NOT NULL
);
`

// DefaultDBPath resolves the database file path in priority order:
// 1. MINDWELL_DB environment variable
// 2. $XDG_DATA_HOME/mindwell/mindwell.db
// 3. ~/.local/share/mindwell/mindwell.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MINDWELL_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mindwell", "mindwell.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// Nullable bind/scan helpers shared by the repositories.

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullBool(p *bool) any {
	if p == nil {
		return nil
	}
	if *p {
		return 1
	}
	return 0
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func scanFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func scanBool(v sql.NullInt64) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Int64 != 0
	return &b
}

func scanString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
