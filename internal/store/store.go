package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

var (
	// ErrRecordNotFound reports an update that targeted a missing record id.
	ErrRecordNotFound = errors.New("record not found")
	// ErrShiftOpen reports a shift start rejected because one is already open.
	// Only returned when the strict_shifts setting is enabled.
	ErrShiftOpen = errors.New("a shift is already open")
)

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS tasks (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		target_time REAL NOT NULL,
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		UNIQUE(name, target_time)
	);

	CREATE TABLE IF NOT EXISTS performance_records (
		id                     INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id                INTEGER NOT NULL REFERENCES tasks(id),
		actual_time            REAL NOT NULL,
		performance_percentage REAL NOT NULL,
		start_time             TEXT NOT NULL,
		end_time               TEXT NOT NULL,
		break_type             TEXT NOT NULL DEFAULT 'none',
		break_time             REAL NOT NULL DEFAULT 0,
		has_break              INTEGER NOT NULL DEFAULT 0,
		delays_time            REAL NOT NULL DEFAULT 0,
		has_delays             INTEGER NOT NULL DEFAULT 0,
		delay_notes            TEXT NOT NULL DEFAULT '',
		skill                  TEXT NOT NULL DEFAULT '',
		paid_break_time        REAL NOT NULL DEFAULT 0,
		unpaid_break_time      REAL NOT NULL DEFAULT 0,
		created_at             TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_records_task    ON performance_records(task_id);
	CREATE INDEX IF NOT EXISTS idx_records_created ON performance_records(created_at);

	CREATE TABLE IF NOT EXISTS shifts (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		start_time  TEXT NOT NULL,
		end_time    TEXT,
		skill       TEXT NOT NULL,
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('default_skill',   'Picker'),
		('strict_shifts',   '0'),
		('week_start',      'monday'),
		('recent_limit',    '20'),
		('debug_log_lines', '50');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/perftrack/perftrack.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "perftrack", "perftrack.db"), nil
}
