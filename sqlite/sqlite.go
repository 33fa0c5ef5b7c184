// Package sqlite stores the studybuddy session snapshot in a SQLite
// key-value table.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/studybuddy"
	sbjson "github.com/fwojciec/studybuddy/json"
	_ "github.com/mattn/go-sqlite3"
)

// Interface compliance check.
var _ studybuddy.Repository = (*DB)(nil)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// DB wraps the SQLite connection and implements studybuddy.Repository. The
// snapshot is a JSON array stored under studybuddy.StorageKey.
type DB struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open creates or opens the database at path and initializes the schema. A
// nil logger discards output.
func Open(path string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite handles one writer at a time

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{db: db, logger: logger, now: time.Now}, nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Load reads the snapshot. A missing row yields an empty collection; so does
// a value that cannot be decoded, which is logged and left in place.
func (d *DB) Load() ([]studybuddy.Session, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, studybuddy.StorageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	sessions, err := sbjson.UnmarshalSessions([]byte(value))
	if err != nil {
		d.logger.Warn("discarding unreadable snapshot", "key", studybuddy.StorageKey, "error", err)
		return nil, nil
	}
	return sessions, nil
}

// Save upserts the snapshot.
func (d *DB) Save(sessions []studybuddy.Session) error {
	data, err := sbjson.MarshalSessions(sessions)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = d.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, studybuddy.StorageKey, string(data), d.now().Unix())
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}
