// Package badger stores the studybuddy session snapshot in an embedded
// Badger key-value database.
package badger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/fwojciec/studybuddy"
	sbjson "github.com/fwojciec/studybuddy/json"
)

// Interface compliance check.
var _ studybuddy.Repository = (*DB)(nil)

// DB wraps a Badger database and implements studybuddy.Repository. The
// snapshot is a JSON array stored under studybuddy.StorageKey.
type DB struct {
	db     *badger.DB
	logger *slog.Logger
}

// Option configures a DB.
type Option func(*badger.Options)

// WithInMemory keeps the database in memory. Nothing is written to disk.
func WithInMemory() Option {
	return func(o *badger.Options) {
		*o = o.WithDir("").WithValueDir("").WithInMemory(true)
	}
}

// Open creates or opens the database directory at dir. A nil logger
// discards output.
func Open(dir string, logger *slog.Logger, opts ...Option) (*DB, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	o := badger.DefaultOptions(dir).WithLogger(slogAdapter{logger})
	for _, opt := range opts {
		opt(&o)
	}
	if !o.InMemory {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := badger.Open(o)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &DB{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Load reads the snapshot. A missing key yields an empty collection; so does
// a value that cannot be decoded, which is logged and left in place.
func (d *DB) Load() ([]studybuddy.Session, error) {
	var data []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(studybuddy.StorageKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	sessions, err := sbjson.UnmarshalSessions(data)
	if err != nil {
		d.logger.Warn("discarding unreadable snapshot", "key", studybuddy.StorageKey, "error", err)
		return nil, nil
	}
	return sessions, nil
}

// Save overwrites the snapshot.
func (d *DB) Save(sessions []studybuddy.Session) error {
	data, err := sbjson.MarshalSessions(sessions)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	err = d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(studybuddy.StorageKey), data)
	})
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// slogAdapter routes Badger's internal logging to slog.
type slogAdapter struct {
	l *slog.Logger
}

func (a slogAdapter) Errorf(format string, args ...any) {
	a.l.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (a slogAdapter) Warningf(format string, args ...any) {
	a.l.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (a slogAdapter) Infof(format string, args ...any) {
	a.l.Debug(fmt.Sprintf(format, args...), "component", "badger")
}

func (a slogAdapter) Debugf(format string, args ...any) {
	a.l.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
