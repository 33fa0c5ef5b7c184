package json

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fwojciec/studybuddy"
)

// Interface compliance check.
var _ studybuddy.Repository = (*Repository)(nil)

// Repository stores the session snapshot in a single JSON file.
type Repository struct {
	path   string
	logger *slog.Logger
}

// NewRepository returns a Repository that keeps its snapshot in dir, in a
// file named after studybuddy.StorageKey. A nil logger discards output.
func NewRepository(dir string, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Repository{
		path:   filepath.Join(dir, studybuddy.StorageKey+".json"),
		logger: logger,
	}
}

// Path returns the snapshot file path.
func (r *Repository) Path() string { return r.path }

// Load reads the snapshot. A missing file yields an empty collection; so
// does a file that cannot be decoded, which is logged and left in place.
func (r *Repository) Load() ([]studybuddy.Session, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	sessions, err := UnmarshalSessions(data)
	if err != nil {
		r.logger.Warn("discarding unreadable snapshot", "path", r.path, "error", err)
		return nil, nil
	}
	return sessions, nil
}

// Save writes the snapshot, creating parent directories as needed. The file
// is replaced atomically.
func (r *Repository) Save(sessions []studybuddy.Session) error {
	data, err := MarshalSessions(sessions)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return writeFile(r.path, data)
}

// Export writes sessions to path in the snapshot format.
func Export(path string, sessions []studybuddy.Session) error {
	data, err := MarshalSessions(sessions)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
