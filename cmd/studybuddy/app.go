package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/studybuddy"
	"github.com/fwojciec/studybuddy/badger"
	bt "github.com/fwojciec/studybuddy/bubbletea"
	"github.com/fwojciec/studybuddy/config"
	sbjson "github.com/fwojciec/studybuddy/json"
	"github.com/fwojciec/studybuddy/sqlite"
	"github.com/spf13/cobra"
)

// logFile is the name of the log file inside the data directory.
const logFile = "studybuddy.log"

// app holds what commands share: I/O, the resolved config and, once opened,
// the store and its logger.
type app struct {
	in  io.Reader
	out io.Writer
	now func() time.Time

	configPath string
	noSeed     bool

	cfg     *config.Config
	logger  *slog.Logger
	store   *studybuddy.Store
	closers []io.Closer
}

func newApp(in io.Reader, out io.Writer, now func() time.Time) *app {
	return &app{in: in, out: out, now: now}
}

// loadConfig resolves the configuration for cmd.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if a.noSeed {
		cfg.Seed = false
	}
	a.cfg = cfg
	return cfg, nil
}

// open loads the config, starts logging and opens the store, seeding it on
// first run.
func (a *app) open(cmd *cobra.Command) (*studybuddy.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	logger, err := a.openLog(cfg.DataDir, level)
	if err != nil {
		return nil, err
	}
	a.logger = logger

	repo, err := a.openRepository(cfg, logger)
	if err != nil {
		return nil, err
	}

	store := studybuddy.NewStore(repo,
		studybuddy.WithClock(a.now),
		studybuddy.WithLogger(logger),
	)
	if err := store.Open(); err != nil {
		return nil, err
	}
	if cfg.Seed {
		if err := store.Seed(a.now()); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	logger.Info("store opened", "backend", cfg.Backend, "sessions", store.Len())
	a.store = store
	return store, nil
}

// openLog writes text logs to the data directory; the TUI owns the terminal.
func (a *app) openLog(dir string, level slog.Level) (*slog.Logger, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, logFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	a.closers = append(a.closers, f)
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), nil
}

func (a *app) openRepository(cfg *config.Config, logger *slog.Logger) (studybuddy.Repository, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := sqlite.Open(filepath.Join(cfg.DataDir, "studybuddy.db"), logger)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.closers = append(a.closers, db)
		return db, nil
	case config.BackendBadger:
		db, err := badger.Open(filepath.Join(cfg.DataDir, "badger"), logger)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.closers = append(a.closers, db)
		return db, nil
	case config.BackendJSON:
		return sbjson.NewRepository(cfg.DataDir, logger), nil
	}
	return nil, fmt.Errorf("unknown backend %q: %w", cfg.Backend, studybuddy.ErrValidation)
}

// close releases the database and the log file.
func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	store, err := a.open(cmd)
	if err != nil {
		return err
	}
	m := bt.New(store, a.cfg.StudyTheme(), bt.WithClock(a.now))
	if err := bt.Run(cmd.Context(), m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// resolve finds a session by full ID or by a unique ID prefix.
func resolve(store *studybuddy.Store, ref string) (studybuddy.Session, error) {
	if sess, err := store.Get(ref); err == nil {
		return sess, nil
	}
	var matches []studybuddy.Session
	if ref != "" {
		for _, sess := range store.All() {
			if strings.HasPrefix(sess.ID, ref) {
				matches = append(matches, sess)
			}
		}
	}
	switch len(matches) {
	case 0:
		return studybuddy.Session{}, fmt.Errorf("session %q: %w", ref, studybuddy.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return studybuddy.Session{}, fmt.Errorf("session prefix %q matches %d sessions: %w",
		ref, len(matches), studybuddy.ErrValidation)
}
