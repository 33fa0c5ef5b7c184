package studybuddy

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Store owns the in-memory session collection and writes it through to a
// Repository after every mutation. A Store is not safe for concurrent use.
type Store struct {
	repo   Repository
	now    func() time.Time
	newID  func() string
	logger *slog.Logger

	sessions []Session
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the time source used for CreatedAt and CompletedAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the function that produces new session IDs. The store
// retries when a generated ID is already taken.
func WithIDGenerator(newID func() string) StoreOption {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithLogger sets the logger. If nil or not set, log output is discarded.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty Store backed by repo. Call Open to load the
// persisted snapshot.
func NewStore(repo Repository, opts ...StoreOption) *Store {
	s := &Store{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Open replaces the in-memory collection with the repository snapshot. Later
// records repeating an earlier ID are dropped.
func (s *Store) Open() error {
	sessions, err := s.repo.Load()
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	seen := make(map[string]bool, len(sessions))
	s.sessions = sessions[:0]
	for _, sess := range sessions {
		if seen[sess.ID] {
			s.logger.Warn("dropping duplicate session", "id", sess.ID)
			continue
		}
		seen[sess.ID] = true
		s.sessions = append(s.sessions, sess)
	}
	s.logger.Debug("sessions loaded", "count", len(s.sessions))
	return nil
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []Session {
	out := make([]Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = sess.clone()
	}
	return out
}

// Len returns the number of sessions in the collection.
func (s *Store) Len() int { return len(s.sessions) }

// Get returns the session with the given ID.
func (s *Store) Get(id string) (Session, error) {
	i := s.index(id)
	if i < 0 {
		return Session{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return s.sessions[i].clone(), nil
}

// Add creates a pending session from f, appends it and persists the
// collection.
func (s *Store) Add(f Fields) (Session, error) {
	if err := f.Validate(); err != nil {
		return Session{}, err
	}
	sess := Session{
		ID:        s.uniqueID(),
		Status:    StatusPending,
		CreatedAt: s.now(),
	}
	sess = withFields(sess, f)
	s.sessions = append(s.sessions, sess)
	s.logger.Debug("session added", "id", sess.ID, "subject", sess.Subject)
	if err := s.save(); err != nil {
		return Session{}, err
	}
	return sess.clone(), nil
}

// Update replaces the editable fields of an existing session. ID, status,
// timestamps and position in the collection are kept.
func (s *Store) Update(id string, f Fields) (Session, error) {
	i := s.index(id)
	if i < 0 {
		return Session{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	if err := f.Validate(); err != nil {
		return Session{}, err
	}
	s.sessions[i] = withFields(s.sessions[i], f)
	s.logger.Debug("session updated", "id", id)
	if err := s.save(); err != nil {
		return Session{}, err
	}
	return s.sessions[i].clone(), nil
}

// UpdateStatus sets the status of a session. A transition to
// StatusCompleted stamps CompletedAt; other transitions leave it untouched.
func (s *Store) UpdateStatus(id string, status Status) (Session, error) {
	if !status.Valid() {
		return Session{}, fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}
	i := s.index(id)
	if i < 0 {
		return Session{}, fmt.Errorf("update status of %q: %w", id, ErrNotFound)
	}
	s.sessions[i].Status = status
	if status == StatusCompleted {
		now := s.now()
		s.sessions[i].CompletedAt = &now
	}
	s.logger.Debug("session status changed", "id", id, "status", status)
	if err := s.save(); err != nil {
		return Session{}, err
	}
	return s.sessions[i].clone(), nil
}

// Delete removes the session with the given ID. Deleting an unknown ID is
// not an error; the collection is persisted either way.
func (s *Store) Delete(id string) error {
	if i := s.index(id); i >= 0 {
		s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
		s.logger.Debug("session deleted", "id", id)
	}
	return s.save()
}

// ClearCompleted removes every completed session and reports how many were
// removed.
func (s *Store) ClearCompleted() (int, error) {
	kept := s.sessions[:0]
	for _, sess := range s.sessions {
		if sess.Status != StatusCompleted {
			kept = append(kept, sess)
		}
	}
	removed := len(s.sessions) - len(kept)
	clear(s.sessions[len(kept):])
	s.sessions = kept
	s.logger.Debug("completed sessions cleared", "removed", removed)
	return removed, s.save()
}

// ClearAll empties the collection.
func (s *Store) ClearAll() error {
	s.sessions = nil
	s.logger.Debug("all sessions cleared")
	return s.save()
}

// Import appends the given sessions, skipping any whose ID is already
// present or whose fields fail validation, and reports how many were added.
// Nothing is persisted when no session is added.
func (s *Store) Import(sessions []Session) (int, error) {
	seen := make(map[string]bool, len(s.sessions))
	for _, sess := range s.sessions {
		seen[sess.ID] = true
	}
	added := 0
	for _, sess := range sessions {
		if sess.ID == "" || seen[sess.ID] || !sess.Status.Valid() {
			continue
		}
		if err := sess.Fields().Validate(); err != nil {
			s.logger.Warn("skipping invalid session", "id", sess.ID, "error", err)
			continue
		}
		seen[sess.ID] = true
		sess = sess.clone()
		sess.DueDate = DateOf(sess.DueDate)
		s.sessions = append(s.sessions, sess)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	s.logger.Debug("sessions imported", "added", added)
	return added, s.save()
}

func (s *Store) save() error {
	if err := s.repo.Save(s.All()); err != nil {
		s.logger.Error("save sessions", "error", err)
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}

func (s *Store) index(id string) int {
	for i, sess := range s.sessions {
		if sess.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.index(id) < 0 {
			return id
		}
	}
}

func withFields(sess Session, f Fields) Session {
	sess.Subject = f.Subject
	sess.Topic = f.Topic
	sess.DurationHours = f.DurationHours
	sess.Priority = f.Priority
	sess.DueDate = DateOf(f.DueDate)
	sess.Resources = append([]string(nil), f.Resources...)
	sess.Notes = f.Notes
	return sess
}
