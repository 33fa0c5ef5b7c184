package studybuddy

import (
	"fmt"
	"time"
)

type sample struct {
	fields Fields
	status Status
}

// samples returns the first-run sample sessions with due dates
// relative to today, along with the status each should be moved to.
func samples(today time.Time) []sample {
	day := func(n int) time.Time { return DateOf(today).AddDate(0, 0, n) }
	return []sample{
		{
			fields: Fields{
				Subject:       "Data Structures",
				Topic:         "Binary Trees",
				DurationHours: 2,
				Priority:      PriorityHigh,
				DueDate:       day(1),
				Resources:     []string{"Textbook Ch.8", "Lecture Notes"},
				Notes:         "Understand tree traversals",
			},
			status: StatusPending,
		},
		{
			fields: Fields{
				Subject:       "Calculus",
				Topic:         "Integration",
				DurationHours: 1.5,
				Priority:      PriorityMedium,
				DueDate:       day(2),
				Resources:     []string{"Practice Problems"},
				Notes:         "Complete 10 integration problems",
			},
			status: StatusPending,
		},
		{
			fields: Fields{
				Subject:       "Database Systems",
				Topic:         "SQL Queries",
				DurationHours: 2,
				Priority:      PriorityUrgent,
				DueDate:       day(0),
				Resources:     []string{"Online Tutorial", "Lab Exercises"},
				Notes:         "Prepare for lab test",
			},
			status: StatusInProgress,
		},
		{
			fields: Fields{
				Subject:       "Web Development",
				Topic:         "JavaScript Arrays",
				DurationHours: 1,
				Priority:      PriorityLow,
				DueDate:       day(3),
				Resources:     []string{"MDN Docs", "Coding Exercises"},
				Notes:         "Practice array methods",
			},
			status: StatusCompleted,
		},
	}
}

// Seed fills an empty store with four sample sessions and persists them in a
// single write. It does nothing when the store already holds sessions.
func (s *Store) Seed(today time.Time) error {
	if len(s.sessions) > 0 {
		return nil
	}
	now := s.now()
	for _, smp := range samples(today) {
		if err := smp.fields.Validate(); err != nil {
			return fmt.Errorf("sample %q: %w", smp.fields.Subject, err)
		}
		sess := withFields(Session{
			ID:        s.uniqueID(),
			Status:    smp.status,
			CreatedAt: now,
		}, smp.fields)
		if smp.status == StatusCompleted {
			completed := now
			sess.CompletedAt = &completed
		}
		s.sessions = append(s.sessions, sess)
	}
	s.logger.Info("seeded sample sessions", "count", len(s.sessions))
	return s.save()
}
