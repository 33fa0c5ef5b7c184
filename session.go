package studybuddy

import "time"

// StorageKey is the fixed key under which the whole session collection is
// persisted.
const StorageKey = "studybuddy_sessions"

// Session is one plannable unit of study work.
type Session struct {
	ID            string
	Subject       string
	Topic         string
	DurationHours float64
	Priority      Priority
	DueDate       time.Time
	Resources     []string
	Notes         string
	Status        Status
	CreatedAt     time.Time
	// CompletedAt is stamped on every transition to StatusCompleted and is
	// left in place when the status later moves away from completed.
	CompletedAt *time.Time
}

// Overdue reports whether the session is not completed and its due date is
// strictly before today. today must be a date as returned by DateOf.
func (s Session) Overdue(today time.Time) bool {
	if s.Status == StatusCompleted {
		return false
	}
	return s.DueDate.Before(today)
}

// Fields returns the user-editable fields of the session.
func (s Session) Fields() Fields {
	return Fields{
		Subject:       s.Subject,
		Topic:         s.Topic,
		DurationHours: s.DurationHours,
		Priority:      s.Priority,
		DueDate:       s.DueDate,
		Resources:     append([]string(nil), s.Resources...),
		Notes:         s.Notes,
	}
}

func (s Session) clone() Session {
	c := s
	if s.Resources != nil {
		c.Resources = append([]string(nil), s.Resources...)
	}
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return c
}

// Fields holds the user-editable part of a Session, as submitted from a form
// or the command line.
type Fields struct {
	Subject       string
	Topic         string
	DurationHours float64
	Priority      Priority
	DueDate       time.Time
	Resources     []string
	Notes         string
}

// Status is the progress state of a session. Any status may transition to
// any other.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is the urgency of a session.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

// Rank returns the sort rank of the priority: 1 for urgent through 4 for low.
// Unknown priorities rank after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 1
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 4
	}
	return 5
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Rank() <= 4
}

// DateOf returns the calendar date of t, in t's location, as midnight UTC.
// Due dates and "today" are both normalized this way so they compare by day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
