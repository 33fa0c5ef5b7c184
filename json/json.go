// Package json persists studybuddy sessions as a JSON array, either in a
// file-backed Repository or through the codec used by other backends.
package json

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/studybuddy"
)

// record is the wire format of one persisted session. Field names follow the
// snapshot format written by earlier versions of the planner.
type record struct {
	ID          string     `json:"id"`
	Subject     string     `json:"subject"`
	Topic       string     `json:"topic"`
	Duration    float64    `json:"duration"`
	Priority    string     `json:"priority"`
	DueDate     string     `json:"dueDate"`
	Resources   []string   `json:"resources"`
	Notes       string     `json:"notes"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// MarshalSessions serializes sessions to an indented JSON array.
func MarshalSessions(sessions []studybuddy.Session) ([]byte, error) {
	recs := make([]record, len(sessions))
	for i, s := range sessions {
		recs[i] = toRecord(s)
	}
	return json.MarshalIndent(recs, "", "  ")
}

// UnmarshalSessions deserializes a JSON array of sessions. Records with an
// unknown status or priority, or a malformed due date, are rejected.
func UnmarshalSessions(data []byte) ([]studybuddy.Session, error) {
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("unmarshal sessions: %w", err)
	}
	sessions := make([]studybuddy.Session, len(recs))
	for i, r := range recs {
		s, err := fromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i, err)
		}
		sessions[i] = s
	}
	return sessions, nil
}

func toRecord(s studybuddy.Session) record {
	resources := s.Resources
	if resources == nil {
		resources = []string{}
	}
	return record{
		ID:          s.ID,
		Subject:     s.Subject,
		Topic:       s.Topic,
		Duration:    s.DurationHours,
		Priority:    string(s.Priority),
		DueDate:     s.DueDate.Format(studybuddy.DateLayout),
		Resources:   resources,
		Notes:       s.Notes,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		CompletedAt: s.CompletedAt,
	}
}

func fromRecord(r record) (studybuddy.Session, error) {
	status := studybuddy.Status(r.Status)
	if !status.Valid() {
		return studybuddy.Session{}, fmt.Errorf("unknown status %q", r.Status)
	}
	priority := studybuddy.Priority(r.Priority)
	if !priority.Valid() {
		return studybuddy.Session{}, fmt.Errorf("unknown priority %q", r.Priority)
	}
	due, err := time.Parse(studybuddy.DateLayout, r.DueDate)
	if err != nil {
		return studybuddy.Session{}, fmt.Errorf("parse due date: %w", err)
	}
	var resources []string
	if len(r.Resources) > 0 {
		resources = r.Resources
	}
	return studybuddy.Session{
		ID:            r.ID,
		Subject:       r.Subject,
		Topic:         r.Topic,
		DurationHours: r.Duration,
		Priority:      priority,
		DueDate:       due,
		Resources:     resources,
		Notes:         r.Notes,
		Status:        status,
		CreatedAt:     r.CreatedAt,
		CompletedAt:   r.CompletedAt,
	}, nil
}
