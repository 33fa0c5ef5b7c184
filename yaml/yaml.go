// Package yaml encodes studybuddy sessions as YAML for exports.
package yaml

import (
	"fmt"
	"time"

	"github.com/fwojciec/studybuddy"
	"gopkg.in/yaml.v3"
)

type record struct {
	ID          string     `yaml:"id"`
	Subject     string     `yaml:"subject"`
	Topic       string     `yaml:"topic,omitempty"`
	Duration    float64    `yaml:"duration"`
	Priority    string     `yaml:"priority"`
	DueDate     string     `yaml:"dueDate"`
	Resources   []string   `yaml:"resources,omitempty"`
	Notes       string     `yaml:"notes,omitempty"`
	Status      string     `yaml:"status"`
	CreatedAt   time.Time  `yaml:"createdAt"`
	CompletedAt *time.Time `yaml:"completedAt,omitempty"`
}

// MarshalSessions serializes sessions to a YAML sequence.
func MarshalSessions(sessions []studybuddy.Session) ([]byte, error) {
	recs := make([]record, len(sessions))
	for i, s := range sessions {
		recs[i] = record{
			ID:          s.ID,
			Subject:     s.Subject,
			Topic:       s.Topic,
			Duration:    s.DurationHours,
			Priority:    string(s.Priority),
			DueDate:     s.DueDate.Format(studybuddy.DateLayout),
			Resources:   s.Resources,
			Notes:       s.Notes,
			Status:      string(s.Status),
			CreatedAt:   s.CreatedAt,
			CompletedAt: s.CompletedAt,
		}
	}
	data, err := yaml.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return data, nil
}

// UnmarshalSessions deserializes a YAML sequence written by MarshalSessions.
func UnmarshalSessions(data []byte) ([]studybuddy.Session, error) {
	var recs []record
	if err := yaml.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	sessions := make([]studybuddy.Session, len(recs))
	for i, r := range recs {
		status, err := studybuddy.ParseStatus(r.Status)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i, err)
		}
		priority, err := studybuddy.ParsePriority(r.Priority)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i, err)
		}
		due, err := studybuddy.ParseDate(r.DueDate)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i, err)
		}
		sessions[i] = studybuddy.Session{
			ID:            r.ID,
			Subject:       r.Subject,
			Topic:         r.Topic,
			DurationHours: r.Duration,
			Priority:      priority,
			DueDate:       due,
			Resources:     r.Resources,
			Notes:         r.Notes,
			Status:        status,
			CreatedAt:     r.CreatedAt,
			CompletedAt:   r.CompletedAt,
		}
	}
	return sessions, nil
}
