package studybuddy

import (
	"fmt"
	"strings"
)

// Validate checks the constraints a session must satisfy before it enters the
// store.
func (f Fields) Validate() error {
	if strings.TrimSpace(f.Subject) == "" {
		return fmt.Errorf("subject is required: %w", ErrValidation)
	}
	if f.DurationHours <= 0 {
		return fmt.Errorf("duration must be positive, got %g: %w", f.DurationHours, ErrValidation)
	}
	if !f.Priority.Valid() {
		return fmt.Errorf("unknown priority %q: %w", f.Priority, ErrValidation)
	}
	if f.DueDate.IsZero() {
		return fmt.Errorf("due date is required: %w", ErrValidation)
	}
	return nil
}
