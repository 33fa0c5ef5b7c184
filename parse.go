package studybuddy

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the textual form of a due date.
const DateLayout = "2006-01-02"

// FilterAll is the textual sentinel that matches every status or priority.
const FilterAll = "all"

// RawFields holds session fields exactly as entered, before parsing.
type RawFields struct {
	Subject   string
	Topic     string
	Duration  string
	Priority  string
	DueDate   string
	Resources string
	Notes     string
}

// ParseFields converts raw input into validated Fields. Every failure wraps
// ErrValidation and names the offending field.
func ParseFields(raw RawFields) (Fields, error) {
	f := Fields{
		Subject:   strings.TrimSpace(raw.Subject),
		Topic:     strings.TrimSpace(raw.Topic),
		Resources: ParseResources(raw.Resources),
		Notes:     strings.TrimSpace(raw.Notes),
	}
	if f.Subject == "" {
		return Fields{}, fmt.Errorf("subject is required: %w", ErrValidation)
	}

	d, err := ParseDuration(raw.Duration)
	if err != nil {
		return Fields{}, err
	}
	f.DurationHours = d

	if f.Priority, err = ParsePriority(raw.Priority); err != nil {
		return Fields{}, err
	}
	if f.DueDate, err = ParseDate(raw.DueDate); err != nil {
		return Fields{}, err
	}
	return f, f.Validate()
}

// ParseDuration parses a positive number of hours.
func ParseDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("duration is required: %w", ErrValidation)
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("duration %q is not a number: %w", s, ErrValidation)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %g: %w", d, ErrValidation)
	}
	return d, nil
}

// ParsePriority parses one of urgent, high, medium or low (case-insensitive).
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q: %w", s, ErrValidation)
	}
	return p, nil
}

// ParseStatus parses one of pending, in-progress or completed
// (case-insensitive).
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q: %w", s, ErrValidation)
	}
	return st, nil
}

// ParseDate parses a YYYY-MM-DD due date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("due date is required: %w", ErrValidation)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("due date %q must be YYYY-MM-DD: %w", s, ErrValidation)
	}
	return t, nil
}

// ParseResources splits comma-separated input, trimming entries and dropping
// empty ones. It returns nil for blank input.
func ParseResources(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// ParseStatusFilter parses a status filter. "all" and the empty string yield
// the zero Status, which matches every session.
func ParseStatusFilter(s string) (Status, error) {
	if isAll(s) {
		return "", nil
	}
	return ParseStatus(s)
}

// ParsePriorityFilter parses a priority filter. "all" and the empty string
// yield the zero Priority, which matches every session.
func ParsePriorityFilter(s string) (Priority, error) {
	if isAll(s) {
		return "", nil
	}
	return ParsePriority(s)
}

func isAll(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, FilterAll)
}
