package studybuddy

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	Urgent     int // Urgent priority badge, overdue dates
	High       int // High priority badge
	Medium     int // Medium priority badge
	Low        int // Low priority badge
	InProgress int // In-progress status
	Success    int // Completed status, notifications, progress fill
	Error      int // Error messages
	Muted      int // Status bar, secondary details
	Accent     int // Headings, selection
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Urgent:     1,
		High:       3,
		Medium:     4,
		Low:        8,
		InProgress: 6,
		Success:    2,
		Error:      1,
		Muted:      8,
		Accent:     5,
	}
}

// PriorityColor returns the theme color for a priority badge.
func (t Theme) PriorityColor(p Priority) int {
	switch p {
	case PriorityUrgent:
		return t.Urgent
	case PriorityHigh:
		return t.High
	case PriorityMedium:
		return t.Medium
	}
	return t.Low
}
