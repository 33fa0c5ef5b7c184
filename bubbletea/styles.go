package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/studybuddy"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Title      lipgloss.Style
	Label      lipgloss.Style
	Selected   lipgloss.Style
	Overdue    lipgloss.Style
	InProgress lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Muted      lipgloss.Style
	Accent     lipgloss.Style
	Notice     lipgloss.Style

	theme studybuddy.Theme
}

// NewStyles creates Styles from a Theme.
func NewStyles(t studybuddy.Theme) Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Label:      lipgloss.NewStyle().Bold(true),
		Selected:   lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Overdue:    lipgloss.NewStyle().Foreground(ansiColor(t.Urgent)).Bold(true),
		InProgress: lipgloss.NewStyle().Foreground(ansiColor(t.InProgress)),
		Error:      lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success:    lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:      lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:     lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Notice:     lipgloss.NewStyle().Foreground(ansiColor(t.Success)).Bold(true),
		theme:      t,
	}
}

// Priority returns the badge style for a priority.
func (s Styles) Priority(p studybuddy.Priority) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(ansiColor(s.theme.PriorityColor(p)))
	if p == studybuddy.PriorityUrgent {
		st = st.Bold(true)
	}
	return st
}

// Status returns the style for a status label.
func (s Styles) Status(st studybuddy.Status) lipgloss.Style {
	switch st {
	case studybuddy.StatusCompleted:
		return s.Success
	case studybuddy.StatusInProgress:
		return s.InProgress
	}
	return s.Muted
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
