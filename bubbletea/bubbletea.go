// Package bubbletea provides a Bubble Tea TUI for browsing and editing
// study sessions.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. When ctx is cancelled the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// noticeExpiredMsg clears the notification it was scheduled for.
type noticeExpiredMsg struct {
	seq int
}
