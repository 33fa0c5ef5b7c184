package bubbletea_test

import (
	"regexp"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/studybuddy"
	bt "github.com/fwojciec/studybuddy/bubbletea"
	"github.com/fwojciec/studybuddy/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}

// newSeededStore returns a store holding the four sample sessions, due
// relative to fixedNow.
func newSeededStore(t *testing.T) *studybuddy.Store {
	t.Helper()
	repo, _ := mock.NewMemoryRepository()
	s := studybuddy.NewStore(repo, studybuddy.WithClock(clock))
	require.NoError(t, s.Open())
	require.NoError(t, s.Seed(fixedNow))
	return s
}

// initModel creates a model over store and sends a WindowSizeMsg to
// initialize the viewport.
func initModel(t *testing.T, store *studybuddy.Store) bt.Model {
	t.Helper()
	m := bt.New(store, studybuddy.DefaultTheme(), bt.WithClock(clock))
	return updateModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// press sends a single key press.
func press(t *testing.T, m bt.Model, k string) bt.Model {
	t.Helper()
	switch k {
	case "enter":
		return updateModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return updateModel(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		return updateModel(t, m, tea.KeyMsg{Type: tea.KeyTab})
	case "space":
		return updateModel(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	}
	return updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func subjects(sessions []studybuddy.Session) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.Subject
	}
	return out
}
