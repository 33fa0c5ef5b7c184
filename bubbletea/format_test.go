package bubbletea_test

import (
	"testing"

	"github.com/fwojciec/studybuddy"
	bt "github.com/fwojciec/studybuddy/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestDueLabel(t *testing.T) {
	t.Parallel()

	today := studybuddy.DateOf(fixedNow)
	due := func(days int, status studybuddy.Status) studybuddy.Session {
		return studybuddy.Session{DueDate: today.AddDate(0, 0, days), Status: status}
	}

	tests := []struct {
		name string
		sess studybuddy.Session
		want string
	}{
		{"today", due(0, studybuddy.StatusPending), "Today"},
		{"tomorrow", due(1, studybuddy.StatusPending), "Tomorrow"},
		{"later", due(5, studybuddy.StatusPending), "Mar 15, 2026"},
		{"overdue", due(-1, studybuddy.StatusPending), "Mar 9, 2026 (Overdue!)"},
		{"completed in the past is not overdue", due(-1, studybuddy.StatusCompleted), "Mar 9, 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bt.DueLabel(tt.sess, fixedNow))
		})
	}
}

func TestHours(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2h", bt.Hours(2))
	assert.Equal(t, "1.5h", bt.Hours(1.5))
	assert.Equal(t, "0.25h", bt.Hours(0.25))
}

func TestCell(t *testing.T) {
	t.Parallel()

	t.Run("pads short text", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "ab  ", bt.Cell("ab", 4))
	})

	t.Run("truncates long text with an ellipsis", func(t *testing.T) {
		t.Parallel()
		got := bt.Cell("Database Systems", 8)
		assert.Equal(t, "Databas…", got)
	})

	t.Run("wide runes fill exactly the column", func(t *testing.T) {
		t.Parallel()
		got := bt.Cell("日本語の勉強", 5)
		assert.Equal(t, 5, runewidth.StringWidth(got))
	})

	t.Run("zero width is empty", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", bt.Cell("anything", 0))
	})
}

func TestProgressBar(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(studybuddy.DefaultTheme())

	assert.Equal(t, "██░░░░░░", stripANSI(bt.ProgressBar(styles, 0.25, 8)))
	assert.Equal(t, "░░░░", stripANSI(bt.ProgressBar(styles, 0, 4)))
	assert.Equal(t, "████", stripANSI(bt.ProgressBar(styles, 1, 4)))
	assert.Equal(t, "████", stripANSI(bt.ProgressBar(styles, 1.7, 4)))
}
