package studybuddy_test

import (
	"testing"
	"time"

	"github.com/fwojciec/studybuddy"
	"github.com/stretchr/testify/assert"
)

func TestSession_Overdue(t *testing.T) {
	t.Parallel()

	today := date(2026, 3, 10)

	t.Run("pending session due yesterday is overdue", func(t *testing.T) {
		t.Parallel()
		s := studybuddy.Session{Status: studybuddy.StatusPending, DueDate: today.AddDate(0, 0, -1)}
		assert.True(t, s.Overdue(today))
	})

	t.Run("session due today is not overdue", func(t *testing.T) {
		t.Parallel()
		s := studybuddy.Session{Status: studybuddy.StatusInProgress, DueDate: today}
		assert.False(t, s.Overdue(today))
	})

	t.Run("completed session is never overdue", func(t *testing.T) {
		t.Parallel()
		s := studybuddy.Session{Status: studybuddy.StatusCompleted, DueDate: today.AddDate(0, -1, 0)}
		assert.False(t, s.Overdue(today))
	})
}

func TestPriority_Rank(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, studybuddy.PriorityUrgent.Rank())
	assert.Equal(t, 2, studybuddy.PriorityHigh.Rank())
	assert.Equal(t, 3, studybuddy.PriorityMedium.Rank())
	assert.Equal(t, 4, studybuddy.PriorityLow.Rank())
	assert.False(t, studybuddy.Priority("critical").Valid())
}

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range studybuddy.Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, studybuddy.Status("done").Valid())
	assert.False(t, studybuddy.Status("").Valid())
}

func TestDateOf(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+9", 9*60*60)
	got := studybuddy.DateOf(time.Date(2026, 3, 10, 23, 30, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestSession_Fields(t *testing.T) {
	t.Parallel()

	s := studybuddy.Session{
		ID:            "abc",
		Subject:       "Physics",
		Topic:         "Optics",
		DurationHours: 1.5,
		Priority:      studybuddy.PriorityHigh,
		DueDate:       date(2026, 3, 10),
		Resources:     []string{"Ch. 4"},
		Notes:         "lenses",
		Status:        studybuddy.StatusCompleted,
	}
	f := s.Fields()
	assert.Equal(t, "Physics", f.Subject)
	assert.Equal(t, []string{"Ch. 4"}, f.Resources)

	f.Resources[0] = "changed"
	assert.Equal(t, "Ch. 4", s.Resources[0], "Fields must not alias the session's resources")
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
