package studybuddy_test

import (
	"testing"

	"github.com/fwojciec/studybuddy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	t.Parallel()

	valid := studybuddy.RawFields{
		Subject:   "  Data Structures ",
		Topic:     "Graphs",
		Duration:  "2.5",
		Priority:  "High",
		DueDate:   "2026-03-10",
		Resources: "Textbook Ch.9, , Lecture 12 ,",
		Notes:     " BFS and DFS ",
	}

	t.Run("parses and trims valid input", func(t *testing.T) {
		t.Parallel()
		f, err := studybuddy.ParseFields(valid)
		require.NoError(t, err)
		assert.Equal(t, "Data Structures", f.Subject)
		assert.Equal(t, "Graphs", f.Topic)
		assert.Equal(t, 2.5, f.DurationHours)
		assert.Equal(t, studybuddy.PriorityHigh, f.Priority)
		assert.Equal(t, date(2026, 3, 10), f.DueDate)
		assert.Equal(t, []string{"Textbook Ch.9", "Lecture 12"}, f.Resources)
		assert.Equal(t, "BFS and DFS", f.Notes)
	})

	tests := []struct {
		name  string
		edit  func(r *studybuddy.RawFields)
		field string
	}{
		{"empty subject", func(r *studybuddy.RawFields) { r.Subject = " " }, "subject"},
		{"missing duration", func(r *studybuddy.RawFields) { r.Duration = "" }, "duration"},
		{"malformed duration", func(r *studybuddy.RawFields) { r.Duration = "two" }, "duration"},
		{"negative duration", func(r *studybuddy.RawFields) { r.Duration = "-1" }, "duration"},
		{"unknown priority", func(r *studybuddy.RawFields) { r.Priority = "asap" }, "priority"},
		{"malformed date", func(r *studybuddy.RawFields) { r.DueDate = "10/03/2026" }, "due date"},
		{"missing date", func(r *studybuddy.RawFields) { r.DueDate = "" }, "due date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw := valid
			tt.edit(&raw)
			_, err := studybuddy.ParseFields(raw)
			require.ErrorIs(t, err, studybuddy.ErrValidation)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestParseResources(t *testing.T) {
	t.Parallel()

	assert.Nil(t, studybuddy.ParseResources(""))
	assert.Nil(t, studybuddy.ParseResources(" , ,"))
	assert.Equal(t, []string{"a", "b c"}, studybuddy.ParseResources("a,  b c "))
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	s, err := studybuddy.ParseStatus("In-Progress")
	require.NoError(t, err)
	assert.Equal(t, studybuddy.StatusInProgress, s)

	_, err = studybuddy.ParseStatus("done")
	assert.ErrorIs(t, err, studybuddy.ErrValidation)
}

func TestParseFilters(t *testing.T) {
	t.Parallel()

	t.Run("all yields zero values", func(t *testing.T) {
		t.Parallel()
		s, err := studybuddy.ParseStatusFilter("all")
		require.NoError(t, err)
		assert.Empty(t, s)
		p, err := studybuddy.ParsePriorityFilter("")
		require.NoError(t, err)
		assert.Empty(t, p)
	})

	t.Run("concrete values parse", func(t *testing.T) {
		t.Parallel()
		s, err := studybuddy.ParseStatusFilter("completed")
		require.NoError(t, err)
		assert.Equal(t, studybuddy.StatusCompleted, s)
		p, err := studybuddy.ParsePriorityFilter("urgent")
		require.NoError(t, err)
		assert.Equal(t, studybuddy.PriorityUrgent, p)
	})

	t.Run("unknown values fail", func(t *testing.T) {
		t.Parallel()
		_, err := studybuddy.ParseStatusFilter("blocked")
		assert.ErrorIs(t, err, studybuddy.ErrValidation)
		_, err = studybuddy.ParsePriorityFilter("none")
		assert.ErrorIs(t, err, studybuddy.ErrValidation)
	})
}
