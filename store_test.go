package studybuddy_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/studybuddy"
	"github.com/fwojciec/studybuddy/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// newTestStore returns an opened store over an in-memory repository with a
// fixed clock and sequential IDs.
func newTestStore(t *testing.T, initial ...studybuddy.Session) (*studybuddy.Store, *mock.Repository, func() int) {
	t.Helper()
	repo, saved := mock.NewMemoryRepository(initial...)
	n := 0
	s := studybuddy.NewStore(repo,
		studybuddy.WithClock(func() time.Time { return fixedNow }),
		studybuddy.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	require.NoError(t, s.Open())
	return s, repo, saved
}

func TestStore_Open(t *testing.T) {
	t.Parallel()

	t.Run("loads the persisted snapshot", func(t *testing.T) {
		t.Parallel()
		s, _, saved := newTestStore(t, studybuddy.Session{ID: "a", Subject: "Math"})
		require.Len(t, s.All(), 1)
		assert.Equal(t, "Math", s.All()[0].Subject)
		assert.Equal(t, 0, saved())
	})

	t.Run("returns load error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("disk on fire")
		repo := &mock.Repository{
			LoadFn: func() ([]studybuddy.Session, error) { return nil, wantErr },
		}
		err := studybuddy.NewStore(repo).Open()
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("drops repeated ids", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t,
			studybuddy.Session{ID: "a", Subject: "Math"},
			studybuddy.Session{ID: "b", Subject: "Biology"},
			studybuddy.Session{ID: "a", Subject: "Math copy"},
		)
		require.Equal(t, 2, s.Len())

		got, err := s.Get("a")
		require.NoError(t, err)
		assert.Equal(t, "Math", got.Subject)

		require.NoError(t, s.Delete("a"))
		_, err = s.Get("a")
		assert.ErrorIs(t, err, studybuddy.ErrNotFound)
	})
}

func TestStore_Add(t *testing.T) {
	t.Parallel()

	t.Run("creates a pending session and persists", func(t *testing.T) {
		t.Parallel()
		s, repo, saved := newTestStore(t)
		f := validFields()
		f.Resources = []string{"notes"}

		got, err := s.Add(f)
		require.NoError(t, err)
		assert.Equal(t, "id-1", got.ID)
		assert.Equal(t, studybuddy.StatusPending, got.Status)
		assert.Equal(t, fixedNow, got.CreatedAt)
		assert.Nil(t, got.CompletedAt)
		assert.Equal(t, []string{"notes"}, got.Resources)

		assert.Equal(t, 1, saved())
		persisted, err := repo.Load()
		require.NoError(t, err)
		require.Len(t, persisted, 1)
		assert.Equal(t, got.ID, persisted[0].ID)
	})

	t.Run("rejects empty subject without persisting", func(t *testing.T) {
		t.Parallel()
		s, _, saved := newTestStore(t)
		f := validFields()
		f.Subject = ""
		_, err := s.Add(f)
		assert.ErrorIs(t, err, studybuddy.ErrValidation)
		assert.Empty(t, s.All())
		assert.Equal(t, 0, saved())
	})

	t.Run("ids are unique even when the generator repeats", func(t *testing.T) {
		t.Parallel()
		ids := []string{"dup", "dup", "dup", "other"}
		repo, _ := mock.NewMemoryRepository()
		s := studybuddy.NewStore(repo, studybuddy.WithIDGenerator(func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		}))
		require.NoError(t, s.Open())

		a, err := s.Add(validFields())
		require.NoError(t, err)
		b, err := s.Add(validFields())
		require.NoError(t, err)
		assert.Equal(t, "dup", a.ID)
		assert.Equal(t, "other", b.ID)
	})

	t.Run("default generator yields distinct ids", func(t *testing.T) {
		t.Parallel()
		repo, _ := mock.NewMemoryRepository()
		s := studybuddy.NewStore(repo)
		require.NoError(t, s.Open())
		seen := map[string]bool{}
		for range 50 {
			sess, err := s.Add(validFields())
			require.NoError(t, err)
			assert.False(t, seen[sess.ID], "duplicate id %s", sess.ID)
			seen[sess.ID] = true
		}
	})

	t.Run("save failure bubbles and keeps memory state", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("quota exceeded")
		repo := &mock.Repository{
			LoadFn: func() ([]studybuddy.Session, error) { return nil, nil },
			SaveFn: func([]studybuddy.Session) error { return wantErr },
		}
		s := studybuddy.NewStore(repo)
		require.NoError(t, s.Open())
		_, err := s.Add(validFields())
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("returned session does not alias store state", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		f := validFields()
		f.Resources = []string{"a"}
		got, err := s.Add(f)
		require.NoError(t, err)
		got.Resources[0] = "mutated"
		assert.Equal(t, "a", s.All()[0].Resources[0])
	})
}

func TestStore_UpdateStatus(t *testing.T) {
	t.Parallel()

	t.Run("completing stamps CompletedAt", func(t *testing.T) {
		t.Parallel()
		s, _, saved := newTestStore(t)
		sess, err := s.Add(validFields())
		require.NoError(t, err)

		got, err := s.UpdateStatus(sess.ID, studybuddy.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, studybuddy.StatusCompleted, got.Status)
		require.NotNil(t, got.CompletedAt)
		assert.Equal(t, fixedNow, *got.CompletedAt)
		assert.Equal(t, 2, saved())
	})

	t.Run("moving back to pending keeps CompletedAt", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		sess, err := s.Add(validFields())
		require.NoError(t, err)
		_, err = s.UpdateStatus(sess.ID, studybuddy.StatusCompleted)
		require.NoError(t, err)

		got, err := s.UpdateStatus(sess.ID, studybuddy.StatusPending)
		require.NoError(t, err)
		assert.Equal(t, studybuddy.StatusPending, got.Status)
		assert.NotNil(t, got.CompletedAt)
	})

	t.Run("any status reaches any other", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		sess, err := s.Add(validFields())
		require.NoError(t, err)
		for _, from := range studybuddy.Statuses {
			for _, to := range studybuddy.Statuses {
				_, err := s.UpdateStatus(sess.ID, from)
				require.NoError(t, err)
				got, err := s.UpdateStatus(sess.ID, to)
				require.NoError(t, err)
				assert.Equal(t, to, got.Status)
			}
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		s, _, saved := newTestStore(t)
		_, err := s.UpdateStatus("missing", studybuddy.StatusCompleted)
		assert.ErrorIs(t, err, studybuddy.ErrNotFound)
		assert.Equal(t, 0, saved())
	})

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		sess, err := s.Add(validFields())
		require.NoError(t, err)
		_, err = s.UpdateStatus(sess.ID, "archived")
		assert.ErrorIs(t, err, studybuddy.ErrValidation)
	})
}

func TestStore_Update(t *testing.T) {
	t.Parallel()

	t.Run("replaces fields and keeps identity", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		first, err := s.Add(validFields())
		require.NoError(t, err)
		_, err = s.Add(validFields())
		require.NoError(t, err)
		_, err = s.UpdateStatus(first.ID, studybuddy.StatusCompleted)
		require.NoError(t, err)

		f := validFields()
		f.Subject = "Linear Algebra"
		f.Priority = studybuddy.PriorityUrgent
		got, err := s.Update(first.ID, f)
		require.NoError(t, err)

		assert.Equal(t, first.ID, got.ID)
		assert.Equal(t, "Linear Algebra", got.Subject)
		assert.Equal(t, studybuddy.PriorityUrgent, got.Priority)
		assert.Equal(t, studybuddy.StatusCompleted, got.Status)
		assert.Equal(t, first.CreatedAt, got.CreatedAt)
		assert.NotNil(t, got.CompletedAt)
		assert.Equal(t, first.ID, s.All()[0].ID, "position is preserved")
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		_, err := s.Update("missing", validFields())
		assert.ErrorIs(t, err, studybuddy.ErrNotFound)
	})

	t.Run("invalid fields", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		sess, err := s.Add(validFields())
		require.NoError(t, err)
		f := validFields()
		f.Subject = ""
		_, err = s.Update(sess.ID, f)
		assert.ErrorIs(t, err, studybuddy.ErrValidation)
		got, err := s.Get(sess.ID)
		require.NoError(t, err)
		assert.Equal(t, "Math", got.Subject)
	})
}

func TestStore_Get(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestStore(t, studybuddy.Session{ID: "a", Subject: "Math"})
	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "Math", got.Subject)

	_, err = s.Get("b")
	assert.ErrorIs(t, err, studybuddy.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	t.Run("removes the session", func(t *testing.T) {
		t.Parallel()
		s, _, saved := newTestStore(t,
			studybuddy.Session{ID: "a"}, studybuddy.Session{ID: "b"}, studybuddy.Session{ID: "c"})
		require.NoError(t, s.Delete("b"))
		ids := []string{}
		for _, sess := range s.All() {
			ids = append(ids, sess.ID)
		}
		assert.Equal(t, []string{"a", "c"}, ids)
		assert.Equal(t, 1, saved())
	})

	t.Run("unknown id is a silent no-op", func(t *testing.T) {
		t.Parallel()
		s, _, saved := newTestStore(t, studybuddy.Session{ID: "a"})
		require.NoError(t, s.Delete("zzz"))
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, 1, saved())
	})
}

func TestStore_ClearCompleted(t *testing.T) {
	t.Parallel()

	s, repo, _ := newTestStore(t,
		studybuddy.Session{ID: "a", Status: studybuddy.StatusPending},
		studybuddy.Session{ID: "b", Status: studybuddy.StatusCompleted},
		studybuddy.Session{ID: "c", Status: studybuddy.StatusInProgress},
	)
	removed, err := s.ClearCompleted()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	all := s.All()
	require.Len(t, all, 2)
	for _, sess := range all {
		assert.NotEqual(t, studybuddy.StatusCompleted, sess.Status)
	}
	persisted, err := repo.Load()
	require.NoError(t, err)
	assert.Len(t, persisted, 2)
}

func TestStore_ClearAll(t *testing.T) {
	t.Parallel()

	s, repo, saved := newTestStore(t, studybuddy.Session{ID: "a"}, studybuddy.Session{ID: "b"})
	require.NoError(t, s.ClearAll())
	assert.Empty(t, s.All())
	assert.Equal(t, 1, saved())
	persisted, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func importable(id string, status studybuddy.Status) studybuddy.Session {
	return studybuddy.Session{
		ID:            id,
		Subject:       "Subject " + id,
		DurationHours: 1,
		Priority:      studybuddy.PriorityMedium,
		DueDate:       fixedNow,
		Status:        status,
		CreatedAt:     fixedNow,
	}
}

func TestStore_Import(t *testing.T) {
	t.Parallel()

	t.Run("adds unseen sessions only", func(t *testing.T) {
		t.Parallel()
		s, _, saved := newTestStore(t, importable("a", studybuddy.StatusPending))
		added, err := s.Import([]studybuddy.Session{
			importable("a", studybuddy.StatusPending),
			importable("b", studybuddy.StatusCompleted),
			importable("b", studybuddy.StatusPending),
			importable("", studybuddy.StatusPending),
			importable("c", "weird"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, added)
		assert.Equal(t, 2, s.Len())
		assert.Equal(t, 1, saved())
	})

	t.Run("skips records that fail validation", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)

		blank := importable("blank", studybuddy.StatusPending)
		blank.Subject = "  "
		negative := importable("negative", studybuddy.StatusPending)
		negative.DurationHours = -3
		undated := importable("undated", studybuddy.StatusPending)
		undated.DueDate = time.Time{}
		badPriority := importable("bad-priority", studybuddy.StatusPending)
		badPriority.Priority = "whenever"

		added, err := s.Import([]studybuddy.Session{
			blank, negative, undated, badPriority,
			importable("ok", studybuddy.StatusPending),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, added)
		require.Equal(t, 1, s.Len())
		assert.Equal(t, "ok", s.All()[0].ID)
		assert.Equal(t, 1.0, studybuddy.ComputeStats(s.All()).TotalHours)
	})

	t.Run("normalizes due dates to midnight", func(t *testing.T) {
		t.Parallel()
		s, _, _ := newTestStore(t)
		_, err := s.Import([]studybuddy.Session{importable("a", studybuddy.StatusPending)})
		require.NoError(t, err)
		got, err := s.Get("a")
		require.NoError(t, err)
		assert.Equal(t, studybuddy.DateOf(fixedNow), got.DueDate)
	})

	t.Run("nothing new skips the write", func(t *testing.T) {
		t.Parallel()
		s, _, saved := newTestStore(t, importable("a", studybuddy.StatusPending))
		added, err := s.Import([]studybuddy.Session{importable("a", studybuddy.StatusPending)})
		require.NoError(t, err)
		assert.Zero(t, added)
		assert.Equal(t, 0, saved())
	})
}
