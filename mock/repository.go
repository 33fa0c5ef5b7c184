// Package mock provides test doubles for studybuddy interfaces using function
// fields.
package mock

import "github.com/fwojciec/studybuddy"

// Interface compliance check.
var _ studybuddy.Repository = (*Repository)(nil)

// Repository is a test double for studybuddy.Repository.
// Set LoadFn and SaveFn before calling the corresponding methods.
type Repository struct {
	LoadFn func() ([]studybuddy.Session, error)
	SaveFn func(sessions []studybuddy.Session) error
}

// Load delegates to LoadFn.
func (r *Repository) Load() ([]studybuddy.Session, error) {
	return r.LoadFn()
}

// Save delegates to SaveFn.
func (r *Repository) Save(sessions []studybuddy.Session) error {
	return r.SaveFn(sessions)
}

// NewMemoryRepository returns a Repository that keeps the last saved
// snapshot in memory, starting from initial. Saved reports how many times
// Save has been called.
func NewMemoryRepository(initial ...studybuddy.Session) (repo *Repository, saved func() int) {
	snapshot := initial
	saves := 0
	repo = &Repository{
		LoadFn: func() ([]studybuddy.Session, error) {
			return append([]studybuddy.Session(nil), snapshot...), nil
		},
		SaveFn: func(sessions []studybuddy.Session) error {
			snapshot = sessions
			saves++
			return nil
		},
	}
	return repo, func() int { return saves }
}
