package studybuddy

// Repository persists the whole session collection as a single snapshot
// stored under StorageKey.
//
// Load returns the previously saved snapshot, or an empty collection when
// nothing has been saved yet. Implementations treat an unreadable snapshot
// the same way and report it through their logger instead of failing.
//
// Save overwrites the stored snapshot unconditionally.
type Repository interface {
	Load() ([]Session, error)
	Save(sessions []Session) error
}
