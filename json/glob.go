package json

import (
	"fmt"
	iofs "io/fs"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/studybuddy"
)

// ReadGlob decodes every file in fsys matching pattern (which may use ** for
// recursive matching) and returns their sessions in path order. A pattern
// matching no files is an error.
func ReadGlob(fsys iofs.FS, pattern string) ([]studybuddy.Session, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	var paths []string
	err := doublestar.GlobWalk(fsys, pattern, func(path string, d iofs.DirEntry) error {
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match pattern: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files match %s: %w", pattern, studybuddy.ErrNotFound)
	}
	sort.Strings(paths)

	var sessions []studybuddy.Session
	for _, p := range paths {
		data, err := iofs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		got, err := UnmarshalSessions(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		sessions = append(sessions, got...)
	}
	return sessions, nil
}
