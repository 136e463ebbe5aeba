package repository

import (
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// TempFileTracker remembers staging files so that the ones left behind by an
// interrupted install can be removed when the process exits.
type TempFileTracker struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

// NewTempFileTracker creates an empty tracker.
func NewTempFileTracker() *TempFileTracker {
	return &TempFileTracker{paths: make(map[string]struct{})}
}

// Track records path.
func (t *TempFileTracker) Track(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paths[path] = struct{}{}
}

// Forget drops path, typically once it has been renamed into place.
func (t *TempFileTracker) Forget(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.paths, path)
}

// Len returns the number of tracked paths.
func (t *TempFileTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.paths)
}

// Cleanup removes every tracked path. Paths that no longer exist are not errors.
func (t *TempFileTracker) Cleanup() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var result *multierror.Error
	for path := range t.paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			result = multierror.Append(result, err)
			continue
		}
		delete(t.paths, path)
	}
	if err := result.ErrorOrNil(); err != nil {
		return Wrap(errors.Join(ErrTempCleanup, err), "cleanup")
	}
	return nil
}
