package list

import (
	"sync"

	"github.com/google/uuid"
)

// locker serializes mutations per list so rank allocation and reorders on the
// same list never interleave. Different lists proceed concurrently.
type locker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newLocker() *locker {
	return &locker{locks: make(map[uuid.UUID]*lockEntry)}
}

// Lock acquires the mutex for a list and returns its release function.
// Entries are reference counted and dropped once the last holder releases,
// so the map does not grow with every list ever touched.
func (l *locker) Lock(listID uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.locks[listID]
	if !ok {
		entry = &lockEntry{}
		l.locks[listID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, listID)
		}
		l.mu.Unlock()
	}
}
