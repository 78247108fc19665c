package stats

import "sync/atomic"

// Store holds the current snapshot and swaps it atomically
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store seeded with an empty snapshot
func NewStore() *Store {
	s := &Store{}
	s.current.Store(Empty())
	return s
}

// Load returns the current snapshot. Callers keep it for a whole scoring pass.
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

// Swap installs a new snapshot and returns the previous one
func (s *Store) Swap(next *Snapshot) *Snapshot {
	if next == nil {
		next = Empty()
	}
	return s.current.Swap(next)
}

// Ready reports whether a built (non-empty) snapshot is installed
func (s *Store) Ready() bool {
	return s.current.Load().Runs() > 0
}
