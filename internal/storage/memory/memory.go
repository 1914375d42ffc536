// Package memory is an in-process storage.Storage, used by tests and by
// anything that needs a throwaway store.
package memory

import (
	"sync"

	"github.com/aanand-mishra/student-records/internal/types"
)

// Store keeps a private deep copy of the last saved mapping.
type Store struct {
	mu      sync.RWMutex
	records types.Records
	saves   int
}

// New returns a store preloaded with a copy of records (which may be nil).
func New(records types.Records) *Store {
	return &Store{records: clone(records)}
}

func (s *Store) Load() (types.Records, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.records), nil
}

func (s *Store) Save(records types.Records) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = clone(records)
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func clone(in types.Records) types.Records {
	out := make(types.Records, len(in))
	for id, rec := range in {
		out[id] = rec.Student(id).Record()
	}
	return out
}
