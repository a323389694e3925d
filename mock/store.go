package mock

import (
	"context"
	"sync"
	"time"
)

type storeEntry struct {
	storedAt time.Time
	value    []byte
}

// Store is an instrumented in-memory restbridge.CacheStore. Tests can
// backdate entries to exercise age bounds and inject failures per
// operation.
type Store struct {
	GetErr    error // returned by every Get when set
	PutErr    error // returned by every Put when set
	RemoveErr error // returned by every Remove when set

	mu      sync.Mutex
	entries map[string]storeEntry
	gets    int
	puts    int
	removes int
}

func NewStore() *Store {
	return &Store{entries: make(map[string]storeEntry)}
}

func (s *Store) Get(_ context.Context, key string, maxAge time.Duration) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.GetErr != nil {
		return nil, false, s.GetErr
	}
	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if maxAge > 0 && time.Since(entry.storedAt) > maxAge {
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.PutErr != nil {
		return s.PutErr
	}
	s.entries[key] = storeEntry{storedAt: time.Now(), value: append([]byte(nil), value...)}
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removes++
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	delete(s.entries, key)
	return nil
}

// Backdate shifts an entry's write time into the past so age-bounded reads
// treat it as stale.
func (s *Store) Backdate(key string, age time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[key]; ok {
		entry.storedAt = time.Now().Add(-age)
		s.entries[key] = entry
	}
}

// Contains reports whether key holds an entry of any age.
func (s *Store) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	return ok
}

// Gets reports how many Get calls the store has seen, hits and misses both.
func (s *Store) Gets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets
}

// Puts reports how many Put calls the store has seen.
func (s *Store) Puts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

// Removes reports how many Remove calls the store has seen.
func (s *Store) Removes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removes
}
