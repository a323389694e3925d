// Package stores provides ready-made CacheStore implementations: an
// in-process LRU map, a SQLite database, and a filesystem directory. All of
// them are safe for concurrent use and keep stale entries around, since a
// fallback read may still want an entry that an age-bounded read rejected.
package stores

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	key      string
	storedAt time.Time
	value    []byte
}

// Memory is an in-process store with optional LRU eviction. Construct with
// NewMemory; the zero value has no backing map.
type Memory struct {
	mu         sync.Mutex
	maxEntries int
	order      *list.List // front = most recently used
	entries    map[string]*list.Element
}

// NewMemory returns a store holding at most maxEntries values; 0 means
// unbounded. Reads refresh recency, so eviction drops the least recently
// used entry first.
func NewMemory(maxEntries int) *Memory {
	return &Memory{
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
	}
}

func (m *Memory) Get(_ context.Context, key string, maxAge time.Duration) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	el, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	entry := el.Value.(*memoryEntry)
	if maxAge > 0 && time.Since(entry.storedAt) > maxAge {
		// Too old for this read, but a looser read may still want it.
		return nil, false, nil
	}
	m.order.MoveToFront(el)
	return append([]byte(nil), entry.value...), true, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := append([]byte(nil), value...)
	if el, ok := m.entries[key]; ok {
		entry := el.Value.(*memoryEntry)
		entry.storedAt = time.Now()
		entry.value = stored
		m.order.MoveToFront(el)
		return nil
	}
	m.entries[key] = m.order.PushFront(&memoryEntry{key: key, storedAt: time.Now(), value: stored})
	if m.maxEntries > 0 && m.order.Len() > m.maxEntries {
		if oldest := m.order.Back(); oldest != nil {
			m.order.Remove(oldest)
			delete(m.entries, oldest.Value.(*memoryEntry).key)
		}
	}
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.entries[key]; ok {
		m.order.Remove(el)
		delete(m.entries, key)
	}
	return nil
}

// Len reports the number of stored entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
