package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backdateMemory(m *Memory, key string, age time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.entries[key]; ok {
		el.Value.(*memoryEntry).storedAt = time.Now().Add(-age)
	}
}

func TestMemoryPutGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)
	require.NoError(t, m.Put(ctx, "k", []byte("v1")))

	got, ok, err := m.Get(ctx, "k", 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), got)

	// the returned slice is a copy, mutating it must not poison the store
	got[0] = 'X'
	again, _, _ := m.Get(ctx, "k", 0)
	assert.Equal(t, []byte("v1"), again)

	_, ok, err = m.Get(ctx, "absent", 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryAgeBound(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)
	require.NoError(t, m.Put(ctx, "k", []byte("v")))
	backdateMemory(m, "k", time.Hour)

	_, ok, err := m.Get(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// stale for a bounded read, still present for an unbounded one
	_, ok, err = m.Get(ctx, "k", 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLRUEviction(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2)
	require.NoError(t, m.Put(ctx, "a", []byte("1")))
	require.NoError(t, m.Put(ctx, "b", []byte("2")))

	// touch a so b becomes the eviction candidate
	_, ok, _ := m.Get(ctx, "a", 0)
	require.True(t, ok)

	require.NoError(t, m.Put(ctx, "c", []byte("3")))
	assert.Equal(t, 2, m.Len())

	_, ok, _ = m.Get(ctx, "b", 0)
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "a", 0)
	assert.True(t, ok)
	_, ok, _ = m.Get(ctx, "c", 0)
	assert.True(t, ok)
}

func TestMemoryRemove(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)
	require.NoError(t, m.Put(ctx, "k", []byte("v")))
	require.NoError(t, m.Remove(ctx, "k"))

	_, ok, _ := m.Get(ctx, "k", 0)
	assert.False(t, ok)
	assert.NoError(t, m.Remove(ctx, "k"))
	assert.Equal(t, 0, m.Len())
}

func TestMemoryUpdateRefreshesAge(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)
	require.NoError(t, m.Put(ctx, "k", []byte("old")))
	backdateMemory(m, "k", time.Hour)
	require.NoError(t, m.Put(ctx, "k", []byte("new")))

	got, ok, err := m.Get(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
	assert.Equal(t, 1, m.Len())
}
