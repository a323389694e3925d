package stores

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePutGetRemove(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile(t.TempDir(), false)
	require.NoError(t, err)

	key := "https://api.test/things?a=1&b=2"
	require.NoError(t, f.Put(ctx, key, []byte("v1")))
	got, ok, err := f.Get(ctx, key, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, f.Put(ctx, key, []byte("v2")))
	got, _, _ = f.Get(ctx, key, 0)
	assert.Equal(t, []byte("v2"), got)

	_, ok, err = f.Get(ctx, "missing", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.Remove(ctx, key))
	_, ok, _ = f.Get(ctx, key, 0)
	assert.False(t, ok)
	assert.NoError(t, f.Remove(ctx, key))
}

func TestFileAgeBound(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile(t.TempDir(), false)
	require.NoError(t, err)

	require.NoError(t, f.Put(ctx, "k", []byte("v")))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(f.path("k"), old, old))

	_, ok, err := f.Get(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = f.Get(ctx, "k", 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileSyncWrites(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile(t.TempDir(), true)
	require.NoError(t, err)

	require.NoError(t, f.Put(ctx, "k", []byte("v")))
	got, ok, err := f.Get(ctx, "k", 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestFileDistinctKeysDistinctFiles(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile(t.TempDir(), false)
	require.NoError(t, err)

	require.NoError(t, f.Put(ctx, "a/b", []byte("one")))
	require.NoError(t, f.Put(ctx, "a_b", []byte("two")))

	got, _, _ := f.Get(ctx, "a/b", 0)
	assert.Equal(t, []byte("one"), got)
	got, _, _ = f.Get(ctx, "a_b", 0)
	assert.Equal(t, []byte("two"), got)
}
