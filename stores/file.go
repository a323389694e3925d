package stores

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
)

// File keeps each entry in its own file under a directory, named by the
// blake2b-256 hash of the key so arbitrary keys map to safe filenames.
// Entry age comes from the file's modification time. Writes go through a
// temp file and an atomic rename, so concurrent readers never observe a
// partial entry.
type File struct {
	dir        string
	syncWrites bool
}

// NewFile prepares dir, creating it if needed. With syncWrites set every
// Put fsyncs before publishing, trading throughput for durability.
func NewFile(dir string, syncWrites bool) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &File{dir: dir, syncWrites: syncWrites}, nil
}

func (f *File) path(key string) string {
	sum := blake2b.Sum256([]byte(key))
	return filepath.Join(f.dir, hex.EncodeToString(sum[:])+".cache")
}

func (f *File) Get(_ context.Context, key string, maxAge time.Duration) ([]byte, bool, error) {
	path := f.path(key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if maxAge > 0 && time.Since(info.ModTime()) > maxAge {
		return nil, false, nil
	}
	value, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// Removed between stat and read.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (f *File) Put(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".put-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if f.syncWrites {
		if err := tmp.Sync(); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}

func (f *File) Remove(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
