package medium

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// File implements Medium with one file per key under a root directory.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a half-written value behind.
type File struct {
	root string
}

// NewFile creates a file-backed medium rooted at dir, creating it if
// needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("file medium: %w", errors.New("root directory required"))
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("file medium: create root: %w", err)
	}
	return &File{root: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.root, key+".json")
}

// Get reads the file for key.
func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	start := time.Now()
	defer observeOp("get", start)

	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("file medium: read %s: %w", key, err)
	}
	return b, nil
}

// Put writes value atomically via temp file + rename.
func (f *File) Put(_ context.Context, key string, value []byte) error {
	start := time.Now()
	defer observeOp("put", start)

	tmp, err := os.CreateTemp(f.root, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("file medium: temp for %s: %w", key, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return fmt.Errorf("file medium: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("file medium: close %s: %w", key, err)
	}
	if err := os.Rename(name, f.path(key)); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("file medium: rename %s: %w", key, err)
	}
	return nil
}

// Close is a no-op for the file driver.
func (f *File) Close() error { return nil }
