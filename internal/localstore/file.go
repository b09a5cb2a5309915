package localstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
)

type fileData struct {
	Entries map[string]string `toml:"entries"`
}

// File is a Storage backed by a TOML document on disk. Every write rewrites the
// whole file through a temporary file and a rename.
type File struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// OpenFile loads path, creating nothing until the first write. A missing file is
// an empty store.
func OpenFile(path string, logger *slog.Logger) (*File, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f := &File{path: path, entries: make(map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file %s: %w", path, err)
	}

	var fd fileData
	md, err := toml.Decode(string(data), &fd)
	if err != nil {
		return nil, fmt.Errorf("failed to parse storage file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logger.Warn("storage file contains undecoded keys", "path", path, "keys", keys)
	}
	if fd.Entries != nil {
		f.entries = fd.Entries
	}
	return f, nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.entries[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.entries[key]
	f.entries[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.entries[key] = prev
		} else {
			delete(f.entries, key)
		}
		return err
	}
	return nil
}

func (f *File) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.entries[key]
	if !had {
		return nil
	}
	delete(f.entries, key)
	if err := f.flush(); err != nil {
		f.entries[key] = prev
		return err
	}
	return nil
}

// Keys lists the stored keys in sorted order.
func (f *File) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.entries))
	for k := range f.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f *File) flush() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".storage-*.toml")
	if err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(fileData{Entries: f.entries}); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace storage file %s: %w", f.path, err)
	}
	return nil
}
