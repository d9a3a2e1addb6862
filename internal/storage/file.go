package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps all values in one JSON object on disk. Writes go to a
// temporary file that is renamed over the original.
type FileStore struct {
	mu     sync.Mutex
	path   string
	closed bool
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("storage: file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("storage: creating %s: %w", filepath.Dir(path), err)
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return "", false, ErrClosed
	}
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileStore) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *FileStore) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	values, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.write(values)
}

func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *FileStore) read() (map[string]string, error) {
	values := map[string]string{}
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: reading %s: %w", f.path, err)
	}
	if len(b) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("storage: decoding %s: %w", f.path, err)
	}
	return values, nil
}

func (f *FileStore) write(values map[string]string) error {
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("storage: writing %s: %w", tmp, err)
	}
	return os.Rename(tmp, f.path)
}
