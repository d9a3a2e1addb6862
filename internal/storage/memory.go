package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps values for the life of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.values = nil
	return nil
}
