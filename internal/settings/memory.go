package settings

import (
	"context"
	"sync"
)

// MemoryRepository is a map-backed Repository used in unit tests and when
// running without a database.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]string)}
}

func (m *MemoryRepository) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.store[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryRepository) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}
