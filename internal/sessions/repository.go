package sessions

import (
	"context"
	"sync"
)

// Repository provides session state persistence. Get returns nil (not an
// error) for unknown ids so expired sessions degrade into fresh anonymous
// ones.
type Repository interface {
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, s *State) error
	Delete(ctx context.Context, id string) error
}

// MemoryRepository keeps session state in a map. Used by unit tests and
// when running without Redis.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]State
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]State)}
}

func (m *MemoryRepository) Get(_ context.Context, id string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryRepository) Save(_ context.Context, s *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[s.ID] = *s
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}
