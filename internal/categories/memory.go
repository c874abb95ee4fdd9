package categories

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore список категорий в памяти процесса. Не долговечен: после
// перезапуска возвращается к Defaults; экземпляры не видят изменений друг друга.
type MemoryStore struct {
	mu    sync.RWMutex
	items []string
}

// NewMemoryStore создаёт хранилище с копией seed.
func NewMemoryStore(seed []string) *MemoryStore {
	return &MemoryStore{items: slices.Clone(seed)}
}

func (m *MemoryStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.items), nil
}

func (m *MemoryStore) Add(_ context.Context, name string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.items, name) {
		return nil, ErrExists
	}
	m.items = append(m.items, name)
	return slices.Clone(m.items), nil
}

func (m *MemoryStore) Rename(_ context.Context, oldName, newName string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.Index(m.items, oldName)
	if idx < 0 {
		return nil, ErrNotFound
	}
	if oldName != newName && slices.Contains(m.items, newName) {
		return nil, ErrExists
	}
	m.items[idx] = newName
	return slices.Clone(m.items), nil
}

func (m *MemoryStore) Delete(_ context.Context, name string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.Index(m.items, name)
	if idx < 0 {
		return nil, ErrNotFound
	}
	m.items = slices.Delete(m.items, idx, idx+1)
	return slices.Clone(m.items), nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }
