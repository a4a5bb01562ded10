package repository

import "sync"

// MemoryKVRepository keeps blobs in a map. It backs the CLI session scope and
// tests.
type MemoryKVRepository struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryKVRepository creates an empty MemoryKVRepository
func NewMemoryKVRepository() *MemoryKVRepository {
	return &MemoryKVRepository{
		entries: make(map[string][]byte),
	}
}

func (m *MemoryKVRepository) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	// Callers must not be able to mutate the stored blob.
	return append([]byte(nil), value...), true, nil
}

func (m *MemoryKVRepository) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKVRepository) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
