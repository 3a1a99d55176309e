package storage

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"screen-match/internal/domain/port"
)

// MemoryStorage in-memory хранилище артефактов, удобно для тестов и dry-run
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStorage создаёт пустое хранилище
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string][]byte)}
}

func (m *MemoryStorage) Put(ctx context.Context, key string, data []byte) (string, error) {
	url := "mem://" + key
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	m.items[url] = buf
	m.mu.Unlock()
	return url, nil
}

func (m *MemoryStorage) Get(ctx context.Context, url string) ([]byte, error) {
	m.mu.RLock()
	data, ok := m.items[url]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("artifact %s not found", url)
	}
	return data, nil
}

// Len число сохранённых артефактов
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

var _ port.ArtifactStore = (*MemoryStorage)(nil)
