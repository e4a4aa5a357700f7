package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStorage keeps everything in process. Nothing survives Close.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string][]byte)}
}

func (m *MemoryStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryStorage) Set(ctx context.Context, key string, value []byte) error {
	return m.Batch(ctx, []Op{Put(key, value)})
}

func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	return m.Batch(ctx, []Op{Del(key)})
}

func (m *MemoryStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStorage) Batch(ctx context.Context, ops []Op) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range ops {
		if op.Value == nil {
			delete(m.entries, op.Key)
			continue
		}
		v := make([]byte, len(op.Value))
		copy(v, op.Value)
		m.entries[op.Key] = v
	}
	return nil
}

func (m *MemoryStorage) Close() error { return nil }

var _ KV = (*MemoryStorage)(nil)
