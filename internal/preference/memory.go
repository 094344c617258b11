package preference

import (
	"context"
	"sort"
	"sync"
)

type memoryEntry struct {
	values map[int]string
	typ    ValueType
}

// MemoryBackend keeps preferences in process memory. Values are lost on restart.
type MemoryBackend struct {
	mu    sync.RWMutex
	users map[string]map[string]memoryEntry
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{users: make(map[string]map[string]memoryEntry)}
}

func (m *MemoryBackend) Get(_ context.Context, userID, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.users[userID][key].values[0]
	return value, ok, nil
}

func (m *MemoryBackend) GetList(_ context.Context, userID, key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry := m.users[userID][key]
	positions := make([]int, 0, len(entry.values))
	for pos := range entry.values {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	values := make([]string, 0, len(positions))
	for _, pos := range positions {
		values = append(values, entry.values[pos])
	}
	return values, nil
}

func (m *MemoryBackend) Set(ctx context.Context, userID, key, value string, typ ValueType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := m.entry(userID, key)
	entry.values[0] = value
	entry.typ = typ
	m.users[userID][key] = entry
	return nil
}

func (m *MemoryBackend) SetList(_ context.Context, userID, key string, values []string, typ ValueType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users[userID], key)
	if len(values) == 0 {
		return nil
	}
	entry := m.entry(userID, key)
	for pos, value := range values {
		entry.values[pos] = value
	}
	entry.typ = typ
	m.users[userID][key] = entry
	return nil
}

// Delete removes the scalar at position zero only.
func (m *MemoryBackend) Delete(_ context.Context, userID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.users[userID][key]
	if !ok {
		return nil
	}
	delete(entry.values, 0)
	if len(entry.values) == 0 {
		delete(m.users[userID], key)
	}
	return nil
}

func (m *MemoryBackend) DeleteList(_ context.Context, userID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users[userID], key)
	return nil
}

// entry must be called with the write lock held.
func (m *MemoryBackend) entry(userID, key string) memoryEntry {
	entries, ok := m.users[userID]
	if !ok {
		entries = make(map[string]memoryEntry)
		m.users[userID] = entries
	}
	entry, ok := entries[key]
	if !ok {
		entry = memoryEntry{values: make(map[int]string)}
	}
	return entry
}
