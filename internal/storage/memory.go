// Package storage provides the key/value stores backing editor preferences and
// per-language code snapshots.
package storage

import (
	"sync"

	"github.com/sevigo/wizpro/internal/core"
)

// MemoryStore is a thread-safe in-memory core.Store. It is used by tests and
// whenever persistence is disabled.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ core.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get retrieves a value by key.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores a value by key.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Len returns the number of keys held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
