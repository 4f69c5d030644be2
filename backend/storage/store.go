// Package storage is the persistence gateway of the marketplace. Records are
// kept as JSON values under fixed keys of a local key-value Store.
package storage

import (
	"errors"
	"sync"
)

// Store is the durable local key-value store underneath the Gateway.
// Get reports ok=false for an absent key.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

var ErrQuotaExceeded = errors.New("storage quota exceeded")

// MemoryStore keeps entries in process memory. A positive Quota caps the
// total size of keys plus values in bytes, like a browser storage quota.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
	Quota   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Quota > 0 {
		used := len(key) + len(value)
		for k, v := range s.entries {
			if k != key {
				used += len(k) + len(v)
			}
		}
		if used > s.Quota {
			return ErrQuotaExceeded
		}
	}
	s.entries[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
