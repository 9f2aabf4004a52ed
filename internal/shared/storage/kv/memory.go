package kv

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps entries in memory and is safe for concurrent use. It backs
// tests and the dev fallback when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Set stores or overwrites the value for key.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
	return nil
}

// Get returns the value for key or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// List returns all entries whose key starts with prefix, ordered by key.
func (s *MemoryStore) List(ctx context.Context, prefix string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]Entry, 0)
	for key, value := range s.entries {
		if strings.HasPrefix(key, prefix) {
			out = append(out, Entry{Key: key, Value: value})
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
