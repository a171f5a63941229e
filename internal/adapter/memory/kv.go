// Package memory is a process-local key-value store.
package memory

import (
	"context"
	"sync"
)

// KVStore holds values in a map. Contents are lost on exit.
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVStore creates an empty store.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

// Get returns the value under key.
func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Ping always succeeds.
func (s *KVStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *KVStore) Close() error { return nil }
