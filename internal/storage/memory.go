package storage

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryStorage keeps values in a bounded, concurrency-safe LRU cache.
// When the capacity is reached the least recently used key is evicted.
type MemoryStorage struct {
	cache *lru.Cache[string, string]
}

// NewMemoryStorage creates an in-memory storage holding at most capacity keys.
func NewMemoryStorage(capacity int) (*MemoryStorage, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	cache, err := lru.New[string, string](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory storage: %w", err)
	}

	return &MemoryStorage{cache: cache}, nil
}

// Get returns the value stored under key.
func (s *MemoryStorage) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	value, ok := s.cache.Get(key)

	return value, ok, nil
}

// Set stores value under key.
func (s *MemoryStorage) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.cache.Add(key, value)

	return nil
}

// Remove deletes key.
func (s *MemoryStorage) Remove(key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.cache.Remove(key)

	return nil
}

// Keys lists the stored keys from the oldest to the newest.
func (s *MemoryStorage) Keys() ([]string, error) {
	return s.cache.Keys(), nil
}
