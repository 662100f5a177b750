package storage

//go:generate $MOCKGEN -source=storage.go -destination=mocks/storage_mock.go

import (
	"errors"
	"fmt"
	"strings"
)

// Storage is a process-wide string key-value store.
type Storage interface {
	// Get returns the value stored under key. The boolean is false when the key is absent.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Keys lists the stored keys.
	Keys() ([]string, error)
}

const (
	// DriverFile selects the YAML file backend.
	DriverFile = "file"
	// DriverMemory selects the in-memory LRU backend.
	DriverMemory = "memory"

	// DefaultMemoryCapacity is the number of keys the in-memory backend keeps.
	DefaultMemoryCapacity = 128
)

var (
	// ErrEmptyKey indicates that an empty key was used.
	ErrEmptyKey = errors.New("storage key cannot be empty")
	// ErrEmptyPath indicates that the file backend has no path.
	ErrEmptyPath = errors.New("storage path cannot be empty")
	// ErrInvalidCapacity indicates that the in-memory backend capacity is not positive.
	ErrInvalidCapacity = errors.New("storage capacity must be a positive integer")
	// ErrMalformedStorage indicates that the storage file is not a flat mapping of strings.
	ErrMalformedStorage = errors.New("malformed storage file")
	// ErrUnknownDriver indicates that the requested backend does not exist.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// New creates a storage backend by driver name.
func New(driver, path string) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverFile, "":
		return NewFileStorage(path)
	case DriverMemory:
		return NewMemoryStorage(DefaultMemoryCapacity)
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownDriver, driver)
	}
}
