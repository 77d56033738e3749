// Package session tracks whether the console user is logged in.
//
// The flag mirrors the browser's session storage entry: the key "loggedIn"
// holding the exact string "true". Any other value, including "TRUE" or "1",
// counts as logged out.
package session

import (
	"sync"
)

const (
	// LoggedInKey is the storage key for the session flag.
	LoggedInKey = "loggedIn"
	// LoggedInValue is the only value that marks the user as logged in.
	LoggedInValue = "true"
)

// Store is a string key/value store holding the session flag.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// IsLoggedIn reports whether the flag is present and exactly "true".
func IsLoggedIn(store Store) bool {
	if store == nil {
		return false
	}
	value, ok := store.Get(LoggedInKey)
	return ok && value == LoggedInValue
}

// MarkLoggedIn sets the flag after a successful login.
func MarkLoggedIn(store Store) error {
	if store == nil {
		return nil
	}
	return store.Set(LoggedInKey, LoggedInValue)
}

// Clear removes the flag. Removing an absent flag is not an error.
func Clear(store Store) error {
	if store == nil {
		return nil
	}
	return store.Remove(LoggedInKey)
}

// MemoryStore is a volatile Store that lives as long as the process.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

// Get returns the value stored for key.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

// Set stores value under key.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[key] = value
	return nil
}

// Remove deletes key.
func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
