// Package settings persists the boolean flags the UI remembers between
// sessions, behind a typed accessor.
package settings

import (
	"context"
	"errors"
	"sync"
)

// Key names a durable flag.
type Key string

const (
	KeySeenTour         Key = "has_seen_tour"
	KeySeenCopyright    Key = "has_seen_copyright"
	KeyLightPageBlocked Key = "light_page_blocked"
)

// ErrUnknownKey is returned for keys outside the known set.
var ErrUnknownKey = errors.New("unknown settings key")

// Keys lists every known flag.
func Keys() []Key {
	return []Key{KeySeenTour, KeySeenCopyright, KeyLightPageBlocked}
}

// ParseKey validates a key received from outside.
func ParseKey(s string) (Key, error) {
	for _, k := range Keys() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrUnknownKey
}

// Store is a durable boolean key-value store. A key that was never set
// reads as false.
type Store interface {
	Get(ctx context.Context, key Key) (bool, error)
	Set(ctx context.Context, key Key, value bool) error
}

// MemoryStore keeps flags for the process lifetime only.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[Key]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[Key]bool)}
}

func (s *MemoryStore) Get(_ context.Context, key Key) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.values[key], nil
}

func (s *MemoryStore) Set(_ context.Context, key Key, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
