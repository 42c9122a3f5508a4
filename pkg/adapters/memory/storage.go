// Package memory provides an in-process core.Storage.
// It is the equivalent of a browser's localStorage for tests and ephemeral runs.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// Storage keeps values in a map guarded by a RWMutex.
type Storage struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty Storage.
func New() *Storage {
	return &Storage{values: make(map[string]string)}
}

// Get implements core.Storage.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set implements core.Storage.
func (s *Storage) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Update implements core.Updater.
func (s *Storage) Update(ctx context.Context, key string, fn core.UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.values[key]
	next, err := fn(old, ok)
	if err != nil {
		return err
	}
	s.values[key] = next
	return nil
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory"
}

var (
	_ core.Storage = (*Storage)(nil)
	_ core.Updater = (*Storage)(nil)
)
