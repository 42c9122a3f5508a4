package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Store owns the durable NoteList kept under a single storage key.
//
// Every mutation reads the whole list, changes it and writes the whole list
// back. When the storage implements Updater the sequence runs inside its
// atomic update; the Store mutex additionally serialises mutations issued
// through the same Store.
type Store struct {
	storage Storage
	key     string
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewStore creates a Store persisting its list under key.
// An empty key falls back to DefaultKey and a nil logger to slog.Default().
func NewStore(storage Storage, key string, logger *slog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage: storage,
		key:     key,
		logger:  logger,
	}
}

// Key returns the storage key holding the list.
func (s *Store) Key() string {
	return s.key
}

// List returns the persisted notes in creation order.
// A missing or malformed value yields an empty list.
func (s *Store) List(ctx context.Context) (NoteList, error) {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	return s.decode(raw, ok), nil
}

// Append adds n at the end of the list.
// The store accepts whatever note it is given; validation belongs to the caller.
func (s *Store) Append(ctx context.Context, n Note) error {
	err := s.update(ctx, func(list NoteList) (NoteList, error) {
		return append(list, n), nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("note appended", "key", s.key, "id", n.ID)
	return nil
}

// DeleteAt removes the note at creation-order index, shifting later notes down by one.
// An index outside the list returns ErrOutOfRange and leaves the list untouched.
func (s *Store) DeleteAt(ctx context.Context, index int) error {
	err := s.update(ctx, func(list NoteList) (NoteList, error) {
		if index < 0 || index >= len(list) {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, len(list))
		}
		return remove(list, index), nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("note deleted", "key", s.key, "index", index)
	return nil
}

// Delete removes the note carrying id.
// An unknown id returns ErrNotFound and leaves the list untouched.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.update(ctx, func(list NoteList) (NoteList, error) {
		i := list.IndexOf(id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return remove(list, i), nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("note deleted", "key", s.key, "id", id)
	return nil
}

func (s *Store) update(ctx context.Context, fn func(NoteList) (NoteList, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply := func(old string, ok bool) (string, error) {
		next, err := fn(s.decode(old, ok))
		if err != nil {
			return "", err
		}
		return encode(next)
	}

	if u, ok := s.storage.(Updater); ok {
		return u.Update(ctx, s.key, apply)
	}

	old, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("failed to read notes: %w", err)
	}
	value, err := apply(old, ok)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, s.key, value); err != nil {
		return fmt.Errorf("failed to write notes: %w", err)
	}
	return nil
}

// decode parses a persisted value. Anything that is not a JSON array of
// note records is treated as no notes at all. Records without text, such as
// null or {}, are dropped so indexes only ever address real notes.
func (s *Store) decode(raw string, ok bool) NoteList {
	if !ok || raw == "" {
		return NoteList{}
	}
	var list NoteList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn("stored notes are malformed, treating as empty", "key", s.key, "error", err)
		return NoteList{}
	}
	if list == nil {
		return NoteList{}
	}
	kept := list[:0]
	for _, n := range list {
		if strings.TrimSpace(n.Text) != "" {
			kept = append(kept, n)
		}
	}
	if dropped := len(list) - len(kept); dropped > 0 {
		s.logger.Warn("dropping stored notes without text", "key", s.key, "count", dropped)
	}
	return kept
}

func encode(list NoteList) (string, error) {
	if list == nil {
		list = NoteList{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to encode notes: %w", err)
	}
	return string(data), nil
}

func remove(list NoteList, i int) NoteList {
	out := make(NoteList, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
