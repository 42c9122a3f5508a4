package core

import "context"

// DefaultKey is the storage key holding the serialized note list.
const DefaultKey = "notes"

// Storage defines the contract for the key-value persistence layer.
// Adhering to this interface allows the core to be independent of the
// underlying storage mechanism (Filesystem, SQLite, Badger, memory).
type Storage interface {
	// Get returns the value stored under key.
	// ok is false when the key has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set replaces the value stored under key.
	// Implementations must either fully replace the value or leave the old one untouched.
	Set(ctx context.Context, key string, value string) error
}

// UpdateFunc receives the current value of a key and returns its replacement.
// Returning an error aborts the update and leaves the stored value untouched.
type UpdateFunc func(old string, ok bool) (string, error)

// Updater is implemented by storages that can run a read-modify-write atomically.
type Updater interface {
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// Watchable defines an interface for storages that can report external changes.
type Watchable interface {
	// Watch emits an Event whenever the value under a key matching pattern changes.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Initializer is implemented by storages that need setup before first use
// (create directories, run migrations).
type Initializer interface {
	Initialize(ctx context.Context) error
}
