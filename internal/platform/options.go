package platform

import (
	"log/slog"

	"github.com/aretw0/jot/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterMemory = "memory"
	AdapterSQLite = "sqlite"
	AdapterBadger = "badger"
)

// DefaultSystemDir is the hidden directory marking a jot vault.
const DefaultSystemDir = ".jot"

// options holds the internal configuration for a vault.
type options struct {
	storage      core.Storage
	logger       *slog.Logger
	adapter      string
	key          string
	clock        core.Clock
	timeLayout   string
	systemDir    string
	readOnly     bool
	mustExist    bool
	forceTemp    bool
	devSafety    bool
	errorHandler func(error)
}

// Option defines a functional option for configuring a vault.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		adapter:   AdapterFS,
		key:       core.DefaultKey,
		systemDir: DefaultSystemDir,
		devSafety: true,
	}
}

// WithLogger sets the logger for the service and its storage.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage injects a storage backend, skipping the adapter factory.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithAdapter selects the storage adapter by name ("fs", "memory", "sqlite", "badger").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithKey sets the storage key holding the note list. Defaults to "notes".
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithClock overrides the time source used to stamp new notes.
func WithClock(c core.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithTimeLayout sets the Go time layout used for note dates.
func WithTimeLayout(layout string) Option {
	return func(o *options) {
		o.timeLayout = layout
	}
}

// WithSystemDir sets the hidden directory name. Defaults to ".jot".
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithMustExist requires the vault directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithReadOnly enables read-only mode.
// Mutations return core.ErrReadOnly, nothing is created on disk and the
// dev sandbox is bypassed.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithForceTemp forces the vault into a temporary directory.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
// By default (true) on-disk vaults are re-rooted under the temp directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithWatcherErrorHandler receives runtime failures of the fs watcher.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
