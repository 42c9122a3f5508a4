package jot

import (
	_ "embed"
	"log/slog"
	"strings"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/core"
)

//go:embed VERSION
var version string

// Version is the library version.
var Version = strings.TrimSpace(version)

// --- Types ---

// Vault is an opened note service together with the storage it owns.
type Vault = platform.Vault

// Option defines a functional option for configuring a Vault.
type Option = platform.Option

// Adapter names.
const (
	AdapterFS     = platform.AdapterFS
	AdapterMemory = platform.AdapterMemory
	AdapterSQLite = platform.AdapterSQLite
	AdapterBadger = platform.AdapterBadger
)

// InMemoryURI opens the sqlite and badger adapters without touching disk.
const InMemoryURI = platform.InMemoryURI

// --- Configuration ---

// WithLogger sets the logger for the service and its storage.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithAdapter selects the storage adapter by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithStorage injects a custom storage backend.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithKey sets the storage key holding the note list.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithClock overrides the time source used to stamp notes.
func WithClock(c core.Clock) Option {
	return platform.WithClock(c)
}

// WithTimeLayout sets the layout used to format note dates.
func WithTimeLayout(layout string) Option {
	return platform.WithTimeLayout(layout)
}

// WithReadOnly rejects every mutation with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithMustExist requires the vault directory to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithSystemDir sets the hidden directory name (".jot" by default).
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithForceTemp forces the vault into a temporary directory.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox applied under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithWatcherErrorHandler receives runtime failures of the fs watcher.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens a vault at path.
func New(path string, opts ...Option) (*Vault, error) {
	return platform.New(path, opts...)
}

// --- Safety & Utils ---

// FindVaultRoot looks upwards from startDir for a .jot directory or jot.yaml.
func FindVaultRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// ResolveVaultPath determines the actual path for the vault based on safety rules.
func ResolveVaultPath(userPath string, forceTemp bool) string {
	return platform.ResolveVaultPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
