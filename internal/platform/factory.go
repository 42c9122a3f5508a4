package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/jot/pkg/adapters/badger"
	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/adapters/sqlite"
	"github.com/aretw0/jot/pkg/core"
)

// InMemoryURI opens the sqlite and badger adapters without touching disk.
const InMemoryURI = ":memory:"

// Vault is an opened note service together with the storage it owns.
type Vault struct {
	*core.Service

	// Path is the resolved vault directory. Empty for in-memory vaults.
	Path    string
	Adapter string
	Storage core.Storage

	closer io.Closer
}

// Close releases the storage. It is safe to call on any adapter.
func (v *Vault) Close() error {
	if v.closer == nil {
		return nil
	}
	return v.closer.Close()
}

// New opens a vault.
// The URI is the vault directory for "fs", "sqlite" and "badger"; the
// latter two also accept ":memory:". It is ignored by "memory".
//
//	v, err := jot.New("./notes", jot.WithAdapter("sqlite"))
func New(uri string, opts ...Option) (*Vault, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	v := &Vault{Adapter: o.adapter, Storage: o.storage}
	if v.Storage == nil {
		if err := open(uri, o, v); err != nil {
			return nil, err
		}
	} else {
		v.Adapter = "custom"
	}

	if init, ok := v.Storage.(core.Initializer); ok {
		if err := init.Initialize(context.Background()); err != nil {
			return nil, errors.Join(err, v.Close())
		}
	}

	store := core.NewStore(v.Storage, o.key, o.logger)
	v.Service = core.NewService(store, core.Config{
		Clock:      o.clock,
		TimeLayout: o.timeLayout,
		ReadOnly:   o.readOnly,
		Logger:     o.logger,
	})

	o.logger.Debug("vault opened", "adapter", v.Adapter, "path", v.Path, "key", store.Key())
	return v, nil
}

func open(uri string, o *options, v *Vault) error {
	switch o.adapter {
	case AdapterMemory:
		v.Storage = memory.New()
		return nil
	case AdapterFS, AdapterSQLite, AdapterBadger:
	default:
		return fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	inMemory := uri == InMemoryURI && o.adapter != AdapterFS
	if !inMemory {
		v.Path = resolvePath(uri, o)
	}

	switch o.adapter {
	case AdapterFS:
		v.Storage = fs.New(fs.Config{
			Path:         v.Path,
			MustExist:    o.mustExist,
			ReadOnly:     o.readOnly,
			SystemDir:    o.systemDir,
			Logger:       o.logger,
			ErrorHandler: o.errorHandler,
		})
	case AdapterSQLite:
		var dbPath string
		if !inMemory {
			dbPath = filepath.Join(v.Path, o.systemDir, "jot.db")
		}
		s, err := sqlite.Open(sqlite.Config{Path: dbPath, InMemory: inMemory, Logger: o.logger})
		if err != nil {
			return err
		}
		v.Storage, v.closer = s, s
	case AdapterBadger:
		var dbPath string
		if !inMemory {
			dbPath = filepath.Join(v.Path, o.systemDir, "badger")
		}
		s, err := badger.Open(badger.Config{Path: dbPath, InMemory: inMemory, Logger: o.logger})
		if err != nil {
			return err
		}
		v.Storage, v.closer = s, s
	}
	return nil
}

// resolvePath applies the dev sandbox to on-disk vaults.
func resolvePath(uri string, o *options) string {
	bypass := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypass)
	resolved := ResolveVaultPath(uri, useTemp)

	if useTemp && resolved != filepath.Clean(uri) {
		o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", uri, "resolved_path", resolved)
	} else if IsDevRun() && bypass && !o.readOnly {
		o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
	}
	return resolved
}
