package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// FileExt is the extension of the file holding each key.
const FileExt = ".json"

// Storage implements core.Storage on a directory: every key lives in its own
// <key>.json file, replaced atomically on each write.
type Storage struct {
	Path   string
	config Config

	// mu serialises read-modify-write cycles on the files.
	mu sync.Mutex

	stateMu       sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
}

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path         string
	MustExist    bool
	ReadOnly     bool
	SystemDir    string // e.g. ".jot"; created on Initialize as the vault marker
	Logger       *slog.Logger
	ErrorHandler func(error) // receives watcher failures
}

// New creates a new filesystem-backed storage.
func New(config Config) *Storage {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Storage{
		Path:   config.Path,
		config: config,
	}
}

// Initialize ensures the storage directory (and its system directory) exist.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat vault path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", s.Path)
		}
		if s.config.ReadOnly {
			return nil
		}
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}
	if s.config.SystemDir != "" {
		if err := os.MkdirAll(filepath.Join(s.Path, s.config.SystemDir), 0755); err != nil {
			return fmt.Errorf("failed to create system directory: %w", err)
		}
	}
	return nil
}

// Get reads the file holding key.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path, err := s.filename(key)
	if err != nil {
		return "", false, err
	}
	return s.read(path)
}

// Set atomically replaces the file holding key.
func (s *Storage) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.filename(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(path, value)
}

// Update runs fn on the current value of key and writes its result, holding
// the storage lock for the whole cycle.
func (s *Storage) Update(ctx context.Context, key string, fn core.UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.filename(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok, err := s.read(path)
	if err != nil {
		return err
	}
	next, err := fn(old, ok)
	if err != nil {
		return err
	}
	return s.write(path, next)
}

func (s *Storage) read(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return string(data), true, nil
}

func (s *Storage) write(path, value string) error {
	if err := writeFileAtomic(path, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	s.recordWrite()
	s.config.Logger.Debug("key written", "path", path, "bytes", len(value))
	return nil
}

// filename maps a key to its file, rejecting keys that would escape the directory.
func (s *Storage) filename(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("storage key cannot be empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.Path, key+FileExt), nil
}

// keyFromPath is the inverse of filename. ok is false for files that do not hold a key.
func keyFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, TempFilePrefix) || !strings.HasSuffix(base, FileExt) {
		return "", false
	}
	key := strings.TrimSuffix(base, FileExt)
	return key, key != ""
}

var (
	_ core.Storage     = (*Storage)(nil)
	_ core.Updater     = (*Storage)(nil)
	_ core.Watchable   = (*Storage)(nil)
	_ core.Initializer = (*Storage)(nil)
)
