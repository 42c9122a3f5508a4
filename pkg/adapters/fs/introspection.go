package fs

import (
	"os"
	"sort"
	"time"

	"github.com/aretw0/introspection"
)

// StorageState exposes internal state for observability.
type StorageState struct {
	Path          string     `json:"path"`
	SystemDir     string     `json:"system_dir"`
	ReadOnly      bool       `json:"read_only"`
	Keys          []string   `json:"keys"`
	WatcherActive bool       `json:"watcher_active"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	keys := []string{}
	if entries, err := os.ReadDir(s.Path); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if key, ok := keyFromPath(e.Name()); ok {
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)

	return StorageState{
		Path:          s.Path,
		SystemDir:     s.config.SystemDir,
		ReadOnly:      s.config.ReadOnly,
		Keys:          keys,
		WatcherActive: s.watcherActive,
		LastWrite:     s.lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)

func (s *Storage) setWatcherActive(active bool) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.watcherActive = active
}

func (s *Storage) recordWrite() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	now := time.Now()
	s.lastWrite = &now
}
