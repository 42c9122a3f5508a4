package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Key         string `json:"key"`
	TimeLayout  string `json:"time_layout"`
	ReadOnly    bool   `json:"read_only"`
	StorageType string `json:"storage_type"`
	Watchable   bool   `json:"watchable"`
	Atomic      bool   `json:"atomic"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	storageType := "unknown"
	if s.store.storage != nil {
		storageType = "storage"
		if comp, ok := s.store.storage.(introspection.Component); ok {
			storageType = comp.ComponentType()
		}
	}
	_, watchable := s.store.storage.(Watchable)
	_, atomic := s.store.storage.(Updater)

	return ServiceState{
		Key:         s.store.key,
		TimeLayout:  s.layout,
		ReadOnly:    s.readOnly,
		StorageType: storageType,
		Watchable:   watchable,
		Atomic:      atomic,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
