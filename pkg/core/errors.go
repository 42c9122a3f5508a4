package core

import "errors"

// Common errors.
var (
	// ErrEmptyText is returned when a note has no text left after trimming.
	ErrEmptyText = errors.New("note text is empty")

	// ErrOutOfRange is returned when a deletion index is outside the current list.
	// The persisted list is left unchanged.
	ErrOutOfRange = errors.New("note index out of range")

	// ErrNotFound is returned when no note carries the requested ID.
	ErrNotFound = errors.New("note not found")

	// ErrReadOnly is returned by mutations on a read-only service.
	ErrReadOnly = errors.New("store is in read-only mode")
)
