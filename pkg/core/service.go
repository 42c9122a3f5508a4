package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeLayout is the layout used for Note.Date when none is configured.
const DefaultTimeLayout = "2006-01-02 15:04:05"

// Clock supplies the creation time of new notes.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// Config holds the business settings of a Service.
type Config struct {
	Clock      Clock
	TimeLayout string
	NewID      func() string
	ReadOnly   bool
	Logger     *slog.Logger
}

// Service handles the business logic for notes: input validation,
// timestamping and identity on top of the Store.
type Service struct {
	store    *Store
	clock    Clock
	layout   string
	newID    func() string
	readOnly bool
	logger   *slog.Logger
}

// NewService creates a new Service.
func NewService(store *Store, cfg Config) *Service {
	s := &Service{
		store:    store,
		clock:    cfg.Clock,
		layout:   cfg.TimeLayout,
		newID:    cfg.NewID,
		readOnly: cfg.ReadOnly,
		logger:   cfg.Logger,
	}
	if s.clock == nil {
		s.clock = ClockFunc(time.Now)
	}
	if s.layout == "" {
		s.layout = DefaultTimeLayout
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Store exposes the underlying note store.
func (s *Service) Store() *Store {
	return s.store
}

// AddNote trims text, rejects it if nothing is left and appends a new note.
func (s *Service) AddNote(ctx context.Context, text string) (Note, error) {
	if s.readOnly {
		return Note{}, ErrReadOnly
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, ErrEmptyText
	}

	n := Note{
		ID:   s.newID(),
		Text: text,
		Date: s.clock.Now().Format(s.layout),
	}
	if err := s.store.Append(ctx, n); err != nil {
		return Note{}, fmt.Errorf("failed to save note: %w", err)
	}
	s.logger.Info("note saved", "id", n.ID)
	return n, nil
}

// ListNotes retrieves all notes in creation order.
func (s *Service) ListNotes(ctx context.Context) (NoteList, error) {
	return s.store.List(ctx)
}

// DeleteAt removes the note at creation-order index.
func (s *Service) DeleteAt(ctx context.Context, index int) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if err := s.store.DeleteAt(ctx, index); err != nil {
		if errors.Is(err, ErrOutOfRange) {
			s.logger.Warn("delete ignored", "index", index, "error", err)
		}
		return err
	}
	s.logger.Info("note deleted", "index", index)
	return nil
}

// DeleteNote removes the note carrying id.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	if s.readOnly {
		return ErrReadOnly
	}
	if id == "" {
		return errors.New("note ID cannot be empty")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("note deleted", "id", id)
	return nil
}

// Watch observes changes in the storage if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.store.storage.(Watchable)
	if !ok {
		return nil, errors.New("storage does not support watching")
	}
	return w.Watch(ctx, pattern)
}
