package render

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// NoteService is the subset of core.Service the controller drives.
type NoteService interface {
	AddNote(ctx context.Context, text string) (core.Note, error)
	ListNotes(ctx context.Context) (core.NoteList, error)
	DeleteAt(ctx context.Context, index int) error
	DeleteNote(ctx context.Context, id string) error
}

// Controller keeps a View in sync with the note store: every successful
// mutation is followed by a full re-render read fresh from the store.
type Controller struct {
	service NoteService
	view    *View
	mu      sync.Mutex
}

// NewController creates a Controller. Call Refresh once to show the
// notes persisted before startup.
func NewController(service NoteService, view *View) *Controller {
	return &Controller{service: service, view: view}
}

// Refresh re-renders the view from the store.
func (c *Controller) Refresh(ctx context.Context) (core.NoteList, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refresh(ctx)
}

// Snapshot re-renders the view and returns the resulting content.
// The view's surface must be a *BufferSurface.
func (c *Controller) Snapshot(ctx context.Context) ([]byte, error) {
	buf, ok := c.view.Surface().(*BufferSurface)
	if !ok {
		return nil, errors.New("surface does not support snapshots")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.refresh(ctx); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Add creates a note and re-renders. Rejected input leaves the view untouched.
func (c *Controller) Add(ctx context.Context, text string) (core.Note, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.service.AddNote(ctx, text)
	if err != nil {
		return core.Note{}, err
	}
	if _, err := c.refresh(ctx); err != nil {
		return n, err
	}
	return n, nil
}

// DeleteAt deletes the note at creation-order index and re-renders.
// An out-of-range index re-renders too, so a stale view catches up.
func (c *Controller) DeleteAt(ctx context.Context, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.afterDelete(ctx, c.service.DeleteAt(ctx, index))
}

// DeleteDisplayed deletes the note shown at display position (0 = newest).
func (c *Controller) DeleteDisplayed(ctx context.Context, position int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	notes, err := c.service.ListNotes(ctx)
	if err != nil {
		return err
	}
	if position < 0 || position >= len(notes) {
		return fmt.Errorf("%w: display position %d of %d", core.ErrOutOfRange, position, len(notes))
	}
	return c.afterDelete(ctx, c.service.DeleteAt(ctx, CreationIndex(len(notes), position)))
}

// DeleteID deletes the note carrying id and re-renders.
func (c *Controller) DeleteID(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.afterDelete(ctx, c.service.DeleteNote(ctx, id))
}

func (c *Controller) afterDelete(ctx context.Context, err error) error {
	if err != nil && !errors.Is(err, core.ErrOutOfRange) && !errors.Is(err, core.ErrNotFound) {
		return err
	}
	if _, rerr := c.refresh(ctx); rerr != nil {
		return rerr
	}
	return err
}

func (c *Controller) refresh(ctx context.Context) (core.NoteList, error) {
	notes, err := c.service.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.view.Render(notes); err != nil {
		return nil, err
	}
	return notes, nil
}
