package render

import (
	"fmt"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// Formatter turns display entries into surface content.
// An empty slice must produce the empty-state placeholder only.
type Formatter interface {
	Format(entries []Entry) ([]byte, error)
}

// View renders note lists onto the surface it owns.
type View struct {
	surface   Surface
	formatter Formatter
	mu        sync.Mutex
}

// NewView creates a View owning surface.
func NewView(surface Surface, formatter Formatter) *View {
	return &View{surface: surface, formatter: formatter}
}

// Surface returns the surface owned by the view.
func (v *View) Surface() Surface {
	return v.surface
}

// Render fully replaces the surface content with notes, newest first.
func (v *View) Render(notes core.NoteList) error {
	content, err := v.formatter.Format(Entries(notes))
	if err != nil {
		return fmt.Errorf("failed to format notes: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.surface.Replace(content); err != nil {
		return fmt.Errorf("failed to replace surface: %w", err)
	}
	return nil
}
