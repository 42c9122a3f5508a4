package render

import (
	"io"
	"sync"
)

// Surface is a container whose whole content is owned by one View.
type Surface interface {
	// Replace discards the previous content and shows content instead.
	Replace(content []byte) error
}

// BufferSurface keeps the latest content in memory.
// It is safe for concurrent readers.
type BufferSurface struct {
	mu      sync.RWMutex
	content []byte
	renders int
}

// Replace implements Surface.
func (b *BufferSurface) Replace(content []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = append(b.content[:0], content...)
	b.renders++
	return nil
}

// Bytes returns a copy of the current content.
func (b *BufferSurface) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]byte(nil), b.content...)
}

// String returns the current content.
func (b *BufferSurface) String() string {
	return string(b.Bytes())
}

// Renders returns how many times the content was replaced.
func (b *BufferSurface) Renders() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.renders
}

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

// WriterSurface writes every replacement to a terminal or pipe.
// With Clear set the screen is wiped first so the output replaces the previous one.
type WriterSurface struct {
	W     io.Writer
	Clear bool
}

// Replace implements Surface.
func (s *WriterSurface) Replace(content []byte) error {
	if s.Clear {
		if _, err := io.WriteString(s.W, clearScreen); err != nil {
			return err
		}
	}
	_, err := s.W.Write(content)
	return err
}
