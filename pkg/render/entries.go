// Package render projects the note store onto a rendering surface.
//
// Rendering is a pure function of the persisted list: the whole surface is
// rebuilt on every call, newest note first. Delete affordances carry the
// creation-order index that the store's DeleteAt expects.
package render

import (
	"github.com/aretw0/jot/pkg/core"
)

// EmptyMessage is the placeholder shown when there are no notes.
const EmptyMessage = "No notes yet. Create your first note above! 📝"

// Entry is one note as displayed.
type Entry struct {
	// Position is the display position, 0 being the newest note.
	Position int
	// Index is the creation-order index to pass to DeleteAt.
	Index   int
	ID      string
	Text    string
	Created string
}

// Number is the 1-based display number shown to users.
func (e Entry) Number() int {
	return e.Position + 1
}

// CreationIndex translates a display position (newest first) into the
// creation-order index of a list holding total notes.
func CreationIndex(total, position int) int {
	return total - 1 - position
}

// Entries returns notes in display order with their delete indexes.
func Entries(notes core.NoteList) []Entry {
	total := len(notes)
	entries := make([]Entry, 0, total)
	for pos, n := range notes.Reversed() {
		entries = append(entries, Entry{
			Position: pos,
			Index:    CreationIndex(total, pos),
			ID:       n.ID,
			Text:     n.Text,
			Created:  "Created: " + n.Date,
		})
	}
	return entries
}
