package core

// Note is the central entity of the domain.
// It represents a user-authored text entry with the moment it was created.
type Note struct {
	// ID is a stable identifier assigned at creation.
	// Notes persisted before IDs existed have an empty ID and can only be addressed by index.
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
	// Date is a human-readable timestamp captured at creation. It is never rewritten.
	Date string `json:"date"`
}

// NoteList is the full ordered collection of notes in creation order (oldest first).
type NoteList []Note

// Len returns the number of notes.
func (l NoteList) Len() int {
	return len(l)
}

// Reversed returns a copy of the list in display order (newest first).
// The receiver is left untouched.
func (l NoteList) Reversed() NoteList {
	out := make(NoteList, len(l))
	for i, n := range l {
		out[len(l)-1-i] = n
	}
	return out
}

// IndexOf returns the creation-order index of the note carrying id, or -1.
func (l NoteList) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, n := range l {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// EventType represents the type of change in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventDelete EventType = "DELETE"
	EventModify EventType = "MODIFY"
)

// Event represents a change in the note store.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return string(e.Type) + " " + e.Key
}
