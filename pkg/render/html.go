package render

import (
	"bytes"
	"html/template"
)

// ContainerID is the id of the element the HTML formatter produces.
const ContainerID = "notesContainer"

const notesHTML = `<div id="{{.ID}}">
{{- if not .Entries}}
<p class="empty-message">{{.Empty}}</p>
{{- else}}{{range .Entries}}
<div class="note-card" data-id="{{.ID}}">
<p class="note-text">{{.Text}}</p>
<p class="note-date">{{.Created}}</p>
<form method="post" action="{{$.Base}}/notes/{{.Index}}/delete"><button type="submit" class="delete-btn">Delete</button></form>
</div>
{{- end}}{{end}}
</div>
`

var notesTemplate = template.Must(template.New("notes").Parse(notesHTML))

// HTMLFormatter renders the note container as an HTML fragment.
// Note text is always escaped; it is never interpreted as markup.
type HTMLFormatter struct {
	// Base is prefixed to delete form actions (e.g. "/app").
	Base string
}

// Format implements Formatter.
func (f HTMLFormatter) Format(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	err := notesTemplate.Execute(&buf, struct {
		ID      string
		Base    string
		Empty   string
		Entries []Entry
	}{
		ID:      ContainerID,
		Base:    f.Base,
		Empty:   EmptyMessage,
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
