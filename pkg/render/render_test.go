package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/render"
)

func abc() core.NoteList {
	return core.NoteList{
		{ID: "a", Text: "A", Date: "2025-01-01 08:00:00"},
		{ID: "b", Text: "B", Date: "2025-01-02 08:00:00"},
		{ID: "c", Text: "C", Date: "2025-01-03 08:00:00"},
	}
}

func TestEntries_DisplayOrderAndIndexes(t *testing.T) {
	entries := render.Entries(abc())
	require.Len(t, entries, 3)

	var order []string
	for _, e := range entries {
		order = append(order, e.Text)
	}
	assert.Equal(t, []string{"C", "B", "A"}, order)

	// Display position 1 shows B, whose creation index is 1.
	assert.Equal(t, 1, entries[1].Position)
	assert.Equal(t, 1, entries[1].Index)
	assert.Equal(t, 2, entries[0].Index)
	assert.Equal(t, 0, entries[2].Index)
	assert.Equal(t, "Created: 2025-01-03 08:00:00", entries[0].Created)
	assert.Equal(t, 1, entries[0].Number())
}

func TestCreationIndex(t *testing.T) {
	for pos := 0; pos < 5; pos++ {
		assert.Equal(t, 4-pos, render.CreationIndex(5, pos))
	}
}

func TestEntries_Empty(t *testing.T) {
	assert.Empty(t, render.Entries(nil))
	assert.Empty(t, render.Entries(core.NoteList{}))
}

func TestTextFormatter_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	notes := core.NoteList{
		{Text: "A", Date: "2025-01-01 08:00:00"},
		{Text: "B", Date: "2025-01-02 08:00:00"},
		{Text: "line one\nline two", Date: "2025-01-03 08:00:00"},
	}
	f := render.TextFormatter{DeleteHint: "jot delete %d"}

	out, err := f.Format(render.Entries(notes))
	require.NoError(t, err)
	g.Assert(t, "text_list", out)

	out, err = f.Format(render.Entries(nil))
	require.NoError(t, err)
	g.Assert(t, "text_empty", out)

	out, err = render.TextFormatter{}.Format(render.Entries(notes[:2]))
	require.NoError(t, err)
	g.Assert(t, "text_no_hint", out)
}

func TestHTMLFormatter_EmptyState(t *testing.T) {
	out, err := render.HTMLFormatter{}.Format(render.Entries(nil))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `<p class="empty-message">`)
	assert.Contains(t, html, "No notes yet.")
	assert.NotContains(t, html, "note-card")
	assert.NotContains(t, html, "delete-btn")
}

func TestHTMLFormatter_Cards(t *testing.T) {
	out, err := render.HTMLFormatter{Base: "/app"}.Format(render.Entries(abc()))
	require.NoError(t, err)
	html := string(out)

	assert.Equal(t, 3, strings.Count(html, `class="note-card"`))
	assert.NotContains(t, html, "empty-message")

	// Newest first, each with its creation index in the delete action.
	iC := strings.Index(html, `<p class="note-text">C</p>`)
	iB := strings.Index(html, `<p class="note-text">B</p>`)
	iA := strings.Index(html, `<p class="note-text">A</p>`)
	require.True(t, iC >= 0 && iB >= 0 && iA >= 0, html)
	assert.True(t, iC < iB && iB < iA, "expected display order C, B, A")

	assert.Contains(t, html, `action="/app/notes/2/delete"`)
	assert.Contains(t, html, `action="/app/notes/1/delete"`)
	assert.Contains(t, html, `action="/app/notes/0/delete"`)
	assert.Contains(t, html, `Created: 2025-01-02 08:00:00`)
	assert.Contains(t, html, `data-id="b"`)
}

func TestHTMLFormatter_EscapesText(t *testing.T) {
	notes := core.NoteList{{Text: `<script>alert("x")</script> & **bold**`, Date: "d"}}

	out, err := render.HTMLFormatter{}.Format(render.Entries(notes))
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "&amp; **bold**", "markdown must stay literal")
}

func TestTextFormatter_EscapesControlRunes(t *testing.T) {
	notes := core.NoteList{{Text: "x\x1b[2Jevil\x07\u202e\nnext\tline", Date: "d\x1b]0;t"}}

	out, err := render.TextFormatter{}.Format(render.Entries(notes))
	require.NoError(t, err)
	text := string(out)

	assert.NotContains(t, text, "\x1b")
	assert.NotContains(t, text, "\x07")
	assert.NotContains(t, text, "\u202e")
	assert.Contains(t, text, `[1] x\x1b[2Jevil\x07\u202e`)
	assert.Contains(t, text, "\n    next\tline\n", "newlines and tabs stay as they are")
	assert.Contains(t, text, `d\x1b]0;t`)
}

func TestView_RenderIsIdempotent(t *testing.T) {
	for name, f := range map[string]render.Formatter{
		"html": render.HTMLFormatter{},
		"text": render.TextFormatter{},
	} {
		t.Run(name, func(t *testing.T) {
			surface := &render.BufferSurface{}
			view := render.NewView(surface, f)

			require.NoError(t, view.Render(abc()))
			first := surface.String()
			require.NoError(t, view.Render(abc()))

			assert.Equal(t, first, surface.String(), "rendering twice must not accumulate")
			assert.Equal(t, 2, surface.Renders())
		})
	}
}

func TestWriterSurface_Clear(t *testing.T) {
	var sb strings.Builder
	s := &render.WriterSurface{W: &sb, Clear: true}

	require.NoError(t, s.Replace([]byte("one\n")))
	require.NoError(t, s.Replace([]byte("two\n")))

	out := sb.String()
	assert.Equal(t, 2, strings.Count(out, "\x1b[2J"))
	assert.True(t, strings.HasSuffix(out, "two\n"))
}

// fakeService is an in-memory NoteService.
type fakeService struct {
	notes core.NoteList
	next  int
}

func (f *fakeService) AddNote(ctx context.Context, text string) (core.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return core.Note{}, core.ErrEmptyText
	}
	f.next++
	n := core.Note{ID: string(rune('a' + f.next - 1)), Text: text, Date: "d"}
	f.notes = append(f.notes, n)
	return n, nil
}

func (f *fakeService) ListNotes(ctx context.Context) (core.NoteList, error) {
	return append(core.NoteList{}, f.notes...), nil
}

func (f *fakeService) DeleteAt(ctx context.Context, index int) error {
	if index < 0 || index >= len(f.notes) {
		return core.ErrOutOfRange
	}
	f.notes = append(f.notes[:index:index], f.notes[index+1:]...)
	return nil
}

func (f *fakeService) DeleteNote(ctx context.Context, id string) error {
	i := f.notes.IndexOf(id)
	if i < 0 {
		return core.ErrNotFound
	}
	return f.DeleteAt(ctx, i)
}

func newController() (*render.Controller, *fakeService, *render.BufferSurface) {
	svc := &fakeService{}
	surface := &render.BufferSurface{}
	return render.NewController(svc, render.NewView(surface, render.TextFormatter{})), svc, surface
}

func TestController_DeleteDisplayedMapsToCreationIndex(t *testing.T) {
	ctx := context.Background()
	c, svc, surface := newController()
	for _, s := range []string{"A", "B", "C"} {
		_, err := c.Add(ctx, s)
		require.NoError(t, err)
	}

	// Display order is C, B, A; position 1 is B.
	require.NoError(t, c.DeleteDisplayed(ctx, 1))

	require.Len(t, svc.notes, 2)
	assert.Equal(t, "A", svc.notes[0].Text)
	assert.Equal(t, "C", svc.notes[1].Text)
	assert.NotContains(t, surface.String(), "] B")
	assert.Contains(t, surface.String(), "[1] C")
	assert.Contains(t, surface.String(), "[2] A")

	assert.ErrorIs(t, c.DeleteDisplayed(ctx, 2), core.ErrOutOfRange)
	assert.ErrorIs(t, c.DeleteDisplayed(ctx, -1), core.ErrOutOfRange)
	assert.Len(t, svc.notes, 2)
}

func TestController_RejectedInputKeepsView(t *testing.T) {
	ctx := context.Background()
	c, svc, surface := newController()

	_, err := c.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, render.EmptyMessage+"\n", surface.String())
	renders := surface.Renders()

	_, err = c.Add(ctx, "   ")
	assert.ErrorIs(t, err, core.ErrEmptyText)
	assert.Empty(t, svc.notes)
	assert.Equal(t, renders, surface.Renders(), "rejected input must not re-render")
}

func TestController_DeleteRerenders(t *testing.T) {
	ctx := context.Background()
	c, _, surface := newController()
	a, err := c.Add(ctx, "A")
	require.NoError(t, err)
	_, err = c.Add(ctx, "B")
	require.NoError(t, err)

	require.NoError(t, c.DeleteAt(ctx, 1))
	assert.Contains(t, surface.String(), "[1] A")

	before := surface.Renders()
	assert.ErrorIs(t, c.DeleteAt(ctx, 7), core.ErrOutOfRange)
	assert.Equal(t, before+1, surface.Renders(), "out-of-range delete still refreshes the view")

	require.NoError(t, c.DeleteID(ctx, a.ID))
	assert.Equal(t, render.EmptyMessage+"\n", surface.String())
	assert.ErrorIs(t, c.DeleteID(ctx, a.ID), core.ErrNotFound)
}

func TestController_Snapshot(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newController()
	_, err := c.Add(ctx, "hello")
	require.NoError(t, err)

	out, err := c.Snapshot(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(out), "[1] hello")

	var sb strings.Builder
	writer := render.NewController(&fakeService{}, render.NewView(&render.WriterSurface{W: &sb}, render.TextFormatter{}))
	_, err = writer.Snapshot(ctx)
	assert.Error(t, err)
}
