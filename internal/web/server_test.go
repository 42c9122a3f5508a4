package web_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/internal/web"
	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/notify"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeNotifier struct {
	phones []string
	err    error
}

func (f *fakeNotifier) Send(ctx context.Context, phone string) (notify.Result, error) {
	if f.err != nil {
		return notify.Result{}, f.err
	}
	f.phones = append(f.phones, phone)
	return notify.Result{Phone: phone, StatusCode: http.StatusOK}, nil
}

func newServer(t *testing.T, n notify.Notifier) (*web.Server, *core.Service) {
	t.Helper()
	store := core.NewStore(memory.New(), "", nil)
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	svc := core.NewService(store, core.Config{
		Clock: core.ClockFunc(func() time.Time { return at }),
	})
	var cfg web.Config
	cfg.Service = svc
	if n != nil {
		cfg.Notifier = n
	}
	s, err := web.New(context.Background(), cfg)
	require.NoError(t, err)
	return s, svc
}

func do(s *web.Server, method, target string, body string, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func postForm(s *web.Server, target string, values url.Values) *httptest.ResponseRecorder {
	return do(s, http.MethodPost, target, values.Encode(), "application/x-www-form-urlencoded")
}

func TestPage_EmptyState(t *testing.T) {
	s, _ := newServer(t, nil)

	w := do(s, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `<div id="notesContainer">`)
	assert.Contains(t, body, "No notes yet.")
	assert.NotContains(t, body, "note-card")
	assert.NotContains(t, body, `action="/sms"`, "sms form hidden without a notifier")
}

func TestAddNote_FormFlow(t *testing.T) {
	s, svc := newServer(t, nil)

	w := postForm(s, "/notes", url.Values{"text": {"  Buy milk  "}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?status=saved", w.Header().Get("Location"))

	notes, err := svc.ListNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Buy milk", notes[0].Text)

	page := do(s, http.MethodGet, "/?status=saved", "", "").Body.String()
	assert.Contains(t, page, web.MsgSaved)
	assert.Contains(t, page, `<p class="note-text">Buy milk</p>`)
	assert.Contains(t, page, "Created: 2025-03-14 09:26:53")
}

func TestAddNote_EmptyRejected(t *testing.T) {
	s, svc := newServer(t, nil)

	w := postForm(s, "/notes", url.Values{"text": {"   \n\t"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), web.MsgEmptyText)

	notes, err := svc.ListNotes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestAddNote_UnreadableBody(t *testing.T) {
	s, svc := newServer(t, nil)

	w := do(s, http.MethodPost, "/notes", `{"text":`, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", w.Body.String())
	assert.NotContains(t, w.Body.String(), web.MsgEmptyText)

	notes, err := svc.ListNotes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestContainer_NewestFirstAndEscaped(t *testing.T) {
	s, _ := newServer(t, nil)
	for _, text := range []string{"A", "B", "<b>C</b>"} {
		require.Equal(t, http.StatusSeeOther, postForm(s, "/notes", url.Values{"text": {text}}).Code)
	}

	w := do(s, http.MethodGet, "/notes", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.NotContains(t, body, "<b>C</b>")
	iC := strings.Index(body, "&lt;b&gt;C&lt;/b&gt;")
	iB := strings.Index(body, `<p class="note-text">B</p>`)
	iA := strings.Index(body, `<p class="note-text">A</p>`)
	require.True(t, iC >= 0 && iB >= 0 && iA >= 0, body)
	assert.True(t, iC < iB && iB < iA)
}

func TestDeleteNote_ByCreationIndex(t *testing.T) {
	s, svc := newServer(t, nil)
	for _, text := range []string{"A", "B", "C"} {
		postForm(s, "/notes", url.Values{"text": {text}})
	}

	// The button shown second (B) carries creation index 1.
	page := do(s, http.MethodGet, "/notes", "", "").Body.String()
	require.Contains(t, page, `action="/notes/1/delete"`)

	w := postForm(s, "/notes/1/delete", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)

	notes, err := svc.ListNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "A", notes[0].Text)
	assert.Equal(t, "C", notes[1].Text)

	page = do(s, http.MethodGet, "/notes", "", "").Body.String()
	assert.NotContains(t, page, `<p class="note-text">B</p>`)
}

func TestDeleteNote_StaleIndex(t *testing.T) {
	s, svc := newServer(t, nil)
	postForm(s, "/notes", url.Values{"text": {"only"}})

	w := postForm(s, "/notes/5/delete", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?status=missing", w.Header().Get("Location"))

	notes, _ := svc.ListNotes(context.Background())
	assert.Len(t, notes, 1)

	assert.Equal(t, http.StatusBadRequest, postForm(s, "/notes/abc/delete", nil).Code)
}

func TestAPI_CRUD(t *testing.T) {
	s, _ := newServer(t, nil)

	w := do(s, http.MethodPost, "/api/notes", `{"text":"from api"}`, "application/json")
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Note    core.Note `json:"note"`
		Message string    `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "from api", created.Note.Text)
	assert.NotEmpty(t, created.Note.ID)
	assert.Equal(t, web.MsgSaved, created.Message)

	w = do(s, http.MethodGet, "/api/notes", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Notes []core.Note `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Notes, 1)

	w = do(s, http.MethodDelete, "/api/notes/"+created.Note.ID, "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(s, http.MethodDelete, "/api/notes/"+created.Note.ID, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(s, http.MethodPost, "/api/notes", `{"text":"  "}`, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), web.MsgEmptyText)

	w = do(s, http.MethodPost, "/api/notes", `{not json`, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSMS(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"sent", nil, http.StatusSeeOther, ""},
		{"invalid", fmt.Errorf("%w: %q", notify.ErrInvalidPhone, "12"), http.StatusBadRequest, notify.MsgInvalid},
		{"rejected", fmt.Errorf("%w: Insufficient balance", notify.ErrSendFailed), http.StatusBadGateway, "Insufficient balance"},
		{"unreachable", fmt.Errorf("dial tcp: refused"), http.StatusBadGateway, notify.MsgUnreachable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &fakeNotifier{err: tt.err}
			s, _ := newServer(t, n)

			w := postForm(s, "/sms", url.Values{"phone": {"0200463804"}})
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			} else {
				assert.Equal(t, "/?status=sms", w.Header().Get("Location"))
				assert.Equal(t, []string{"0200463804"}, n.phones)
			}
		})
	}
}

func TestSMS_NotConfigured(t *testing.T) {
	s, _ := newServer(t, nil)
	w := postForm(s, "/sms", url.Values{"phone": {"0200463804"}})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), web.MsgNoSMS)
}

func TestHealthAndMetrics(t *testing.T) {
	s, _ := newServer(t, nil)
	postForm(s, "/notes", url.Values{"text": {"counted"}})

	w := do(s, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")

	w = do(s, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jot_notes_appended_total")
}

func TestReadOnlyService(t *testing.T) {
	store := core.NewStore(memory.New(), "", nil)
	svc := core.NewService(store, core.Config{ReadOnly: true})
	s, err := web.New(context.Background(), web.Config{Service: svc})
	require.NoError(t, err)

	w := postForm(s, "/notes", url.Values{"text": {"nope"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	s, _ := newServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0", time.Second, time.Second) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNew_RequiresService(t *testing.T) {
	_, err := web.New(context.Background(), web.Config{})
	assert.Error(t, err)
}
