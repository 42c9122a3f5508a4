package web

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/notify"
)

// User-facing messages.
const (
	MsgEmptyText = "Please write something before saving!"
	MsgSaved     = "Note saved successfully!"
	MsgMissing   = "That note no longer exists."
	MsgNoSMS     = "SMS is not configured."
)

type status struct {
	Kind    string
	Message string
}

// statuses are the outcomes carried across a redirect in ?status=.
var statuses = map[string]status{
	"saved":   {Kind: "success", Message: MsgSaved},
	"sms":     {Kind: "success", Message: notify.MsgSent},
	"missing": {Kind: "error", Message: MsgMissing},
}

type pageData struct {
	Base   string
	Status *status
	Draft  string
	SMS    bool
	Notes  template.HTML
}

type noteRequest struct {
	Text string `json:"text" form:"text"`
}

// page renders the full document around the note container.
func (s *Server) page(c *gin.Context) {
	var st *status
	if v, ok := statuses[c.Query("status")]; ok {
		st = &v
	}
	s.renderPage(c, http.StatusOK, st, "")
}

func (s *Server) renderPage(c *gin.Context, code int, st *status, draft string) {
	notes, err := s.controller.Snapshot(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(code, "page", pageData{
		Base:   s.base,
		Status: st,
		Draft:  draft,
		SMS:    s.notifier != nil,
		// Produced by html/template with every note field escaped.
		Notes: template.HTML(notes),
	})
}

// container returns the note container fragment alone.
func (s *Server) container(c *gin.Context) {
	notes, err := s.controller.Snapshot(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", notes)
}

func (s *Server) addNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBind(&req); err != nil {
		s.logger.Debug("unreadable note form", "content_type", c.ContentType(), "error", err)
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := s.controller.Add(c.Request.Context(), req.Text); err != nil {
		if errors.Is(err, core.ErrEmptyText) {
			validationFailures.Inc()
			s.renderPage(c, http.StatusBadRequest, &status{Kind: "error", Message: MsgEmptyText}, req.Text)
			return
		}
		s.fail(c, err)
		return
	}
	notesAppended.Inc()
	c.Redirect(http.StatusSeeOther, s.base+"/?status=saved")
}

func (s *Server) deleteNote(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid note index")
		return
	}

	err = s.controller.DeleteAt(c.Request.Context(), index)
	switch {
	case err == nil:
		notesDeleted.WithLabelValues("index").Inc()
		c.Redirect(http.StatusSeeOther, s.base+"/")
	case errors.Is(err, core.ErrOutOfRange):
		s.logger.Info("stale delete ignored", "index", index)
		c.Redirect(http.StatusSeeOther, s.base+"/?status=missing")
	default:
		s.fail(c, err)
	}
}

func (s *Server) sendSMS(c *gin.Context) {
	if s.notifier == nil {
		s.renderPage(c, http.StatusServiceUnavailable, &status{Kind: "error", Message: MsgNoSMS}, "")
		return
	}

	_, err := s.notifier.Send(c.Request.Context(), c.PostForm("phone"))
	switch {
	case err == nil:
		smsSent.WithLabelValues("sent").Inc()
		c.Redirect(http.StatusSeeOther, s.base+"/?status=sms")
	case errors.Is(err, notify.ErrInvalidPhone):
		smsSent.WithLabelValues("invalid").Inc()
		s.renderPage(c, http.StatusBadRequest, &status{Kind: "error", Message: notify.MsgInvalid}, "")
	case errors.Is(err, notify.ErrSendFailed):
		smsSent.WithLabelValues("rejected").Inc()
		s.logger.Warn("sms rejected", "error", err)
		s.renderPage(c, http.StatusBadGateway, &status{Kind: "error", Message: "Error: " + err.Error()}, "")
	default:
		smsSent.WithLabelValues("unreachable").Inc()
		s.logger.Error("sms provider unreachable", "error", err)
		s.renderPage(c, http.StatusBadGateway, &status{Kind: "error", Message: notify.MsgUnreachable}, "")
	}
}

func (s *Server) apiList(c *gin.Context) {
	notes, err := s.service.ListNotes(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (s *Server) apiAdd(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	n, err := s.controller.Add(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, core.ErrEmptyText) {
			validationFailures.Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": MsgEmptyText})
			return
		}
		s.fail(c, err)
		return
	}
	notesAppended.Inc()
	c.JSON(http.StatusCreated, gin.H{"note": n, "message": MsgSaved})
}

func (s *Server) apiDelete(c *gin.Context) {
	err := s.controller.DeleteID(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		notesDeleted.WithLabelValues("id").Inc()
		c.Status(http.StatusNoContent)
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": MsgMissing})
	default:
		s.fail(c, err)
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, core.ErrReadOnly) {
		c.String(http.StatusForbidden, "notes are read-only")
		return
	}
	s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	c.String(http.StatusInternalServerError, "internal error")
}
