// Package web serves the note list over HTTP with gin.
package web

import (
	"context"
	_ "embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/jot/pkg/notify"
	"github.com/aretw0/jot/pkg/render"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("jot").Parse(pageHTML))

// Config configures a Server.
type Config struct {
	Service render.NoteService
	// Notifier enables POST /sms when set.
	Notifier notify.Notifier
	Logger   *slog.Logger
	// Base is the path prefix the server is mounted under, e.g. "/jot".
	Base string
}

// Server renders the note container and applies mutations from forms and JSON.
type Server struct {
	router     *gin.Engine
	service    render.NoteService
	controller *render.Controller
	notifier   notify.Notifier
	logger     *slog.Logger
	base       string
}

// New builds the router. The container is rendered once from the store.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if cfg.Service == nil {
		return nil, errors.New("web: service is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	view := render.NewView(&render.BufferSurface{}, render.HTMLFormatter{Base: cfg.Base})
	s := &Server{
		service:    cfg.Service,
		controller: render.NewController(cfg.Service, view),
		notifier:   cfg.Notifier,
		logger:     cfg.Logger,
		base:       cfg.Base,
	}
	if _, err := s.controller.Refresh(ctx); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(pageTemplate)

	g := r.Group(cfg.Base)
	g.GET("/", s.page)
	g.GET("/notes", s.container)
	g.POST("/notes", s.addNote)
	g.POST("/notes/:index/delete", s.deleteNote)
	g.POST("/sms", s.sendSMS)

	api := g.Group("/api")
	api.GET("/notes", s.apiList)
	api.POST("/notes", s.apiAdd)
	api.DELETE("/notes/:id", s.apiDelete)

	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	g.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router = r
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:           addr,
		Handler:        s.router,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("web server listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("web server shutdown error", "error", err)
			return err
		}
		s.logger.Info("web server stopped")
		return nil
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
