// Package server is the web application: the model catalog, model pages
// with their insight reports and prediction form, settings, file serving
// for report images and the static assets.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/goliatone/go-chanterelle/pkg/backend"
	"github.com/goliatone/go-chanterelle/pkg/fileurl"
	rendertemplate "github.com/goliatone/go-chanterelle/pkg/render/template"
	htmlrenderer "github.com/goliatone/go-chanterelle/pkg/renderers/html"
	"github.com/goliatone/go-chanterelle/pkg/session"
)

// Deps are the services the handlers share. Backend is required; the rest
// get defaults.
type Deps struct {
	Backend   backend.Backend
	Workspace *session.Workspace
	Theme     *session.Theme
	Warmup    *session.WarmupTracker
	Files     fileurl.Resolver
}

// Option configures the server.
type Option func(*Server)

// WithLogLevel sets the echo logger level.
func WithLogLevel(lvl log.Lvl) Option {
	return func(s *Server) {
		s.level = lvl
	}
}

// WithLogOutput redirects the echo logger.
func WithLogOutput(w io.Writer) Option {
	return func(s *Server) {
		if w != nil {
			s.logOutput = w
		}
	}
}

// WithTemplatesDir loads page templates from dir ahead of the embedded ones.
func WithTemplatesDir(dir string) Option {
	return func(s *Server) {
		s.templatesDir = dir
	}
}

// Server wires the handlers into an echo instance.
type Server struct {
	echo     *echo.Echo
	deps     Deps
	pages    rendertemplate.TemplateRenderer
	insights *htmlrenderer.Renderer

	level        log.Lvl
	logOutput    io.Writer
	templatesDir string
}

// New builds the server and registers every route.
func New(deps Deps, options ...Option) (*Server, error) {
	if deps.Backend == nil {
		return nil, errors.New("server: backend is required")
	}
	if deps.Workspace == nil {
		deps.Workspace = &session.Workspace{}
	}
	if deps.Theme == nil {
		deps.Theme = session.NewTheme(session.PreferenceSystem, nil)
	}
	if deps.Warmup == nil {
		deps.Warmup = session.NewWarmupTracker(deps.Backend)
	}

	s := &Server{deps: deps, level: log.INFO}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	pages, err := newPages(s.templatesDir)
	if err != nil {
		return nil, err
	}
	s.pages = pages

	insights, err := htmlrenderer.New(htmlrenderer.WithFileResolver(deps.Files))
	if err != nil {
		return nil, fmt.Errorf("server: insight renderer: %w", err)
	}
	s.insights = insights

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(s.level)
	if s.logOutput != nil {
		e.Logger.SetOutput(s.logOutput)
	}
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		s.handleError(err, c)
		c.Logger().Error(err)
	}
	e.Use(logRequests)
	s.echo = e
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	e := s.echo
	e.GET("/", s.catalog)
	e.GET("/models/:project", s.modelPage)
	e.POST("/models/:project/predict", s.predict)
	e.GET("/models/:project/warmup", s.warmupStatus)
	e.POST("/models/:project/warmup", s.warmup)
	e.GET("/models/:project/schema.json", s.schema)
	e.GET("/settings", s.settings)
	e.POST("/settings", s.saveSettings)
	e.POST("/settings/browse", s.browse)
	e.POST("/settings/theme", s.setTheme)
	e.GET("/files", s.files)
	e.StaticFS("/assets", htmlrenderer.AssetsFS())
}

// Handler exposes the server for httptest and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Logger is the echo logger, for callers that log alongside requests.
func (s *Server) Logger() echo.Logger {
	return s.echo.Logger
}

// Run serves on addr until ctx is done, then shuts down gracefully and waits
// for pending warm-ups.
func (s *Server) Run(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		s.echo.Logger.Infof("listening on %s", addr)
		errc <- s.echo.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.deps.Warmup.Wait()
	return nil
}

// logRequests logs server-side latency per request.
func logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		meth := c.Request().Method
		path := c.Request().URL
		begin := time.Now()
		c.Logger().Debugf("< request %s %s", meth, path)

		err := next(c)

		c.Logger().Infof(
			"> %s %s status = %d in %v / error = %v",
			meth, path, c.Response().Status, time.Since(begin), err,
		)
		return err
	}
}
