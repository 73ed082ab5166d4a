package server

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-chanterelle/pkg/backend"
	rendertemplate "github.com/goliatone/go-chanterelle/pkg/render/template"
	"github.com/goliatone/go-chanterelle/pkg/render/template/gotemplate"
	htmlrenderer "github.com/goliatone/go-chanterelle/pkg/renderers/html"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

func templatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

func newPages(dir string) (rendertemplate.TemplateRenderer, error) {
	opts := []gotemplate.Option{
		gotemplate.WithFS(templatesFS()),
		gotemplate.WithGlobalData(map[string]any{
			"app_name": "Chanterelle",
			"chart_js": htmlrenderer.ChartJSURL,
		}),
	}
	if dir != "" {
		opts = append(opts, gotemplate.WithBaseDir(dir))
	}
	engine, err := gotemplate.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("server: page templates: %w", err)
	}
	return engine, nil
}

// page renders a template with the layout data every page needs.
func (s *Server) page(c echo.Context, status int, name string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	cfg := s.deps.Theme.RendererConfig()
	data["theme"] = map[string]any{
		"preference": string(s.deps.Theme.Preference()),
		"variant":    cfg.Variant,
		"style":      cssVars(cfg.CSSVars),
	}
	data["request_path"] = c.Request().URL.RequestURI()
	if project, _ := s.deps.Workspace.Active(); project != "" {
		data["active_project"] = project
	}

	out, err := s.pages.RenderTemplate(name, data)
	if err != nil {
		return fmt.Errorf("server: render %s: %w", name, err)
	}
	return c.HTML(status, out)
}

func cssVars(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.HasPrefix(key, "--") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}

// backendError maps a backend failure to an HTTP error. Transport status
// codes carry over; anything else is a bad gateway.
func backendError(err error) error {
	if err == nil {
		return nil
	}
	message := backend.Message(err)
	if errors.Is(err, backend.ErrNoProjectsDirectory) {
		return echo.NewHTTPError(http.StatusConflict, message).SetInternal(err)
	}
	var berr *backend.Error
	if errors.As(err, &berr) && berr.Status >= 400 && berr.Status < 600 {
		return echo.NewHTTPError(berr.Status, message).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusBadGateway, message).SetInternal(err)
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}
	needsSettings := errors.Is(err, backend.ErrNoProjectsDirectory)

	if wantsJSON(c) {
		_ = c.JSON(code, map[string]any{"error": message})
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	renderErr := s.page(c, code, "error", map[string]any{
		"title":          http.StatusText(code),
		"code":           code,
		"message":        message,
		"needs_settings": needsSettings,
	})
	if renderErr != nil {
		s.echo.DefaultHTTPErrorHandler(err, c)
	}
}

func wantsJSON(c echo.Context) bool {
	req := c.Request()
	if strings.HasSuffix(req.URL.Path, ".json") || strings.HasSuffix(req.URL.Path, "/warmup") {
		return true
	}
	return strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
