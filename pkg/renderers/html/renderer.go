// Package html renders insight trees to HTML. Sections are walked
// recursively; leaves are resolved through a components.Registry. The output
// is a fragment meant for the server's page layout unless the renderer is
// built WithDocument, in which case it is a standalone page.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-chanterelle/pkg/fileurl"
	"github.com/goliatone/go-chanterelle/pkg/insight"
	"github.com/goliatone/go-chanterelle/pkg/render"
	rendertemplate "github.com/goliatone/go-chanterelle/pkg/render/template"
	"github.com/goliatone/go-chanterelle/pkg/render/template/gotemplate"
	"github.com/goliatone/go-chanterelle/pkg/renderers/html/components"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	registry    *components.Registry
	files       fileurl.Resolver
	silent      bool
	document    bool
	templateFS  fs.FS
	templates   rendertemplate.TemplateRenderer
}

// WithRegistry replaces the default component registry.
func WithRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithFileResolver sets how image paths become URLs.
func WithFileResolver(resolver fileurl.Resolver) Option {
	return func(cfg *config) {
		cfg.files = resolver
	}
}

// WithSilentUnknownTypes drops items whose type has no renderer instead of
// showing an "unsupported type" notice.
func WithSilentUnknownTypes() Option {
	return func(cfg *config) {
		cfg.silent = true
	}
}

// WithDocument wraps the output in a standalone HTML page with the stylesheet
// and bootstrap script inlined.
func WithDocument() Option {
	return func(cfg *config) {
		cfg.document = true
	}
}

// WithTemplatesFS supplies an alternate document template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer for the document.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// Renderer renders insight trees to HTML.
type Renderer struct {
	registry  *components.Registry
	files     fileurl.Resolver
	silent    bool
	document  bool
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	r := &Renderer{
		registry: cfg.registry,
		files:    cfg.files,
		silent:   cfg.silent,
		document: cfg.document,
	}
	if !cfg.document {
		return r, nil
	}

	r.templates = cfg.templates
	if r.templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS), gotemplate.WithExtension(".tpl"))
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		r.templates = engine
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Registry exposes the component registry in use.
func (r *Renderer) Registry() *components.Registry {
	return r.registry
}

// Render writes the tree. Errors only come from the component renderers or
// the document template; payload problems render inline.
func (r *Renderer) Render(ctx context.Context, nodes []insight.Node, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder
	w := walker{renderer: r, opts: options, b: &b}
	if err := w.root(nodes); err != nil {
		return nil, err
	}
	if !r.document {
		return []byte(b.String()), nil
	}

	title := options.Heading
	if title == "" {
		title = "Insights"
	}
	out, err := r.templates.RenderTemplate("document", map[string]any{
		"title":      title,
		"body":       b.String(),
		"stylesheet": Stylesheet(),
		"script":     BootstrapScript(),
		"chart_js":   ChartJSURL,
		"variant":    variantOf(options),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render document: %w", err)
	}
	return []byte(out), nil
}

func variantOf(options render.RenderOptions) string {
	if options.Theme == nil || options.Theme.Variant == "" {
		return "light"
	}
	return options.Theme.Variant
}
