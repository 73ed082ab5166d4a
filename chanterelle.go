// Package chanterelle renders model insight reports. The root package is a
// convenience facade over pkg/insight and the built-in renderers for callers
// that only need "document in, HTML or terminal text out".
package chanterelle

import (
	"context"
	"fmt"

	"github.com/goliatone/go-chanterelle/pkg/insight"
	"github.com/goliatone/go-chanterelle/pkg/render"
	htmlrenderer "github.com/goliatone/go-chanterelle/pkg/renderers/html"
	"github.com/goliatone/go-chanterelle/pkg/renderers/terminal"
)

// RenderOptions aliases render.RenderOptions so callers can set selections,
// the project directory and the theme without importing the render package.
type RenderOptions = render.RenderOptions

// Document aliases insight.Document.
type Document = insight.Document

// Node aliases insight.Node.
type Node = insight.Node

// NewRegistry returns a registry holding the HTML fragment renderer and the
// terminal renderer.
func NewRegistry() (*render.Registry, error) {
	html, err := htmlrenderer.New()
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(html, terminal.New())
}

// Render renders nodes with the named built-in renderer ("html" or
// "terminal").
func Render(ctx context.Context, rendererName string, nodes []Node, opts RenderOptions) ([]byte, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, fmt.Errorf("chanterelle: %w", err)
	}
	return renderer.Render(ctx, nodes, opts)
}

// RenderHTML renders nodes as an HTML fragment, or a full page when
// htmlrenderer.WithDocument is passed.
func RenderHTML(ctx context.Context, nodes []Node, opts RenderOptions, options ...htmlrenderer.Option) ([]byte, error) {
	renderer, err := htmlrenderer.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, nodes, opts)
}

// RenderTerminal renders nodes as styled terminal text.
func RenderTerminal(ctx context.Context, nodes []Node, opts RenderOptions, options ...terminal.Option) ([]byte, error) {
	return terminal.New(options...).Render(ctx, nodes, opts)
}
