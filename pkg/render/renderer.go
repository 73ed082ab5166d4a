package render

import (
	"context"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

// Renderer converts an insight tree into a byte representation (HTML,
// terminal text, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, nodes []insight.Node, options RenderOptions) ([]byte, error)
}
