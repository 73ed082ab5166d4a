package chanterelle

import (
	"io/fs"

	htmlrenderer "github.com/goliatone/go-chanterelle/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML document template so callers
// can copy and extend it, then pass it back with htmlrenderer.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return htmlrenderer.TemplatesFS()
}
