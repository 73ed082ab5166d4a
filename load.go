package chanterelle

import (
	"io/fs"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

// LoadDocument reads a findings document (JSON or YAML) from fsys.
func LoadDocument(fsys fs.FS, name string) (Document, error) {
	return insight.LoadFS(fsys, name)
}

// ParseDocument decodes a findings document. source names the input in
// error messages.
func ParseDocument(data []byte, source string) (Document, error) {
	return insight.ParseDocument(data, source)
}
