package insight

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseDocument decodes a findings document from JSON, falling back to YAML.
// A bare list of nodes is accepted as a document without metadata.
func ParseDocument(data []byte, source string) (Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("insight: file %s is empty", source)
	}

	raw, err := decodeAny(data)
	if err != nil {
		return Document{}, fmt.Errorf("insight: parse %s: invalid JSON or YAML", source)
	}

	if list, ok := AsList(raw); ok {
		nodes, err := NodesFromValue(list)
		if err != nil {
			return Document{}, fmt.Errorf("insight: parse %s: %w", source, err)
		}
		return Document{Content: nodes}, nil
	}

	obj, ok := AsObject(raw)
	if !ok {
		return Document{}, fmt.Errorf("insight: parse %s: expected an object or a list", source)
	}
	nodes, err := NodesFromValue(obj["content"])
	if err != nil {
		return Document{}, fmt.Errorf("insight: parse %s: %w", source, err)
	}
	return Document{
		ModelID: stringOf(obj["model_id"]),
		Version: stringOf(obj["version"]),
		Content: nodes,
	}, nil
}

// LoadFS reads and parses one document from fsys.
func LoadFS(fsys fs.FS, name string) (Document, error) {
	if fsys == nil {
		return Document{}, fmt.Errorf("insight: nil filesystem")
	}
	data, err := fs.ReadFile(fsys, path.Clean(name))
	if err != nil {
		return Document{}, fmt.Errorf("insight: read %s: %w", name, err)
	}
	return ParseDocument(data, name)
}

func decodeAny(data []byte) (any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err == nil {
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
