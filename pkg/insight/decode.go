package insight

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var baseKeys = map[string]struct{}{
	"type":        {},
	"id":          {},
	"title":       {},
	"description": {},
	"comment":     {},
}

func errNotSection(kind string) error {
	return fmt.Errorf("insight: expected a section, got %q", kind)
}

// DecodeNodes decodes a JSON array of nodes.
func DecodeNodes(data []byte) ([]Node, error) {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("insight: decode nodes: %w", err)
	}
	return NodesFromValue(raw)
}

func decodeOne(data []byte) (Node, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("insight: decode node: %w", err)
	}
	return NodeFromValue(raw)
}

// NodesFromValue converts a decoded JSON or YAML list into nodes.
func NodesFromValue(value any) ([]Node, error) {
	if value == nil {
		return nil, nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("insight: expected a list of nodes, got %T", value)
	}
	nodes := make([]Node, 0, len(list))
	for idx, entry := range list {
		node, err := NodeFromValue(entry)
		if err != nil {
			return nil, fmt.Errorf("insight: node %d: %w", idx, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// NodeFromValue converts one decoded JSON or YAML object into a Section or
// an Item depending on its type.
func NodeFromValue(value any) (Node, error) {
	obj, ok := AsObject(value)
	if !ok {
		return nil, fmt.Errorf("insight: node must be an object, got %T", value)
	}

	base := Base{
		Type:        strings.TrimSpace(stringOf(obj["type"])),
		ID:          stringOf(obj["id"]),
		Title:       stringOf(obj["title"]),
		Description: stringOf(obj["description"]),
		Comment:     stringOf(obj["comment"]),
	}

	if base.Type == KindSection {
		return sectionFromObject(base, obj)
	}

	fields := make(map[string]any, len(obj))
	for key, entry := range obj {
		if _, skip := baseKeys[key]; skip {
			continue
		}
		fields[key] = entry
	}
	return Item{Base: base, Fields: fields}, nil
}

func sectionFromObject(base Base, obj map[string]any) (Section, error) {
	section := Section{
		Base:  base,
		Color: Color(stringOf(obj["color"])),
	}

	items, err := NodesFromValue(obj["items"])
	if err != nil {
		return Section{}, fmt.Errorf("section %q items: %w", base.ID, err)
	}
	section.Items = items

	if n, ok := Number(obj["items_per_row"]); ok {
		section.ItemsPerRow = int(n)
	}

	if raw, exists := obj["dropdown"]; exists && raw != nil {
		dropdown, err := dropdownFromValue(raw)
		if err != nil {
			return Section{}, fmt.Errorf("section %q dropdown: %w", base.ID, err)
		}
		section.Dropdown = dropdown
	}

	if raw, exists := obj["subsections"]; exists && raw != nil {
		subsObj, ok := AsObject(raw)
		if !ok {
			return Section{}, fmt.Errorf("section %q: subsections must be an object", base.ID)
		}
		section.Subsections = make(map[string]Subsection, len(subsObj))
		for key, entry := range subsObj {
			subObj, ok := AsObject(entry)
			if !ok {
				return Section{}, fmt.Errorf("section %q: subsection %q must be an object", base.ID, key)
			}
			subItems, err := NodesFromValue(subObj["items"])
			if err != nil {
				return Section{}, fmt.Errorf("section %q subsection %q: %w", base.ID, key, err)
			}
			sub := Subsection{Items: subItems}
			if n, ok := Number(subObj["items_per_row"]); ok {
				sub.ItemsPerRow = int(n)
			}
			section.Subsections[key] = sub
		}
	}

	return section, nil
}

func dropdownFromValue(value any) (*DropdownConfig, error) {
	obj, ok := AsObject(value)
	if !ok {
		return nil, errors.New("dropdown must be an object")
	}
	cfg := &DropdownConfig{
		DefaultSelection: stringOf(obj["default_selection"]),
	}
	if enabled, ok := obj["enabled"].(bool); ok {
		cfg.Enabled = enabled
	}
	if rawOptions, ok := obj["options"].([]any); ok {
		for _, rawOption := range rawOptions {
			optObj, ok := AsObject(rawOption)
			if !ok {
				continue
			}
			cfg.Options = append(cfg.Options, DropdownOption{
				ID:          stringOf(optObj["id"]),
				Label:       stringOf(optObj["label"]),
				Description: stringOf(optObj["description"]),
			})
		}
	}
	return cfg, nil
}

// AsObject normalises decoded maps. yaml.v3 yields map[string]any for
// string-keyed mappings but map[any]any when keys are mixed.
func AsObject(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, entry := range typed {
			out[fmt.Sprint(key)] = entry
		}
		return out, true
	default:
		return nil, false
	}
}

// AsList returns value as a slice when it is a decoded sequence.
func AsList(value any) ([]any, bool) {
	switch typed := value.(type) {
	case []any:
		return typed, true
	case []map[string]any:
		out := make([]any, len(typed))
		for idx, entry := range typed {
			out[idx] = entry
		}
		return out, true
	default:
		return nil, false
	}
}

// Number extracts a finite float64 from the numeric representations the JSON
// and YAML decoders produce. NaN and infinities are rejected.
func Number(value any) (float64, bool) {
	var f float64
	switch typed := value.(type) {
	case float64:
		f = typed
	case float32:
		f = float64(typed)
	case int:
		f = float64(typed)
	case int64:
		f = float64(typed)
	case int32:
		f = float64(typed)
	case uint64:
		f = float64(typed)
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func stringOf(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case json.Number:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}
