package insight

import (
	"encoding/json"
	"strings"
)

// Kind identifiers for the node variants understood by the default
// renderers. Any other string is a valid Item type; renderers decide how to
// treat it.
const (
	KindSection     = "section"
	KindTable       = "table"
	KindBarChart    = "bar_chart"
	KindLineChart   = "line_chart"
	KindScatterPlot = "scatter_plot"
	KindText        = "text"
	KindImage       = "image"
	KindError       = "error"
)

// Node is the sum type of the insight tree. Only Section and Item implement
// it.
type Node interface {
	Kind() string
	NodeID() string
	NodeTitle() string
	isNode()
}

// Base carries the fields every node shares.
type Base struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Comment     string `json:"comment,omitempty"`
}

// Color names the section palette.
type Color string

const (
	ColorWhite  Color = "white"
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorOrange Color = "orange"
)

// Normalized returns the colour itself when it belongs to the palette and
// ColorWhite otherwise.
func (c Color) Normalized() Color {
	switch Color(strings.ToLower(strings.TrimSpace(string(c)))) {
	case ColorRed:
		return ColorRed
	case ColorGreen:
		return ColorGreen
	case ColorBlue:
		return ColorBlue
	case ColorYellow:
		return ColorYellow
	case ColorPurple:
		return ColorPurple
	case ColorOrange:
		return ColorOrange
	default:
		return ColorWhite
	}
}

// DropdownOption is one selectable subsection.
type DropdownOption struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// DropdownConfig switches a section between named subsections.
type DropdownConfig struct {
	Enabled          bool             `json:"enabled"`
	DefaultSelection string           `json:"default_selection"`
	Options          []DropdownOption `json:"options"`
}

// Option returns the option with the supplied id.
func (d *DropdownConfig) Option(id string) (DropdownOption, bool) {
	if d == nil {
		return DropdownOption{}, false
	}
	for _, opt := range d.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return DropdownOption{}, false
}

// Subsection is the content shown when its dropdown option is active.
type Subsection struct {
	Items       []Node `json:"items"`
	ItemsPerRow int    `json:"items_per_row,omitempty"`
}

// Section groups nodes under a titled, colour-coded container.
type Section struct {
	Base
	Color       Color                 `json:"color,omitempty"`
	Items       []Node                `json:"items,omitempty"`
	ItemsPerRow int                   `json:"items_per_row,omitempty"`
	Dropdown    *DropdownConfig       `json:"dropdown,omitempty"`
	Subsections map[string]Subsection `json:"subsections,omitempty"`
}

func (s Section) Kind() string      { return KindSection }
func (s Section) NodeID() string    { return s.ID }
func (s Section) NodeTitle() string { return s.Title }
func (Section) isNode()             {}

// UsesDropdown reports whether the section content is driven by a dropdown.
// When true the section's own Items and ItemsPerRow are ignored.
func (s Section) UsesDropdown() bool {
	return s.Dropdown != nil && s.Dropdown.Enabled && s.Subsections != nil
}

// Content returns the items and grid density shown for the supplied
// selection. Sections without a dropdown ignore the selection. A selection
// with no matching subsection yields no items.
func (s Section) Content(selection string) ([]Node, int) {
	if s.UsesDropdown() {
		sub, ok := s.Subsections[selection]
		if !ok {
			return nil, 1
		}
		return sub.Items, perRow(sub.ItemsPerRow)
	}
	return s.Items, perRow(s.ItemsPerRow)
}

func perRow(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Item is a leaf node. Fields holds every payload key other than the base
// fields, exactly as decoded, so renderers can validate shapes themselves.
type Item struct {
	Base
	Fields map[string]any `json:"-"`
}

func (i Item) Kind() string      { return i.Type }
func (i Item) NodeID() string    { return i.ID }
func (i Item) NodeTitle() string { return i.Title }
func (Item) isNode()             {}

// Field returns a payload value.
func (i Item) Field(name string) (any, bool) {
	if i.Fields == nil {
		return nil, false
	}
	value, ok := i.Fields[name]
	return value, ok
}

// StringField returns a payload value when it is a string.
func (i Item) StringField(name string) string {
	value, _ := i.Field(name)
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// MarshalJSON flattens Fields next to the base fields.
func (i Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(i.Fields)+5)
	for key, value := range i.Fields {
		out[key] = value
	}
	out["type"] = i.Type
	out["id"] = i.ID
	out["title"] = i.Title
	if i.Description != "" {
		out["description"] = i.Description
	}
	if i.Comment != "" {
		out["comment"] = i.Comment
	}
	return json.Marshal(out)
}

// NewErrorItem builds an error leaf.
func NewErrorItem(id, title, message string) Item {
	return Item{
		Base:   Base{Type: KindError, ID: id, Title: title},
		Fields: map[string]any{"error": message},
	}
}

// Document is a titled insight report, the findings attached to a project.
type Document struct {
	ModelID string `json:"model_id"`
	Version string `json:"version"`
	Content Nodes  `json:"content"`
}

// MarshalJSON pins the discriminant so sections built in code encode with
// type "section".
func (s Section) MarshalJSON() ([]byte, error) {
	type plain Section
	out := plain(s)
	out.Type = KindSection
	return json.Marshal(out)
}

// UnmarshalJSON decodes a section including its nested nodes.
func (s *Section) UnmarshalJSON(data []byte) error {
	node, err := decodeOne(data)
	if err != nil {
		return err
	}
	section, ok := node.(Section)
	if !ok {
		return errNotSection(node.Kind())
	}
	*s = section
	return nil
}

// Nodes is a decodable list of nodes.
type Nodes []Node

// UnmarshalJSON decodes a JSON array of sections and items.
func (n *Nodes) UnmarshalJSON(data []byte) error {
	nodes, err := DecodeNodes(data)
	if err != nil {
		return err
	}
	*n = nodes
	return nil
}
