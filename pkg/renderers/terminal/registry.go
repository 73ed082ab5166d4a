package terminal

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

// Context carries per-render data a leaf renderer may need.
type Context struct {
	// Width is the number of columns available to the leaf.
	Width      int
	ProjectDir string
}

// LeafRenderer returns the terminal text of one item.
type LeafRenderer func(item insight.Item, ctx Context) (string, error)

// Descriptor bundles a leaf renderer with the glyph printed before the title.
type Descriptor struct {
	Name     string
	Renderer LeafRenderer
	Glyph    string
}

// Registry tracks descriptors keyed by item type.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Descriptor)}
}

// NewDefaultRegistry returns a registry holding the built-in item types.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(insight.KindTable, Descriptor{Renderer: renderTable, Glyph: "▦"})
	r.MustRegister(insight.KindBarChart, Descriptor{Renderer: renderBarChart, Glyph: "▥"})
	r.MustRegister(insight.KindLineChart, Descriptor{Renderer: renderLineChart, Glyph: "↗"})
	r.MustRegister(insight.KindScatterPlot, Descriptor{Renderer: renderScatterPlot, Glyph: "⁘"})
	r.MustRegister(insight.KindText, Descriptor{Renderer: renderText, Glyph: "¶"})
	r.MustRegister(insight.KindImage, Descriptor{Renderer: renderImage, Glyph: "▣"})
	r.MustRegister(insight.KindError, Descriptor{Renderer: renderError, Glyph: "⚠"})
	return r
}

// Register associates a descriptor with an item type, replacing any entry.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("terminal: item type is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("terminal: renderer for %q is nil", name)
	}
	descriptor.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = descriptor
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches the descriptor of an item type.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// Names returns the registered item types, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
