// Package components maps insight item types to their HTML renderers and
// icons. The tree walker in the parent package resolves every leaf through a
// Registry, so supporting a new item type means registering one Descriptor.
package components

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-chanterelle/pkg/fileurl"
	"github.com/goliatone/go-chanterelle/pkg/insight"
)

// Context carries per-render data a leaf renderer may need.
type Context struct {
	// AnchorID is the joined id of the item being rendered.
	AnchorID string
	// ProjectDir resolves project-relative file references.
	ProjectDir string
	// Files turns file references into servable URLs.
	Files fileurl.Resolver
}

// Renderer writes the HTML of one item. Payload problems are rendered as
// inline notices; an error return is reserved for failures of the renderer
// itself.
type Renderer func(b *strings.Builder, item insight.Item, ctx Context) error

// Descriptor bundles a renderer with the icon shown next to the item title.
// Icon is SVG markup and is sanitized on registration.
type Descriptor struct {
	Name     string
	Renderer Renderer
	Icon     string
}

// Registry tracks descriptors keyed by item type.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{components: make(map[string]Descriptor)}
}

// Clone returns a copy that can be changed without affecting r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = descriptor
	}
	return cloned
}

// Register associates a descriptor with an item type. Existing entries are
// replaced.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: item type is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}
	descriptor.Name = name
	descriptor.Icon = SanitizeIcon(descriptor.Icon)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[name] = descriptor
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
	descriptor, ok := r.components[normalize(name)]
	return descriptor, ok
}

// Names returns the registered item types, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
