// Package terminal renders insight trees as styled text for the CLI. Charts
// become text bars and tables; dropdown sections show their active
// subsection only.
package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-chanterelle/pkg/insight"
	"github.com/goliatone/go-chanterelle/pkg/render"
)

// DefaultWidth is used when no width is configured.
const DefaultWidth = 100

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth sets the number of columns to lay out for.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 20 {
			r.width = width
		}
	}
}

// WithRegistry replaces the default leaf registry.
func WithRegistry(registry *Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithSilentUnknownTypes drops items whose type has no renderer.
func WithSilentUnknownTypes() Option {
	return func(r *Renderer) {
		r.silent = true
	}
}

// Renderer renders insight trees for terminals.
type Renderer struct {
	registry *Registry
	width    int
	silent   bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{registry: NewDefaultRegistry(), width: DefaultWidth}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "terminal"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes the tree.
func (r *Renderer) Render(ctx context.Context, nodes []insight.Node, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var blocks []string
	if options.Heading != "" {
		blocks = append(blocks, headingStyle(1).Render(options.Heading))
	}
	if options.TOC {
		if toc := TOC(insight.BuildTOC(nodes)); toc != "" {
			blocks = append(blocks, toc)
		}
	}
	for _, node := range nodes {
		out, err := r.node(node, 0, "", r.width, options)
		if err != nil {
			return nil, err
		}
		if out != "" {
			blocks = append(blocks, out)
		}
	}
	return []byte(strings.Join(blocks, "\n\n") + "\n"), nil
}

// TOC renders the outline as an indented list.
func TOC(entries []insight.TOCEntry) string {
	if len(entries) == 0 {
		return ""
	}
	lines := []string{headingStyle(2).Render("Table of Contents")}
	for _, entry := range entries {
		lines = append(lines, strings.Repeat("  ", entry.Level)+"- "+entry.Title+" "+descriptionStyle.Render("#"+entry.ID))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) node(node insight.Node, parentLevel int, parent string, width int, opts render.RenderOptions) (string, error) {
	switch typed := node.(type) {
	case insight.Section:
		return r.section(typed, parentLevel+1, parent, width, opts)
	case insight.Item:
		return r.item(typed, parent, width, opts)
	default:
		return "", nil
	}
}

func (r *Renderer) section(section insight.Section, level int, parent string, width int, opts render.RenderOptions) (string, error) {
	sid := insight.JoinID(parent, section.ID)
	inner := width - 4

	parts := []string{headingStyle(level).Render(section.Title)}
	if section.Description != "" {
		parts = append(parts, descriptionStyle.Width(inner).Render(section.Description))
	}

	selection := ""
	if section.UsesDropdown() {
		selection = opts.Selection(sid, section)
		parts = append(parts, dropdownLine(section, selection))
	}
	items, _ := section.Content(selection)
	for _, child := range items {
		out, err := r.node(child, level, sid, inner, opts)
		if err != nil {
			return "", err
		}
		if out != "" {
			parts = append(parts, out)
		}
	}
	if section.Comment != "" {
		parts = append(parts, commentStyle.Width(inner).Render(section.Comment))
	}
	return sectionBox(section.Color, width).Render(strings.Join(parts, "\n\n")), nil
}

func dropdownLine(section insight.Section, selection string) string {
	labels := make([]string, 0, len(section.Dropdown.Options))
	for _, opt := range section.Dropdown.Options {
		label := opt.Label
		if label == "" {
			label = opt.ID
		}
		if opt.ID == selection {
			label = "[" + label + "]"
		}
		labels = append(labels, label)
	}
	line := descriptionStyle.Render("View: ") + strings.Join(labels, " | ")
	if opt, ok := section.Dropdown.Option(selection); ok && opt.Description != "" {
		line += "\n" + descriptionStyle.Render(opt.Description)
	}
	return line
}

func (r *Renderer) item(item insight.Item, parent string, width int, opts render.RenderOptions) (string, error) {
	descriptor, known := r.registry.Descriptor(item.Type)
	if !known && r.silent {
		return "", nil
	}

	title := item.Title
	if known && descriptor.Glyph != "" {
		title = descriptor.Glyph + " " + title
	}
	parts := []string{itemTitleStyle.Render(title)}
	if item.Description != "" {
		parts = append(parts, descriptionStyle.Width(width).Render(item.Description))
	}

	if known {
		body, err := descriptor.Renderer(item, Context{Width: width, ProjectDir: opts.ProjectDir})
		if err != nil {
			return "", fmt.Errorf("terminal renderer: item %q (%s): %w", insight.JoinID(parent, item.ID), item.Type, err)
		}
		parts = append(parts, body)
	} else {
		parts = append(parts, warningStyle.Render(fmt.Sprintf("Unsupported insight type %q", item.Type)))
	}

	if item.Comment != "" {
		parts = append(parts, commentStyle.Width(width).Render(item.Comment))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...), nil
}
