package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

// RenderOptions describe per-request data renderers use to customise their
// output without mutating the tree.
type RenderOptions struct {
	// Selections maps a joined section id to the active subsection. Sections
	// without an entry show their dropdown default.
	Selections map[string]string
	// ProjectDir resolves project-relative image paths.
	ProjectDir string
	// Theme carries the active theme variant and tokens.
	Theme *theme.RendererConfig
	// TOC asks renderers that support it to emit the table of contents.
	TOC bool
	// Heading titles standalone output such as a full HTML document.
	Heading string
}

// Selection returns the active subsection of the section rendered under
// sectionID. Unknown requested options fall back to the default selection.
func (o RenderOptions) Selection(sectionID string, section insight.Section) string {
	state := insight.NewSectionState(section)
	if requested, ok := o.Selections[sectionID]; ok {
		_ = state.Select(requested)
	}
	return state.Selection()
}

// ParseSelections reads "sectionID:option" pairs. The section id may itself
// contain colons; the last one separates the option.
func ParseSelections(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idx := strings.LastIndex(pair, ":")
		if idx <= 0 || idx == len(pair)-1 {
			return nil, fmt.Errorf("render: selection %q must look like section:option", pair)
		}
		out[pair[:idx]] = pair[idx+1:]
	}
	return out, nil
}
