package html

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-chanterelle/pkg/insight"
	"github.com/goliatone/go-chanterelle/pkg/render"
	"github.com/goliatone/go-chanterelle/pkg/renderers/html/components"
)

const unsupportedStatus = "unsupported"

var paletteClasses = map[insight.Color]string{
	insight.ColorWhite:  "bg-white border-gray-300",
	insight.ColorRed:    "bg-red-50 border-red-300",
	insight.ColorGreen:  "bg-green-50 border-green-300",
	insight.ColorBlue:   "bg-blue-50 border-blue-300",
	insight.ColorYellow: "bg-yellow-50 border-yellow-300",
	insight.ColorPurple: "bg-purple-50 border-purple-300",
	insight.ColorOrange: "bg-orange-50 border-orange-300",
}

// HeadingClass returns the heading classes of a section at level. Levels past
// 3 reuse the level 3 style.
func HeadingClass(level int) string {
	switch {
	case level <= 1:
		return "text-xl font-bold mb-2 flex items-center"
	case level == 2:
		return "text-lg font-bold mb-2 flex items-center"
	default:
		return "text-base font-bold mb-2 flex items-center"
	}
}

// GridClass returns the layout classes for a row density. One item per row is
// a vertical flow; 2 to 4 map to that many columns and anything larger to 3.
func GridClass(perRow int) string {
	switch {
	case perRow <= 1:
		return "insight-flow flex flex-col gap-4"
	case perRow <= 4:
		return "insight-grid grid gap-4 grid-cols-1 md:grid-cols-" + strconv.Itoa(perRow)
	default:
		return "insight-grid grid gap-4 grid-cols-1 md:grid-cols-3"
	}
}

type walker struct {
	renderer *Renderer
	opts     render.RenderOptions
	b        *strings.Builder
}

func (w walker) root(nodes []insight.Node) error {
	b := w.b
	b.WriteString(`<div class="chanterelle-insights"`)
	if theme := w.opts.Theme; theme != nil {
		b.WriteString(` data-theme="`)
		b.WriteString(html.EscapeString(theme.Theme))
		b.WriteString(`" data-variant="`)
		b.WriteString(html.EscapeString(theme.Variant))
		b.WriteString(`"`)
		writeCSSVars(b, theme.CSSVars)
	}
	b.WriteString(`>`)

	if w.opts.TOC {
		b.WriteString(`<div class="insight-layout flex gap-6">`)
		WriteTOC(b, insight.BuildTOC(nodes))
		b.WriteString(`<div class="insight-content flex-1 min-w-0">`)
	}
	for _, node := range nodes {
		if err := w.node(node, 0, "", false); err != nil {
			return err
		}
	}
	if w.opts.TOC {
		b.WriteString(`</div></div>`)
	}
	b.WriteString(`</div>`)
	return nil
}

func writeCSSVars(b *strings.Builder, vars map[string]string) {
	if len(vars) == 0 {
		return
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.HasPrefix(key, "--") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	decls := make([]string, 0, len(keys))
	for _, key := range keys {
		decls = append(decls, key+": "+vars[key])
	}
	b.WriteString(` style="`)
	b.WriteString(html.EscapeString(strings.Join(decls, "; ")))
	b.WriteString(`"`)
}

// node renders a section one level below parentLevel or an item. hidden is
// true inside inactive dropdown panels, where anchors are parked in
// data-anchor-id until the panel is shown.
func (w walker) node(node insight.Node, parentLevel int, parent string, hidden bool) error {
	switch typed := node.(type) {
	case insight.Section:
		return w.section(typed, parentLevel+1, parent, hidden)
	case insight.Item:
		return w.item(typed, parentLevel, parent, hidden)
	default:
		return nil
	}
}

func (w walker) anchor(ownID, joined string, hidden bool) {
	if ownID == "" || joined == "" {
		return
	}
	escaped := html.EscapeString(joined)
	if !hidden {
		w.b.WriteString(` id="`)
		w.b.WriteString(escaped)
		w.b.WriteString(`"`)
	}
	w.b.WriteString(` data-anchor-id="`)
	w.b.WriteString(escaped)
	w.b.WriteString(`"`)
}

func headingTag(level int) string {
	n := level + 1
	if n > 6 {
		n = 6
	}
	return "h" + strconv.Itoa(n)
}

func (w walker) section(section insight.Section, level int, parent string, hidden bool) error {
	b := w.b
	sid := insight.JoinID(parent, section.ID)

	b.WriteString(`<section class="insight-section p-4 border rounded-lg mb-4 `)
	b.WriteString(paletteClasses[section.Color.Normalized()])
	b.WriteString(`"`)
	w.anchor(section.ID, sid, hidden)
	b.WriteString(` data-level="`)
	b.WriteString(strconv.Itoa(level))
	b.WriteString(`">`)

	tag := headingTag(level)
	b.WriteString(`<div class="`)
	b.WriteString(HeadingClass(level))
	b.WriteString(`"><`)
	b.WriteString(tag)
	b.WriteString(` class="flex-1">`)
	b.WriteString(html.EscapeString(section.Title))
	b.WriteString(`</`)
	b.WriteString(tag)
	b.WriteString(`></div>`)

	if section.Description != "" {
		b.WriteString(`<p class="mb-3 text-gray-600">`)
		b.WriteString(html.EscapeString(section.Description))
		b.WriteString(`</p>`)
	}

	if section.UsesDropdown() {
		if err := w.dropdown(section, sid, level, hidden); err != nil {
			return err
		}
	} else {
		items, perRow := section.Content("")
		if err := w.grid(items, perRow, level, sid, hidden); err != nil {
			return err
		}
	}

	if section.Comment != "" {
		b.WriteString(`<div class="insight-comment text-gray-800 mt-3">`)
		b.WriteString(html.EscapeString(section.Comment))
		b.WriteString(`</div>`)
	}
	b.WriteString(`</section>`)
	return nil
}

// panelOrder lists the dropdown options first, in their declared order, and
// then any subsection the options do not mention.
func panelOrder(section insight.Section) []string {
	seen := make(map[string]struct{}, len(section.Subsections))
	var order []string
	for _, opt := range section.Dropdown.Options {
		if _, ok := section.Subsections[opt.ID]; !ok {
			continue
		}
		if _, dup := seen[opt.ID]; dup {
			continue
		}
		seen[opt.ID] = struct{}{}
		order = append(order, opt.ID)
	}
	var rest []string
	for key := range section.Subsections {
		if _, ok := seen[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func (w walker) dropdown(section insight.Section, sid string, level int, hidden bool) error {
	b := w.b
	active := w.opts.Selection(sid, section)

	b.WriteString(`<div class="mb-4"><select class="insight-dropdown border border-gray-300 rounded px-3 py-2" data-section-select="`)
	b.WriteString(html.EscapeString(sid))
	b.WriteString(`" aria-label="`)
	b.WriteString(html.EscapeString(section.Title))
	b.WriteString(`">`)
	for _, opt := range section.Dropdown.Options {
		b.WriteString(`<option value="`)
		b.WriteString(html.EscapeString(opt.ID))
		b.WriteString(`"`)
		if opt.ID == active {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		label := opt.Label
		if label == "" {
			label = opt.ID
		}
		b.WriteString(html.EscapeString(label))
		b.WriteString(`</option>`)
	}
	b.WriteString(`</select>`)
	for _, opt := range section.Dropdown.Options {
		if opt.Description == "" {
			continue
		}
		b.WriteString(`<p class="text-sm text-gray-500 mt-1" data-option-description="`)
		b.WriteString(html.EscapeString(opt.ID))
		b.WriteString(`"`)
		if opt.ID != active {
			b.WriteString(` hidden`)
		}
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(opt.Description))
		b.WriteString(`</p>`)
	}
	b.WriteString(`</div>`)

	for _, key := range panelOrder(section) {
		inactive := key != active
		b.WriteString(`<div class="insight-panel" data-panel-for="`)
		b.WriteString(html.EscapeString(sid))
		b.WriteString(`" data-panel="`)
		b.WriteString(html.EscapeString(key))
		b.WriteString(`"`)
		if inactive {
			b.WriteString(` hidden`)
		}
		b.WriteString(`>`)
		items, perRow := section.Content(key)
		if err := w.grid(items, perRow, level, sid, hidden || inactive); err != nil {
			return err
		}
		b.WriteString(`</div>`)
	}
	return nil
}

func (w walker) grid(items []insight.Node, perRow, level int, sid string, hidden bool) error {
	if len(items) == 0 {
		return nil
	}
	w.b.WriteString(`<div class="`)
	w.b.WriteString(GridClass(perRow))
	w.b.WriteString(`">`)
	for _, child := range items {
		if err := w.node(child, level, sid, hidden); err != nil {
			return err
		}
	}
	w.b.WriteString(`</div>`)
	return nil
}

func (w walker) item(item insight.Item, level int, parent string, hidden bool) error {
	descriptor, known := w.renderer.registry.Descriptor(item.Type)
	if !known && w.renderer.silent {
		return nil
	}

	b := w.b
	joined := insight.JoinID(parent, item.ID)
	b.WriteString(`<div class="insight-item mb-2 p-2" data-type="`)
	b.WriteString(html.EscapeString(item.Type))
	b.WriteString(`"`)
	w.anchor(item.ID, joined, hidden)
	b.WriteString(`><div class="mb-3">`)

	tag := headingTag(level + 2)
	b.WriteString(`<`)
	b.WriteString(tag)
	b.WriteString(` class="text-lg font-semibold mb-1 flex items-center">`)
	b.WriteString(descriptor.Icon)
	b.WriteString(html.EscapeString(item.Title))
	b.WriteString(`</`)
	b.WriteString(tag)
	b.WriteString(`>`)
	if item.Description != "" {
		b.WriteString(`<p class="text-sm text-gray-600">`)
		b.WriteString(html.EscapeString(item.Description))
		b.WriteString(`</p>`)
	}
	b.WriteString(`</div><div class="mb-3">`)

	if known {
		ctx := components.Context{AnchorID: joined, ProjectDir: w.opts.ProjectDir, Files: w.renderer.files}
		if err := descriptor.Renderer(b, item, ctx); err != nil {
			return fmt.Errorf("html renderer: item %q (%s): %w", joined, item.Type, err)
		}
	} else {
		components.WriteNotice(b, components.NoticeWarning, unsupportedStatus,
			fmt.Sprintf("Unsupported insight type %q", item.Type), "")
	}
	b.WriteString(`</div>`)

	if item.Comment != "" {
		b.WriteString(`<div class="insight-comment text-sm italic text-gray-800">`)
		b.WriteString(html.EscapeString(item.Comment))
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
	return nil
}
