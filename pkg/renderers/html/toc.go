package html

import (
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

// TOCTitle heads the sidebar.
const TOCTitle = "Table of Contents"

// WriteTOC renders the outline as a sidebar of anchor links. Nothing is
// written for an empty outline.
func WriteTOC(b *strings.Builder, entries []insight.TOCEntry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString(`<aside class="insight-toc w-64 shrink-0 sticky top-4 self-start"><nav aria-label="`)
	b.WriteString(TOCTitle)
	b.WriteString(`"><h2 class="text-lg font-bold mb-2">`)
	b.WriteString(TOCTitle)
	b.WriteString(`</h2><ul class="space-y-1">`)
	for _, entry := range entries {
		b.WriteString(`<li class="toc-level-`)
		b.WriteString(strconv.Itoa(entry.Level))
		b.WriteString(`" style="padding-left: `)
		b.WriteString(strconv.Itoa((entry.Level - 1) * 12))
		b.WriteString(`px"><a href="#`)
		b.WriteString(html.EscapeString(entry.ID))
		b.WriteString(`" data-scroll="smooth" class="text-blue-600 hover:underline">`)
		b.WriteString(html.EscapeString(entry.Title))
		b.WriteString(`</a></li>`)
	}
	b.WriteString(`</ul></nav></aside>`)
}
