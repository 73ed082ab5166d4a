// Package markdown renders model descriptions: sanitized HTML for the web
// pages and ANSI text for the CLI.
package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-chanterelle/pkg/session"
)

var (
	converter = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		policy = p
	})
	return policy
}

// HTML converts GitHub flavoured markdown to HTML with unsafe markup
// removed.
func HTML(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := converter.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return sanitizer().Sanitize(buf.String()), nil
}

var (
	termMu    sync.Mutex
	renderers = map[string]*glamour.TermRenderer{}
)

// StyleFor picks the glamour style for a theme preference. "system"
// follows the terminal background.
func StyleFor(pref session.Preference) string {
	switch pref {
	case session.PreferenceLight:
		return "light"
	case session.PreferenceDark:
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// Terminal renders src for a terminal of the given width. style is a glamour
// standard style such as dark, light or notty. The source is returned as-is
// when rendering fails.
func Terminal(src string, width int, style string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	if style == "" {
		style = "notty"
	}

	key := style + ":" + strconv.Itoa(width)
	termMu.Lock()
	defer termMu.Unlock()
	r := renderers[key]
	if r == nil {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return src
		}
		renderers[key] = r
	}

	out, err := r.Render(src)
	if err != nil {
		return src
	}
	return strings.TrimRight(out, "\n")
}
