package components

import (
	"html"
	"strings"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

// Notice levels.
const (
	NoticeError   = "error"
	NoticeWarning = "warning"
	NoticeInfo    = "info"
)

var noticeClasses = map[string]string{
	NoticeError:   "my-4 p-4 text-center text-red-600 bg-red-50 border border-red-200 rounded",
	NoticeWarning: "my-4 p-4 text-center text-orange-600 bg-orange-50 border border-orange-200 rounded",
	NoticeInfo:    "mb-2 p-2 text-sm text-blue-600 bg-blue-50 border border-blue-200 rounded",
}

// WriteNotice renders an inline status block. status ends up in data-status
// so the variants stay distinguishable without parsing the text.
func WriteNotice(b *strings.Builder, level, status, message, hint string) {
	b.WriteString(`<div class="insight-notice insight-notice--`)
	b.WriteString(level)
	b.WriteString(` `)
	b.WriteString(noticeClasses[level])
	b.WriteString(`" role="`)
	if level == NoticeError {
		b.WriteString(`alert`)
	} else {
		b.WriteString(`status`)
	}
	b.WriteString(`"`)
	if status != "" {
		b.WriteString(` data-status="`)
		b.WriteString(html.EscapeString(status))
		b.WriteString(`"`)
	}
	b.WriteString(`>`)
	b.WriteString(html.EscapeString(message))
	if hint != "" {
		b.WriteString(`<br><small class="text-gray-600">`)
		b.WriteString(html.EscapeString(hint))
		b.WriteString(`</small>`)
	}
	b.WriteString(`</div>`)
}

// writeCheck renders the notice for a failed check and reports whether the
// caller should stop.
func writeCheck(b *strings.Builder, check insight.Check) bool {
	switch {
	case check.Status.IsError():
		WriteNotice(b, NoticeError, check.Status.String(), check.Message(), "")
		return true
	case check.Status.IsWarning():
		WriteNotice(b, NoticeWarning, check.Status.String(), check.Message(), check.Hint())
		return true
	default:
		return false
	}
}
