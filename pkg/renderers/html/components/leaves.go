package components

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

const (
	bulletWarning = "Warning: Bullet list type specified but no bullet points provided"
	imageMissing  = "Error: No image path provided"
)

func renderTable(b *strings.Builder, item insight.Item, _ Context) error {
	table := insight.ValidateTable(item)
	if writeCheck(b, table.Check) {
		return nil
	}
	b.WriteString(`<div class="overflow-x-auto my-4"><table class="min-w-full border border-gray-300 dark:border-slate-600 rounded">`)
	b.WriteString(`<thead class="bg-gray-100 dark:bg-slate-700"><tr>`)
	for _, col := range table.Columns {
		b.WriteString(`<th scope="col" class="border border-gray-300 dark:border-slate-600 px-3 py-2 text-left">`)
		b.WriteString(html.EscapeString(col.Header))
		b.WriteString(`</th>`)
	}
	b.WriteString(`</tr></thead><tbody class="bg-white dark:bg-slate-800">`)
	for _, row := range table.Rows {
		b.WriteString(`<tr>`)
		for _, col := range table.Columns {
			b.WriteString(`<td class="border border-gray-300 dark:border-slate-600 px-3 py-2">`)
			b.WriteString(html.EscapeString(CellText(row[col.Field])))
			b.WriteString(`</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table></div>`)
	return nil
}

// CellText formats a table cell value.
func CellText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func renderError(b *strings.Builder, item insight.Item, _ Context) error {
	message := item.StringField("error")
	if message == "" {
		if raw, ok := item.Field("error"); ok && raw != nil {
			message = fmt.Sprint(raw)
		} else {
			message = "Unknown error"
		}
	}
	b.WriteString(`<div class="insight-error bg-red-100 border border-red-300 rounded-md p-3 mb-2" role="alert"><p class="text-red-700 font-medium leading-relaxed">`)
	b.WriteString(html.EscapeString(message))
	b.WriteString(`</p></div>`)
	return nil
}

func renderImage(b *strings.Builder, item insight.Item, ctx Context) error {
	ref := item.StringField("file_path")
	if ref == "" {
		ref = item.StringField("url_filename")
	}
	if strings.TrimSpace(ref) == "" {
		WriteNotice(b, NoticeError, insight.StatusNoData.String(), imageMissing, "")
		return nil
	}
	caption := item.StringField("caption")
	alt := caption
	if alt == "" {
		alt = ref
	}

	b.WriteString(`<div class="w-full flex justify-center"><figure class="w-fit border border-gray-300 rounded-lg p-4 bg-white shadow-sm">`)
	b.WriteString(`<img src="`)
	b.WriteString(html.EscapeString(ctx.Files.Resolve(ref, ctx.ProjectDir)))
	b.WriteString(`" alt="`)
	b.WriteString(html.EscapeString(alt))
	b.WriteString(`" class="max-w-full h-auto rounded" loading="lazy">`)
	if caption != "" {
		b.WriteString(`<figcaption class="mt-2 text-sm text-gray-600 text-center">`)
		b.WriteString(html.EscapeString(caption))
		b.WriteString(`</figcaption>`)
	}
	b.WriteString(`</figure></div>`)
	return nil
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// textSanitizer keeps the structural markup of a text item and lets only
// colour and italic declarations through in style attributes.
func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("div", "p", "ul", "li", "span", "br", "small")
		policy.AllowAttrs("class", "role").Globally()
		policy.AllowDataAttributes()
		policy.AllowStyles("color", "background-color", "font-style").Globally()
		textPolicy = policy
	})
	return textPolicy
}

func fontSizeClass(size string) string {
	switch size {
	case "small":
		return "text-sm"
	case "large":
		return "text-lg"
	default:
		return "text-base"
	}
}

func fontWeightClass(weight string) string {
	if weight == "bold" {
		return "font-bold"
	}
	return "font-normal"
}

func alignmentClass(alignment string) string {
	switch alignment {
	case "center", "right", "justify":
		return "text-" + alignment
	default:
		return "text-left"
	}
}

func inlineStyle(style insight.TextStyle) string {
	var decls []string
	if style.Color != "" {
		decls = append(decls, "color: "+style.Color)
	}
	if style.BackgroundColor != "" {
		decls = append(decls, "background-color: "+style.BackgroundColor)
	}
	if style.Italic {
		decls = append(decls, "font-style: italic")
	}
	return strings.Join(decls, "; ")
}

func writeStyled(b *strings.Builder, tag, extraClass string, style insight.TextStyle, text string) {
	b.WriteString(`<`)
	b.WriteString(tag)
	b.WriteString(` class="`)
	if extraClass != "" {
		b.WriteString(extraClass)
		b.WriteString(` `)
	}
	b.WriteString(fontSizeClass(style.FontSize))
	b.WriteString(` `)
	b.WriteString(fontWeightClass(style.FontWeight))
	b.WriteString(`"`)
	if css := inlineStyle(style); css != "" {
		b.WriteString(` style="`)
		b.WriteString(html.EscapeString(css))
		b.WriteString(`"`)
	}
	b.WriteString(`>`)
	b.WriteString(html.EscapeString(text))
	b.WriteString(`</`)
	b.WriteString(tag)
	b.WriteString(`>`)
}

func writeBullets(b *strings.Builder, bullets []insight.Bullet, level int) {
	marker := "list-disc"
	if level > 0 {
		marker = "list-circle"
	}
	b.WriteString(`<ul class="`)
	b.WriteString(marker)
	b.WriteString(` ml-6 space-y-1">`)
	for _, bullet := range bullets {
		b.WriteString(`<li class="leading-relaxed">`)
		writeStyled(b, "span", "", bullet.Style, bullet.Text)
		if len(bullet.Nested) > 0 {
			b.WriteString(`<div class="mt-1">`)
			writeBullets(b, bullet.Nested, level+1)
			b.WriteString(`</div>`)
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
}

func renderText(b *strings.Builder, item insight.Item, _ Context) error {
	text := insight.ValidateText(item)
	if writeCheck(b, text.Check) {
		return nil
	}

	var inner strings.Builder
	inner.WriteString(`<div class="w-full p-4 bg-white border border-gray-200 rounded-lg `)
	inner.WriteString(fontSizeClass(text.Style.FontSize))
	inner.WriteString(` `)
	inner.WriteString(fontWeightClass(text.Style.FontWeight))
	inner.WriteString(` `)
	inner.WriteString(alignmentClass(text.Style.Alignment))
	inner.WriteString(`"><div class="space-y-4">`)
	for _, block := range text.Blocks {
		if !block.IsBulletList() {
			writeStyled(&inner, "p", "leading-relaxed", block.Style, block.Text)
			continue
		}
		inner.WriteString(`<div class="space-y-2">`)
		writeStyled(&inner, "p", "mb-2 leading-relaxed", block.Style, block.Text)
		if len(block.Bullets) > 0 {
			writeBullets(&inner, block.Bullets, 0)
		} else {
			WriteNotice(&inner, NoticeWarning, "", bulletWarning, "")
		}
		inner.WriteString(`</div>`)
	}
	inner.WriteString(`</div></div>`)

	b.WriteString(`<div class="w-full flex justify-center">`)
	b.WriteString(textSanitizer().Sanitize(inner.String()))
	b.WriteString(`</div>`)
	return nil
}
