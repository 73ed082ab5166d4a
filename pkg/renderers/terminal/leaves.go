package terminal

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/goliatone/go-chanterelle/pkg/fileurl"
	"github.com/goliatone/go-chanterelle/pkg/insight"
)

const maxBarWidth = 30

// notice renders a failed check, or "" when the check passed.
func notice(check insight.Check) string {
	switch {
	case check.Status.IsError():
		return errorStyle.Render(check.Message())
	case check.Status.IsWarning():
		out := warningStyle.Render(check.Message())
		if hint := check.Hint(); hint != "" {
			out += "\n" + descriptionStyle.Render(hint)
		}
		return out
	default:
		return ""
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func renderBarChart(item insight.Item, _ Context) (string, error) {
	chart := insight.ValidateBarChart(item)
	if n := notice(chart.Check); n != "" {
		return n, nil
	}

	labelWidth, peak := 0, 0.0
	for _, bar := range chart.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(bar.Label))
		peak = math.Max(peak, math.Abs(bar.Value))
	}

	lines := []string{descriptionStyle.Render(chart.Axis.Y + " / " + chart.Axis.X)}
	for _, bar := range chart.Bars {
		n := 0
		if peak > 0 {
			n = int(math.Round(math.Abs(bar.Value) / peak * maxBarWidth))
		}
		if n == 0 && bar.Value != 0 {
			n = 1
		}
		label := bar.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(bar.Label))
		lines = append(lines, fmt.Sprintf("%s │%s %s", label, barStyle.Render(strings.Repeat("█", n)), formatNumber(bar.Value)))
	}
	return strings.Join(lines, "\n"), nil
}

func renderLineChart(item insight.Item, _ Context) (string, error) {
	chart := insight.ValidateLineChart(item)
	if n := notice(chart.Check); n != "" {
		return n, nil
	}

	headers := []string{chart.Axis.X}
	longest := 0
	for _, line := range chart.Lines {
		label := line.ID
		if label == "" {
			label = chart.Axis.Y
		}
		headers = append(headers, label)
		longest = max(longest, len(line.Points))
	}

	rows := make([][]string, 0, longest)
	for idx := 0; idx < longest; idx++ {
		row := []string{""}
		for col, line := range chart.Lines {
			if idx >= len(line.Points) {
				row = append(row, "")
				continue
			}
			if col == 0 || row[0] == "" {
				row[0] = formatNumber(line.Points[idx].X)
			}
			row = append(row, formatNumber(line.Points[idx].Y))
		}
		rows = append(rows, row)
	}
	return dataTable(headers, rows), nil
}

func renderScatterPlot(item insight.Item, _ Context) (string, error) {
	plot := insight.ValidateScatterPlot(item)
	if n := notice(plot.Check); n != "" {
		return n, nil
	}

	var out []string
	if plot.Axis.Defaulted {
		out = append(out, infoStyle.Render("Info: Using default axis labels (axis configuration missing)"))
	}
	rows := make([][]string, 0, len(plot.Datasets))
	for _, ds := range plot.Datasets {
		minX, maxX := ds.Points[0].X, ds.Points[0].X
		minY, maxY := ds.Points[0].Y, ds.Points[0].Y
		for _, p := range ds.Points[1:] {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
		label := ds.ID
		if label == "" {
			label = "Unnamed Dataset"
		}
		rows = append(rows, []string{
			label,
			strconv.Itoa(len(ds.Points)),
			formatNumber(minX) + " … " + formatNumber(maxX),
			formatNumber(minY) + " … " + formatNumber(maxY),
		})
	}
	out = append(out, dataTable([]string{"Dataset", "Points", plot.Axis.X, plot.Axis.Y}, rows))
	return strings.Join(out, "\n"), nil
}

func renderTable(item insight.Item, _ Context) (string, error) {
	t := insight.ValidateTable(item)
	if n := notice(t.Check); n != "" {
		return n, nil
	}
	headers := make([]string, len(t.Columns))
	for idx, col := range t.Columns {
		headers[idx] = col.Header
	}
	rows := make([][]string, 0, len(t.Rows))
	for _, source := range t.Rows {
		row := make([]string, len(t.Columns))
		for idx, col := range t.Columns {
			row[idx] = cellText(source[col.Field])
		}
		rows = append(rows, row)
	}
	return dataTable(headers, rows), nil
}

func cellText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func dataTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func textStyle(style insight.TextStyle) lipgloss.Style {
	s := lipgloss.NewStyle()
	if style.FontWeight == "bold" || style.FontSize == "large" {
		s = s.Bold(true)
	}
	if style.FontSize == "small" {
		s = s.Faint(true)
	}
	if style.Italic {
		s = s.Italic(true)
	}
	if style.Color != "" && strings.HasPrefix(style.Color, "#") {
		s = s.Foreground(lipgloss.Color(style.Color))
	}
	return s
}

func writeBullets(lines []string, bullets []insight.Bullet, level int) []string {
	marker := "•"
	if level > 0 {
		marker = "◦"
	}
	indent := strings.Repeat("  ", level+1)
	for _, bullet := range bullets {
		lines = append(lines, indent+marker+" "+textStyle(bullet.Style).Render(bullet.Text))
		lines = writeBullets(lines, bullet.Nested, level+1)
	}
	return lines
}

func renderText(item insight.Item, ctx Context) (string, error) {
	text := insight.ValidateText(item)
	if n := notice(text.Check); n != "" {
		return n, nil
	}

	block := lipgloss.NewStyle()
	if ctx.Width > 0 {
		block = block.Width(ctx.Width)
	}
	switch text.Style.Alignment {
	case "center":
		block = block.Align(lipgloss.Center)
	case "right":
		block = block.Align(lipgloss.Right)
	}

	var paragraphs []string
	for _, b := range text.Blocks {
		para := block.Render(textStyle(b.Style).Render(b.Text))
		if !b.IsBulletList() {
			paragraphs = append(paragraphs, para)
			continue
		}
		lines := []string{para}
		if len(b.Bullets) == 0 {
			lines = append(lines, warningStyle.Render("Warning: Bullet list type specified but no bullet points provided"))
		}
		lines = writeBullets(lines, b.Bullets, 0)
		paragraphs = append(paragraphs, strings.Join(lines, "\n"))
	}
	return strings.Join(paragraphs, "\n\n"), nil
}

func renderImage(item insight.Item, ctx Context) (string, error) {
	ref := item.StringField("file_path")
	if ref == "" {
		ref = item.StringField("url_filename")
	}
	if strings.TrimSpace(ref) == "" {
		return errorStyle.Render("Error: No image path provided"), nil
	}
	location := ref
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		location = fileurl.LocalPath(ref, ctx.ProjectDir)
	}
	out := "[image] " + location
	if caption := item.StringField("caption"); caption != "" {
		out += "\n" + descriptionStyle.Render(caption)
	}
	return out, nil
}

func renderError(item insight.Item, _ Context) (string, error) {
	message := item.StringField("error")
	if message == "" {
		message = "Unknown error"
	}
	return errorStyle.Render(message), nil
}
