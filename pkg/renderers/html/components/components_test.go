package components_test

import (
	"encoding/json"
	"html"
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chanterelle/pkg/fileurl"
	"github.com/goliatone/go-chanterelle/pkg/insight"
	"github.com/goliatone/go-chanterelle/pkg/renderers/html/components"
)

func render(t *testing.T, item insight.Item, ctx components.Context) string {
	t.Helper()
	descriptor, ok := components.NewDefaultRegistry().Descriptor(item.Type)
	if !ok {
		t.Fatalf("no renderer for %q", item.Type)
	}
	var b strings.Builder
	if err := descriptor.Renderer(&b, item, ctx); err != nil {
		t.Fatalf("render %s: %v", item.Type, err)
	}
	return b.String()
}

func item(kind string, fields map[string]any) insight.Item {
	return insight.Item{Base: insight.Base{Type: kind, ID: "x", Title: "X"}, Fields: fields}
}

var chartAttr = regexp.MustCompile(`data-chart="([^"]*)"`)

func chartConfig(t *testing.T, out string) components.ChartConfig {
	t.Helper()
	match := chartAttr.FindStringSubmatch(out)
	if match == nil {
		t.Fatalf("no chart canvas in %s", out)
	}
	var cfg components.ChartConfig
	if err := json.Unmarshal([]byte(html.UnescapeString(match[1])), &cfg); err != nil {
		t.Fatalf("decode chart config: %v", err)
	}
	return cfg
}

func TestDefaultRegistryNames(t *testing.T) {
	want := []string{"bar_chart", "error", "image", "line_chart", "scatter_plot", "table", "text"}
	if diff := cmp.Diff(want, components.NewDefaultRegistry().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryRegisterAndClone(t *testing.T) {
	reg := components.New()
	if err := reg.Register(" ", components.Descriptor{Renderer: func(*strings.Builder, insight.Item, components.Context) error { return nil }}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := reg.Register("gauge", components.Descriptor{}); err == nil {
		t.Fatalf("expected error for nil renderer")
	}

	reg.MustRegister("Gauge", components.Descriptor{
		Renderer: func(b *strings.Builder, _ insight.Item, _ components.Context) error {
			b.WriteString("gauge")
			return nil
		},
		Icon: `<svg viewBox="0 0 24 24"><script>alert(1)</script><path d="M0 0" onclick="x()"/></svg>`,
	})

	cloned := reg.Clone()
	cloned.MustRegister("dial", components.Descriptor{Renderer: func(*strings.Builder, insight.Item, components.Context) error { return nil }})
	if _, ok := reg.Descriptor("dial"); ok {
		t.Fatalf("clone mutation leaked into the original")
	}

	desc, ok := reg.Descriptor("GAUGE")
	if !ok || desc.Name != "gauge" {
		t.Fatalf("expected normalized lookup, got %+v %v", desc, ok)
	}
	if strings.Contains(desc.Icon, "script") || strings.Contains(desc.Icon, "onclick") {
		t.Fatalf("icon not sanitized: %s", desc.Icon)
	}
	if !strings.Contains(desc.Icon, "<path") {
		t.Fatalf("icon lost its drawing markup: %s", desc.Icon)
	}
}

func TestBarChartKeepsValidBarsInOrder(t *testing.T) {
	out := render(t, item(insight.KindBarChart, map[string]any{"data": map[string]any{
		"bars": []any{
			map[string]any{"label": "a", "value": 3.0},
			map[string]any{"label": 7.0, "value": 1.0},
			map[string]any{"label": "b", "value": math.Inf(1)},
			map[string]any{"label": "c", "value": 1, "color": "#ff0000"},
		},
		"axis": map[string]any{"x": map[string]any{"label": "Impact"}},
	}}), components.Context{})

	cfg := chartConfig(t, out)
	if diff := cmp.Diff([]any{"a", "c"}, cfg.Data.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	ds := cfg.Data.Datasets[0]
	if diff := cmp.Diff([]any{3.0, 1.0}, ds["data"]); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"#1976d2", "#ff0000"}, ds["backgroundColor"]); diff != "" {
		t.Fatalf("colors mismatch (-want +got):\n%s", diff)
	}
	if cfg.Options["indexAxis"] != "y" {
		t.Fatalf("expected horizontal bars, got %v", cfg.Options["indexAxis"])
	}
}

func TestChartNoticeVariants(t *testing.T) {
	tests := []struct {
		name   string
		kind   string
		fields map[string]any
		status string
		text   string
	}{
		{name: "no data", kind: insight.KindBarChart, fields: map[string]any{}, status: "no_data", text: "Error: No data provided for bar chart"},
		{name: "missing field", kind: insight.KindLineChart, fields: map[string]any{"data": map[string]any{"lines": "nope"}}, status: "missing_field", text: "Error: Missing or invalid &#39;lines&#39; array"},
		{name: "empty", kind: insight.KindScatterPlot, fields: map[string]any{"data": map[string]any{"datasets": []any{}}}, status: "empty", text: "Warning: No datasets provided"},
		{name: "none valid", kind: insight.KindBarChart, fields: map[string]any{"data": map[string]any{"bars": []any{
			map[string]any{"label": "a"}, map[string]any{"value": 2.0},
		}}}, status: "none_valid", text: "Warning: Found 2 bar(s) but none contain valid data"},
		{name: "empty text", kind: insight.KindText, fields: map[string]any{"data": map[string]any{"content": []any{}}}, status: "empty", text: "Warning: No content provided"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, item(tt.kind, tt.fields), components.Context{})
			if !strings.Contains(out, `data-status="`+tt.status+`"`) {
				t.Fatalf("expected status %s in %s", tt.status, out)
			}
			if !strings.Contains(out, tt.text) {
				t.Fatalf("expected %q in %s", tt.text, out)
			}
			if strings.Contains(out, "<canvas") {
				t.Fatalf("notice must replace the chart: %s", out)
			}
		})
	}
}

func TestLineChartConfig(t *testing.T) {
	out := render(t, item(insight.KindLineChart, map[string]any{"data": map[string]any{
		"lines": []any{
			map[string]any{"id": "actual", "points": []any{map[string]any{"x": 1, "y": 2}, map[string]any{"x": 2, "y": 4}}},
			map[string]any{"id": "broken", "points": []any{map[string]any{"x": 1, "y": "2"}}},
		},
	}}), components.Context{})

	cfg := chartConfig(t, out)
	if len(cfg.Data.Datasets) != 1 || cfg.Data.Datasets[0]["label"] != "actual" {
		t.Fatalf("expected only the valid line, got %+v", cfg.Data.Datasets)
	}
	if cfg.Data.Datasets[0]["tension"] != 0.4 || cfg.Data.Datasets[0]["pointRadius"] != 2.0 {
		t.Fatalf("unexpected line styling: %+v", cfg.Data.Datasets[0])
	}
	if diff := cmp.Diff([]any{1.0, 2.0}, cfg.Data.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestScatterPlotAxisNotice(t *testing.T) {
	out := render(t, item(insight.KindScatterPlot, map[string]any{"data": map[string]any{
		"datasets": []any{map[string]any{"points": []any{map[string]any{"x": 1, "y": 1}, map[string]any{"x": "bad", "y": 1}}}},
	}}), components.Context{})

	if !strings.Contains(out, "Info: Using default axis labels (axis configuration missing)") {
		t.Fatalf("expected axis notice in %s", out)
	}
	cfg := chartConfig(t, out)
	points, _ := cfg.Data.Datasets[0]["data"].([]any)
	if len(points) != 1 || cfg.Data.Datasets[0]["label"] != "Unnamed Dataset" {
		t.Fatalf("unexpected dataset %+v", cfg.Data.Datasets[0])
	}
}

func TestTable(t *testing.T) {
	out := render(t, item(insight.KindTable, map[string]any{"data": map[string]any{
		"columns": []any{map[string]any{"header": "Name", "field": "name"}, map[string]any{"header": "Score", "field": "score"}},
		"rows":    []any{map[string]any{"name": "<b>ann</b>", "score": 0.5}, "junk"},
	}}), components.Context{})

	for _, want := range []string{">Name</th>", ">Score</th>", "&lt;b&gt;ann&lt;/b&gt;", ">0.5</td>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}
	if got := strings.Count(out, "<tr>"); got != 3 {
		t.Fatalf("expected header row plus two body rows, got %d", got)
	}
}

func TestTextBulletsAndStyles(t *testing.T) {
	out := render(t, item(insight.KindText, map[string]any{"data": map[string]any{
		"style": map[string]any{"alignment": "center", "fontSize": "large"},
		"content": []any{
			map[string]any{"type": "paragraph", "text": "Intro", "style": map[string]any{"fontWeight": "bold"}},
			map[string]any{"type": "bullet_list", "text": "Drivers", "bulletPoints": []any{
				map[string]any{"text": "tenure", "nested": []any{map[string]any{"text": "short"}}},
			}},
			map[string]any{"type": "bullet_list", "text": "Empty list"},
			map[string]any{"text": "  "},
		},
	}}), components.Context{})

	for _, want := range []string{"text-center", "text-lg", "font-bold", ">Intro<", "list-disc", "list-circle", ">short<",
		"Warning: Bullet list type specified but no bullet points provided"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}
}

func TestTextStripsMarkupInjection(t *testing.T) {
	out := render(t, item(insight.KindText, map[string]any{"data": map[string]any{
		"content": []any{map[string]any{"text": "hi", "style": map[string]any{"color": `red" onmouseover="x()`}}},
	}}), components.Context{})
	if strings.Contains(out, "onmouseover") {
		t.Fatalf("style injection survived: %s", out)
	}
}

func TestImage(t *testing.T) {
	ctx := components.Context{ProjectDir: "/projects/churn", Files: fileurl.Resolver{}}

	out := render(t, item(insight.KindImage, map[string]any{"file_path": "plots/roc.png", "caption": "ROC"}), ctx)
	if !strings.Contains(out, `src="/files?path=%2Fprojects%2Fchurn%2Fplots%2Froc.png"`) {
		t.Fatalf("unexpected image src in %s", out)
	}
	if !strings.Contains(out, "<figcaption") || !strings.Contains(out, `alt="ROC"`) {
		t.Fatalf("expected caption in %s", out)
	}

	out = render(t, item(insight.KindImage, map[string]any{"url_filename": "https://example.com/a.png"}), ctx)
	if !strings.Contains(out, `src="https://example.com/a.png"`) {
		t.Fatalf("expected remote url untouched: %s", out)
	}

	out = render(t, item(insight.KindImage, map[string]any{}), ctx)
	if !strings.Contains(out, "Error: No image path provided") {
		t.Fatalf("expected missing path notice: %s", out)
	}
}

func TestErrorItem(t *testing.T) {
	out := render(t, insight.NewErrorItem("e", "Error", "boom <now>"), components.Context{})
	if !strings.Contains(out, "boom &lt;now&gt;") || !strings.Contains(out, `role="alert"`) {
		t.Fatalf("unexpected error markup: %s", out)
	}
}

func TestBarChartConfigVertical(t *testing.T) {
	cfg := components.BarChartConfig(insight.BarChart{
		Bars:        []insight.Bar{{Label: "a", Value: 1, Color: "#000"}},
		Axis:        insight.Axis{X: "Segment", Y: "Count"},
		Orientation: insight.OrientationVert,
	})
	if cfg.Options["indexAxis"] != "x" {
		t.Fatalf("expected vertical bars, got %v", cfg.Options["indexAxis"])
	}
	scales := cfg.Options["scales"].(map[string]any)
	if _, ok := scales["y"]; !ok {
		t.Fatalf("expected value axis y: %+v", scales)
	}
}
