package terminal_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chanterelle/pkg/insight"
	"github.com/goliatone/go-chanterelle/pkg/render"
	"github.com/goliatone/go-chanterelle/pkg/renderers/terminal"
	"github.com/goliatone/go-chanterelle/pkg/testsupport"
)

func renderText(t *testing.T, nodes []insight.Node, opts render.RenderOptions, options ...terminal.Option) string {
	t.Helper()
	out, err := terminal.New(options...).Render(context.Background(), nodes, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRender_Findings(t *testing.T) {
	doc := testsupport.MustLoadFindings(t)
	out := renderText(t, doc.Content, render.RenderOptions{TOC: true, ProjectDir: testsupport.ProjectDir})

	for _, want := range []string{
		"Table of Contents",
		"#overview__detail__notes",
		"Overview",
		"Feature importance",
		"tenure",
		"█",
		"Customers churn early.",
		"[Retail]",
		"/projects/churn/plots/retail.png",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "not computed") {
		t.Fatalf("inactive subsection must not render:\n%s", out)
	}
}

func TestRender_DropdownSelection(t *testing.T) {
	doc := testsupport.MustLoadFindings(t)
	out := renderText(t, doc.Content, render.RenderOptions{Selections: map[string]string{"by_segment": "business"}})
	if !strings.Contains(out, "not computed") || !strings.Contains(out, "[Business]") {
		t.Fatalf("expected business subsection:\n%s", out)
	}
}

func TestRender_Result(t *testing.T) {
	out := renderText(t, testsupport.MustLoadResult(t), render.RenderOptions{Heading: "Prediction"})
	for _, want := range []string{"Probability", "stay", "0.82", "Scores are calibrated."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRender_NoticesAndUnknown(t *testing.T) {
	nodes := []insight.Node{
		insight.Item{Base: insight.Base{Type: insight.KindBarChart, ID: "b", Title: "Bars"}, Fields: map[string]any{"data": map[string]any{"bars": []any{}}}},
		insight.Item{Base: insight.Base{Type: "heatmap", ID: "h", Title: "Heat"}},
	}
	out := renderText(t, nodes, render.RenderOptions{})
	if !strings.Contains(out, "Warning: No bars provided") || !strings.Contains(out, `Unsupported insight type "heatmap"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out = renderText(t, nodes, render.RenderOptions{}, terminal.WithSilentUnknownTypes())
	if strings.Contains(out, "Heat") {
		t.Fatalf("expected silent skip:\n%s", out)
	}
}

func TestRender_ErrorResult(t *testing.T) {
	out := renderText(t, insight.ErrorResult("boom"), render.RenderOptions{})
	if !strings.Contains(out, "Error from the model handler") || !strings.Contains(out, "boom") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDefaultRegistry(t *testing.T) {
	want := []string{"bar_chart", "error", "image", "line_chart", "scatter_plot", "table", "text"}
	if diff := cmp.Diff(want, terminal.NewDefaultRegistry().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
