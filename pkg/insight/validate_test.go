package insight_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

func chartItem(kind string, data any) insight.Item {
	fields := map[string]any{}
	if data != nil {
		fields["data"] = data
	}
	return insight.Item{Base: insight.Base{Type: kind, ID: kind, Title: kind}, Fields: fields}
}

func TestValidateBarChart_KeepsValidBarsInOrder(t *testing.T) {
	item := chartItem(insight.KindBarChart, map[string]any{
		"bars": []any{
			map[string]any{"label": "a", "value": 1.0},
			map[string]any{"label": "b", "value": math.Inf(1)},
			map[string]any{"label": 3, "value": 2.0},
			map[string]any{"label": "c", "value": int64(7), "color": "#000"},
		},
	})

	got := insight.ValidateBarChart(item)
	if got.Status != insight.StatusOK {
		t.Fatalf("expected ok, got %s", got.Status)
	}
	want := []insight.Bar{
		{Label: "a", Value: 1, Color: insight.DefaultColor},
		{Label: "c", Value: 7, Color: "#000"},
	}
	if diff := cmp.Diff(want, got.Bars); diff != "" {
		t.Fatalf("bars mismatch (-want +got):\n%s", diff)
	}
	if got.Orientation != insight.OrientationHoriz {
		t.Fatalf("expected horizontal default, got %q", got.Orientation)
	}
	if got.Axis.X != "X Axis" || got.Axis.Y != "Y Axis" || !got.Axis.Defaulted {
		t.Fatalf("expected default axis labels, got %+v", got.Axis)
	}
}

func TestValidateBarChart_AllValidPreservesLength(t *testing.T) {
	bars := []any{}
	for i, label := range []string{"x", "y", "z", "w"} {
		bars = append(bars, map[string]any{"label": label, "value": float64(i)})
	}
	got := insight.ValidateBarChart(chartItem(insight.KindBarChart, map[string]any{"bars": bars, "orientation": "vertical"}))
	if len(got.Bars) != len(bars) {
		t.Fatalf("expected %d bars, got %d", len(bars), len(got.Bars))
	}
	for i, bar := range got.Bars {
		if bar.Value != float64(i) {
			t.Fatalf("bar %d out of order: %+v", i, bar)
		}
	}
	if got.Orientation != insight.OrientationVert {
		t.Fatalf("expected vertical, got %q", got.Orientation)
	}
}

func TestValidateCharts_StatusLadder(t *testing.T) {
	cases := []struct {
		name    string
		run     func(insight.Item) insight.Check
		kind    string
		data    any
		status  insight.Status
		message string
	}{
		{
			name:    "bar no data",
			run:     func(i insight.Item) insight.Check { return insight.ValidateBarChart(i).Check },
			kind:    insight.KindBarChart,
			status:  insight.StatusNoData,
			message: "Error: No data provided for bar chart",
		},
		{
			name:    "line missing field",
			run:     func(i insight.Item) insight.Check { return insight.ValidateLineChart(i).Check },
			kind:    insight.KindLineChart,
			data:    map[string]any{"lines": "nope"},
			status:  insight.StatusMissingField,
			message: "Error: Missing or invalid 'lines' array",
		},
		{
			name:    "scatter empty",
			run:     func(i insight.Item) insight.Check { return insight.ValidateScatterPlot(i).Check },
			kind:    insight.KindScatterPlot,
			data:    map[string]any{"datasets": []any{}},
			status:  insight.StatusEmpty,
			message: "Warning: No datasets provided",
		},
		{
			name: "scatter none valid",
			run:  func(i insight.Item) insight.Check { return insight.ValidateScatterPlot(i).Check },
			kind: insight.KindScatterPlot,
			data: map[string]any{"datasets": []any{
				map[string]any{"id": "a", "points": []any{}},
				map[string]any{"id": "b", "points": []any{map[string]any{"x": "1", "y": 2.0}}},
				"junk",
			}},
			status:  insight.StatusNoneValid,
			message: "Warning: Found 3 dataset(s) but none contain valid data points",
		},
		{
			name: "line with one bad point is invalid",
			run:  func(i insight.Item) insight.Check { return insight.ValidateLineChart(i).Check },
			kind: insight.KindLineChart,
			data: map[string]any{"lines": []any{
				map[string]any{"id": "l", "points": []any{
					map[string]any{"x": 1.0, "y": 1.0},
					map[string]any{"x": 2.0, "y": math.NaN()},
				}},
			}},
			status:  insight.StatusNoneValid,
			message: "Warning: Found 1 line(s) but none contain valid data points",
		},
		{
			name:    "text empty",
			run:     func(i insight.Item) insight.Check { return insight.ValidateText(i).Check },
			kind:    insight.KindText,
			data:    map[string]any{"content": []any{}},
			status:  insight.StatusEmpty,
			message: "Warning: No content provided",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			check := tc.run(chartItem(tc.kind, tc.data))
			if check.Status != tc.status {
				t.Fatalf("status = %s, want %s", check.Status, tc.status)
			}
			if check.Message() != tc.message {
				t.Fatalf("message = %q, want %q", check.Message(), tc.message)
			}
		})
	}
}

func TestValidateScatterPlot_DropsInvalidPoints(t *testing.T) {
	item := chartItem(insight.KindScatterPlot, map[string]any{
		"datasets": []any{
			map[string]any{"id": "a", "points": []any{
				map[string]any{"x": 1.0, "y": 2.0},
				map[string]any{"x": "bad", "y": 2.0},
				map[string]any{"x": 3, "y": 4},
			}, "style": map[string]any{"color": "#333", "size": 6.0}},
		},
		"axis": map[string]any{"x": map[string]any{"label": "Age"}, "y": map[string]any{"label": "Spend"}},
	})

	got := insight.ValidateScatterPlot(item)
	if got.Status != insight.StatusOK {
		t.Fatalf("expected ok, got %s", got.Status)
	}
	want := []insight.Series{{
		ID:     "a",
		Points: []insight.Point{{X: 1, Y: 2}, {X: 3, Y: 4}},
		Color:  "#333",
		Size:   6,
	}}
	if diff := cmp.Diff(want, got.Datasets); diff != "" {
		t.Fatalf("datasets mismatch (-want +got):\n%s", diff)
	}
	if got.Axis.Defaulted || got.Axis.X != "Age" {
		t.Fatalf("expected configured axis, got %+v", got.Axis)
	}
}

func TestValidateText_FlatPayloadAndNestedBullets(t *testing.T) {
	item := insight.Item{
		Base: insight.Base{Type: insight.KindText, ID: "t"},
		Fields: map[string]any{
			"style": map[string]any{"alignment": "center"},
			"content": []any{
				map[string]any{"id": "p", "type": "paragraph", "text": "Hello", "style": map[string]any{"italic": true}},
				map[string]any{"id": "blank", "type": "paragraph", "text": "   "},
				map[string]any{"id": "l", "type": "bullet_list", "text": "List", "bulletPoints": []any{
					map[string]any{"text": "one", "nested": []any{map[string]any{"text": "one.a"}}},
				}},
			},
		},
	}

	got := insight.ValidateText(item)
	if got.Status != insight.StatusOK {
		t.Fatalf("expected ok, got %s", got.Status)
	}
	if len(got.Blocks) != 2 {
		t.Fatalf("expected blank paragraph to be dropped, got %d blocks", len(got.Blocks))
	}
	if !got.Blocks[0].Style.Italic || got.Style.Alignment != "center" {
		t.Fatalf("styles not decoded: %+v / %+v", got.Blocks[0].Style, got.Style)
	}
	list := got.Blocks[1]
	if !list.IsBulletList() || list.Bullets[0].Nested[0].Text != "one.a" {
		t.Fatalf("nested bullets not decoded: %+v", list)
	}
}

func TestValidateTable_ExistenceOnly(t *testing.T) {
	got := insight.ValidateTable(chartItem(insight.KindTable, map[string]any{
		"columns": []any{map[string]any{"header": "Name", "field": "name"}},
	}))
	if got.Status != insight.StatusMissingField || got.Field != "rows" {
		t.Fatalf("expected missing rows, got %s/%s", got.Status, got.Field)
	}

	got = insight.ValidateTable(chartItem(insight.KindTable, map[string]any{
		"columns": []any{map[string]any{"header": "Name", "field": "name"}},
		"rows":    []any{map[string]any{"name": "x"}, 5},
	}))
	if got.Status != insight.StatusOK || len(got.Rows) != 2 {
		t.Fatalf("expected two rows, got %s/%d", got.Status, len(got.Rows))
	}
}
