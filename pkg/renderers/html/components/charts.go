package components

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

// ChartConfig is a Chart.js configuration. The bootstrap script hands it to
// new Chart(canvas, config) unchanged.
type ChartConfig struct {
	Type    string         `json:"type"`
	Data    ChartData      `json:"data"`
	Options map[string]any `json:"options"`
}

// ChartData holds the labels and datasets of a chart.
type ChartData struct {
	Labels   []any            `json:"labels,omitempty"`
	Datasets []map[string]any `json:"datasets"`
}

const scatterAxisNotice = "Info: Using default axis labels (axis configuration missing)"

func axisTitle(text string) map[string]any {
	return map[string]any{"display": true, "text": text}
}

func topLegend() map[string]any {
	return map[string]any{"legend": map[string]any{"position": "top"}}
}

// BarChartConfig lays bars out horizontally unless the payload asks for
// vertical bars.
func BarChartConfig(chart insight.BarChart) ChartConfig {
	labels := make([]any, len(chart.Bars))
	values := make([]float64, len(chart.Bars))
	colors := make([]string, len(chart.Bars))
	for idx, bar := range chart.Bars {
		labels[idx] = bar.Label
		values[idx] = bar.Value
		colors[idx] = bar.Color
	}

	indexAxis, categoryAxis, valueAxis := "y", chart.Axis.Y, chart.Axis.X
	if chart.Orientation == insight.OrientationVert {
		indexAxis, categoryAxis, valueAxis = "x", chart.Axis.X, chart.Axis.Y
	}
	valueKey := "x"
	if indexAxis == "x" {
		valueKey = "y"
	}

	return ChartConfig{
		Type: "bar",
		Data: ChartData{
			Labels: labels,
			Datasets: []map[string]any{{
				"label":           chart.Axis.X,
				"data":            values,
				"backgroundColor": colors,
			}},
		},
		Options: map[string]any{
			"responsive": true,
			"indexAxis":  indexAxis,
			"plugins":    map[string]any{"legend": map[string]any{"display": false}},
			"scales": map[string]any{
				indexAxis: map[string]any{"ticks": map[string]any{"autoSkip": false}, "title": axisTitle(categoryAxis)},
				valueKey:  map[string]any{"title": axisTitle(valueAxis)},
			},
		},
	}
}

// LineChartConfig uses the x values of the first line as category labels.
func LineChartConfig(chart insight.LineChart) ChartConfig {
	var labels []any
	if len(chart.Lines) > 0 {
		for _, p := range chart.Lines[0].Points {
			labels = append(labels, p.X)
		}
	}
	datasets := make([]map[string]any, 0, len(chart.Lines))
	for _, line := range chart.Lines {
		ys := make([]float64, len(line.Points))
		for idx, p := range line.Points {
			ys[idx] = p.Y
		}
		dash := line.Dash
		if dash == nil {
			dash = []float64{}
		}
		datasets = append(datasets, map[string]any{
			"label":       line.ID,
			"data":        ys,
			"borderColor": line.Color,
			"borderWidth": line.Width,
			"borderDash":  dash,
			"fill":        false,
			"tension":     0.4,
			"pointRadius": 2,
		})
	}
	return ChartConfig{
		Type: "line",
		Data: ChartData{Labels: labels, Datasets: datasets},
		Options: map[string]any{
			"responsive": true,
			"plugins":    topLegend(),
			"scales": map[string]any{
				"x": map[string]any{"display": true, "title": axisTitle(chart.Axis.X)},
				"y": map[string]any{"display": true, "title": axisTitle(chart.Axis.Y)},
			},
		},
	}
}

// ScatterChartConfig plots each dataset on a linear x axis.
func ScatterChartConfig(plot insight.ScatterPlot) ChartConfig {
	datasets := make([]map[string]any, 0, len(plot.Datasets))
	for _, ds := range plot.Datasets {
		points := make([]map[string]float64, len(ds.Points))
		for idx, p := range ds.Points {
			points[idx] = map[string]float64{"x": p.X, "y": p.Y}
		}
		label := ds.ID
		if label == "" {
			label = "Unnamed Dataset"
		}
		dataset := map[string]any{
			"label":                label,
			"data":                 points,
			"backgroundColor":      ds.Color,
			"borderColor":          ds.Color,
			"pointRadius":          ds.Size,
			"pointHoverRadius":     ds.Size + 2,
			"pointBackgroundColor": ds.Color,
			"pointBorderColor":     ds.Color,
			"pointBorderWidth":     1,
		}
		if ds.Opacity > 0 {
			dataset["opacity"] = ds.Opacity
		}
		datasets = append(datasets, dataset)
	}
	return ChartConfig{
		Type: "scatter",
		Data: ChartData{Datasets: datasets},
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": false,
			"plugins":             topLegend(),
			"scales": map[string]any{
				"x": map[string]any{"display": true, "type": "linear", "position": "bottom", "title": axisTitle(plot.Axis.X)},
				"y": map[string]any{"display": true, "title": axisTitle(plot.Axis.Y)},
			},
		},
	}
}

func writeCanvas(b *strings.Builder, config ChartConfig, wrapperClass string) error {
	encoded, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("components: encode %s chart: %w", config.Type, err)
	}
	b.WriteString(`<div class="`)
	b.WriteString(wrapperClass)
	b.WriteString(`"><canvas data-chart="`)
	b.WriteString(html.EscapeString(string(encoded)))
	b.WriteString(`" role="img"></canvas></div>`)
	return nil
}

func renderBarChart(b *strings.Builder, item insight.Item, _ Context) error {
	chart := insight.ValidateBarChart(item)
	if writeCheck(b, chart.Check) {
		return nil
	}
	return writeCanvas(b, BarChartConfig(chart), "my-4")
}

func renderLineChart(b *strings.Builder, item insight.Item, _ Context) error {
	chart := insight.ValidateLineChart(item)
	if writeCheck(b, chart.Check) {
		return nil
	}
	return writeCanvas(b, LineChartConfig(chart), "my-4")
}

func renderScatterPlot(b *strings.Builder, item insight.Item, _ Context) error {
	plot := insight.ValidateScatterPlot(item)
	if writeCheck(b, plot.Check) {
		return nil
	}
	b.WriteString(`<div class="w-full">`)
	if plot.Axis.Defaulted {
		WriteNotice(b, NoticeInfo, "", scatterAxisNotice, "")
	}
	if err := writeCanvas(b, ScatterChartConfig(plot), "w-full max-w-2xl h-96 border border-gray-300 rounded-lg p-4 bg-white"); err != nil {
		return err
	}
	b.WriteString(`</div>`)
	return nil
}
