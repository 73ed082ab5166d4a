package insight

import (
	"fmt"
	"strings"
)

// Status classifies the outcome of validating a leaf payload. The checks run
// in a fixed order and the first failing one wins.
type Status int

const (
	// StatusOK means at least one entry survived filtering.
	StatusOK Status = iota
	// StatusNoData means the payload itself is absent.
	StatusNoData
	// StatusMissingField means the collection field is absent or not a list.
	StatusMissingField
	// StatusEmpty means the collection is present but empty.
	StatusEmpty
	// StatusNoneValid means filtering removed every entry.
	StatusNoneValid
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoData:
		return "no_data"
	case StatusMissingField:
		return "missing_field"
	case StatusEmpty:
		return "empty"
	case StatusNoneValid:
		return "none_valid"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// IsError reports a terminal failure.
func (s Status) IsError() bool {
	return s == StatusNoData || s == StatusMissingField
}

// IsWarning reports a non-terminal failure.
func (s Status) IsWarning() bool {
	return s == StatusEmpty || s == StatusNoneValid
}

// Check is the validation verdict shared by every leaf kind.
type Check struct {
	Status Status
	// Field is the collection field that was inspected.
	Field string
	// Total is the collection length before filtering.
	Total int

	subject string
	unit    string
	valid   string
}

// Message renders the user-facing text for a failed check.
func (c Check) Message() string {
	switch c.Status {
	case StatusNoData:
		return "Error: No data provided for " + c.subject
	case StatusMissingField:
		return fmt.Sprintf("Error: Missing or invalid '%s' array", c.Field)
	case StatusEmpty:
		return fmt.Sprintf("Warning: No %s provided", c.Field)
	case StatusNoneValid:
		return fmt.Sprintf("Warning: Found %d %s(s) but none contain valid %s", c.Total, c.unit, c.valid)
	default:
		return ""
	}
}

// Hint describes what a valid entry needs, for StatusNoneValid notices.
func (c Check) Hint() string {
	if c.Status != StatusNoneValid {
		return ""
	}
	switch c.unit {
	case "bar":
		return "Each bar needs a string label and a finite numeric value"
	case "line", "dataset":
		return "Each " + c.unit + " needs an array of points with x,y coordinates"
	case "content item":
		return "Each content item needs a non-empty text property"
	default:
		return ""
	}
}

// Axis holds the resolved axis titles of a chart.
type Axis struct {
	X string
	Y string
	// Defaulted is true when either label came from the defaults.
	Defaulted bool
}

// Default chart presentation values.
const (
	DefaultColor     = "#1976d2"
	DefaultAxisX     = "X Axis"
	DefaultAxisY     = "Y Axis"
	OrientationHoriz = "horizontal"
	OrientationVert  = "vertical"
	defaultLineWidth = 2
	defaultPointSize = 4
)

// Bar is one validated bar.
type Bar struct {
	Label string
	Value float64
	Color string
}

// BarChart is a validated bar chart payload.
type BarChart struct {
	Check
	Bars        []Bar
	Axis        Axis
	Orientation string
}

// Point is a finite x,y pair.
type Point struct {
	X float64
	Y float64
}

// Series is one validated line or scatter dataset.
type Series struct {
	ID      string
	Points  []Point
	Color   string
	Width   float64
	Dash    []float64
	Size    float64
	Opacity float64
}

// LineChart is a validated line chart payload.
type LineChart struct {
	Check
	Lines []Series
	Axis  Axis
}

// ScatterPlot is a validated scatter payload.
type ScatterPlot struct {
	Check
	Datasets []Series
	Axis     Axis
}

// Column is one table column.
type Column struct {
	Header string
	Field  string
}

// Table is a validated table payload. Rows that are not objects become empty
// rows.
type Table struct {
	Check
	Columns []Column
	Rows    []map[string]any
}

// TextStyle is the style of a text container, paragraph or bullet.
type TextStyle struct {
	FontSize        string
	FontWeight      string
	Alignment       string
	Color           string
	BackgroundColor string
	Italic          bool
}

// Bullet is one bullet point with its nested bullets.
type Bullet struct {
	Text   string
	Style  TextStyle
	Nested []Bullet
}

// TextBlock is a paragraph or a bullet list.
type TextBlock struct {
	ID      string
	Type    string
	Text    string
	Style   TextStyle
	Bullets []Bullet
}

// IsBulletList reports whether the block renders as a list.
func (b TextBlock) IsBulletList() bool {
	return b.Type == "bullet_list"
}

// Text is a validated text payload.
type Text struct {
	Check
	Blocks []TextBlock
	Style  TextStyle
}

func dataPayload(item Item) (map[string]any, bool) {
	raw, ok := item.Field("data")
	if !ok || raw == nil {
		return nil, false
	}
	return AsObject(raw)
}

// collection runs the absent/missing/empty steps shared by every chart kind.
func collection(check *Check, payload map[string]any, present bool) ([]any, bool) {
	if !present {
		check.Status = StatusNoData
		return nil, false
	}
	list, ok := AsList(payload[check.Field])
	if !ok {
		check.Status = StatusMissingField
		return nil, false
	}
	check.Total = len(list)
	if len(list) == 0 {
		check.Status = StatusEmpty
		return nil, false
	}
	return list, true
}

func axisFrom(payload map[string]any) Axis {
	axis := Axis{X: DefaultAxisX, Y: DefaultAxisY}
	obj, ok := AsObject(payload["axis"])
	if !ok {
		axis.Defaulted = true
		return axis
	}
	if label := axisLabel(obj["x"]); label != "" {
		axis.X = label
	} else {
		axis.Defaulted = true
	}
	if label := axisLabel(obj["y"]); label != "" {
		axis.Y = label
	} else {
		axis.Defaulted = true
	}
	return axis
}

func axisLabel(value any) string {
	obj, ok := AsObject(value)
	if !ok {
		return ""
	}
	label, _ := obj["label"].(string)
	return label
}

func colorOr(value any, fallback string) string {
	if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func numberOr(value any, fallback float64) float64 {
	if n, ok := Number(value); ok && n != 0 {
		return n
	}
	return fallback
}

// ValidateBarChart filters bars down to entries with a string label and a
// finite value, preserving order.
func ValidateBarChart(item Item) BarChart {
	out := BarChart{Check: Check{Field: "bars", subject: "bar chart", unit: "bar", valid: "data"}}
	payload, present := dataPayload(item)
	list, ok := collection(&out.Check, payload, present)
	if !ok {
		return out
	}
	for _, entry := range list {
		obj, ok := AsObject(entry)
		if !ok {
			continue
		}
		label, ok := obj["label"].(string)
		if !ok {
			continue
		}
		value, ok := Number(obj["value"])
		if !ok {
			continue
		}
		out.Bars = append(out.Bars, Bar{Label: label, Value: value, Color: colorOr(obj["color"], DefaultColor)})
	}
	if len(out.Bars) == 0 {
		out.Status = StatusNoneValid
		return out
	}
	out.Axis = axisFrom(payload)
	out.Orientation = OrientationHoriz
	if o, _ := payload["orientation"].(string); o == OrientationVert {
		out.Orientation = OrientationVert
	}
	return out
}

// ValidateLineChart keeps lines whose points are non-empty and all finite.
func ValidateLineChart(item Item) LineChart {
	out := LineChart{Check: Check{Field: "lines", subject: "line chart", unit: "line", valid: "data points"}}
	payload, present := dataPayload(item)
	list, ok := collection(&out.Check, payload, present)
	if !ok {
		return out
	}
	for _, entry := range list {
		obj, ok := AsObject(entry)
		if !ok {
			continue
		}
		points, valid := parsePoints(obj["points"])
		if !valid || len(points) == 0 {
			continue
		}
		series := seriesFrom(obj, points)
		series.Width = numberOr(styleOf(obj)["width"], defaultLineWidth)
		series.Dash = dashOf(styleOf(obj)["dash"])
		out.Lines = append(out.Lines, series)
	}
	if len(out.Lines) == 0 {
		out.Status = StatusNoneValid
		return out
	}
	out.Axis = axisFrom(payload)
	return out
}

// ValidateScatterPlot keeps datasets with at least one finite point and drops
// the invalid points of the datasets it keeps.
func ValidateScatterPlot(item Item) ScatterPlot {
	out := ScatterPlot{Check: Check{Field: "datasets", subject: "scatter plot", unit: "dataset", valid: "data points"}}
	payload, present := dataPayload(item)
	list, ok := collection(&out.Check, payload, present)
	if !ok {
		return out
	}
	for _, entry := range list {
		obj, ok := AsObject(entry)
		if !ok {
			continue
		}
		raw, ok := AsList(obj["points"])
		if !ok {
			continue
		}
		var points []Point
		for _, rawPoint := range raw {
			if p, ok := pointOf(rawPoint); ok {
				points = append(points, p)
			}
		}
		if len(points) == 0 {
			continue
		}
		series := seriesFrom(obj, points)
		series.Size = numberOr(styleOf(obj)["size"], defaultPointSize)
		if opacity, ok := Number(styleOf(obj)["opacity"]); ok {
			series.Opacity = opacity
		}
		out.Datasets = append(out.Datasets, series)
	}
	if len(out.Datasets) == 0 {
		out.Status = StatusNoneValid
		return out
	}
	out.Axis = axisFrom(payload)
	return out
}

// ValidateTable only checks that the columns and rows exist.
func ValidateTable(item Item) Table {
	out := Table{Check: Check{Field: "columns", subject: "table", unit: "row", valid: "cells"}}
	payload, present := dataPayload(item)
	if !present {
		out.Status = StatusNoData
		return out
	}
	columns, ok := AsList(payload["columns"])
	if !ok {
		out.Status = StatusMissingField
		return out
	}
	rows, ok := AsList(payload["rows"])
	if !ok {
		out.Field = "rows"
		out.Status = StatusMissingField
		return out
	}
	out.Total = len(rows)
	for _, entry := range columns {
		obj, ok := AsObject(entry)
		if !ok {
			continue
		}
		out.Columns = append(out.Columns, Column{Header: stringOf(obj["header"]), Field: stringOf(obj["field"])})
	}
	for _, entry := range rows {
		obj, ok := AsObject(entry)
		if !ok {
			obj = map[string]any{}
		}
		out.Rows = append(out.Rows, obj)
	}
	return out
}

// ValidateText keeps content entries with non-empty text. The payload may be
// nested under data or spread on the item itself.
func ValidateText(item Item) Text {
	out := Text{Check: Check{Field: "content", subject: "text component", unit: "content item", valid: "text"}}
	payload, present := dataPayload(item)
	if !present {
		payload, present = item.Fields, len(item.Fields) > 0
	}
	list, ok := collection(&out.Check, payload, present)
	if !ok {
		return out
	}
	for _, entry := range list {
		obj, ok := AsObject(entry)
		if !ok {
			continue
		}
		text, _ := obj["text"].(string)
		if strings.TrimSpace(text) == "" {
			continue
		}
		block := TextBlock{
			ID:    stringOf(obj["id"]),
			Type:  stringOf(obj["type"]),
			Text:  text,
			Style: textStyleOf(obj["style"]),
		}
		if block.Type == "" {
			block.Type = "paragraph"
		}
		block.Bullets = bulletsOf(obj["bulletPoints"])
		out.Blocks = append(out.Blocks, block)
	}
	if len(out.Blocks) == 0 {
		out.Status = StatusNoneValid
		return out
	}
	out.Style = textStyleOf(payload["style"])
	return out
}

func bulletsOf(value any) []Bullet {
	list, ok := AsList(value)
	if !ok {
		return nil
	}
	var out []Bullet
	for _, entry := range list {
		obj, ok := AsObject(entry)
		if !ok {
			continue
		}
		out = append(out, Bullet{
			Text:   stringOf(obj["text"]),
			Style:  textStyleOf(obj["style"]),
			Nested: bulletsOf(obj["nested"]),
		})
	}
	return out
}

func textStyleOf(value any) TextStyle {
	obj, ok := AsObject(value)
	if !ok {
		return TextStyle{}
	}
	style := TextStyle{
		FontSize:        stringOf(obj["fontSize"]),
		FontWeight:      stringOf(obj["fontWeight"]),
		Alignment:       stringOf(obj["alignment"]),
		Color:           stringOf(obj["color"]),
		BackgroundColor: stringOf(obj["backgroundColor"]),
	}
	style.Italic, _ = obj["italic"].(bool)
	return style
}

func styleOf(obj map[string]any) map[string]any {
	style, _ := AsObject(obj["style"])
	return style
}

func seriesFrom(obj map[string]any, points []Point) Series {
	return Series{
		ID:     stringOf(obj["id"]),
		Points: points,
		Color:  colorOr(styleOf(obj)["color"], DefaultColor),
	}
}

// parsePoints reports valid only when every point is finite.
func parsePoints(value any) ([]Point, bool) {
	list, ok := AsList(value)
	if !ok {
		return nil, false
	}
	points := make([]Point, 0, len(list))
	for _, entry := range list {
		p, ok := pointOf(entry)
		if !ok {
			return nil, false
		}
		points = append(points, p)
	}
	return points, true
}

func pointOf(value any) (Point, bool) {
	obj, ok := AsObject(value)
	if !ok {
		return Point{}, false
	}
	x, okX := Number(obj["x"])
	y, okY := Number(obj["y"])
	if !okX || !okY {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

func dashOf(value any) []float64 {
	list, ok := AsList(value)
	if !ok {
		return nil
	}
	var out []float64
	for _, entry := range list {
		if n, ok := Number(entry); ok {
			out = append(out, n)
		}
	}
	return out
}
