package model

import (
	"strconv"
	"strings"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ConstraintSummary describes an input's constraints in one line, for
// example "min 0 · max 120 · step 1 · depends on segment".
func ConstraintSummary(input Input) string {
	var parts []string
	if c := input.Constraints; c != nil {
		if c.Min != nil {
			parts = append(parts, "min "+formatFloat(*c.Min))
		}
		if c.Max != nil {
			parts = append(parts, "max "+formatFloat(*c.Max))
		}
		if c.Step != nil {
			parts = append(parts, "step "+formatFloat(*c.Step))
		}
		if len(c.Options) > 0 {
			labels := make([]string, 0, len(c.Options))
			for _, opt := range c.Options {
				labels = append(labels, opt.DisplayLabel())
			}
			parts = append(parts, "options: "+strings.Join(labels, ", "))
		}
		if pattern := c.Pattern(); pattern != "" {
			parts = append(parts, "pattern "+pattern)
		}
		if len(c.Extensions) > 0 {
			ext := strings.Join(c.Extensions, ", ")
			if c.AllowsMultiple() {
				ext += " (multiple)"
			}
			parts = append(parts, ext)
		}
	}
	if source := input.DependsOn.Source(); source != "" {
		parts = append(parts, "depends on "+source)
	}
	return strings.Join(parts, " · ")
}

// OutputRange describes the bounds or the options of an output.
func OutputRange(output Output) string {
	switch {
	case output.Min != nil && output.Max != nil:
		return formatFloat(*output.Min) + " – " + formatFloat(*output.Max)
	case output.Min != nil:
		return "≥ " + formatFloat(*output.Min)
	case output.Max != nil:
		return "≤ " + formatFloat(*output.Max)
	}
	if len(output.Options) > 0 {
		labels := make([]string, 0, len(output.Options))
		for _, opt := range output.Options {
			labels = append(labels, opt.DisplayLabel())
		}
		return strings.Join(labels, ", ")
	}
	return ""
}
