package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-chanterelle/pkg/model"
)

// Normalize prepares values for submission. Numeric inputs are parsed from
// their string form, keeping the raw value when parsing fails. File inputs
// are reduced to {name, path}. Values of unknown names pass through.
func Normalize(meta model.Meta, values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		out[key] = value
	}

	for _, input := range meta.Inputs {
		value, ok := values[input.Name]
		if !ok {
			continue
		}
		switch input.Type {
		case model.InputInt:
			out[input.Name] = parseInt(value)
		case model.InputFloat:
			out[input.Name] = parseFloat(value)
		case model.InputFile:
			out[input.Name] = normalizeFile(value)
		}
	}
	return out
}

func parseInt(value any) any {
	switch typed := value.(type) {
	case string:
		s := strings.TrimSpace(typed)
		if s == "" {
			return typed
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			if n, ok := truncateInt(f); ok {
				return n
			}
		}
		return typed
	case float64:
		if n, ok := truncateInt(typed); ok {
			return n
		}
		return value
	default:
		return value
	}
}

// truncateInt drops the fraction of f. Values outside the int64 range have
// no defined conversion and are rejected.
func truncateInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	t := math.Trunc(f)
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, false
	}
	return int64(t), true
}

func parseFloat(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return s
	}
	return f
}

func normalizeFile(value any) any {
	if files, ok := filesFrom(value); ok {
		return files
	}
	if f, ok := fileFrom(value); ok {
		return f
	}
	return value
}
