package form

import (
	"math"
	"strconv"

	"github.com/goliatone/go-chanterelle/pkg/model"
)

// lookupDependency is the one decision table behind conditional constraints:
// it reads the controlling field from values and returns the override mapped
// to that value. A missing dependency, a value with no key, or an entry with
// no constraints is a miss.
func lookupDependency(dep *model.Dependency, values map[string]any) (*model.Constraints, bool) {
	if dep == nil || len(dep.Mapping) == 0 {
		return nil, false
	}
	key, ok := DependencyKey(values[dep.Source()])
	if !ok {
		return nil, false
	}
	entry, ok := dep.Mapping[key]
	if !ok || entry.Constraints == nil {
		return nil, false
	}
	return entry.Constraints, true
}

// DependencyKey renders a form value as a mapping key. Strings are used as
// they are, booleans as "true"/"false" and numbers in their shortest form.
// nil never matches.
func DependencyKey(value any) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", false
	case string:
		return typed, true
	case bool:
		return strconv.FormatBool(typed), true
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return "", false
		}
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	default:
		return "", false
	}
}

// EffectiveConstraints merges the override selected by the input's
// dependency over its base constraints. A miss returns the base unchanged.
func EffectiveConstraints(input model.Input, values map[string]any) *model.Constraints {
	override, ok := lookupDependency(input.DependsOn, values)
	if !ok {
		return input.Constraints
	}
	return input.Constraints.Merge(override)
}

// EffectivePresetConstraints returns the override selected by the preset's
// dependency, replacing rather than merging. A miss returns nil, meaning the
// preset options are not filtered.
func EffectivePresetConstraints(preset model.Preset, values map[string]any) *model.Constraints {
	override, ok := lookupDependency(preset.DependsOn, values)
	if !ok {
		return nil
	}
	return override
}

// FilterPresetOptions keeps the preset entries whose names appear among the
// constraint options. Nil constraints or nil options keep every entry.
func FilterPresetOptions(preset model.Preset, constraints *model.Constraints) []model.PresetValue {
	if constraints == nil || constraints.Options == nil {
		return preset.Presets
	}
	allowed := make(map[string]struct{}, len(constraints.Options))
	for _, opt := range constraints.Options {
		allowed[opt.Value] = struct{}{}
	}
	out := make([]model.PresetValue, 0, len(preset.Presets))
	for _, entry := range preset.Presets {
		if _, ok := allowed[entry.Name]; ok {
			out = append(out, entry)
		}
	}
	return out
}
