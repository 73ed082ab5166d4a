package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-chanterelle/pkg/model"
)

// ErrUnknownPreset is returned when a preset or preset entry does not exist.
var ErrUnknownPreset = errors.New("form: unknown preset")

// DefaultValue is the initial value of an input: its declared default, false
// for booleans, nil for files and the empty string otherwise.
func DefaultValue(input model.Input) any {
	if input.Default != nil {
		return input.Default
	}
	switch input.Type {
	case model.InputBoolean:
		return false
	case model.InputFile:
		return nil
	default:
		return ""
	}
}

// State holds the values of one form instance. It is not safe for concurrent
// use; each request or session owns its own State.
type State struct {
	meta       model.Meta
	values     map[string]any
	selections map[string]string
}

// NewState initialises every input to its default value.
func NewState(meta model.Meta) *State {
	values := make(map[string]any, len(meta.Inputs))
	for _, input := range meta.Inputs {
		values[input.Name] = DefaultValue(input)
	}
	return &State{meta: meta, values: values, selections: map[string]string{}}
}

// Meta returns the metadata the form was built from.
func (s *State) Meta() model.Meta {
	return s.meta
}

// Values returns a copy of the current values.
func (s *State) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// Value returns one current value.
func (s *State) Value(name string) any {
	return s.values[name]
}

// Set replaces one value.
func (s *State) Set(name string, value any) {
	s.values[name] = value
}

// ApplyPreset records the selection and writes every value of the chosen
// preset entry over the current values. Fields the entry does not name are
// left untouched.
func (s *State) ApplyPreset(presetName, entryName string) error {
	preset, ok := s.meta.Preset(presetName)
	if !ok {
		return fmt.Errorf("form: preset %q: %w", presetName, ErrUnknownPreset)
	}
	entry, ok := preset.Option(entryName)
	if !ok {
		return fmt.Errorf("form: preset %q entry %q: %w", presetName, entryName, ErrUnknownPreset)
	}
	s.selections[presetName] = entryName
	for field, value := range entry.Values {
		s.values[field] = value
	}
	return nil
}

// PresetSelection returns the last entry chosen for a preset.
func (s *State) PresetSelection(presetName string) string {
	return s.selections[presetName]
}

// PresetOptions lists the entries of a preset available under the current
// values.
func (s *State) PresetOptions(presetName string) []model.PresetValue {
	preset, ok := s.meta.Preset(presetName)
	if !ok {
		return nil
	}
	return FilterPresetOptions(preset, EffectivePresetConstraints(preset, s.values))
}

// Constraints returns the effective constraints of an input under the
// current values.
func (s *State) Constraints(inputName string) *model.Constraints {
	input, ok := s.meta.Input(inputName)
	if !ok {
		return nil
	}
	return EffectiveConstraints(input, s.values)
}

// Validate checks the current values.
func (s *State) Validate() []string {
	return Validate(s.meta, s.values)
}
