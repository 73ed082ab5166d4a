package form

import "github.com/goliatone/go-chanterelle/pkg/model"

// Ids of the trailing groups that collect ungrouped entries.
const (
	GroupOtherPresets = "other-presets"
	GroupOtherInputs  = "other-inputs"
)

// EntryKind discriminates group entries.
type EntryKind string

const (
	EntryInput  EntryKind = "input"
	EntryPreset EntryKind = "preset"
)

// Entry is one control of a group: an input or a preset selector.
type Entry struct {
	Kind   EntryKind
	Input  model.Input
	Preset model.Preset
}

// Name returns the input or preset name.
func (e Entry) Name() string {
	if e.Kind == EntryPreset {
		return e.Preset.InputPreset
	}
	return e.Input.Name
}

// Group is an ordered fieldset.
type Group struct {
	ID          string
	Title       string
	Description string
	Synthetic   bool
	Entries     []Entry
}

// BuildGroups resolves every grouping name to a preset or an input, presets
// winning on collision, and appends the ungrouped presets and inputs as two
// trailing groups. Names that resolve to nothing are dropped.
func BuildGroups(meta model.Meta) []Group {
	presets := make(map[string]model.Preset, len(meta.InputPresets))
	for _, preset := range meta.InputPresets {
		presets[preset.InputPreset] = preset
	}
	inputs := make(map[string]model.Input, len(meta.Inputs))
	for _, input := range meta.Inputs {
		inputs[input.Name] = input
	}

	grouped := map[string]struct{}{}
	groups := make([]Group, 0, len(meta.InputGroupings)+2)
	for _, grouping := range meta.InputGroupings {
		group := Group{ID: grouping.Grouping, Title: grouping.Grouping, Description: grouping.Description}
		for _, name := range grouping.Inputs {
			grouped[name] = struct{}{}
			if preset, ok := presets[name]; ok {
				group.Entries = append(group.Entries, Entry{Kind: EntryPreset, Preset: preset})
				continue
			}
			if input, ok := inputs[name]; ok {
				group.Entries = append(group.Entries, Entry{Kind: EntryInput, Input: input})
			}
		}
		groups = append(groups, group)
	}

	hasGroupings := len(meta.InputGroupings) > 0

	var otherPresets []Entry
	for _, preset := range meta.InputPresets {
		if _, ok := grouped[preset.InputPreset]; !ok {
			otherPresets = append(otherPresets, Entry{Kind: EntryPreset, Preset: preset})
		}
	}
	if len(otherPresets) > 0 {
		groups = append(groups, Group{
			ID:        GroupOtherPresets,
			Title:     syntheticTitle(hasGroupings, "Other Presets", "Presets"),
			Synthetic: true,
			Entries:   otherPresets,
		})
	}

	var otherInputs []Entry
	for _, input := range meta.Inputs {
		if _, ok := grouped[input.Name]; !ok {
			otherInputs = append(otherInputs, Entry{Kind: EntryInput, Input: input})
		}
	}
	if len(otherInputs) > 0 {
		groups = append(groups, Group{
			ID:        GroupOtherInputs,
			Title:     syntheticTitle(hasGroupings, "Other Inputs", "Inputs"),
			Synthetic: true,
			Entries:   otherInputs,
		})
	}

	return groups
}

func syntheticTitle(hasGroupings bool, other, plain string) string {
	if hasGroupings {
		return other
	}
	return plain
}
