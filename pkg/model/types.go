package model

// InputType is the kind of control an input renders as.
type InputType string

const (
	InputFloat    InputType = "float"
	InputInt      InputType = "int"
	InputString   InputType = "string"
	InputCategory InputType = "category"
	InputBoolean  InputType = "boolean"
	InputTextarea InputType = "textarea"
	InputFile     InputType = "file"
)

// IsNumeric reports whether values of this type are parsed as numbers before
// submission.
func (t InputType) IsNumeric() bool {
	return t == InputFloat || t == InputInt
}

// Meta is the full description of a model project.
type Meta struct {
	ModelID          string            `json:"model_id"`
	ModelName        string            `json:"model_name"`
	ModelVersion     string            `json:"model_version"`
	DescriptionShort string            `json:"description_short,omitempty"`
	Description      string            `json:"description"`
	Links            []Link            `json:"links,omitempty"`
	Tags             map[string]string `json:"tags,omitempty"`
	Inputs           []Input           `json:"inputs"`
	InputPresets     []Preset          `json:"input_presets,omitempty"`
	InputGroupings   []Grouping        `json:"input_groupings,omitempty"`
	Outputs          []Output          `json:"outputs"`
}

// Input returns the input with the supplied name.
func (m Meta) Input(name string) (Input, bool) {
	for _, input := range m.Inputs {
		if input.Name == name {
			return input, true
		}
	}
	return Input{}, false
}

// Preset returns the preset with the supplied name.
func (m Meta) Preset(name string) (Preset, bool) {
	for _, preset := range m.InputPresets {
		if preset.InputPreset == name {
			return preset, true
		}
	}
	return Preset{}, false
}

// Link points at documentation attached to the model.
type Link struct {
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

// Input is one model input.
type Input struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Type        InputType    `json:"type"`
	Unit        string       `json:"unit,omitempty"`
	Required    bool         `json:"required,omitempty"`
	Description string       `json:"description,omitempty"`
	Default     any          `json:"default,omitempty"`
	Constraints *Constraints `json:"constraints,omitempty"`
	DependsOn   *Dependency  `json:"depends_on,omitempty"`
}

// DisplayLabel falls back to the name when no label is set.
func (i Input) DisplayLabel() string {
	if i.Label != "" {
		return i.Label
	}
	return i.Name
}

// Dependency keys a constraints override on the current value of another
// field. Inputs name that field with input_name, presets with field.
type Dependency struct {
	InputName string                     `json:"input_name,omitempty"`
	Field     string                     `json:"field,omitempty"`
	Mapping   map[string]DependencyEntry `json:"mapping"`
}

// Source returns the name of the field the dependency reads.
func (d *Dependency) Source() string {
	if d == nil {
		return ""
	}
	if d.InputName != "" {
		return d.InputName
	}
	return d.Field
}

// DependencyEntry is the override applied for one parent value.
type DependencyEntry struct {
	Constraints *Constraints `json:"constraints,omitempty"`
}

// Preset is a named bundle of input values applied as a unit.
type Preset struct {
	InputPreset string        `json:"input_preset"`
	Label       string        `json:"label"`
	Description string        `json:"description"`
	Affects     []string      `json:"affects"`
	Presets     []PresetValue `json:"presets"`
	DependsOn   *Dependency   `json:"depends_on,omitempty"`
}

// Option returns the preset entry with the supplied name.
func (p Preset) Option(name string) (PresetValue, bool) {
	for _, entry := range p.Presets {
		if entry.Name == name {
			return entry, true
		}
	}
	return PresetValue{}, false
}

// PresetValue is one selectable entry of a preset.
type PresetValue struct {
	Name   string         `json:"name"`
	Values map[string]any `json:"values"`
}

// Grouping clusters input and preset names under a fieldset.
type Grouping struct {
	Grouping    string   `json:"grouping"`
	Description string   `json:"description"`
	Inputs      []string `json:"inputs"`
}

// Output describes one value the model produces.
type Output struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Unit        string   `json:"unit,omitempty"`
	Description string   `json:"description,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Options     []Option `json:"options,omitempty"`
}

// Summary is the catalog entry of a project.
type Summary struct {
	ProjectName      string            `json:"project_name"`
	ModelID          string            `json:"model_id"`
	ModelName        string            `json:"model_name"`
	Description      string            `json:"description"`
	DescriptionShort string            `json:"description_short,omitempty"`
	Tags             map[string]string `json:"tags,omitempty"`
}

// Blurb prefers the short description.
func (s Summary) Blurb() string {
	if s.DescriptionShort != "" {
		return s.DescriptionShort
	}
	return s.Description
}
