package server

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-chanterelle/internal/markdown"
	"github.com/goliatone/go-chanterelle/pkg/backend"
	"github.com/goliatone/go-chanterelle/pkg/fileurl"
	"github.com/goliatone/go-chanterelle/pkg/form"
	"github.com/goliatone/go-chanterelle/pkg/model"
	"github.com/goliatone/go-chanterelle/pkg/session"
)

// Model page tabs.
const (
	tabDetail   = "detail"
	tabInsights = "insights"
	tabForm     = "form"
)

func normalizeTab(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case tabInsights, "findings":
		return tabInsights
	case tabForm, "practice":
		return tabForm
	default:
		return tabDetail
	}
}

type tagView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func tagsView(tags map[string]string) []tagView {
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]tagView, 0, len(keys))
	for _, key := range keys {
		out = append(out, tagView{Key: key, Value: tags[key]})
	}
	return out
}

type cardView struct {
	Project string    `json:"project"`
	Name    string    `json:"name"`
	Blurb   string    `json:"blurb"`
	Tags    []tagView `json:"tags"`
}

func cardsView(list []model.Summary) []cardView {
	out := make([]cardView, 0, len(list))
	for _, summary := range list {
		name := summary.ModelName
		if name == "" {
			name = summary.ProjectName
		}
		out = append(out, cardView{
			Project: summary.ProjectName,
			Name:    name,
			Blurb:   summary.Blurb(),
			Tags:    tagsView(summary.Tags),
		})
	}
	return out
}

type linkView struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

type inputRowView struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Unit     string `json:"unit"`
	Required bool   `json:"required"`
	Summary  string `json:"summary"`
}

type outputRowView struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
	Range       string `json:"range"`
}

// modelCard builds the Model Card tab.
func modelCard(project string, details *backend.ModelDetails, files fileurl.Resolver, status session.WarmupStatus) (map[string]any, error) {
	meta := details.Model
	description, err := markdown.HTML(meta.Description)
	if err != nil {
		return nil, err
	}

	links := make([]linkView, 0, len(meta.Links))
	for _, link := range meta.Links {
		href := link.URL
		if href == "" && link.FileName != "" {
			href = files.Resolve(link.FileName, details.ProjectPath)
		}
		if href == "" {
			continue
		}
		name := link.Name
		if name == "" {
			name = href
		}
		links = append(links, linkView{Name: name, Href: href})
	}

	inputs := make([]inputRowView, 0, len(meta.Inputs))
	for _, input := range meta.Inputs {
		inputs = append(inputs, inputRowView{
			Name:     input.Name,
			Label:    input.DisplayLabel(),
			Type:     string(input.Type),
			Unit:     input.Unit,
			Required: input.Required,
			Summary:  model.ConstraintSummary(input),
		})
	}

	outputs := make([]outputRowView, 0, len(meta.Outputs))
	for _, output := range meta.Outputs {
		label := output.Label
		if label == "" {
			label = output.Name
		}
		outputs = append(outputs, outputRowView{
			Name:        output.Name,
			Label:       label,
			Type:        output.Type,
			Unit:        output.Unit,
			Description: output.Description,
			Range:       model.OutputRange(output),
		})
	}

	title := meta.ModelName
	if title == "" {
		title = project
	}
	return map[string]any{
		"project":          project,
		"title":            title,
		"model_id":         meta.ModelID,
		"version":          meta.ModelVersion,
		"short":            meta.DescriptionShort,
		"description_html": description,
		"links":            links,
		"tags":             tagsView(meta.Tags),
		"inputs":           inputs,
		"outputs":          outputs,
		"warmup":           status,
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type optionView struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Selected    bool   `json:"selected"`
}

type fieldView struct {
	Kind        string       `json:"kind"`
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Type        string       `json:"type"`
	HTMLType    string       `json:"html_type"`
	Unit        string       `json:"unit"`
	Description string       `json:"description"`
	Required    bool         `json:"required"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked"`
	Options     []optionView `json:"options"`
	Min         string       `json:"min"`
	Max         string       `json:"max"`
	Step        string       `json:"step"`
	Pattern     string       `json:"pattern"`
	Rows        string       `json:"rows"`
	Placeholder string       `json:"placeholder"`
	Accept      string       `json:"accept"`
	Multiple    bool         `json:"multiple"`
}

type groupView struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Fields      []fieldView `json:"fields"`
}

type formView struct {
	Groups []groupView `json:"groups"`
	Errors []string    `json:"errors"`
}

// buildFormView renders the current state. presets carries the entry chosen
// per preset selector when the state itself does not know it.
func buildFormView(state *form.State, presets map[string]string, messages []string) formView {
	groups := form.BuildGroups(state.Meta())
	out := formView{Groups: make([]groupView, 0, len(groups)), Errors: messages}
	for _, group := range groups {
		gv := groupView{ID: group.ID, Title: group.Title, Description: group.Description}
		for _, entry := range group.Entries {
			if entry.Kind == form.EntryPreset {
				gv.Fields = append(gv.Fields, presetField(state, entry.Preset, presets))
				continue
			}
			gv.Fields = append(gv.Fields, inputField(state, entry.Input))
		}
		out.Groups = append(out.Groups, gv)
	}
	return out
}

func presetField(state *form.State, preset model.Preset, chosen map[string]string) fieldView {
	selected := state.PresetSelection(preset.InputPreset)
	if selected == "" {
		selected = chosen[preset.InputPreset]
	}
	label := preset.Label
	if label == "" {
		label = preset.InputPreset
	}
	fv := fieldView{Kind: string(form.EntryPreset), Name: preset.InputPreset, Label: label, Description: preset.Description}
	for _, entry := range state.PresetOptions(preset.InputPreset) {
		fv.Options = append(fv.Options, optionView{Value: entry.Name, Label: entry.Name, Selected: entry.Name == selected})
	}
	return fv
}

func inputField(state *form.State, input model.Input) fieldView {
	c := state.Constraints(input.Name)
	value := state.Value(input.Name)
	fv := fieldView{
		Kind:        string(form.EntryInput),
		Name:        input.Name,
		Label:       input.DisplayLabel(),
		Type:        string(input.Type),
		HTMLType:    "text",
		Unit:        input.Unit,
		Description: input.Description,
		Required:    input.Required,
		Value:       valueText(value),
	}
	if c != nil {
		fv.Placeholder = c.PlaceholderText()
		if c.Min != nil {
			fv.Min = formatFloat(*c.Min)
		}
		if c.Max != nil {
			fv.Max = formatFloat(*c.Max)
		}
		if c.Step != nil {
			fv.Step = formatFloat(*c.Step)
		}
		fv.Pattern = c.Pattern()
		fv.Accept = strings.Join(c.Extensions, ",")
		fv.Multiple = c.AllowsMultiple()
		for _, opt := range c.Options {
			fv.Options = append(fv.Options, optionView{
				Value:       opt.Value,
				Label:       opt.DisplayLabel(),
				Description: opt.Description,
				Selected:    opt.Value == fv.Value,
			})
		}
	}

	switch input.Type {
	case model.InputBoolean:
		fv.Checked, _ = value.(bool)
	case model.InputInt:
		fv.HTMLType = "number"
		if fv.Step == "" {
			fv.Step = "1"
		}
	case model.InputFloat:
		fv.HTMLType = "number"
		if fv.Step == "" {
			fv.Step = "any"
		}
	case model.InputTextarea:
		fv.Rows = "4"
		if c != nil && c.Rows != nil {
			fv.Rows = strconv.Itoa(*c.Rows)
		}
	case model.InputFile:
		if fv.Placeholder == "" {
			fv.Placeholder = "Path to file"
			if fv.Multiple {
				fv.Placeholder = "Paths, comma separated"
			}
		}
	}
	return fv
}

func valueText(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return formatFloat(typed)
	case form.File:
		return typed.Path
	case []any:
		parts := make([]string, 0, len(typed))
		for _, entry := range typed {
			parts = append(parts, valueText(entry))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if p, ok := typed["path"].(string); ok {
			return p
		}
		return fmt.Sprint(typed)
	default:
		return fmt.Sprint(typed)
	}
}
