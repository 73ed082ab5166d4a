// Package tui fills a model's input form interactively from a terminal. It
// walks the same groups as the web form, offers presets before the inputs
// they affect and validates answers against the effective constraints.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-chanterelle/pkg/form"
	"github.com/goliatone/go-chanterelle/pkg/model"
)

// KeepCurrent is the first choice of every preset prompt.
const KeepCurrent = "Keep current values"

const noneOption = "(none)"

// Filler prompts for every input of a model.
type Filler struct {
	driver PromptDriver
	out    io.Writer
}

// New constructs a Filler backed by survey unless a driver is supplied.
func New(options ...Option) *Filler {
	f := &Filler{out: os.Stdout}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(f.out)
	}
	return f
}

// Fill prompts group by group and returns the collected values. Values in
// seed replace the defaults before prompting and become the prompt
// defaults.
func (f *Filler) Fill(ctx context.Context, meta model.Meta, seed map[string]any) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	state := form.NewState(meta)
	for name, value := range seed {
		state.Set(name, value)
	}

	for _, group := range form.BuildGroups(meta) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		heading := group.Title
		if group.Description != "" {
			heading += " - " + group.Description
		}
		if err := f.driver.Info(ctx, heading); err != nil {
			return nil, err
		}
		for _, entry := range group.Entries {
			var err error
			if entry.Kind == form.EntryPreset {
				err = f.promptPreset(ctx, entry.Preset, state)
			} else {
				err = f.promptInput(ctx, entry.Input, state)
			}
			if err != nil {
				return nil, err
			}
		}
	}
	return state.Values(), nil
}

func (f *Filler) promptPreset(ctx context.Context, preset model.Preset, state *form.State) error {
	entries := state.PresetOptions(preset.InputPreset)
	if len(entries) == 0 {
		return nil
	}
	options := []string{KeepCurrent}
	descriptions := []string{""}
	selected := 0
	for idx, entry := range entries {
		options = append(options, entry.Name)
		descriptions = append(descriptions, presetSummary(entry))
		if entry.Name == state.PresetSelection(preset.InputPreset) {
			selected = idx + 1
		}
	}

	label := preset.Label
	if label == "" {
		label = preset.InputPreset
	}
	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      options,
		Descriptions: descriptions,
		DefaultIndex: selected,
		Help:         preset.Description,
	})
	if err != nil {
		return err
	}
	if idx <= 0 || idx >= len(options) {
		return nil
	}
	return state.ApplyPreset(preset.InputPreset, options[idx])
}

func presetSummary(entry model.PresetValue) string {
	parts := make([]string, 0, len(entry.Values))
	for _, key := range sortedKeys(entry.Values) {
		parts = append(parts, fmt.Sprintf("%s=%v", key, entry.Values[key]))
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (f *Filler) promptInput(ctx context.Context, input model.Input, state *form.State) error {
	constraints := state.Constraints(input.Name)
	label := input.DisplayLabel()
	if input.Unit != "" {
		label += " (" + input.Unit + ")"
	}
	current := state.Value(input.Name)

	switch input.Type {
	case model.InputBoolean:
		value, _ := current.(bool)
		answer, err := f.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: value, Help: input.Description})
		if err != nil {
			return err
		}
		state.Set(input.Name, answer)
		return nil

	case model.InputCategory:
		if constraints != nil && len(constraints.Options) > 0 {
			return f.promptCategory(ctx, input, label, constraints.Options, current, state)
		}

	case model.InputTextarea:
		for {
			answer, err := f.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: text(current), Help: input.Description})
			if err != nil {
				return err
			}
			if input.Required && strings.TrimSpace(answer) == "" {
				if err := f.driver.Info(ctx, fmt.Sprintf("Field %q is required.", input.DisplayLabel())); err != nil {
					return err
				}
				continue
			}
			state.Set(input.Name, answer)
			return nil
		}

	case model.InputFile:
		return f.promptFile(ctx, input, label, constraints, current, state)
	}

	answer, err := f.driver.Input(ctx, InputConfig{
		Message:   label,
		Default:   text(current),
		Help:      input.Description,
		Validator: InputValidator(input, constraints),
	})
	if err != nil {
		return err
	}
	state.Set(input.Name, strings.TrimSpace(answer))
	return nil
}

func (f *Filler) promptCategory(ctx context.Context, input model.Input, label string, choices []model.Option, current any, state *form.State) error {
	var options, descriptions, values []string
	if !input.Required {
		options = append(options, noneOption)
		descriptions = append(descriptions, "")
		values = append(values, "")
	}
	selected := 0
	for _, choice := range choices {
		if choice.Value == text(current) {
			selected = len(options)
		}
		options = append(options, choice.DisplayLabel())
		descriptions = append(descriptions, choice.Description)
		values = append(values, choice.Value)
	}

	idx, err := f.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      options,
		Descriptions: descriptions,
		DefaultIndex: selected,
		Help:         input.Description,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(values) {
		return fmt.Errorf("tui: %s: invalid selection %d", input.Name, idx)
	}
	state.Set(input.Name, values[idx])
	return nil
}

func (f *Filler) promptFile(ctx context.Context, input model.Input, label string, constraints *model.Constraints, current any, state *form.State) error {
	help := input.Description
	if constraints != nil && len(constraints.Extensions) > 0 {
		help = strings.TrimSpace(help + " Accepted: " + strings.Join(constraints.Extensions, ", "))
	}
	multiple := constraints.AllowsMultiple()
	if multiple {
		label += " (comma separated)"
	}

	answer, err := f.driver.Input(ctx, InputConfig{
		Message:   label,
		Default:   text(current),
		Help:      help,
		Validator: FileValidator(input, constraints),
	})
	if err != nil {
		return err
	}

	paths := splitPaths(answer)
	switch {
	case len(paths) == 0:
		state.Set(input.Name, nil)
	case multiple:
		list := make([]any, len(paths))
		for idx, p := range paths {
			list[idx] = p
		}
		state.Set(input.Name, list)
	default:
		state.Set(input.Name, paths[0])
	}
	return nil
}

// InputValidator checks a typed answer against the input's type and
// effective constraints. Blank answers pass unless the input is required.
func InputValidator(input model.Input, constraints *model.Constraints) func(string) error {
	return func(raw string) error {
		value := strings.TrimSpace(raw)
		if value == "" {
			if input.Required {
				return fmt.Errorf("%s is required", input.DisplayLabel())
			}
			return nil
		}

		if input.Type.IsNumeric() {
			n, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
				return fmt.Errorf("%q is not a number", value)
			}
			if input.Type == model.InputInt && n != math.Trunc(n) {
				return fmt.Errorf("%q is not a whole number", value)
			}
			if constraints != nil && constraints.Min != nil && n < *constraints.Min {
				return fmt.Errorf("must be at least %v", *constraints.Min)
			}
			if constraints != nil && constraints.Max != nil && n > *constraints.Max {
				return fmt.Errorf("must be at most %v", *constraints.Max)
			}
		}

		if pattern := constraints.Pattern(); pattern != "" {
			re, err := regexp.Compile(pattern)
			if err != nil || !re.MatchString(value) {
				return fmt.Errorf("does not match the required pattern")
			}
		}
		return nil
	}
}

// FileValidator checks comma separated paths against the accepted
// extensions.
func FileValidator(input model.Input, constraints *model.Constraints) func(string) error {
	return func(raw string) error {
		paths := splitPaths(raw)
		if len(paths) == 0 {
			if input.Required {
				return fmt.Errorf("%s is required", input.DisplayLabel())
			}
			return nil
		}
		if len(paths) > 1 && !constraints.AllowsMultiple() {
			return fmt.Errorf("only one file is accepted")
		}
		if constraints == nil || len(constraints.Extensions) == 0 {
			return nil
		}
		for _, p := range paths {
			if !acceptedExtension(p, constraints.Extensions) {
				return fmt.Errorf("%s: expected one of %s", p, strings.Join(constraints.Extensions, ", "))
			}
		}
		return nil
	}
}

func acceptedExtension(p string, extensions []string) bool {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(p, `\`, "/")))
	for _, allowed := range extensions {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if !strings.HasPrefix(allowed, ".") {
			allowed = "." + allowed
		}
		if ext == allowed {
			return true
		}
	}
	return false
}

func splitPaths(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// text renders a current value as a prompt default.
func text(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(typed))
		for _, entry := range typed {
			parts = append(parts, text(entry))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(typed)
	}
}
