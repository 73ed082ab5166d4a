package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Constraints narrows the values an input accepts. Pointer fields distinguish
// an absent key from a zero value so overrides can set 0 or false.
type Constraints struct {
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Step        *float64 `json:"step,omitempty"`
	Options     []Option `json:"options,omitempty"`
	Regex       *string  `json:"regex,omitempty"`
	Rows        *int     `json:"rows,omitempty"`
	Placeholder *string  `json:"placeholder,omitempty"`
	Extensions  []string `json:"extensions,omitempty"`
	Multiple    *bool    `json:"multiple,omitempty"`
}

// Merge returns c with every key set in override replacing the base value.
// Either side may be nil.
func (c *Constraints) Merge(override *Constraints) *Constraints {
	if c == nil && override == nil {
		return nil
	}
	var out Constraints
	if c != nil {
		out = *c
	}
	if override == nil {
		return &out
	}
	if override.Min != nil {
		out.Min = override.Min
	}
	if override.Max != nil {
		out.Max = override.Max
	}
	if override.Step != nil {
		out.Step = override.Step
	}
	if override.Options != nil {
		out.Options = override.Options
	}
	if override.Regex != nil {
		out.Regex = override.Regex
	}
	if override.Rows != nil {
		out.Rows = override.Rows
	}
	if override.Placeholder != nil {
		out.Placeholder = override.Placeholder
	}
	if override.Extensions != nil {
		out.Extensions = override.Extensions
	}
	if override.Multiple != nil {
		out.Multiple = override.Multiple
	}
	return &out
}

// Pattern returns the regex constraint, empty when unset or cleared.
func (c *Constraints) Pattern() string {
	if c == nil || c.Regex == nil {
		return ""
	}
	return *c.Regex
}

// PlaceholderText returns the placeholder hint, empty when unset.
func (c *Constraints) PlaceholderText() string {
	if c == nil || c.Placeholder == nil {
		return ""
	}
	return *c.Placeholder
}

// AllowsMultiple reports whether a file input takes several files.
func (c *Constraints) AllowsMultiple() bool {
	return c != nil && c.Multiple != nil && *c.Multiple
}

// OptionValues returns the option values in order.
func (c *Constraints) OptionValues() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.Options))
	for _, opt := range c.Options {
		out = append(out, opt.Value)
	}
	return out
}

// Option is one allowed value. It decodes from either a bare string or an
// object with value, label and description.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// DisplayLabel falls back to the value when no label is set.
func (o Option) DisplayLabel() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// UnmarshalJSON accepts the string and object forms.
func (o *Option) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return fmt.Errorf("model: decode option: %w", err)
		}
		*o = Option{Value: value}
		return nil
	}

	type plain Option
	var decoded plain
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return fmt.Errorf("model: decode option: %w", err)
	}
	*o = Option(decoded)
	return nil
}
