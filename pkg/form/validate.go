package form

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/goliatone/go-chanterelle/pkg/model"
)

// ValidationError carries every message produced by one validation pass.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "form: validation failed: " + strings.Join(e.Messages, "; ")
}

// Validate checks every input in declaration order and returns all messages.
// Required inputs reject missing values, treating 0 and false as present.
// Inputs with an effective regex reject non-empty values that do not match.
func Validate(meta model.Meta, values map[string]any) []string {
	var messages []string
	for _, input := range meta.Inputs {
		value := values[input.Name]
		label := input.DisplayLabel()

		if input.Required {
			if input.Type == model.InputFile {
				if !hasFile(value) {
					messages = append(messages, fmt.Sprintf("File %q is required.", label))
				}
			} else if isMissing(value) {
				messages = append(messages, fmt.Sprintf("Field %q is required.", label))
			}
		}

		constraints := EffectiveConstraints(input, values)
		pattern := constraints.Pattern()
		if pattern == "" || isMissing(value) {
			continue
		}
		if !matches(pattern, value) {
			messages = append(messages, fmt.Sprintf("Field %q does not match the required pattern.", label))
		}
	}
	return messages
}

func isMissing(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case float64:
		return math.IsNaN(typed)
	default:
		return false
	}
}

func hasFile(value any) bool {
	if files, ok := filesFrom(value); ok {
		return len(files) > 0
	}
	_, ok := fileFrom(value)
	return ok
}

// matches treats an invalid expression as a mismatch.
func matches(pattern string, value any) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(fmt.Sprint(value))
}
