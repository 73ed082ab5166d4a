package model

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// InputSchema describes the inputs of meta as an OpenAPI object schema.
// Conditional overrides are not expanded; the schema carries the base
// constraints and names the controlling field under x-depends-on.
func InputSchema(meta Meta) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = meta.ModelName
	schema.Description = meta.DescriptionShort
	if schema.Description == "" {
		schema.Description = meta.Description
	}

	var required []string
	for _, input := range meta.Inputs {
		schema.WithProperty(input.Name, inputSchema(input))
		if input.Required {
			required = append(required, input.Name)
		}
	}
	schema.Required = required
	return schema
}

func inputSchema(input Input) *openapi3.Schema {
	c := input.Constraints
	var schema *openapi3.Schema

	switch input.Type {
	case InputFloat:
		schema = openapi3.NewFloat64Schema()
		applyBounds(schema, c)
	case InputInt:
		schema = openapi3.NewIntegerSchema()
		applyBounds(schema, c)
	case InputBoolean:
		schema = openapi3.NewBoolSchema()
	case InputFile:
		file := openapi3.NewObjectSchema().
			WithProperty("name", openapi3.NewStringSchema()).
			WithProperty("path", openapi3.NewStringSchema())
		file.Required = []string{"path"}
		if c.AllowsMultiple() {
			schema = openapi3.NewArraySchema().WithItems(file)
		} else {
			schema = file
		}
	default:
		schema = openapi3.NewStringSchema()
		if pattern := c.Pattern(); pattern != "" {
			schema.WithPattern(pattern)
		}
	}

	if input.Type == InputCategory && c != nil && len(c.Options) > 0 {
		values := make([]any, 0, len(c.Options))
		for _, opt := range c.Options {
			values = append(values, opt.Value)
		}
		schema.WithEnum(values...)
	}

	schema.Title = input.DisplayLabel()
	schema.Description = input.Description
	if input.Default != nil {
		schema.Default = input.Default
	}

	extensions := map[string]any{}
	if input.Unit != "" {
		extensions["x-unit"] = input.Unit
	}
	if src := input.DependsOn.Source(); src != "" {
		extensions["x-depends-on"] = src
	}
	if c != nil && len(c.Extensions) > 0 {
		extensions["x-file-extensions"] = c.Extensions
	}
	if len(extensions) > 0 {
		schema.Extensions = extensions
	}
	return schema
}

func applyBounds(schema *openapi3.Schema, c *Constraints) {
	if c == nil {
		return
	}
	if c.Min != nil {
		schema.WithMin(*c.Min)
	}
	if c.Max != nil {
		schema.WithMax(*c.Max)
	}
	if c.Step != nil && *c.Step > 0 {
		step := *c.Step
		schema.MultipleOf = &step
	}
}
