// Package model defines the metadata a model project publishes: its inputs
// with their constraints and conditional overrides, input presets, display
// groupings and outputs. The types decode the JSON returned by the backend
// verbatim. Constraint options accept both the plain string form and the
// {value,label,description} object form. InputSchema exports the inputs as
// an OpenAPI object schema for tooling that speaks that dialect.
package model
