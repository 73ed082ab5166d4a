// Package form turns model metadata into a controlled prediction form. It
// orders inputs and presets into groups, resolves conditional constraints,
// tracks values and preset selections, validates and normalises them, and
// submits them to a model invoker. Invocation failures are translated into an
// insight error section so results and failures render through one path.
package form
