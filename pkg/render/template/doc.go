// Package template defines the template engine seam used for page layouts.
// The gotemplate sub-package provides the pongo2 implementation.
package template
