// Package session holds the cross-cutting state shared by the web screens:
// the active project, the theme preference and model warm-up status. Each
// value has one owning writer; readers take snapshots.
package session
