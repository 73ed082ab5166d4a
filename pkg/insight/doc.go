// Package insight models the report trees returned by model invocations and
// stored as project findings. A tree is a list of Node values; a Node is
// either a Section, which may nest further nodes directly or behind a
// dropdown of named subsections, or an Item, a leaf whose Type selects a
// renderer. Validation of leaf payloads, hierarchical anchor ids and the
// table of contents all live here so every renderer shares them.
package insight
