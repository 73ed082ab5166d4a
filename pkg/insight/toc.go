package insight

// TOCEntry is one line of the table of contents. ID matches the anchor id the
// HTML renderer emits for the same node.
type TOCEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
	Type  string `json:"type"`
}

// BuildTOC walks nodes depth-first and returns the outline of every node with
// a title and an id. Sections driven by a dropdown are left out together with
// their subsections; plain sections are followed one level deeper.
func BuildTOC(nodes []Node) []TOCEntry {
	return buildTOC(nodes, 1, "", nil)
}

func buildTOC(nodes []Node, level int, parent string, out []TOCEntry) []TOCEntry {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		id := JoinID(parent, node.NodeID())
		section, isSection := node.(Section)
		if isSection && section.UsesDropdown() {
			continue
		}
		if node.NodeTitle() != "" && id != "" {
			out = append(out, TOCEntry{ID: id, Title: node.NodeTitle(), Level: level, Type: node.Kind()})
		}
		if isSection && len(section.Items) > 0 {
			out = buildTOC(section.Items, level+1, id, out)
		}
	}
	return out
}
