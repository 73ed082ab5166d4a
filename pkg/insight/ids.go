package insight

// IDSeparator joins the ids of nested nodes into anchor ids.
const IDSeparator = "__"

// JoinID composes the hierarchical anchor id of a node. An empty id keeps
// the parent's id and an empty parent keeps the node's own id.
func JoinID(parent, id string) string {
	switch {
	case parent != "" && id != "":
		return parent + IDSeparator + id
	case id != "":
		return id
	default:
		return parent
	}
}
