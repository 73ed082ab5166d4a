package form

// File is the reference a file input submits.
type File struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (f File) empty() bool {
	return f.Name == "" && f.Path == ""
}

// fileFrom reads the picker shapes a file value may hold: File, a decoded
// object or a bare path.
func fileFrom(value any) (File, bool) {
	switch typed := value.(type) {
	case File:
		return typed, !typed.empty()
	case *File:
		if typed == nil {
			return File{}, false
		}
		return *typed, !typed.empty()
	case map[string]any:
		name, _ := typed["name"].(string)
		path, _ := typed["path"].(string)
		f := File{Name: name, Path: path}
		return f, !f.empty()
	case string:
		if typed == "" {
			return File{}, false
		}
		return File{Name: baseName(typed), Path: typed}, true
	default:
		return File{}, false
	}
}

// filesFrom returns the files of a multi-file value and whether value was a
// list at all.
func filesFrom(value any) ([]File, bool) {
	switch typed := value.(type) {
	case []File:
		return typed, true
	case []any:
		out := make([]File, 0, len(typed))
		for _, entry := range typed {
			if f, ok := fileFrom(entry); ok {
				out = append(out, f)
			}
		}
		return out, true
	case []string:
		out := make([]File, 0, len(typed))
		for _, entry := range typed {
			if f, ok := fileFrom(entry); ok {
				out = append(out, f)
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
