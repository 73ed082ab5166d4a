// Package fileurl converts file references found in insight payloads into
// URLs the browser can load.
package fileurl

import (
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultBase is the file-serving route of the web application.
const DefaultBase = "/files?path="

var windowsDrive = regexp.MustCompile(`^[A-Za-z]:[\\/]`)

// Resolver maps local paths onto Base.
type Resolver struct {
	// Base is prefixed to the query-escaped path. Empty means DefaultBase.
	Base string
}

// Resolve returns a displayable source for ref. http and https URLs pass
// through. file:// URLs are decoded and stripped. Windows drive paths and
// absolute POSIX paths are used directly; anything else is joined to
// projectDir.
func (r Resolver) Resolve(ref, projectDir string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return r.base() + url.QueryEscape(LocalPath(ref, projectDir))
}

// LocalPath resolves ref to a filesystem path without building a URL.
func LocalPath(ref, projectDir string) string {
	if strings.HasPrefix(ref, "file://") {
		decoded, err := url.PathUnescape(ref)
		if err != nil {
			decoded = ref
		}
		stripped := strings.TrimPrefix(decoded, "file://")
		if windowsDrive.MatchString(strings.TrimPrefix(stripped, "/")) {
			stripped = strings.TrimPrefix(stripped, "/")
		}
		return stripped
	}
	if windowsDrive.MatchString(ref) || strings.HasPrefix(ref, "/") {
		return ref
	}
	if projectDir == "" {
		return ref
	}
	if windowsDrive.MatchString(projectDir) || strings.Contains(projectDir, `\`) {
		sep := `\`
		if strings.HasSuffix(projectDir, `\`) || strings.HasSuffix(projectDir, "/") {
			sep = ""
		}
		return projectDir + sep + strings.ReplaceAll(ref, "/", `\`)
	}
	return path.Join(projectDir, filepath.ToSlash(ref))
}

func (r Resolver) base() string {
	if r.Base == "" {
		return DefaultBase
	}
	return r.Base
}
