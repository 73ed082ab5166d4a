package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

// files serves report images. Only paths inside the active project or the
// configured projects directory are readable.
func (s *Server) files(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("path"))
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}
	target := filepath.Clean(filepath.FromSlash(raw))
	if !filepath.IsAbs(target) {
		return echo.NewHTTPError(http.StatusBadRequest, "path must be absolute")
	}

	roots := []string{s.deps.Workspace.ProjectDir()}
	if settings, err := s.deps.Backend.GetSettings(c.Request().Context()); err == nil && settings != nil {
		roots = append(roots, settings.ProjectsDirectory)
	}
	if !withinAny(target, roots) {
		return echo.NewHTTPError(http.StatusForbidden, "path is outside the projects directory")
	}

	// Symlinks may point anywhere, so the check is repeated on real paths.
	resolved, err := filepath.EvalSymlinks(target)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "file not found")
	}
	if !withinAny(resolved, resolveRoots(roots)) {
		return echo.NewHTTPError(http.StatusForbidden, "path is outside the projects directory")
	}

	info, err := os.Stat(resolved)
	if err != nil || info.IsDir() {
		return echo.NewHTTPError(http.StatusNotFound, "file not found")
	}
	return c.File(resolved)
}

func resolveRoots(roots []string) []string {
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		if root == "" {
			continue
		}
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			out = append(out, resolved)
		}
	}
	return out
}

func withinAny(target string, roots []string) bool {
	for _, root := range roots {
		if root == "" {
			continue
		}
		rel, err := filepath.Rel(filepath.Clean(root), target)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
