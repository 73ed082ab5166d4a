package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-chanterelle/pkg/backend"
	"github.com/goliatone/go-chanterelle/pkg/session"
)

func (s *Server) settingsView(c echo.Context) map[string]any {
	data := map[string]any{
		"title":  "Settings",
		"saved":  c.QueryParam("saved") != "",
		"themes": []string{string(session.PreferenceLight), string(session.PreferenceDark), string(session.PreferenceSystem)},
	}
	settings, err := s.deps.Backend.GetSettings(c.Request().Context())
	if err != nil {
		c.Logger().Warnf("get settings: %v", err)
		data["error"] = backend.Message(err)
		return data
	}
	if settings != nil {
		data["projects_directory"] = settings.ProjectsDirectory
	}
	return data
}

func (s *Server) settings(c echo.Context) error {
	return s.page(c, http.StatusOK, "settings", s.settingsView(c))
}

func (s *Server) saveSettings(c echo.Context) error {
	dir := strings.TrimSpace(c.FormValue("projects_directory"))
	if dir == "" {
		data := s.settingsView(c)
		data["error"] = "Projects directory is required."
		return s.page(c, http.StatusBadRequest, "settings", data)
	}
	return s.applyProjectsDirectory(c, dir)
}

func (s *Server) browse(c echo.Context) error {
	dir, ok, err := s.deps.Backend.OpenDirectoryDialog(c.Request().Context())
	if err != nil {
		return backendError(err)
	}
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/settings")
	}
	return s.applyProjectsDirectory(c, dir)
}

// applyProjectsDirectory stores dir and forgets the active project, which
// belonged to the previous directory.
func (s *Server) applyProjectsDirectory(c echo.Context, dir string) error {
	if err := s.deps.Backend.SetProjectsDirectory(c.Request().Context(), dir); err != nil {
		c.Logger().Warnf("set projects directory: %v", err)
		data := s.settingsView(c)
		data["error"] = backend.Message(err)
		return s.page(c, http.StatusBadGateway, "settings", data)
	}
	s.deps.Workspace.Clear()
	return c.Redirect(http.StatusSeeOther, "/settings?saved=1")
}

// setTheme stores an explicit preference or, for "toggle", flips the one
// the client resolved.
func (s *Server) setTheme(c echo.Context) error {
	raw := strings.TrimSpace(c.FormValue("theme"))
	if raw == "" || raw == "toggle" {
		resolved, err := session.ParsePreference(c.FormValue("resolved"))
		if err != nil {
			resolved = session.PreferenceLight
		}
		if _, err := s.deps.Theme.Toggle(resolved); err != nil {
			return err
		}
	} else {
		pref, err := session.ParsePreference(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if err := s.deps.Theme.Set(pref); err != nil {
			return err
		}
	}
	return c.Redirect(http.StatusSeeOther, safeReturn(c.FormValue("return"), "/settings"))
}

// safeReturn only follows local paths.
func safeReturn(target, fallback string) string {
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") && !strings.HasPrefix(target, "/\\") {
		return target
	}
	return fallback
}
