package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-chanterelle/pkg/backend"
	"github.com/goliatone/go-chanterelle/pkg/form"
	"github.com/goliatone/go-chanterelle/pkg/model"
	"github.com/goliatone/go-chanterelle/pkg/render"
	"github.com/goliatone/go-chanterelle/pkg/session"
)

func (s *Server) catalog(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	data := map[string]any{"title": "Models", "query": query}

	list, err := s.deps.Backend.ListModels(c.Request().Context())
	if err != nil {
		c.Logger().Warnf("list models: %v", err)
		data["error"] = backend.Message(err)
		data["needs_settings"] = errors.Is(err, backend.ErrNoProjectsDirectory)
		return s.page(c, http.StatusOK, "catalog", data)
	}

	data["models"] = cardsView(model.FilterSummaries(list, query))
	data["total"] = len(list)
	return s.page(c, http.StatusOK, "catalog", data)
}

// loadModel fetches a project and makes it the active one. Switching
// projects, or returning to one whose warm-up never succeeded, starts a
// warm-up in the background.
func (s *Server) loadModel(c echo.Context) (string, *backend.ModelDetails, error) {
	project := c.Param("project")
	details, err := s.deps.Backend.GetModel(c.Request().Context(), project)
	if err != nil {
		return "", nil, backendError(err)
	}
	if details == nil {
		return "", nil, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("project %q not found", project))
	}

	previous, _ := s.deps.Workspace.Active()
	s.deps.Workspace.SetActive(project, details.ProjectPath)
	status := s.deps.Warmup.Status(project).State
	if previous != project || status == session.WarmupIdle || status == session.WarmupError {
		if s.deps.Warmup.Start(context.Background(), project) {
			c.Logger().Debugf("warming up %s", project)
		}
	}
	return project, details, nil
}

func (s *Server) modelView(c echo.Context, project string, details *backend.ModelDetails, tab string) (map[string]any, error) {
	view, err := modelCard(project, details, s.deps.Files, s.deps.Warmup.Status(project))
	if err != nil {
		return nil, err
	}
	view["tab"] = tab

	if tab == tabInsights && details.Findings != nil && len(details.Findings.Content) > 0 {
		selections, err := render.ParseSelections(c.QueryParams()["sel"])
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		out, err := s.insights.Render(c.Request().Context(), details.Findings.Content, render.RenderOptions{
			Selections: selections,
			ProjectDir: details.ProjectPath,
			Theme:      s.deps.Theme.RendererConfig(),
			TOC:        true,
		})
		if err != nil {
			return nil, err
		}
		view["findings_html"] = string(out)
	}
	return view, nil
}

func (s *Server) modelPage(c echo.Context) error {
	project, details, err := s.loadModel(c)
	if err != nil {
		return err
	}
	tab := normalizeTab(c.QueryParam("tab"))
	view, err := s.modelView(c, project, details, tab)
	if err != nil {
		return err
	}
	view["form"] = buildFormView(form.NewState(details.Model), nil, nil)
	return s.page(c, http.StatusOK, "model", view)
}

// bindValues copies posted values into state. Unchecked checkboxes are
// absent from the post and read as false; file inputs take comma separated
// paths.
func bindValues(c echo.Context, state *form.State) (map[string]string, error) {
	params, err := c.FormParams()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form body").SetInternal(err)
	}
	meta := state.Meta()
	for _, input := range meta.Inputs {
		raw, present := params[input.Name]
		switch input.Type {
		case model.InputBoolean:
			state.Set(input.Name, present && len(raw) > 0 && raw[0] != "" && raw[0] != "false")
		case model.InputFile:
			state.Set(input.Name, filePaths(strings.Join(raw, ","), state.Constraints(input.Name).AllowsMultiple()))
		default:
			if present && len(raw) > 0 {
				state.Set(input.Name, raw[0])
			}
		}
	}

	presets := map[string]string{}
	for _, preset := range meta.InputPresets {
		if value := params.Get("preset_" + preset.InputPreset); value != "" {
			presets[preset.InputPreset] = value
		}
	}
	return presets, nil
}

func filePaths(raw string, multiple bool) any {
	var paths []any
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			paths = append(paths, p)
		}
	}
	switch {
	case len(paths) == 0:
		return nil
	case multiple:
		return paths
	default:
		return paths[0]
	}
}

func (s *Server) predict(c echo.Context) error {
	project, details, err := s.loadModel(c)
	if err != nil {
		return err
	}
	meta := details.Model
	state := form.NewState(meta)
	presets, err := bindValues(c, state)
	if err != nil {
		return err
	}
	view, err := s.modelView(c, project, details, tabForm)
	if err != nil {
		return err
	}

	action := c.FormValue("action")
	switch {
	case strings.HasPrefix(action, "preset:"):
		name := strings.TrimPrefix(action, "preset:")
		if entry := presets[name]; entry != "" {
			if err := state.ApplyPreset(name, entry); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
			}
		}
		view["form"] = buildFormView(state, presets, nil)
		return s.page(c, http.StatusOK, "model", view)

	case action == "" || action == "predict":
		nodes, err := form.Submit(c.Request().Context(), s.deps.Backend, project, meta, state.Values())
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			view["form"] = buildFormView(state, presets, verr.Messages)
			return s.page(c, http.StatusUnprocessableEntity, "model", view)
		}
		if err != nil {
			return err
		}
		view["form"] = buildFormView(state, presets, nil)
		view["has_results"] = true
		if len(nodes) > 0 {
			out, err := s.insights.Render(c.Request().Context(), nodes, render.RenderOptions{
				ProjectDir: details.ProjectPath,
				Theme:      s.deps.Theme.RendererConfig(),
			})
			if err != nil {
				return err
			}
			view["results_html"] = string(out)
		}
		return s.page(c, http.StatusOK, "model", view)

	default:
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unknown action %q", action))
	}
}

func (s *Server) warmupStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, s.deps.Warmup.Status(c.Param("project")))
}

func (s *Server) warmup(c echo.Context) error {
	project := c.Param("project")
	started := s.deps.Warmup.Start(context.Background(), project)
	return c.JSON(http.StatusAccepted, map[string]any{
		"started": started,
		"status":  s.deps.Warmup.Status(project),
	})
}

func (s *Server) schema(c echo.Context) error {
	details, err := s.deps.Backend.GetModel(c.Request().Context(), c.Param("project"))
	if err != nil {
		return backendError(err)
	}
	if details == nil {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	return c.JSON(http.StatusOK, model.InputSchema(details.Model))
}
