package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-chanterelle/internal/config"
	"github.com/goliatone/go-chanterelle/pkg/fileurl"
	"github.com/goliatone/go-chanterelle/pkg/insight"
	"github.com/goliatone/go-chanterelle/pkg/render"
	htmlrenderer "github.com/goliatone/go-chanterelle/pkg/renderers/html"
	"github.com/goliatone/go-chanterelle/pkg/renderers/terminal"
	"github.com/goliatone/go-chanterelle/pkg/session"
)

const formatTerminal = "terminal"

func newRenderCmd(app *App) *cobra.Command {
	var (
		format     string
		projectDir string
		selections []string
		toc        bool
		output     string
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a findings or results file (JSON or YAML)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			doc, err := insight.ParseDocument(data, path)
			if err != nil {
				return err
			}
			sel, err := render.ParseSelections(selections)
			if err != nil {
				return err
			}
			if projectDir == "" {
				projectDir = filepath.Dir(path)
			}
			if abs, err := filepath.Abs(projectDir); err == nil {
				projectDir = abs
			}

			heading := "Findings"
			if doc.ModelID != "" {
				heading = doc.ModelID + " findings"
			}
			return app.writeNodes(cmd.Context(), cmd.OutOrStdout(), output, format, doc.Content, render.RenderOptions{
				Selections: sel,
				ProjectDir: projectDir,
				TOC:        toc,
				Heading:    heading,
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTerminal, "Output format (terminal|html|json)")
	cmd.Flags().StringVar(&projectDir, "project-dir", "", "Base for relative image paths (default: the file's directory)")
	cmd.Flags().StringArrayVar(&selections, "select", nil, "Dropdown selection as sectionID:option (repeatable)")
	cmd.Flags().BoolVar(&toc, "toc", true, "Include the table of contents")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

// renderers builds the terminal renderer and a standalone HTML renderer.
// Image URLs in HTML point at the file route of the configured server.
func (app *App) renderers() (*render.Registry, error) {
	base := app.cfg.FilesBase
	if strings.HasPrefix(base, "/") {
		base = "http://" + app.cfg.Listen + base
	}
	html, err := htmlrenderer.New(
		htmlrenderer.WithDocument(),
		htmlrenderer.WithFileResolver(fileurl.Resolver{Base: base}),
	)
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(terminal.New(terminal.WithWidth(app.width())), html)
}

// theme is the persisted preference; changes are written back to the
// config file.
func (app *App) theme() *session.Theme {
	pref, err := session.ParsePreference(app.cfg.Theme)
	if err != nil {
		pref = session.PreferenceSystem
	}
	path := app.ConfigPath
	return session.NewTheme(pref, func(p session.Preference) error {
		return config.SaveTheme(path, p)
	})
}

func marshalNodes(nodes []insight.Node) ([]byte, error) {
	if nodes == nil {
		nodes = []insight.Node{}
	}
	out, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode results: %w", err)
	}
	return out, nil
}

func writeOutput(w io.Writer, path string, out []byte) error {
	if path == "" {
		if len(out) > 0 && out[len(out)-1] != '\n' {
			out = append(out, '\n')
		}
		_, err := w.Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
