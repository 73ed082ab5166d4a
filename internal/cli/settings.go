package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-chanterelle/pkg/session"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Backend and display settings",
	}
	cmd.AddCommand(newSettingsGetCmd(app))
	cmd.AddCommand(newSettingsSetCmd(app))
	cmd.AddCommand(newSettingsBrowseCmd(app))
	cmd.AddCommand(newSettingsThemeCmd(app))
	return cmd
}

func newSettingsGetCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.client()
			if err != nil {
				return err
			}
			settings, err := b.GetSettings(cmd.Context())
			if err != nil {
				return err
			}
			dir := ""
			if settings != nil {
				dir = settings.ProjectsDirectory
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"projects_directory": dir,
					"theme":              app.cfg.Theme,
					"backend_url":        app.cfg.BackendURL,
					"config":             app.ConfigPath,
				})
			}
			if dir == "" {
				dir = mutedStyle.Render("(not set)")
			}
			return writeLines(cmd.OutOrStdout(), grid([]string{"Setting", "Value"}, [][]string{
				{"Projects directory", dir},
				{"Theme", app.cfg.Theme},
				{"Backend", app.cfg.BackendURL},
				{"Config file", app.ConfigPath},
			}))
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the settings as JSON")
	return cmd
}

func newSettingsSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <projects-directory>",
		Short: "Set the projects directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := strings.TrimSpace(args[0])
			if dir == "" {
				return fmt.Errorf("projects directory is required")
			}
			return app.setProjectsDirectory(cmd, dir)
		},
	}
	return cmd
}

func newSettingsBrowseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick the projects directory with the backend's folder dialog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.client()
			if err != nil {
				return err
			}
			dir, ok, err := b.OpenDirectoryDialog(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return writeLines(cmd.OutOrStdout(), "No directory selected.")
			}
			return app.setProjectsDirectory(cmd, dir)
		},
	}
	return cmd
}

func (app *App) setProjectsDirectory(cmd *cobra.Command, dir string) error {
	b, err := app.client()
	if err != nil {
		return err
	}
	if err := b.SetProjectsDirectory(cmd.Context(), dir); err != nil {
		return err
	}
	app.logger.Infof("projects directory set to %s", dir)
	return writeLines(cmd.OutOrStdout(), "Projects directory set to "+dir)
}

func newSettingsThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme <light|dark|system>",
		Short:     "Store the theme preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(session.PreferenceLight), string(session.PreferenceDark), string(session.PreferenceSystem)},
		RunE: func(cmd *cobra.Command, args []string) error {
			pref, err := session.ParsePreference(args[0])
			if err != nil {
				return err
			}
			if err := app.theme().Set(pref); err != nil {
				return err
			}
			app.cfg.Theme = string(pref)
			return writeLines(cmd.OutOrStdout(), "Theme set to "+string(pref))
		},
	}
	return cmd
}
