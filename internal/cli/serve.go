package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-chanterelle/internal/config"
	"github.com/goliatone/go-chanterelle/internal/server"
	"github.com/goliatone/go-chanterelle/pkg/fileurl"
	"github.com/goliatone/go-chanterelle/pkg/session"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		listen       string
		templatesDir string
		watch        bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = app.cfg.Listen
			}
			b, err := app.client()
			if err != nil {
				return err
			}
			theme := app.theme()

			srv, err := server.New(server.Deps{
				Backend: b,
				Theme:   theme,
				Files:   fileurl.Resolver{Base: app.cfg.FilesBase},
			},
				server.WithLogLevel(app.cfg.Level()),
				server.WithLogOutput(cmd.ErrOrStderr()),
				server.WithTemplatesDir(templatesDir),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watch {
				if err := config.Watch(ctx, app.ConfigPath, app.reload(srv, theme)); err != nil {
					app.logger.Warnf("config watch disabled: %v", err)
				}
			}

			app.logger.Infof("serving on http://%s (backend %s)", listen, app.cfg.BackendURL)
			return srv.Run(ctx, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on (overrides listen)")
	cmd.Flags().StringVar(&templatesDir, "templates", "", "Directory of page templates that override the built-in ones")
	cmd.Flags().BoolVar(&watch, "watch-config", true, "Apply log level and theme edits to the config file while running")
	return cmd
}

// reload applies the settings that can change without a restart. The theme
// is only set when it differs, since setting it writes the file again.
func (app *App) reload(srv *server.Server, theme *session.Theme) func(config.Config, error) {
	return func(cfg config.Config, err error) {
		if err != nil {
			app.logger.Warnf("config reload: %v", err)
			return
		}
		srv.Logger().SetLevel(cfg.Level())
		app.logger.SetLevel(cfg.Level())

		pref, err := session.ParsePreference(cfg.Theme)
		if err != nil || pref == theme.Preference() {
			return
		}
		if err := theme.Set(pref); err != nil {
			app.logger.Warnf("config reload: %v", err)
			return
		}
		app.logger.Infof("theme changed to %s", pref)
	}
}
