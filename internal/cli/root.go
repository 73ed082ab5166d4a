// Package cli is the chanterelle command line: the web server, catalog
// browsing, predictions and report rendering in the terminal.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-chanterelle/internal/config"
	"github.com/goliatone/go-chanterelle/pkg/backend"
	"github.com/goliatone/go-chanterelle/pkg/backend/httpclient"
	"github.com/goliatone/go-chanterelle/pkg/renderers/tui"
)

// App holds what every command shares once the configuration is loaded.
type App struct {
	ConfigPath string
	BackendURL string
	LogLevel   string
	Width      int

	cfg     config.Config
	logger  *log.Logger
	backend backend.Backend
	prompts tui.PromptDriver
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", backend.Message(err))
		return 1
	}
	return 0
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chanterelle",
		Short:         "Browse, explain and run local ML models",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Serve the web interface
  chanterelle serve

  # List the models in the projects directory
  chanterelle models list --query churn

  # Run a prediction, prompting for every input
  chanterelle predict churn --interactive

  # Render a findings file in the terminal
  chanterelle render ./findings.yaml --project-dir ./churn
`),
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.load(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (default: $CHANTERELLE_CONFIG or the user config dir)")
	cmd.PersistentFlags().StringVar(&app.BackendURL, "backend", "", "Backend base URL (overrides backend_url)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error|off)")
	cmd.PersistentFlags().IntVar(&app.Width, "width", 0, "Terminal width for rendered output (default: $COLUMNS or 100)")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newModelsCmd(app))
	cmd.AddCommand(newPredictCmd(app))
	cmd.AddCommand(newRenderCmd(app))
	cmd.AddCommand(newSettingsCmd(app))
	return cmd
}

// load applies the precedence defaults < file < environment < flags.
func (app *App) load(cmd *cobra.Command) error {
	if app.ConfigPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		app.ConfigPath = p
	}
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	if app.BackendURL != "" {
		cfg.BackendURL = app.BackendURL
	}
	if app.LogLevel != "" {
		cfg.LogLevel = app.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.cfg = cfg

	app.logger = log.New("chanterelle")
	app.logger.SetOutput(cmd.ErrOrStderr())
	app.logger.SetLevel(cfg.Level())
	app.logger.Debugf("config %s, backend %s", app.ConfigPath, cfg.BackendURL)
	return nil
}

// client returns the backend, dialing the configured URL on first use.
func (app *App) client() (backend.Backend, error) {
	if app.backend != nil {
		return app.backend, nil
	}
	c, err := httpclient.New(app.cfg.BackendURL)
	if err != nil {
		return nil, err
	}
	app.backend = c
	return c, nil
}

func (app *App) width() int {
	if app.Width > 0 {
		return app.Width
	}
	if cols := os.Getenv("COLUMNS"); cols != "" {
		var n int
		if _, err := fmt.Sscanf(cols, "%d", &n); err == nil && n > 0 {
			return n
		}
	}
	return 100
}
