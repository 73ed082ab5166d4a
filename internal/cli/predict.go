package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-chanterelle/pkg/form"
	"github.com/goliatone/go-chanterelle/pkg/insight"
	"github.com/goliatone/go-chanterelle/pkg/model"
	"github.com/goliatone/go-chanterelle/pkg/render"
	"github.com/goliatone/go-chanterelle/pkg/renderers/tui"
)

const formatJSON = "json"

func newPredictCmd(app *App) *cobra.Command {
	var (
		inputs      []string
		presets     []string
		interactive bool
		format      string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "predict <project>",
		Short: "Run a model and render its results",
		Example: strings.TrimSpace(`
  chanterelle predict churn --input segment=retail --input tenure=12 --input active=true
  chanterelle predict churn --preset profile=loyal --input segment=retail
  chanterelle predict churn --interactive --format html --output result.html
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project := args[0]
			ctx := cmd.Context()
			details, err := app.model(ctx, project)
			if err != nil {
				return err
			}
			meta := details.Model

			state := form.NewState(meta)
			if err := applyPresets(state, presets); err != nil {
				return err
			}
			if err := applyInputs(state, inputs); err != nil {
				return err
			}
			values := state.Values()

			if interactive {
				filler := tui.New(tui.WithPromptDriver(app.prompts), tui.WithOutput(cmd.ErrOrStderr()))
				values, err = filler.Fill(ctx, meta, values)
				if err != nil {
					return err
				}
			}

			b, err := app.client()
			if err != nil {
				return err
			}
			nodes, err := form.Submit(ctx, b, project, meta, values)
			var verr *form.ValidationError
			if errors.As(err, &verr) {
				for _, msg := range verr.Messages {
					fmt.Fprintln(cmd.ErrOrStderr(), "  -", msg)
				}
				return fmt.Errorf("%d input(s) need attention", len(verr.Messages))
			}
			if err != nil {
				return err
			}

			return app.writeNodes(ctx, cmd.OutOrStdout(), output, format, nodes, render.RenderOptions{
				ProjectDir: details.ProjectPath,
				Heading:    meta.ModelName,
			})
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "Input value as name=value (repeatable; files take comma separated paths)")
	cmd.Flags().StringArrayVar(&presets, "preset", nil, "Apply a preset as preset=entry before inputs (repeatable)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Prompt for every input, seeded with the flag values")
	cmd.Flags().StringVarP(&format, "format", "f", formatTerminal, "Output format (terminal|html|json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func splitPair(raw, flag string) (string, string, error) {
	name, value, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("--%s %q must look like name=value", flag, raw)
	}
	return name, value, nil
}

func applyPresets(state *form.State, pairs []string) error {
	for _, pair := range pairs {
		name, entry, err := splitPair(pair, "preset")
		if err != nil {
			return err
		}
		if err := state.ApplyPreset(name, strings.TrimSpace(entry)); err != nil {
			return err
		}
	}
	return nil
}

// applyInputs converts flag text into the value shapes the form holds:
// booleans parse, file inputs split on commas, everything else stays text.
func applyInputs(state *form.State, pairs []string) error {
	meta := state.Meta()
	for _, pair := range pairs {
		name, raw, err := splitPair(pair, "input")
		if err != nil {
			return err
		}
		input, ok := meta.Input(name)
		if !ok {
			return fmt.Errorf("unknown input %q", name)
		}
		switch input.Type {
		case model.InputBoolean:
			v, err := strconv.ParseBool(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("input %q: %q is not a boolean", name, raw)
			}
			state.Set(name, v)
		case model.InputFile:
			var paths []any
			for _, part := range strings.Split(raw, ",") {
				if p := strings.TrimSpace(part); p != "" {
					paths = append(paths, p)
				}
			}
			switch {
			case len(paths) == 0:
				state.Set(name, nil)
			case state.Constraints(name).AllowsMultiple():
				state.Set(name, paths)
			default:
				state.Set(name, paths[0])
			}
		default:
			state.Set(name, raw)
		}
	}
	return nil
}

// writeNodes renders nodes in format and writes them to path, or w when
// path is empty.
func (app *App) writeNodes(ctx context.Context, w io.Writer, path, format string, nodes []insight.Node, opts render.RenderOptions) error {
	var out []byte
	if strings.EqualFold(strings.TrimSpace(format), formatJSON) {
		var err error
		out, err = marshalNodes(nodes)
		if err != nil {
			return err
		}
	} else {
		registry, err := app.renderers()
		if err != nil {
			return err
		}
		renderer, err := registry.Get(format)
		if err != nil {
			return err
		}
		opts.Theme = app.theme().RendererConfig()
		out, err = renderer.Render(ctx, nodes, opts)
		if err != nil {
			return err
		}
	}
	return writeOutput(w, path, out)
}
