package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-chanterelle/internal/markdown"
	"github.com/goliatone/go-chanterelle/pkg/backend"
	"github.com/goliatone/go-chanterelle/pkg/model"
	"github.com/goliatone/go-chanterelle/pkg/session"
)

func newModelsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Model catalog commands",
	}
	cmd.AddCommand(newModelsListCmd(app))
	cmd.AddCommand(newModelsShowCmd(app))
	cmd.AddCommand(newModelsSchemaCmd(app))
	return cmd
}

func newModelsListCmd(app *App) *cobra.Command {
	var query string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the models in the projects directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.client()
			if err != nil {
				return err
			}
			list, err := b.ListModels(cmd.Context())
			if err != nil {
				return err
			}
			list = model.FilterSummaries(list, query)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			if len(list) == 0 {
				if query != "" {
					return writeLines(cmd.OutOrStdout(), fmt.Sprintf("No models match %q.", query))
				}
				return writeLines(cmd.OutOrStdout(), "No models found in the projects directory.")
			}

			rows := make([][]string, 0, len(list))
			for _, summary := range list {
				name := summary.ModelName
				if name == "" {
					name = summary.ProjectName
				}
				rows = append(rows, []string{summary.ProjectName, name, summary.Blurb(), tagLine(summary.Tags)})
			}
			return writeLines(cmd.OutOrStdout(), grid([]string{"Project", "Model", "Description", "Tags"}, rows))
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Keep models whose name, description or tags contain this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}

func newModelsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <project>",
		Short: "Show a model card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := app.model(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			meta := details.Model

			title := meta.ModelName
			if title == "" {
				title = args[0]
			}
			if meta.ModelVersion != "" {
				title += " " + mutedStyle.Render("v"+meta.ModelVersion)
			}

			pref, _ := session.ParsePreference(app.cfg.Theme)
			description := markdown.Terminal(meta.Description, app.width(), markdown.StyleFor(pref))

			var inputs [][]string
			for _, input := range meta.Inputs {
				required := ""
				if input.Required {
					required = "yes"
				}
				inputs = append(inputs, []string{input.DisplayLabel(), string(input.Type), input.Unit, required, model.ConstraintSummary(input)})
			}
			var outputs [][]string
			for _, output := range meta.Outputs {
				label := output.Label
				if label == "" {
					label = output.Name
				}
				outputs = append(outputs, []string{label, output.Type, output.Unit, model.OutputRange(output)})
			}

			blocks := []string{heading(title), description}
			if tags := tagLine(meta.Tags); tags != "" {
				blocks = append(blocks, mutedStyle.Render(tags))
			}
			if len(inputs) > 0 {
				blocks = append(blocks, heading("Inputs"), grid([]string{"Input", "Type", "Unit", "Required", "Constraints"}, inputs))
			}
			if len(outputs) > 0 {
				blocks = append(blocks, heading("Outputs"), grid([]string{"Output", "Type", "Unit", "Range"}, outputs))
			}
			return writeLines(cmd.OutOrStdout(), blocks...)
		},
	}
	return cmd
}

func newModelsSchemaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema <project>",
		Short: "Print the input schema of a model as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := app.model(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), model.InputSchema(details.Model))
		},
	}
	return cmd
}

func (app *App) model(ctx context.Context, project string) (*backend.ModelDetails, error) {
	b, err := app.client()
	if err != nil {
		return nil, err
	}
	details, err := b.GetModel(ctx, project)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, fmt.Errorf("project %q not found", project)
	}
	return details, nil
}
