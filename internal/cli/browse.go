package cli

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/craftlens/craftlens/pkg/pipeline"
)

// browseCommand creates the browse command for interactive entity selection.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		output string
		locale string
		data   dataOpts
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick an entity interactively and build its diagram",
		Long: `Pick an entity interactively and build its diagram.

Opens a scrollable list of every entity in the dataset. Selecting one builds
its diagram payload, exactly as 'build <entity>' would.

Examples:
  craftlens browse
  craftlens browse --locale de -o diagram.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), output, locale, &data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "payload output file (stdout if empty)")
	cmd.Flags().StringVar(&locale, "locale", "", "translate labels using this locale table")
	data.register(cmd)

	return cmd
}

// runBrowse shows the picker and builds the selected entity's diagram.
func (c *CLI) runBrowse(ctx context.Context, output, locale string, data *dataOpts) error {
	runner, closer, err := c.newRunner(ctx, data)
	if err != nil {
		return err
	}
	defer closer()

	lookup := runner.Lookup()
	rows := make([]entityRow, 0, len(lookup))
	for _, name := range runner.Entities() {
		rec := lookup[name]
		rows = append(rows, entityRow{
			Name:      rec.Name,
			NodeType:  rec.NodeType,
			Rarity:    rec.Rarity,
			Relations: len(rec.Relations),
		})
	}
	if len(rows) == 0 {
		printWarning("Dataset contains no entities")
		return nil
	}

	program := tea.NewProgram(NewEntityListModel(rows), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("picker: %w", err)
	}

	model, ok := final.(EntityListModel)
	if !ok || model.Selected == "" {
		printInfo("No entity selected")
		return nil
	}

	result, err := runner.Execute(ctx, pipeline.Options{
		Focal:  model.Selected,
		Locale: locale,
	})
	if err != nil {
		return err
	}

	if err := writePayload(result.Payload, output); err != nil {
		return err
	}

	printSuccess("Diagram for %s", model.Selected)
	if !result.CacheHit {
		printKeyValue("nodes", strconv.Itoa(result.Stats.NodeCount))
		printKeyValue("edges", strconv.Itoa(result.Stats.EdgeCount))
	}
	if output != "" {
		printFile(output)
	}
	return nil
}
