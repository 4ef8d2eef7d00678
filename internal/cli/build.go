package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/craftlens/craftlens/pkg/diagram"
	"github.com/craftlens/craftlens/pkg/pipeline"
	"github.com/craftlens/craftlens/pkg/relation"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	relations string // CSV of visible relation categories
	locale    string // translation table name
	output    string // output file path (stdout if empty)
	refresh   bool   // bypass the cache
	layout    diagram.Config
}

// buildCommand creates the build command for one-shot payload generation.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		opts buildOpts
		data dataOpts
	)

	cmd := &cobra.Command{
		Use:   "build <entity>",
		Short: "Build the diagram payload for one entity",
		Long: `Build the diagram payload for one entity and print it as JSON.

The payload is the same drawing-library element list the HTTP API serves.

The --relations flag filters visible relation categories. Passing it empty
("--relations=") hides every relation and renders the entity alone; omitting
it shows all relations.

Examples:
  craftlens build "Power Rod"
  craftlens build "Power Rod" --relations craft,recycle -o rod.json
  craftlens build "Power Rod" --locale de --relations=`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := parseCategories(opts.relations, cmd.Flags().Changed("relations"))
			return c.runBuild(cmd.Context(), args[0], sel, &opts, &data)
		},
	}

	cmd.Flags().StringVar(&opts.relations, "relations", "", "visible relation categories (CSV; empty hides all)")
	cmd.Flags().StringVar(&opts.locale, "locale", "", "translate labels using this locale table")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().Float64Var(&opts.layout.SpacingY, "spacing-y", 0, "vertical spacing between stacked nodes (0 = default)")
	cmd.Flags().Float64Var(&opts.layout.SideOffset, "side-offset", 0, "horizontal distance of side columns (0 = default)")
	cmd.Flags().Float64Var(&opts.layout.Curvature, "curvature", 0, "edge curvature magnitude (0 = default)")
	data.register(cmd)

	return cmd
}

// runBuild executes the pipeline once and writes the payload.
func (c *CLI) runBuild(ctx context.Context, focal string, sel relation.Selection, opts *buildOpts, data *dataOpts) error {
	runner, closer, err := c.newRunner(ctx, data)
	if err != nil {
		return err
	}
	defer closer()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building diagram for %s...", focal))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Focal:     focal,
		Selection: sel,
		Locale:    opts.locale,
		Layout:    opts.layout,
		Refresh:   opts.refresh,
	})
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	if err := writePayload(result.Payload, opts.output); err != nil {
		return err
	}

	if result.CacheHit {
		printSuccess("Diagram for %s (cached)", focal)
	} else {
		printSuccess("Diagram for %s", focal)
		printKeyValue("nodes", strconv.Itoa(result.Stats.NodeCount))
		printKeyValue("edges", strconv.Itoa(result.Stats.EdgeCount))
		printKeyValue("build time", result.Stats.BuildTime.String())
	}
	if opts.output != "" {
		printFile(opts.output)
	}
	return nil
}

// writePayload writes the payload to a file, or stdout when path is empty.
func writePayload(payload []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(append(payload, '\n'))
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}
