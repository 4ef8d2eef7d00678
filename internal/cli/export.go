package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/craftlens/craftlens/pkg/errors"
	"github.com/craftlens/craftlens/pkg/pipeline"
	"github.com/craftlens/craftlens/pkg/relation"
	"github.com/craftlens/craftlens/pkg/render/dot"
)

// Export formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	format    string
	relations string
	locale    string
	output    string
}

// exportCommand creates the export command for static diagram output.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		opts exportOpts
		data dataOpts
	)

	cmd := &cobra.Command{
		Use:   "export <entity>",
		Short: "Export a static diagram as DOT, SVG, or PNG",
		Long: `Export a static diagram as DOT, SVG, or PNG.

Unlike build, which emits the interactive drawing-library payload, export
produces a self-contained Graphviz rendering with inputs flowing into the
entity from the left and outputs fanning out to the right.

Examples:
  craftlens export "Power Rod"
  craftlens export "Power Rod" -f png -o rod.png
  craftlens export "Power Rod" --relations craft -f dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			sel := parseCategories(opts.relations, cmd.Flags().Changed("relations"))
			return c.runExport(cmd.Context(), args[0], sel, &opts, &data)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatSVG, "output format: dot, svg, png")
	cmd.Flags().StringVar(&opts.relations, "relations", "", "visible relation categories (CSV; empty hides all)")
	cmd.Flags().StringVar(&opts.locale, "locale", "", "translate labels using this locale table")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <entity>.<format>)")
	data.register(cmd)

	return cmd
}

// validateFormat checks the export format flag.
func validateFormat(format string) error {
	switch format {
	case FormatDOT, FormatSVG, FormatPNG:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want dot, svg, or png)", format)
}

// runExport builds the graph and renders it in the requested format.
// The build always bypasses the payload cache: export needs the graph
// structure, which a cached run does not carry.
func (c *CLI) runExport(ctx context.Context, focal string, sel relation.Selection, opts *exportOpts, data *dataOpts) error {
	runner, closer, err := c.newRunner(ctx, data)
	if err != nil {
		return err
	}
	defer closer()

	prog := newProgress(loggerFromContext(ctx))

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exporting %s...", focal))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Focal:     focal,
		Selection: sel,
		Locale:    opts.locale,
		Refresh:   true,
	})
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}

	src := dot.ToDOT(result.Graph)

	var out []byte
	switch opts.format {
	case FormatDOT:
		out = []byte(src)
	case FormatSVG:
		out, err = dot.RenderSVG(ctx, src)
	case FormatPNG:
		out, err = dot.RenderPNG(ctx, src)
	}
	if err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.Stop()

	path := opts.output
	if path == "" {
		path = safeFileName(focal) + "." + opts.format
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	prog.done("Exported " + focal)

	printSuccess("Exported %s", focal)
	printFile(path)
	return nil
}

// safeFileName makes an entity name usable as a file name.
func safeFileName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}
