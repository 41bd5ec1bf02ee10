package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/layout"
	"github.com/matzehuels/colgraph/pkg/pipeline"
)

// layoutCommand creates the layout command for computing layouts only.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		flags   styleFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute the column layout of a graph",
		Long: `Compute the column layout of a graph.

The output is a layout.json file (same format as 'render -f json') holding the
columns, the canvas size and every vertex and edge shape. It can be drawn with
the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateGraphPath(args[0]); err != nil {
				return err
			}
			var opts pipeline.Options
			flags.apply(cmd, &opts)
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, err := runner.LoadFile(ctx, input)
	if err != nil {
		return err
	}

	opts.Logger = c.Logger
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := layout.MarshalLayout(l)
	if err != nil {
		return err
	}
	path := outputPath(output, input, pipeline.FormatJSON, true)
	if err := writeFile(path, data); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats(pipeline.Stats{
		VertexCount: g.VertexCount(),
		EdgeCount:   g.EdgeCount(),
		ColumnCount: len(l.Columns),
		PlacedCount: len(l.Vertices),
	}, cacheHit)
	printNewline()
	printNextStep("Draw", appName+" visualize "+path)

	return nil
}
