package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/layout"
	"github.com/matzehuels/colgraph/pkg/pipeline"
)

// visualizeCommand creates the visualize command for drawing a saved layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formats string
		output  string
		noCache bool
		config  string
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Draw a layout computed by 'layout'",
		Long: `Draw a layout computed by 'layout' (or 'render -f json').

The layout already holds every position, so no traversal happens here. The
style file only changes colors, stroke widths and fonts.

Use 'render' as a shortcut to go directly from graph.json to a drawing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = pipeline.ParseFormats(formats)
			opts.StylePath = config
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&config, "config", "c", "", "style file (.toml, .yaml)")
	cmd.Flags().StringVar(&opts.Engine, "engine", pipeline.DefaultEngine, "drawing engine: native (default), graphviz")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&opts.EmbedFont, "embed-font", false, "embed the label font in SVG output")
	cmd.Flags().StringVar(&opts.Title, "title", "", "SVG document title")

	return cmd
}

// runVisualize loads the layout and draws it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	l, err := readLayoutFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Drawing %s...", input))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Drawing failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	printSuccess("Drawing complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(pipeline.Stats{
		VertexCount: len(l.Vertices),
		EdgeCount:   len(l.Edges),
		ColumnCount: len(l.Columns),
		PlacedCount: len(l.Vertices),
	}, cacheHit)
	return nil
}

// readLayoutFile reads a layout JSON file.
func readLayoutFile(path string) (layout.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return layout.Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return layout.Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	l, err := layout.UnmarshalLayout(data)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("load layout %s: %w", path, err)
	}
	return l, nil
}
