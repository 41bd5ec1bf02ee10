package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/pipeline"
	"github.com/matzehuels/colgraph/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output file (single format) or base path (multiple)
	formats    string // comma-separated output formats
	noCache    bool   // bypass the local cache
	style      styleFlags
	pipeline   pipeline.Options
	showTiming bool
}

// renderCommand creates the render command: graph.json → drawing files.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Draw a graph to SVG, PNG, PDF, layout JSON or DOT",
		Long: `Draw a graph to one or more output formats.

The graph is traversed breadth-first from its lowest vertex id; every
reachable vertex is placed in the column of its distance from that root.
Unreachable vertices are left out.

Formats:
  svg   native vector drawing (default)
  png   native raster drawing
  pdf   SVG converted with rsvg-convert
  json  the computed layout
  dot   Graphviz DOT with pinned positions

With --engine graphviz, svg/png/pdf are drawn by Graphviz from the DOT export.

Results are cached locally for faster subsequent runs.`,
		Example: `  colgraph render graph.json
  colgraph render graph.json -f svg,png -o out/graph
  colgraph render graph.json --layered --filter red,green
  colgraph render graph.json --engine graphviz -f pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateGraphPath(args[0]); err != nil {
				return err
			}
			opts.pipeline.Formats = pipeline.ParseFormats(opts.formats)
			opts.style.apply(cmd, &opts.pipeline)
			if err := opts.pipeline.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.pipeline.Engine, "engine", pipeline.DefaultEngine, "drawing engine: native (default), graphviz")
	cmd.Flags().Float64Var(&opts.pipeline.Scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&opts.pipeline.EmbedFont, "embed-font", false, "embed the label font in SVG output")
	cmd.Flags().BoolVar(&opts.pipeline.HideLabels, "hide-labels", false, "omit edge labels (graphviz, dot)")
	cmd.Flags().StringVar(&opts.pipeline.Title, "title", "", "SVG document title")
	cmd.Flags().BoolVar(&opts.showTiming, "timing", false, "print stage timings")
	opts.style.register(cmd)

	return cmd
}

// runRender loads the graph, runs the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	if needsConverter(opts.pipeline) && !render.ConverterAvailable() {
		printWarning("rsvg-convert not found; pdf output will fail")
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.pipeline.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	result, err := runner.ExecuteFile(ctx, input, opts.pipeline)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.pipeline.Formats,
		input:     input,
		output:    opts.output,
	})
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo.RenderHit)
	if unreached := result.Stats.VertexCount - result.Stats.PlacedCount; unreached > 0 {
		printWarning("%d unreachable vertices left out", unreached)
	}
	if opts.showTiming {
		printKeyValue("load", result.Stats.LoadTime.String())
		printKeyValue("layout", result.Stats.LayoutTime.String())
		printKeyValue("render", result.Stats.RenderTime.String())
	}
	prog.done(fmt.Sprintf("Rendered %s", input))
	return nil
}

// needsConverter reports whether any requested format goes through rsvg-convert.
func needsConverter(opts pipeline.Options) bool {
	for _, f := range opts.Formats {
		if f == pipeline.FormatPDF || (f == pipeline.FormatPNG && opts.IsGraphviz()) {
			return true
		}
	}
	return false
}
