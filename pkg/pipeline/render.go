package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/colgraph/pkg/layout"
	"github.com/matzehuels/colgraph/pkg/render"
	"github.com/matzehuels/colgraph/pkg/render/nodelink"
	"github.com/matzehuels/colgraph/pkg/render/raster"
	"github.com/matzehuels/colgraph/pkg/render/svg"
	"github.com/matzehuels/colgraph/pkg/style"
)

// Render generates output artifacts in the requested formats.
// No cache is consulted.
func Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	st, err := opts.ResolveStyle()
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		switch format {
		case FormatJSON:
			data, err = layout.MarshalLayout(l)
		case FormatDOT:
			var dot string
			dot, err = nodelink.ToDOT(l, st, opts.dotOptions())
			data = []byte(dot)
		default:
			if opts.IsGraphviz() {
				data, err = renderGraphviz(ctx, l, st, format, opts)
			} else {
				data, err = renderNative(l, st, format, opts)
			}
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNative draws with the built-in SVG and raster surfaces.
func renderNative(l layout.Layout, st style.Style, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svg.Render(l, st, opts.svgOptions()...)
	case FormatPNG:
		return raster.Render(l, st, opts.Scale)
	case FormatPDF:
		// rsvg needs the glyphs inline to match the measured label widths.
		doc, err := svg.Render(l, st, append(opts.svgOptions(), svg.WithEmbeddedFont())...)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(doc)
	default:
		return nil, fmt.Errorf("unsupported native format: %s", format)
	}
}

// renderGraphviz draws the pinned DOT export with Graphviz.
func renderGraphviz(ctx context.Context, l layout.Layout, st style.Style, format string, opts Options) ([]byte, error) {
	dot, err := nodelink.ToDOT(l, st, opts.dotOptions())
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.Scale)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported graphviz format: %s", format)
	}
}

func (o *Options) svgOptions() []svg.Option {
	var out []svg.Option
	if o.EmbedFont {
		out = append(out, svg.WithEmbeddedFont())
	}
	if o.Title != "" {
		out = append(out, svg.WithTitle(o.Title))
	}
	return out
}

func (o *Options) dotOptions() nodelink.Options {
	return nodelink.Options{HideEdgeLabels: o.HideLabels}
}
