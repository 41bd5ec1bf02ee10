// Package pipeline provides the load → layout → render pipeline of colgraph.
//
// The CLI, the interactive viewer and the HTTP server all run graphs through
// this package, so option defaults, validation and caching behave the same
// at every entry point.
//
// # Stages
//
//  1. Load: decode a graph from a JSON file or reader ([Runner.LoadFile],
//     [Runner.LoadReader]).
//  2. Layout: traverse, size and position the graph ([Runner.Layout]).
//  3. Render: draw the layout into every requested format ([Runner.Render]).
//
// Layouts are cached by graph hash and layout options; artifacts by layout
// hash and render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.ExecuteFile(ctx, "graph.json", pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/colgraph/pkg/cache"
	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/graph"
	"github.com/matzehuels/colgraph/pkg/layout"
	"github.com/matzehuels/colgraph/pkg/style"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API and Viewer
// =============================================================================

const (
	// DefaultScale is the PNG pixel density multiplier.
	DefaultScale = 2.0

	// MaxScale is the largest accepted PNG pixel density.
	MaxScale = 8.0

	// DefaultEngine draws with the built-in surfaces.
	DefaultEngine = EngineNative
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Engine constants select who draws svg, png and pdf output.
const (
	EngineNative   = "native"
	EngineGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats, in display order.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}

// ValidEngines is the set of supported engines.
var ValidEngines = []string{EngineNative, EngineGraphviz}

// ContentTypes maps output formats to their MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Style options
	StylePath string       `json:"-"`
	Style     *style.Style `json:"style,omitempty"`
	Layered   bool         `json:"layered,omitempty"` // Start from style.Layered() instead of style.Default()

	// Layout options
	Placement string   `json:"placement,omitempty"`
	Margin    *float64 `json:"margin,omitempty"`
	Filter    []string `json:"filter,omitempty"` // Traversal categories; empty means unfiltered

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Engine     string   `json:"engine,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	EmbedFont  bool     `json:"embed_font,omitempty"`
	HideLabels bool     `json:"hide_labels,omitempty"` // Graphviz engine only
	Title      string   `json:"title,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"` // Skip cache reads

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	resolved *style.Style
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs and response headers.
	ID string

	// Graph is the loaded graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout contains the computed shapes.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	ColumnCount int
	PlacedCount int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that an engine is valid.
func ValidateEngine(engine string) error {
	if !slices.Contains(ValidEngines, engine) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid engine: %q (must be one of: %s)", engine, strings.Join(ValidEngines, ", "))
	}
	return nil
}

// ValidatePlacement checks that a placement mode is valid.
func ValidatePlacement(placement string) error {
	if !style.Placement(placement).Valid() {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid placement: %q (must be one of: centered, even)", placement)
	}
	return nil
}

// ParseFilter converts category names into traversal filter categories.
func ParseFilter(names []string) ([]graph.Category, error) {
	var out []graph.Category
	for _, name := range names {
		c, err := graph.ParseCategory(strings.TrimSpace(name))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "filter")
		}
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ResolveStyle returns the style the options describe: the style file, an
// explicit Style or a built-in preset, with Placement and Margin applied on
// top. The result is validated and memoized.
func (o *Options) ResolveStyle() (style.Style, error) {
	if o.resolved != nil {
		return *o.resolved, nil
	}

	var st style.Style
	switch {
	case o.StylePath != "":
		loaded, err := style.LoadFile(o.StylePath)
		if err != nil {
			return style.Style{}, err
		}
		st = loaded
	case o.Style != nil:
		st = *o.Style
	case o.Layered:
		st = style.Layered()
	default:
		st = style.Default()
	}

	if o.Placement != "" {
		st.Placement = style.Placement(o.Placement)
	}
	if o.Margin != nil {
		st.Margin = *o.Margin
	}
	if err := st.Validate(); err != nil {
		return style.Style{}, err
	}
	o.resolved = &st
	return st, nil
}

// WithPlacement returns a copy of o with the placement overridden. The copy
// resolves its style again.
func (o Options) WithPlacement(p string) Options {
	o.Placement = p
	o.resolved = nil
	return o
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Placement != "" {
		if err := ValidatePlacement(o.Placement); err != nil {
			return err
		}
	}
	if _, err := ParseFilter(o.Filter); err != nil {
		return err
	}
	_, err := o.ResolveStyle()
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if !(o.Scale > 0 && o.Scale <= MaxScale) {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}
	_, err := o.ResolveStyle()
	return err
}

// ValidateAndSetDefaults checks every option and applies defaults for the
// full pipeline.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// IsGraphviz returns true if svg, png and pdf are drawn by Graphviz.
func (o *Options) IsGraphviz() bool {
	return o.Engine == EngineGraphviz
}

// LayoutOptions returns the layout.Compute options for o.
func (o *Options) LayoutOptions() ([]layout.Option, error) {
	filter, err := ParseFilter(o.Filter)
	if err != nil {
		return nil, err
	}
	var opts []layout.Option
	if len(filter) > 0 {
		opts = append(opts, layout.WithTraversalFilter(filter...))
	}
	if o.Placement != "" {
		opts = append(opts, layout.WithPlacement(style.Placement(o.Placement)))
	}
	return opts, nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(styleHash string) cache.LayoutKeyOpts {
	var filter []string
	if cats, err := ParseFilter(o.Filter); err == nil {
		for _, c := range cats {
			filter = append(filter, c.String())
		}
		slices.Sort(filter)
	}
	return cache.LayoutKeyOpts{
		Placement: o.Placement,
		Filter:    filter,
		StyleHash: styleHash,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format, styleHash string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:    format,
		Engine:    o.Engine,
		StyleHash: styleHash,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	if format == FormatSVG || format == FormatPDF {
		opts.EmbedFont = o.EmbedFont
	}
	if o.IsGraphviz() || format == FormatDOT {
		opts.HideLabels = o.HideLabels
	}
	return opts
}

// StyleHash returns the content hash of a style.
func StyleHash(st style.Style) string {
	data, err := json.Marshal(st)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// ParseFormats splits a comma-separated format list, trimming blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// FileExtension returns the output file extension for a format.
func FileExtension(format string) string {
	if format == FormatJSON {
		return ".layout.json"
	}
	return "." + format
}

func describe(opts Options) string {
	return fmt.Sprintf("engine=%s formats=%s", opts.Engine, strings.Join(opts.Formats, ","))
}
