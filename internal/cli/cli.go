package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/colgraph/pkg/cache"
	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "colgraph"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory (~/.cache/colgraph/ on Linux).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, ...), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, f := range pipeline.ValidFormats {
		if ext := pipeline.FileExtension(f); strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	if ext := filepath.Ext(output); slices.Contains(pipeline.ValidFormats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where format should be written. A single format goes
// to output verbatim when it is set.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return basePath(output, input) + pipeline.FileExtension(format)
}

// =============================================================================
// Shared Flags
// =============================================================================

// styleFlags are the style and layout flags shared by render, layout and view.
type styleFlags struct {
	config    string
	layered   bool
	placement string
	margin    float64
	filter    string
}

func (f *styleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "style file (.toml, .yaml)")
	cmd.Flags().BoolVar(&f.layered, "layered", false, "start from the layered preset (margin 64, even placement)")
	cmd.Flags().StringVar(&f.placement, "placement", "", "vertex placement: centered (default), even")
	cmd.Flags().Float64Var(&f.margin, "margin", 0, "canvas margin in pixels (overrides the style)")
	cmd.Flags().StringVar(&f.filter, "filter", "", "traverse only edges of these colors (comma-separated)")
}

// apply copies the flags into opts. Margin is applied only when set.
func (f *styleFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	opts.StylePath = f.config
	opts.Layered = f.layered
	opts.Placement = f.placement
	if cmd.Flags().Changed("margin") {
		m := f.margin
		opts.Margin = &m
	}
	if f.filter != "" {
		opts.Filter = strings.Split(f.filter, ",")
	}
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes every rendered format and returns the written paths
// in format order.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if p.output != "" {
		if err := errors.ValidateOutputPath(p.output); err != nil {
			return nil, err
		}
	}
	var paths []string
	single := len(p.formats) == 1
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return paths, fmt.Errorf("missing %s artifact", format)
		}
		path := outputPath(p.output, p.input, format, single)
		if err := writeFile(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeFile writes data to path through a temporary file so readers never
// see a partial drawing.
func writeFile(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
