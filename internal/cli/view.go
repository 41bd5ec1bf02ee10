package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/pipeline"
)

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		output  string
		dir     string
		noCache bool
		flags   styleFlags
	)

	cmd := &cobra.Command{
		Use:   "view [graph.json]",
		Short: "Open graphs interactively and redraw them on demand",
		Long: `Open graphs interactively and redraw them on demand.

Every successful load lays the graph out again and rewrites the output file.
A file that fails to load shows an error and leaves the previous drawing in
place.

Keys:
  o  open a graph from the directory
  r  redraw the current graph, bypassing the cache
  p  switch between centered and even placement
  q  quit`,
		Example: `  colgraph view graph.json -o graph.svg
  colgraph view --dir examples`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts pipeline.Options
			flags.apply(cmd, &opts)
			if output != "" {
				if err := errors.ValidateOutputPath(output); err != nil {
					return err
				}
			}

			var initial string
			if len(args) == 1 {
				initial = args[0]
				if !cmd.Flags().Changed("dir") {
					dir = filepath.Dir(initial)
				}
			}

			check := opts
			if err := check.ValidateAndSetDefaults(); err != nil {
				return err
			}

			store, err := newCache(noCache)
			if err != nil {
				return fmt.Errorf("initialize cache: %w", err)
			}
			// The viewer owns the terminal; keep pipeline logs off it.
			runner := pipeline.NewRunner(store, nil, discardLogger())
			defer runner.Close()

			m := NewViewerModel(cmd.Context(), runner, opts, output, dir).WithInitial(initial)
			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("viewer: %w", err)
			}
			if fm, ok := final.(ViewerModel); ok && fm.wrote != "" {
				printSuccess("Last drawing")
				printFile(fm.wrote)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; the extension selects the format (default: <graph>.svg)")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory listed by the open prompt")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}
