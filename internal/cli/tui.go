package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/pipeline"
	"github.com/matzehuels/colgraph/pkg/style"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorRed).
			Padding(1, 2)
)

// viewerMode is the screen the viewer shows.
type viewerMode int

const (
	modeView viewerMode = iota
	modeOpen
	modeError
)

// =============================================================================
// Messages
// =============================================================================

// loadedMsg carries the state of a successful load. It replaces the viewer
// state wholesale.
type loadedMsg struct {
	path   string
	output string
	result *pipeline.Result
}

// loadFailedMsg reports a load that failed. The previous drawing stays.
type loadFailedMsg struct {
	path string
	err  error
}

// =============================================================================
// ViewerModel
// =============================================================================

// ViewerModel is the bubbletea model of the interactive viewer.
type ViewerModel struct {
	ctx     context.Context
	runner  *pipeline.Runner
	opts    pipeline.Options
	output  string
	initial string

	// Current drawing.
	path   string
	result *pipeline.Result
	wrote  string

	mode    viewerMode
	loading bool
	errMsg  string

	// File chooser.
	dir    string
	files  []string
	cursor int
	offset int
	height int
}

// NewViewerModel creates a viewer that draws with runner and writes every
// successful load to output. An empty output writes next to the graph.
func NewViewerModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output, dir string) ViewerModel {
	if dir == "" {
		dir = "."
	}
	return ViewerModel{
		ctx:    ctx,
		runner: runner,
		opts:   opts,
		output: output,
		dir:    dir,
		height: 15,
	}
}

// Init loads the initial graph, if any.
func (m ViewerModel) Init() tea.Cmd {
	if m.initial == "" {
		return nil
	}
	return m.load(m.initial, false)
}

// WithInitial returns a copy of m that opens path on start.
func (m ViewerModel) WithInitial(path string) ViewerModel {
	m.initial = path
	m.loading = path != ""
	return m
}

func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeError:
			return m.updateError(msg)
		case modeOpen:
			return m.updateOpen(msg)
		default:
			return m.updateView(msg)
		}

	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)

	case loadedMsg:
		m.loading = false
		m.path = msg.path
		m.result = msg.result
		m.wrote = msg.output
		m.mode = modeView
		m.errMsg = ""

	case loadFailedMsg:
		m.loading = false
		m.mode = modeError
		m.errMsg = fmt.Sprintf("Could not open %s\n\n%s", filepath.Base(msg.path), errors.UserMessage(msg.err))
	}
	return m, nil
}

func (m ViewerModel) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "o":
		files, err := listGraphFiles(m.dir)
		if err != nil {
			m.mode = modeError
			m.errMsg = errors.UserMessage(err)
			return m, nil
		}
		m.files = files
		m.cursor, m.offset = 0, 0
		if i := slices.Index(files, m.path); i >= 0 {
			m.cursor = i
			m.scroll()
		}
		m.mode = modeOpen
	case "r":
		if m.path != "" && !m.loading {
			m.loading = true
			return m, m.load(m.path, true)
		}
	case "p":
		m.opts = m.opts.WithPlacement(string(nextPlacement(m.placement())))
		if m.path != "" && !m.loading {
			m.loading = true
			return m, m.load(m.path, false)
		}
	}
	return m, nil
}

func (m ViewerModel) updateOpen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.mode = modeView
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.scroll()
		}
	case "down", "j":
		if m.cursor < len(m.files)-1 {
			m.cursor++
			m.scroll()
		}
	case "enter":
		if len(m.files) == 0 {
			return m, nil
		}
		m.mode = modeView
		m.loading = true
		return m, m.load(m.files[m.cursor], false)
	}
	return m, nil
}

func (m ViewerModel) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc", "q", " ":
		m.mode = modeView
		m.errMsg = ""
	}
	return m, nil
}

func (m *ViewerModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// placement returns the placement the next load will use.
func (m ViewerModel) placement() style.Placement {
	opts := m.opts
	st, err := opts.ResolveStyle()
	if err != nil {
		return style.PlacementCentered
	}
	return st.Placement
}

// load runs the pipeline for path and writes the drawing to the output file.
func (m ViewerModel) load(path string, refresh bool) tea.Cmd {
	ctx, runner, opts := m.ctx, m.runner, m.opts
	opts.Refresh = refresh
	format, output := viewerOutput(m.output, path)
	opts.Formats = []string{format}

	return func() tea.Msg {
		if err := errors.ValidateGraphPath(path); err != nil {
			return loadFailedMsg{path: path, err: err}
		}
		g, err := runner.LoadFile(ctx, path)
		if err != nil {
			return loadFailedMsg{path: path, err: err}
		}
		result, err := runner.Execute(ctx, g, opts)
		if err != nil {
			return loadFailedMsg{path: path, err: err}
		}
		if err := writeFile(output, result.Artifacts[format]); err != nil {
			return loadFailedMsg{path: path, err: err}
		}
		return loadedMsg{path: path, output: output, result: result}
	}
}

// =============================================================================
// View
// =============================================================================

func (m ViewerModel) View() string {
	switch m.mode {
	case modeOpen:
		return m.viewOpen()
	case modeError:
		return m.viewMain() + "\n" + modalStyle.Render(StyleTitle.Foreground(colorRed).Render("Error")+"\n\n"+m.errMsg) +
			"\n" + listDimStyle.Render("⏎ dismiss")
	}
	return m.viewMain()
}

func (m ViewerModel) viewMain() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("o open  r redraw  p placement  q quit"))
	b.WriteString("\n\n")

	if m.result == nil {
		if m.loading {
			b.WriteString(listDimStyle.Render("Loading..."))
		} else {
			b.WriteString(listDimStyle.Render("No graph loaded. Press o to open one."))
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(listNormalStyle.Render(m.path))
	if m.loading {
		b.WriteString(listDimStyle.Render("  (redrawing)"))
	}
	b.WriteString("\n")
	b.WriteString(formatStats(m.result.Stats, m.result.CacheInfo.LayoutHit))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s placement · %g × %g", m.result.Layout.Placement, m.result.Layout.Width, m.result.Layout.Height)))
	b.WriteString("\n\n")
	b.WriteString(columnTable(m.result.Layout.Columns))
	b.WriteString("\n\n")
	b.WriteString("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(m.wrote))
	b.WriteString("\n")
	return b.String()
}

func (m ViewerModel) viewOpen() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Open Graph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  esc back"))
	b.WriteString("\n\n")

	if len(m.files) == 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("No .json files in %s", m.dir)))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.height, len(m.files))
	for i := m.offset; i < end; i++ {
		name := filepath.Base(m.files[i])
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + name))
		} else {
			b.WriteString(listNormalStyle.Render("  " + name))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.files))))
	return b.String()
}

// columnTable renders one row per column with the vertex ids it holds.
func columnTable(columns [][]int) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(columns))
	for k, col := range columns {
		ids := make([]string, len(col))
		for i, id := range col {
			ids[i] = strconv.Itoa(id)
		}
		rows = append(rows, []string{strconv.Itoa(k), strconv.Itoa(len(col)), strings.Join(ids, " ")})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Column", "Size", "Vertices").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorDim)
		})
	return t.Render()
}

// =============================================================================
// Helpers
// =============================================================================

// listGraphFiles returns the .json files in dir sorted by name. Layout files
// are left out.
func listGraphFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read directory %s", dir)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".json") || strings.HasSuffix(name, ".layout.json") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	slices.Sort(files)
	return files, nil
}

// viewerOutput returns the format and path a load of graphPath writes to.
// The format follows the output extension and defaults to svg.
func viewerOutput(output, graphPath string) (format, path string) {
	if output == "" {
		return pipeline.FormatSVG, outputPath("", graphPath, pipeline.FormatSVG, true)
	}
	if strings.HasSuffix(output, pipeline.FileExtension(pipeline.FormatJSON)) {
		return pipeline.FormatJSON, output
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(output), "."))
	if pipeline.ValidateFormat(ext) == nil {
		return ext, output
	}
	return pipeline.FormatSVG, output
}

func nextPlacement(p style.Placement) style.Placement {
	if p == style.PlacementEven {
		return style.PlacementCentered
	}
	return style.PlacementEven
}
