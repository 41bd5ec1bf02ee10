package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/colgraph/pkg/buildinfo"
	"github.com/matzehuels/colgraph/pkg/errors"
)

const chainJSON = `{
  "vertices": [{"id": 0, "edge_ids": [0]}, {"id": 1, "edge_ids": [0, 1]}, {"id": 2, "edge_ids": [1]}],
  "edges": [{"id": 0, "vertex_ids": [0, 1]}, {"id": 1, "vertex_ids": [1, 2], "color": "Red"}]
}`

// runCLI executes the root command with args against an isolated cache.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	captureStdout(t)

	var logs, out bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTestGraph(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chain.json")
	if err := os.WriteFile(path, []byte(chainJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"render", "layout", "visualize", "view", "serve", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := runCLI(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, buildinfo.Version) {
		t.Errorf("--version output = %q, want it to contain %q", out, buildinfo.Version)
	}
}

func TestRenderCommand(t *testing.T) {
	input := writeTestGraph(t)
	base := strings.TrimSuffix(input, ".json")

	if _, err := runCLI(t, "render", input, "-f", "svg,json,dot"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	for _, ext := range []string{".svg", ".layout.json", ".dot"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing output %s: %v", base+ext, err)
		}
	}
}

func TestRenderCommandSingleOutput(t *testing.T) {
	input := writeTestGraph(t)
	output := filepath.Join(t.TempDir(), "drawing.svg")

	if _, err := runCLI(t, "render", input, "-o", output, "--layered", "--filter", "grey", "--no-cache"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("output is not svg: %.40s", data)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := writeTestGraph(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"not json", []string{"render", "graph.txt"}, errors.ErrCodeInvalidPath},
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "missing.json")}, errors.ErrCodeFileNotFound},
		{"bad format", []string{"render", input, "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad placement", []string{"render", input, "--placement", "diagonal"}, errors.ErrCodeInvalidStyle},
		{"bad filter", []string{"render", input, "--filter", "purple"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLayoutThenVisualize(t *testing.T) {
	input := writeTestGraph(t)
	layoutPath := strings.TrimSuffix(input, ".json") + ".layout.json"

	if _, err := runCLI(t, "layout", input, "--placement", "even"); err != nil {
		t.Fatalf("layout error = %v", err)
	}
	l, err := readLayoutFile(layoutPath)
	if err != nil {
		t.Fatalf("readLayoutFile() error = %v", err)
	}
	if len(l.Columns) != 3 || l.Placement != "even" {
		t.Errorf("layout columns = %v placement = %q", l.Columns, l.Placement)
	}

	dot := filepath.Join(t.TempDir(), "chain.dot")
	if _, err := runCLI(t, "visualize", layoutPath, "-f", "dot", "-o", dot); err != nil {
		t.Fatalf("visualize error = %v", err)
	}
	data, err := os.ReadFile(dot)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("dot output = %.40s", data)
	}
}

func TestVisualizeMissingLayout(t *testing.T) {
	_, err := runCLI(t, "visualize", filepath.Join(t.TempDir(), "none.layout.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the command name")
	}
}
