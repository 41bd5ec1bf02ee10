package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/colgraph/pkg/cache"
	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/observability"
)

const chainJSON = `{
  "vertices": [{"id": 0, "edge_ids": [0]}, {"id": 1, "edge_ids": [0, 1]}, {"id": 2, "edge_ids": [1]}],
  "edges": [{"id": 0, "vertex_ids": [0, 1]}, {"id": 1, "vertex_ids": [1, 2], "color": "Red"}]
}`

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(fc, nil, log.New(&bytes.Buffer{}))
	t.Cleanup(func() { r.Close() })
	return r
}

func writeGraph(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner(nil, nil, nil) = %+v, want every field set", r)
	}
}

func TestExecuteFile(t *testing.T) {
	r := newTestRunner(t)
	path := writeGraph(t, chainJSON)

	result, err := r.ExecuteFile(context.Background(), path, Options{Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatalf("ExecuteFile() error = %v", err)
	}
	if result.ID == "" || result.GraphHash == "" {
		t.Errorf("ID = %q, GraphHash = %q, want both set", result.ID, result.GraphHash)
	}
	if result.Stats.VertexCount != 3 || result.Stats.EdgeCount != 2 || result.Stats.ColumnCount != 3 {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if !bytes.HasPrefix(result.Artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact:\n%s", result.Artifacts[FormatSVG])
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", result.CacheInfo)
	}
}

func TestExecuteCacheHit(t *testing.T) {
	r := newTestRunner(t)
	g, err := r.LoadReader(context.Background(), "test", strings.NewReader(chainJSON))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Formats: []string{FormatSVG, FormatDOT}}

	first, err := r.Execute(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	second, err := r.Execute(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}
	if first.ID == second.ID {
		t.Error("every run should get its own ID")
	}

	refreshed, err := r.Execute(context.Background(), g, Options{Formats: opts.Formats, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.LayoutHit || refreshed.CacheInfo.RenderHit {
		t.Errorf("refresh should skip cache reads: %+v", refreshed.CacheInfo)
	}
}

func TestExecuteStyleChangesKey(t *testing.T) {
	r := newTestRunner(t)
	g, err := r.LoadReader(context.Background(), "test", strings.NewReader(chainJSON))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Execute(context.Background(), g, Options{}); err != nil {
		t.Fatal(err)
	}
	result, err := r.Execute(context.Background(), g, Options{Layered: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.LayoutHit {
		t.Error("a different style must not reuse the cached layout")
	}
	if result.Layout.Width != 336+128 {
		t.Errorf("layered width = %g, want %d", result.Layout.Width, 336+128)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.ExecuteFile(ctx, filepath.Join(t.TempDir(), "missing.json"), Options{}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	if _, err := r.LoadReader(ctx, "bad", strings.NewReader("{")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("malformed input error = %v, want INVALID_INPUT", err)
	}

	dangling := `{"vertices": [{"id": 0, "edge_ids": [0]}], "edges": [{"id": 0, "vertex_ids": [0, 9]}]}`
	g, err := r.LoadReader(ctx, "dangling", strings.NewReader(dangling))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Execute(ctx, g, Options{}); !errors.Is(err, errors.ErrCodeReference) {
		t.Errorf("dangling reference error = %v, want REFERENCE", err)
	}

	if _, err := r.Execute(ctx, g, Options{Formats: []string{"gif"}}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerLayoutFilter(t *testing.T) {
	r := newTestRunner(t)
	g, err := r.LoadReader(context.Background(), "test", strings.NewReader(chainJSON))
	if err != nil {
		t.Fatal(err)
	}

	l, err := r.Layout(context.Background(), g, Options{Filter: []string{"grey"}})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if len(l.Columns) != 2 || len(l.Edges) != 1 {
		t.Errorf("filtered layout columns = %v edges = %d, want 2 columns and 1 edge", l.Columns, len(l.Edges))
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadComplete(_ context.Context, _ string, _, _ int, _ time.Duration, _ error) {
	h.record("load")
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, _ int, _ time.Duration, _ error) {
	h.record("layout")
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, _ error) {
	h.record("render")
}

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, log.New(&bytes.Buffer{}))
	if _, err := r.ExecuteFile(context.Background(), writeGraph(t, chainJSON), Options{}); err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(hooks.events, ","); got != "load,layout,render" {
		t.Errorf("hook events = %s, want load,layout,render", got)
	}
}
