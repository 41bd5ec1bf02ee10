package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/layout"
	"github.com/matzehuels/colgraph/pkg/pipeline"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Service   string            `json:"service"`
	Uptime    string            `json:"uptime,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	ID    string `json:"id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Details: map[string]string{
			"go_version": runtime.Version(),
			"num_cpu":    strconv.Itoa(runtime.NumCPU()),
		},
	})
}

// handleRender draws the posted graph in the requested format.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]

	g, err := s.cfg.Runner.LoadReader(ctx, "request "+RenderID(ctx), http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.cfg.Runner.Execute(ctx, g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.cfg.Logger.Info("Rendered", "id", RenderID(ctx), "format", format,
		"vertices", result.Stats.VertexCount, "columns", result.Stats.ColumnCount, "cached", result.CacheInfo.RenderHit)

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Graph-Hash", result.GraphHash)
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// handleLayout returns the layout of the posted graph.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	g, err := s.cfg.Runner.LoadReader(ctx, "request "+RenderID(ctx), http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, hit, err := s.cfg.Runner.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := layout.MarshalLayout(l)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[pipeline.FormatJSON])
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// optionsFromQuery builds pipeline options from the query string. Only one
// format is drawn per request.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Engine:     q.Get("engine"),
		Placement:  q.Get("placement"),
		Title:      q.Get("title"),
		Layered:    q.Get("layered") == "true",
		HideLabels: q.Get("labels") == "false",
		Refresh:    q.Get("refresh") == "true",
	}

	format := strings.ToLower(q.Get("format"))
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	if f := q.Get("filter"); f != "" {
		opts.Filter = strings.Split(f, ",")
	}
	if m := q.Get("margin"); m != "" {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidConfig, "invalid margin %q", m)
		}
		opts.Margin = &v
	}
	if sc := q.Get("scale"); sc != "" {
		v, err := strconv.ParseFloat(sc, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidConfig, "invalid scale %q", sc)
		}
		opts.Scale = v
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// writeError maps an error code to a status and writes a JSON error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.cfg.Logger.Error("Request failed", "id", RenderID(r.Context()), "err", err)
	} else {
		s.cfg.Logger.Debug("Request rejected", "id", RenderID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorBody{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
		ID:    RenderID(r.Context()),
	})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeReference:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
