// Package server exposes the layout and drawing pipeline over HTTP.
//
// Routes:
//
//	GET  /health   liveness probe
//	POST /render   graph JSON in, one drawing out (?format=svg|png|pdf|json|dot)
//	POST /layout   graph JSON in, layout JSON out
//
// Every response carries an X-Render-ID header. Requests are rate limited
// with a token bucket shared by all clients.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/matzehuels/colgraph/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// DefaultRateLimit is the sustained request rate in requests per second.
	DefaultRateLimit = 10.0

	// DefaultMaxBodyBytes caps the size of an uploaded graph.
	DefaultMaxBodyBytes = 8 << 20

	serviceName     = "colgraph"
	shutdownTimeout = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// Runner executes the pipeline. Required.
	Runner *pipeline.Runner

	// Logger receives request logs. Nil discards them.
	Logger *log.Logger

	// RateLimit is the sustained rate in requests per second. Zero or less
	// disables limiting.
	RateLimit float64

	// Burst is the token bucket size. Defaults to 1.
	Burst int

	// AllowedOrigin is sent as Access-Control-Allow-Origin. Defaults to "*".
	AllowedOrigin string

	// MaxBodyBytes caps request bodies. Defaults to DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// Server is the HTTP API.
type Server struct {
	cfg     Config
	limiter *rate.Limiter
	started time.Time
	router  chi.Router
}

// New creates a server and builds its routes.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "*"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{cfg: cfg, started: time.Now()}
	if cfg.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(renderID)
	r.Use(s.observe)
	r.Use(cors(s.cfg.AllowedOrigin))

	r.Get("/health", s.handleHealth)
	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/render", s.handleRender)
		r.Post("/layout", s.handleLayout)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("Listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.cfg.Logger.Info("Shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
