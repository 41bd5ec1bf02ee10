package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/colgraph/internal/server"
	"github.com/matzehuels/colgraph/pkg/cache"
	"github.com/matzehuels/colgraph/pkg/pipeline"
)

// Environment variables read by serve. A .env file in the working directory
// is loaded first.
const (
	envAddr       = "COLGRAPH_ADDR"
	envRedisURL   = "COLGRAPH_REDIS_URL"
	envCORSOrigin = "COLGRAPH_CORS_ORIGIN"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		rate    float64
		burst   int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and drawing API over HTTP",
		Long: `Serve the layout and drawing API over HTTP.

Endpoints:
  GET  /health
  POST /render?format=svg&engine=native&placement=centered
  POST /layout

Both POST endpoints take graph JSON as the request body.

Environment (also read from .env):
  COLGRAPH_ADDR         listen address (overridden by --addr)
  COLGRAPH_REDIS_URL    share the cache through redis instead of the local directory
  COLGRAPH_CORS_ORIGIN  Access-Control-Allow-Origin value (default *)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			if !cmd.Flags().Changed("addr") {
				if env := os.Getenv(envAddr); env != "" {
					addr = env
				}
			}
			return c.runServe(cmd.Context(), addr, rate, burst, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().Float64Var(&rate, "rate", server.DefaultRateLimit, "requests per second across all clients (0 disables limiting)")
	cmd.Flags().IntVar(&burst, "burst", 20, "requests allowed in a burst")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, rate float64, burst int, noCache bool) error {
	logger := loggerFromContext(ctx)

	store, keyer, err := serveCache(ctx, noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, keyer, logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Runner:        runner,
		Logger:        logger,
		RateLimit:     rate,
		Burst:         burst,
		AllowedOrigin: os.Getenv(envCORSOrigin),
	})

	printSuccess("Serving on %s", addr)
	return srv.ListenAndServe(ctx, addr)
}

// serveCache picks redis when COLGRAPH_REDIS_URL is set and the local file
// cache otherwise. Redis keys are scoped so CLI and server entries never mix.
func serveCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	if noCache {
		return cache.NewNullCache(), nil, nil
	}
	if url := os.Getenv(envRedisURL); url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize cache: %w", err)
		}
		return rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve:"), nil
	}
	store, err := newCache(false)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize cache: %w", err)
	}
	return store, nil, nil
}
