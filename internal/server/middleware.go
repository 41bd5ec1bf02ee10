package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/observability"
)

// HeaderRenderID carries the id of a request in every response.
const HeaderRenderID = "X-Render-ID"

type ctxKey int

const renderIDKey ctxKey = 0

// renderID assigns every request a fresh uuid.
func renderID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(HeaderRenderID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), renderIDKey, id)))
	})
}

// RenderID returns the id renderID attached to ctx.
func RenderID(ctx context.Context) string {
	id, _ := ctx.Value(renderIDKey).(string)
	return id
}

func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Expose-Headers", HeaderRenderID)
			w.Header().Set("Access-Control-Max-Age", "3600")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// observe reports every request to the HTTP hooks and the logger.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		id := RenderID(r.Context())
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		took := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, took)
		s.cfg.Logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path, "status", status, "bytes", ww.BytesWritten(), "took", took)
	})
}

// rateLimit rejects requests once the token bucket is empty.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			observability.HTTP().OnRateLimited(r.Context(), r.Method, r.URL.Path)
			retry := int(time.Duration(float64(time.Second)/float64(s.limiter.Limit())).Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			rl := &errors.RateLimitedError{RetryAfter: retry}
			writeJSON(w, http.StatusTooManyRequests, errorBody{
				Error: rl.Error(),
				Code:  string(rl.Code()),
				ID:    RenderID(r.Context()),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
