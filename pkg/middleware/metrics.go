package middleware

import (
	"net/http"
	"time"

	"cinema-sessions/pkg/monitoring"

	"github.com/go-chi/chi/v5"
)

// Metrics records request counts and latency per chi route pattern,
// keeping label cardinality bounded.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			monitoring.ObserveRequest(r.Method, route, rw.statusCode, time.Since(start))
		})
	}
}
