package middleware

import (
	"net/http"
	"time"

	"github.com/crucial707/equipment-registry/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// Prometheus records request duration and count for each request.
// The chi route pattern is used as the path label when available so
// /edit/1 and /edit/2 share a series. Unmatched 404s share one label and
// /metrics itself is not recorded. Register it outside Recoverer so
// recovered panics are counted as 500s.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		statusW := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(statusW, r)
		if r.URL.Path == "/metrics" {
			return
		}

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		switch {
		case statusW.status == http.StatusNotFound && path == r.URL.Path:
			path = "unmatched"
		case path == "":
			path = "/"
		}
		metrics.RecordRequest(r.Method, path, statusW.status, time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
