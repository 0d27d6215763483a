package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"sensor-api/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger writes one log line per request and, when metrics is not
// nil, records it there. routeOf maps a request to a low-cardinality label.
func RequestLogger(log *slog.Logger, metrics *Metrics, routeOf func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			logger.FromContext(r.Context(), log).Info("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", elapsed.Milliseconds(),
			)
			if metrics != nil {
				metrics.observe(r.Method, routeOf(r), rec.status, elapsed)
			}
		})
	}
}
