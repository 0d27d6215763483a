package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"sensor-api/internal/logger"
)

// CorrelationIDHeader is read from requests and always set on responses.
const CorrelationIDHeader = "X-Correlation-ID"

// CorrelationID echoes the caller's X-Correlation-ID or mints a new one,
// sets it on the response, and stores it in the request context for logging.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(CorrelationIDHeader)
		if id == "" {
			id = NewCorrelationID()
		}

		w.Header().Set(CorrelationIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithCorrelationID(r.Context(), id)))
	})
}

// NewCorrelationID returns a fresh id of the form req-<uuid>.
func NewCorrelationID() string {
	return "req-" + uuid.NewString()
}
