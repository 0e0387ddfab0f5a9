package http

import (
	"net/http"
	"time"

	"github.com/mkarev/go-note-keeper/internal/logger"
)

// withLogging emits one access-log line per request with the method, URI,
// response status, body size, and latency. The status and size come from the
// responseWriter decorator, the trace id from the request-scoped logger that
// withTraceID installed.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decorated := &responseWriter{ResponseWriter: w}
		start := time.Now()

		next.ServeHTTP(decorated, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Str("remote", r.RemoteAddr).
			Int("status", decorated.status).
			Int("size", decorated.size).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}
