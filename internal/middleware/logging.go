package middleware

import (
	"net/http"
	"time"

	reqctx "acme-ice-cream/flavors/internal/context"
	"acme-ice-cream/flavors/internal/logging"
)

// Logging writes one structured access log line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := newStatusRecorder(w)

		next.ServeHTTP(lw, r)

		fields := []interface{}{
			"request_id", reqctx.GetRequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"endpoint", routePattern(r),
			"status_code", lw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		}
		switch {
		case lw.statusCode >= 500:
			logging.Error("HTTP request completed", fields...)
		case lw.statusCode >= 400:
			logging.Warn("HTTP request completed", fields...)
		default:
			logging.Info("HTTP request completed", fields...)
		}
	})
}
