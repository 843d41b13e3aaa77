package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/paykit/logger"
)

// RequestLogger logs every request with method, path, status code and
// duration. The health endpoint is skipped.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			fields := logger.MergeWithDuration(logger.Fields(
				logger.FieldMethod, r.Method,
				logger.FieldPath, r.URL.Path,
				logger.FieldStatus, sw.status,
			), time.Since(start))
			logByStatus(log.WithContext(r.Context()), fields, sw.status)
		})
	}
}

// logByStatus logs request fields at the level matching the status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("request completed", fields)
	case status >= 400:
		log.Warn("request completed", fields)
	default:
		log.Debug("request completed", fields)
	}
}
