package middleware

import (
	"net/http"

	"github.com/kbukum/paykit/util"
)

const defaultMaxBodySize = 1024 * 1024 // 1MB

// BodySizeLimit restricts the request body to maxSize ("64KB", "1MB").
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}
