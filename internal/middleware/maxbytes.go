package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes is the default maximum form body size (64 KiB).
const DefaultMaxBodyBytes = 64 << 10

// MaxBytes caps the request body of POST requests. Reading past the cap fails
// with *http.MaxBytesError, which the form handlers turn into 413.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
