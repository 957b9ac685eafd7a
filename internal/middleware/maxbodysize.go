package middleware

import "net/http"

// NewMaxBodySizeHandler returns a middleware that limits incoming request
// body sizes to limit bytes. Import uploads are the only large bodies this
// API sees, and they fit comfortably under a few megabytes; anything bigger
// is rejected with 413 Request Entity Too Large.
//
// Requests advertising an oversized Content-Length are rejected before the
// next handler runs. Bodies of unknown length are wrapped in
// http.MaxBytesReader, which fails the handler's read once the limit is hit.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge),
					http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
