// internal/app/system/limits/limits.go
package limits

import (
	"net/http"
	"strings"
)

// Request body size limits.
const (
	// MaxUploadSize bounds a multipart dialog submission. Reel videos are
	// the largest files the dashboard forwards.
	MaxUploadSize = 64 << 20 // 64 MB

	// MaxFormSize bounds urlencoded and JSON bodies: auth forms, dialogs
	// without files, bulk delete selections.
	MaxFormSize = 1 << 20 // 1 MB
)

// Body caps request bodies. Multipart requests get MaxUploadSize, all
// others MaxFormSize. Reads past the cap fail and the handler's form
// parse reports the error.
func Body(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, For(r))
		}
		next.ServeHTTP(w, r)
	})
}

// For returns the body limit that applies to r.
func For(r *http.Request) int64 {
	if strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data") {
		return MaxUploadSize
	}
	return MaxFormSize
}
